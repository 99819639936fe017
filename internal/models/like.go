package models

import (
	"time"

	"github.com/google/uuid"
)

// Like is a membership row in a post's liker set. The composite primary key
// makes a user's like of a post unique, which is what keeps like/unlike
// idempotent under ON CONFLICT DO NOTHING.
type Like struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
