package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/proconnect/backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPost(t *testing.T, db *gorm.DB, authorID uuid.UUID, content string, createdAt time.Time) *models.Post {
	t.Helper()
	p := &models.Post{AuthorID: authorID, Content: content, CreatedAt: createdAt}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

func TestLikeCounterMatchesRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := uuid.New()
	p := seedPost(t, db, author, "hello", time.Now())

	u1, u2 := uuid.New(), uuid.New()
	for _, uid := range []uuid.UUID{u1, u1, u2} {
		if err := repo.Like(ctx, p.ID, uid); err != nil {
			t.Fatalf("like: %v", err)
		}
	}

	var got models.Post
	if err := repo.GetByID(ctx, p.ID, &got); err != nil {
		t.Fatalf("get post: %v", err)
	}
	var rows int64
	if err := db.Model(&models.Like{}).Where("post_id = ?", p.ID).Count(&rows).Error; err != nil {
		t.Fatalf("count likes: %v", err)
	}
	if got.Likes != 2 || rows != 2 {
		t.Fatalf("counter and rows must agree at 2, got counter=%d rows=%d", got.Likes, rows)
	}

	liked, err := repo.IsLikedBy(ctx, p.ID, u1)
	if err != nil || !liked {
		t.Fatalf("expected u1 to be a liker, got %v %v", liked, err)
	}
}

func TestUnlikeFloorsAtZero(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	p := seedPost(t, db, uuid.New(), "hello", time.Now())
	u := uuid.New()

	// Unlike before any like is a no-op
	if err := repo.Unlike(ctx, p.ID, u); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	var got models.Post
	if err := repo.GetByID(ctx, p.ID, &got); err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Likes != 0 {
		t.Fatalf("expected likes=0, got %d", got.Likes)
	}

	if err := repo.Like(ctx, p.ID, u); err != nil {
		t.Fatalf("like: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := repo.Unlike(ctx, p.ID, u); err != nil {
			t.Fatalf("unlike %d: %v", i, err)
		}
	}
	if err := repo.GetByID(ctx, p.ID, &got); err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Likes != 0 {
		t.Fatalf("likes must never go below 0, got %d", got.Likes)
	}
}

func TestDeleteCascadeRemovesChildren(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	p := seedPost(t, db, uuid.New(), "hello", time.Now())
	if err := comments.CreateWithCount(ctx, &models.Comment{PostID: p.ID, AuthorID: uuid.New(), Content: "hi"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if err := repo.Like(ctx, p.ID, uuid.New()); err != nil {
		t.Fatalf("like: %v", err)
	}

	if err := repo.DeleteCascade(ctx, p.ID); err != nil {
		t.Fatalf("delete cascade: %v", err)
	}

	var nComments, nLikes int64
	db.Model(&models.Comment{}).Where("post_id = ?", p.ID).Count(&nComments)
	db.Model(&models.Like{}).Where("post_id = ?", p.ID).Count(&nLikes)
	if nComments != 0 || nLikes != 0 {
		t.Fatalf("expected no orphans, got comments=%d likes=%d", nComments, nLikes)
	}

	// Second delete reports not found
	if err := repo.DeleteCascade(ctx, p.ID); err == nil {
		t.Fatal("expected not found for second delete")
	}
}

func TestListOrderingAndPagination(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := uuid.New()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedPost(t, db, author, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	page, err := repo.List(ctx, 0, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 || page[0].Content != "post 4" || page[1].Content != "post 3" {
		t.Fatalf("expected newest-first page, got %+v", page)
	}

	page, err = repo.List(ctx, 4, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 1 || page[0].Content != "post 0" {
		t.Fatalf("expected last page with oldest post, got %+v", page)
	}

	byAuthor, err := repo.ListByAuthor(ctx, author)
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(byAuthor) != 5 || byAuthor[0].Content != "post 4" {
		t.Fatalf("expected all author posts newest-first, got %d", len(byAuthor))
	}
}

func TestCommentCounterAndOrdering(t *testing.T) {
	db := openTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	p := seedPost(t, db, uuid.New(), "hello", time.Now())
	author := uuid.New()
	base := time.Now()
	for i := 0; i < 3; i++ {
		c := &models.Comment{PostID: p.ID, AuthorID: author, Content: fmt.Sprintf("c%d", i), CreatedAt: base.Add(time.Duration(i) * time.Second)}
		if err := comments.CreateWithCount(ctx, c); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	var got models.Post
	if err := posts.GetByID(ctx, p.ID, &got); err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Comments != 3 {
		t.Fatalf("expected comments=3, got %d", got.Comments)
	}

	list, err := comments.ListByPost(ctx, p.ID, 1, 10)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(list) != 2 || list[0].Content != "c1" {
		t.Fatalf("expected oldest-first with skip, got %+v", list)
	}
}
