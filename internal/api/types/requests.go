package types

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=80"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Title    *string `json:"title"`
	Bio      *string `json:"bio"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ContentRequest is the body of post and comment creation. Emptiness after
// trimming and length limits are enforced by the service.
type ContentRequest struct {
	Content string `json:"content"`
}
