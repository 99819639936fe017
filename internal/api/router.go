package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/proconnect/backend/internal/api/handlers"
	mw "github.com/proconnect/backend/internal/api/middleware"
)

type Dependencies struct {
	Auth    func(http.Handler) http.Handler
	Health  *handlers.HealthHandler
	Users   *handlers.UsersHandler
	Posts   *handlers.PostsHandler
	Account *handlers.AuthHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(chimid.Compress(5))

	r.Get("/status", dep.Health.Status)

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register/", dep.Account.Register)
		ar.Post("/login/", dep.Account.Login)
		ar.Get("/id/by_email", dep.Account.IDByEmail)
		ar.With(dep.Auth).Get("/me/", dep.Account.Me)
	})

	r.Route("/users", func(ur chi.Router) {
		ur.Get("/{id}", dep.Users.Get)
		ur.Get("/{id}/posts/", dep.Users.Posts)
	})

	r.Route("/posts", func(pr chi.Router) {
		pr.Get("/", dep.Posts.List)
		pr.Get("/{id}/", dep.Posts.Get)
		pr.Get("/{id}/comments/", dep.Posts.ListComments)

		pr.Group(func(protected chi.Router) {
			protected.Use(dep.Auth)
			protected.Post("/", dep.Posts.Create)
			protected.Delete("/{id}/", dep.Posts.Delete)
			protected.Post("/{id}/comments/", dep.Posts.AddComment)
			protected.Post("/{id}/like/", dep.Posts.Like)
			protected.Delete("/{id}/like/", dep.Posts.Unlike)
		})
	})

	return r
}
