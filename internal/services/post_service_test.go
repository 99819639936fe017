package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/proconnect/backend/internal/models"
	"github.com/proconnect/backend/internal/repository"
	appErr "github.com/proconnect/backend/pkg/errors"
)

func newPostService(t *testing.T) (PostService, repository.UserRepository) {
	t.Helper()
	db := openTestDB(t)
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	return NewPostService(posts, comments, users), users
}

func mustCreateUser(t *testing.T, users repository.UserRepository, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, PasswordHash: "x"}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestCreatePostValidation(t *testing.T) {
	svc, users := newPostService(t)
	ctx := context.Background()
	alice := mustCreateUser(t, users, "Alice", "alice@x.com")

	if _, err := svc.CreatePost(ctx, alice.ID, "   "); !appErr.IsCode(err, appErr.CodeUnprocessable) {
		t.Fatalf("expected unprocessable for blank content, got %v", err)
	}
	if _, err := svc.CreatePost(ctx, alice.ID, strings.Repeat("x", maxPostLen+1)); !appErr.IsCode(err, appErr.CodeUnprocessable) {
		t.Fatalf("expected unprocessable for oversized content, got %v", err)
	}

	view, err := svc.CreatePost(ctx, alice.ID, "  hello  ")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if view.Content != "hello" {
		t.Fatalf("expected trimmed content, got %q", view.Content)
	}
	if view.Likes != 0 || view.Comments != 0 {
		t.Fatalf("expected zero counters, got likes=%d comments=%d", view.Likes, view.Comments)
	}
	if view.Author.Name != "Alice" {
		t.Fatalf("expected author join, got %+v", view.Author)
	}
}

func TestLikeIdempotence(t *testing.T) {
	svc, users := newPostService(t)
	ctx := context.Background()
	alice := mustCreateUser(t, users, "Alice", "alice@x.com")

	view, err := svc.CreatePost(ctx, alice.ID, "hello")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.Like(ctx, view.ID, alice.ID); err != nil {
			t.Fatalf("like %d: %v", i, err)
		}
	}
	got, err := svc.GetPost(ctx, view.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Likes != 1 {
		t.Fatalf("expected likes=1 after double like, got %d", got.Likes)
	}

	// Unlike twice; counter must not go negative
	for i := 0; i < 2; i++ {
		if err := svc.Unlike(ctx, view.ID, alice.ID); err != nil {
			t.Fatalf("unlike %d: %v", i, err)
		}
	}
	got, err = svc.GetPost(ctx, view.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Likes != 0 {
		t.Fatalf("expected likes=0 after unlike, got %d", got.Likes)
	}

	// Unknown post is not found
	if err := svc.Like(ctx, uuid.New(), alice.ID); !appErr.IsCode(err, appErr.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeletePostOwnership(t *testing.T) {
	svc, users := newPostService(t)
	ctx := context.Background()
	alice := mustCreateUser(t, users, "Alice", "alice@x.com")
	bob := mustCreateUser(t, users, "Bob", "bob@x.com")

	view, err := svc.CreatePost(ctx, alice.ID, "hello")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := svc.DeletePost(ctx, view.ID, bob.ID); !appErr.IsCode(err, appErr.CodeForbidden) {
		t.Fatalf("expected forbidden for non-author delete, got %v", err)
	}
	if _, err := svc.GetPost(ctx, view.ID); err != nil {
		t.Fatalf("post should survive forbidden delete: %v", err)
	}

	if err := svc.DeletePost(ctx, view.ID, alice.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if _, err := svc.GetPost(ctx, view.ID); !appErr.IsCode(err, appErr.CodeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestCommentsBumpCounterAndOrder(t *testing.T) {
	svc, users := newPostService(t)
	ctx := context.Background()
	alice := mustCreateUser(t, users, "Alice", "alice@x.com")

	view, err := svc.CreatePost(ctx, alice.ID, "hello")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if _, err := svc.AddComment(ctx, view.ID, alice.ID, ""); !appErr.IsCode(err, appErr.CodeUnprocessable) {
		t.Fatalf("expected unprocessable for empty comment, got %v", err)
	}

	first, err := svc.AddComment(ctx, view.ID, alice.ID, "first")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if first.Author.Name != "Alice" {
		t.Fatalf("expected comment author join, got %+v", first.Author)
	}
	if _, err := svc.AddComment(ctx, view.ID, alice.ID, "second"); err != nil {
		t.Fatalf("add comment: %v", err)
	}

	got, err := svc.GetPost(ctx, view.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Comments != 2 {
		t.Fatalf("expected comments counter 2, got %d", got.Comments)
	}

	list, err := svc.Comments(ctx, view.ID, 0, 100)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(list) != 2 || list[0].Content != "first" || list[1].Content != "second" {
		t.Fatalf("expected oldest-first comments, got %+v", list)
	}

	// Comments against an unknown post fail
	if _, err := svc.AddComment(ctx, uuid.New(), alice.ID, "x"); !appErr.IsCode(err, appErr.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMissingAuthorPlaceholder(t *testing.T) {
	svc, users := newPostService(t)
	ctx := context.Background()
	alice := mustCreateUser(t, users, "Alice", "alice@x.com")

	view, err := svc.CreatePost(ctx, alice.ID, "hello")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	// Author record disappears; the post must still render.
	if err := users.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	got, err := svc.GetPost(ctx, view.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Author.Name != "Unknown" || got.Author.Title != "Member" || got.Author.ID != nil {
		t.Fatalf("expected placeholder author, got %+v", got.Author)
	}
}
