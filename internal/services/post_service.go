package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/proconnect/backend/internal/models"
	"github.com/proconnect/backend/internal/repository"
	appErr "github.com/proconnect/backend/pkg/errors"
	"github.com/proconnect/backend/pkg/logger"
)

const (
	maxPostLen    = 5000
	maxCommentLen = 2000
)

// AuthorView is the public author block embedded in rendered posts and
// comments. A missing author record renders the placeholder fields instead
// of failing the whole response.
type AuthorView struct {
	ID        *uuid.UUID `json:"id"`
	Name      string     `json:"name"`
	Title     string     `json:"title"`
	AvatarURL *string    `json:"avatar_url"`
}

type PostView struct {
	ID        uuid.UUID  `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	Likes     int        `json:"likes"`
	Comments  int        `json:"comments"`
	Author    AuthorView `json:"author"`
}

type CommentView struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	Author    AuthorView `json:"author"`
}

// PostService implements the content rules: creation, listing with author
// joins, commenting, idempotent like/unlike and author-only deletion.
type PostService interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, content string) (*PostView, error)
	Feed(ctx context.Context, skip, limit int) ([]PostView, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*PostView, error)
	UserPosts(ctx context.Context, authorID uuid.UUID) ([]PostView, error)
	DeletePost(ctx context.Context, postID, callerID uuid.UUID) error

	AddComment(ctx context.Context, postID, authorID uuid.UUID, content string) (*CommentView, error)
	Comments(ctx context.Context, postID uuid.UUID, skip, limit int) ([]CommentView, error)

	Like(ctx context.Context, postID, userID uuid.UUID) error
	Unlike(ctx context.Context, postID, userID uuid.UUID) error
}

type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	users    repository.UserRepository
}

func NewPostService(posts repository.PostRepository, comments repository.CommentRepository, users repository.UserRepository) PostService {
	return &postService{posts: posts, comments: comments, users: users}
}

var _ PostService = (*postService)(nil)

func validateContent(content string, max int) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", appErr.New(appErr.CodeUnprocessable, "content cannot be empty")
	}
	if utf8.RuneCountInString(content) > max {
		return "", appErr.New(appErr.CodeUnprocessable, "content too long")
	}
	return content, nil
}

func (s *postService) CreatePost(ctx context.Context, authorID uuid.UUID, content string) (*PostView, error) {
	content, err := validateContent(content, maxPostLen)
	if err != nil {
		return nil, err
	}

	p := &models.Post{AuthorID: authorID, Content: content}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.L().Info("post created", zap.String("post_id", p.ID.String()), zap.String("author_id", authorID.String()))

	authors, err := s.authorViews(ctx, []uuid.UUID{authorID})
	if err != nil {
		return nil, err
	}
	view := postView(p, authors)
	return &view, nil
}

func (s *postService) Feed(ctx context.Context, skip, limit int) ([]PostView, error) {
	posts, err := s.posts.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.assemblePosts(ctx, posts)
}

func (s *postService) GetPost(ctx context.Context, postID uuid.UUID) (*PostView, error) {
	var p models.Post
	if err := s.posts.GetByID(ctx, postID, &p); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "post not found")
		}
		return nil, err
	}
	authors, err := s.authorViews(ctx, []uuid.UUID{p.AuthorID})
	if err != nil {
		return nil, err
	}
	view := postView(&p, authors)
	return &view, nil
}

func (s *postService) UserPosts(ctx context.Context, authorID uuid.UUID) ([]PostView, error) {
	posts, err := s.posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.assemblePosts(ctx, posts)
}

func (s *postService) DeletePost(ctx context.Context, postID, callerID uuid.UUID) error {
	var p models.Post
	if err := s.posts.GetByID(ctx, postID, &p); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return appErr.New(appErr.CodeNotFound, "post not found")
		}
		return err
	}
	if p.AuthorID != callerID {
		return appErr.New(appErr.CodeForbidden, "only the author can delete this post")
	}
	if err := s.posts.DeleteCascade(ctx, postID); err != nil {
		return err
	}
	logger.L().Info("post deleted", zap.String("post_id", postID.String()), zap.String("author_id", callerID.String()))
	return nil
}

func (s *postService) AddComment(ctx context.Context, postID, authorID uuid.UUID, content string) (*CommentView, error) {
	content, err := validateContent(content, maxCommentLen)
	if err != nil {
		return nil, err
	}

	var p models.Post
	if err := s.posts.GetByID(ctx, postID, &p); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "post not found")
		}
		return nil, err
	}

	c := &models.Comment{PostID: postID, AuthorID: authorID, Content: content}
	if err := s.comments.CreateWithCount(ctx, c); err != nil {
		return nil, err
	}

	authors, err := s.authorViews(ctx, []uuid.UUID{authorID})
	if err != nil {
		return nil, err
	}
	view := commentView(c, authors)
	return &view, nil
}

func (s *postService) Comments(ctx context.Context, postID uuid.UUID, skip, limit int) ([]CommentView, error) {
	var p models.Post
	if err := s.posts.GetByID(ctx, postID, &p); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "post not found")
		}
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID, skip, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	authors, err := s.authorViews(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]CommentView, 0, len(comments))
	for i := range comments {
		out = append(out, commentView(&comments[i], authors))
	}
	return out, nil
}

func (s *postService) Like(ctx context.Context, postID, userID uuid.UUID) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	return s.posts.Like(ctx, postID, userID)
}

func (s *postService) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	return s.posts.Unlike(ctx, postID, userID)
}

func (s *postService) requirePost(ctx context.Context, postID uuid.UUID) error {
	var p models.Post
	if err := s.posts.GetByID(ctx, postID, &p); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return appErr.New(appErr.CodeNotFound, "post not found")
		}
		return err
	}
	return nil
}

// assemblePosts joins each post with its author's public fields, fetching
// the page's authors with a single query.
func (s *postService) assemblePosts(ctx context.Context, posts []models.Post) ([]PostView, error) {
	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	authors, err := s.authorViews(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]PostView, 0, len(posts))
	for i := range posts {
		out = append(out, postView(&posts[i], authors))
	}
	return out, nil
}

func (s *postService) authorViews(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]AuthorView, error) {
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[uuid.UUID]AuthorView, len(users))
	for i := range users {
		u := users[i]
		title := "Member"
		if u.Title != nil && *u.Title != "" {
			title = *u.Title
		}
		id := u.ID
		m[u.ID] = AuthorView{ID: &id, Name: u.Name, Title: title, AvatarURL: u.AvatarURL}
	}
	return m, nil
}

// missingAuthor is rendered when a referenced author no longer resolves.
var missingAuthor = AuthorView{Name: "Unknown", Title: "Member"}

func postView(p *models.Post, authors map[uuid.UUID]AuthorView) PostView {
	author, ok := authors[p.AuthorID]
	if !ok {
		author = missingAuthor
	}
	return PostView{
		ID:        p.ID,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		Likes:     p.Likes,
		Comments:  p.Comments,
		Author:    author,
	}
}

func commentView(c *models.Comment, authors map[uuid.UUID]AuthorView) CommentView {
	author, ok := authors[c.AuthorID]
	if !ok {
		author = missingAuthor
	}
	return CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Author:    author,
	}
}
