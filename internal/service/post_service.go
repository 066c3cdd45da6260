package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"microblog/internal/apperrors"
	"microblog/internal/cache"
	"microblog/internal/model"
	"microblog/internal/repository"
)

const postCacheTTL = 5 * time.Minute

// PostService exposes post CRUD with author-only mutation.
type PostService interface {
	Create(ctx context.Context, author *model.User, title, content string) (*model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	Update(ctx context.Context, actor *model.User, id uint, title, content *string) (*model.Post, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
}

type postService struct {
	repo  repository.PostRepository
	cache *cache.Client
}

// NewPostService builds a PostService with repository and cache.
func NewPostService(repo repository.PostRepository, cache *cache.Client) PostService {
	return &postService{repo: repo, cache: cache}
}

func (s *postService) cacheKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

func (s *postService) Create(ctx context.Context, author *model.User, title, content string) (*model.Post, error) {
	post := &model.Post{
		Title:    title,
		Content:  content,
		AuthorID: author.ID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Author = *author
	return post, nil
}

// Get reads through the cache. Ownership is irrelevant here; posts are public.
func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if payload, err := json.Marshal(post); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, postCacheTTL)
	}
	return post, nil
}

func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	return s.repo.ListNewestFirst(ctx)
}

// Update applies a partial update: nil fields keep their prior values.
// Only the post's author may update it.
func (s *postService) Update(ctx context.Context, actor *model.User, id uint, title, content *string) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if post.AuthorID != actor.ID {
		return nil, apperrors.ErrNotPostAuthor
	}
	if title == nil && content == nil {
		return nil, apperrors.ErrNoUpdateData
	}

	if title != nil {
		post.Title = *title
	}
	if content != nil {
		post.Content = *content
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return post, nil
}

// Delete removes a post. Only the post's author may delete it.
func (s *postService) Delete(ctx context.Context, actor *model.User, id uint) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("find post: %w", err)
	}

	if post.AuthorID != actor.ID {
		return apperrors.ErrNotPostAuthor
	}

	if err := s.repo.Delete(ctx, post); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
