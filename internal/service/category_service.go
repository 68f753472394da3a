package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wordbank/internal/model"
	"wordbank/internal/repository"
)

// ErrInvalidInput indicates a create request with a bad shape or range.
var ErrInvalidInput = errors.New("invalid category input")

// SourceUser tags records submitted directly by callers.
const SourceUser = "user"

// Read limit bounds for listing categories.
const (
	MinLimit     = 1
	MaxLimit     = 1000
	DefaultLimit = 100
)

// ClampLimit forces a requested limit into [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// CategoryService is the gateway the transport layer talks to: reads ensure
// freshness first, creates go straight to the store.
type CategoryService struct {
	repo    *repository.CategoryRepository
	refresh *RefreshService
}

func NewCategoryService(repo *repository.CategoryRepository, refresh *RefreshService) *CategoryService {
	return &CategoryService{repo: repo, refresh: refresh}
}

// List returns up to limit records, newest first, after running the refresh
// controller so the collection never goes stale on the read path.
func (s *CategoryService) List(ctx context.Context, limit int) ([]model.Category, error) {
	limit = ClampLimit(limit)
	if err := s.refresh.EnsureFresh(ctx); err != nil {
		return nil, err
	}
	return s.repo.FindRecent(ctx, limit)
}

// Create validates and inserts one user-supplied category, surfacing
// repository.ErrConflict when the name is already taken.
func (s *CategoryService) Create(ctx context.Context, name string, words []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: categoryName is required", ErrInvalidInput)
	}
	if len(words) < model.MinWords || len(words) > model.MaxWords {
		return "", fmt.Errorf("%w: words must hold between %d and %d entries",
			ErrInvalidInput, model.MinWords, model.MaxWords)
	}
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			return "", fmt.Errorf("%w: words must be non-empty strings", ErrInvalidInput)
		}
	}
	return s.repo.InsertOne(ctx, model.Draft{Name: name, Words: words, Source: SourceUser})
}
