package note

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/notes-api-nosql/internal/domain"
	"github.com/notes-api-nosql/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldTitle     = "title"
	fieldContent   = "content"
	fieldUpdatedAt = "updated_at"
)

type Service interface {
	List(ctx context.Context, userID string) ([]domain.Note, error)
	Create(ctx context.Context, userID string, req domain.NoteRequest) (*domain.Note, error)
	Get(ctx context.Context, userID, noteID string) (*domain.Note, error)
	Update(ctx context.Context, userID, noteID string, req domain.NoteRequest) (*domain.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
}

type noteStore interface {
	Put(ctx context.Context, n *domain.Note) error
	Get(ctx context.Context, noteID string) (*domain.Note, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Note, error)
	Update(ctx context.Context, noteID string, updates map[string]interface{}) error
	Delete(ctx context.Context, noteID string) error
}

type service struct {
	repo noteStore
}

func NewService(repo noteStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Note, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Create(ctx context.Context, userID string, req domain.NoteRequest) (*domain.Note, error) {
	now := time.Now().UTC()
	n := &domain.Note{
		NoteID:    id.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(req.Title),
		Content:   strings.TrimSpace(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Get(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	return s.owned(ctx, userID, noteID)
}

func (s *service) Update(ctx context.Context, userID, noteID string, req domain.NoteRequest) (*domain.Note, error) {
	n, err := s.owned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	n.Title = strings.TrimSpace(req.Title)
	n.Content = strings.TrimSpace(req.Content)
	n.UpdatedAt = time.Now().UTC()
	err = s.repo.Update(ctx, noteID, map[string]interface{}{
		fieldTitle:     n.Title,
		fieldContent:   n.Content,
		fieldUpdatedAt: n.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Delete(ctx context.Context, userID, noteID string) error {
	if _, err := s.owned(ctx, userID, noteID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, noteID)
}

// owned fetches a note and hides its existence from non-owners: a foreign
// note looks exactly like a missing one.
func (s *service) owned(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	n, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, fmt.Errorf("note not found: %w", domain.ErrNotFound)
	}
	return n, nil
}
