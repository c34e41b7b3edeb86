package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/repository"
)

type taskService struct {
	actions   repository.ActionItemRepo
	bookmarks repository.BookmarkRepo
	profile   UserService
}

func NewTaskService(
	actions repository.ActionItemRepo,
	bookmarks repository.BookmarkRepo,
	profile UserService,
) TaskService {
	return &taskService{actions: actions, bookmarks: bookmarks, profile: profile}
}

func (s *taskService) AddActionItem(ctx context.Context, a *domain.ActionItem) error {
	if a.Status == "" {
		a.Status = domain.ActionPending
	}
	if a.PrivacyLevel == "" {
		user, err := s.profile.Get(ctx)
		if err != nil {
			return err
		}
		a.PrivacyLevel = user.DefaultPrivacy
	}
	a.Tags = domain.NormalizeTags(a.Tags)
	if err := a.Validate(); err != nil {
		return err
	}
	return s.actions.Create(ctx, a)
}

// UpdateActionItem applies a partial edit. The completion timestamp
// follows the status: entering completed stamps it, leaving completed
// clears it.
func (s *taskService) UpdateActionItem(ctx context.Context, id int64, p UpdateActionItemParams) (*domain.ActionItem, error) {
	item, err := s.actions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prior := item.Status
	apply(&item.Title, p.Title)
	applyPtr(&item.Description, p.Description)
	apply(&item.Status, p.Status)
	applyPtr(&item.DueDate, p.DueDate)
	applyPtr(&item.EntityType, p.EntityType)
	applyPtr(&item.EntityID, p.EntityID)
	apply(&item.PrivacyLevel, p.PrivacyLevel)
	applyTags(&item.Tags, p.Tags)

	if item.Status != prior {
		if item.Status == domain.ActionCompleted {
			now := time.Now().UTC()
			item.CompletedAt = &now
		} else if prior == domain.ActionCompleted {
			item.CompletedAt = nil
		}
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.actions.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *taskService) ListActionItems(ctx context.Context, f repository.ActionItemFilter) ([]*domain.ActionItem, error) {
	if f.Status != nil && !domain.ValidActionItemStatuses[string(*f.Status)] {
		return nil, fmt.Errorf("action item status %q must be one of pending, in_progress, completed, cancelled: %w",
			*f.Status, apperr.ErrInvalidArgument)
	}
	if f.EntityType != nil && !domain.ValidEntityTypes[string(*f.EntityType)] {
		return nil, fmt.Errorf("unknown entity_type %q: %w", *f.EntityType, apperr.ErrInvalidArgument)
	}
	if f.OverdueOnly && f.Now.IsZero() {
		f.Now = time.Now().UTC()
	}
	return s.actions.List(ctx, f)
}

func (s *taskService) DeleteActionItem(ctx context.Context, id int64) error {
	return s.actions.Delete(ctx, id)
}

func (s *taskService) AddBookmark(ctx context.Context, b *domain.Bookmark) error {
	if b.PrivacyLevel == "" {
		user, err := s.profile.Get(ctx)
		if err != nil {
			return err
		}
		b.PrivacyLevel = user.DefaultPrivacy
	}
	b.Tags = domain.NormalizeTags(b.Tags)
	if err := b.Validate(); err != nil {
		return err
	}
	return s.bookmarks.Create(ctx, b)
}

func (s *taskService) UpdateBookmark(ctx context.Context, id int64, p UpdateBookmarkParams) (*domain.Bookmark, error) {
	bookmark, err := s.bookmarks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(&bookmark.Title, p.Title)
	apply(&bookmark.URL, p.URL)
	applyPtr(&bookmark.Description, p.Description)
	applyPtr(&bookmark.EntityType, p.EntityType)
	applyPtr(&bookmark.EntityID, p.EntityID)
	apply(&bookmark.PrivacyLevel, p.PrivacyLevel)
	applyTags(&bookmark.Tags, p.Tags)

	if err := bookmark.Validate(); err != nil {
		return nil, err
	}
	if err := s.bookmarks.Update(ctx, bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *taskService) ListBookmarks(ctx context.Context, f repository.BookmarkFilter) ([]*domain.Bookmark, error) {
	if f.EntityType != nil && !domain.ValidEntityTypes[string(*f.EntityType)] {
		return nil, fmt.Errorf("unknown entity_type %q: %w", *f.EntityType, apperr.ErrInvalidArgument)
	}
	return s.bookmarks.List(ctx, f)
}

func (s *taskService) DeleteBookmark(ctx context.Context, id int64) error {
	return s.bookmarks.Delete(ctx, id)
}
