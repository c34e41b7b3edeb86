package service

import (
	"context"

	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/repository"
)

type noteService struct {
	notes   repository.NoteRepo
	profile UserService
}

func NewNoteService(notes repository.NoteRepo, profile UserService) NoteService {
	return &noteService{notes: notes, profile: profile}
}

func (s *noteService) Add(ctx context.Context, n *domain.Note) error {
	if n.PrivacyLevel == "" {
		user, err := s.profile.Get(ctx)
		if err != nil {
			return err
		}
		n.PrivacyLevel = user.DefaultPrivacy
	}
	n.Tags = domain.NormalizeTags(n.Tags)
	if err := n.Validate(); err != nil {
		return err
	}
	return s.notes.Create(ctx, n)
}

func (s *noteService) Update(ctx context.Context, id int64, p UpdateNoteParams) (*domain.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(&note.Text, p.Text)
	apply(&note.PrivacyLevel, p.PrivacyLevel)
	applyPtr(&note.EntityType, p.EntityType)
	applyPtr(&note.EntityID, p.EntityID)
	applyTags(&note.Tags, p.Tags)

	if err := note.Validate(); err != nil {
		return nil, err
	}
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}
