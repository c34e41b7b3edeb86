package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/repository"
)

// ProfileDefaults seeds the synthesized profile while no user row has
// been persisted: the configured timezone, week boundary, and default
// privacy level.
type ProfileDefaults struct {
	Timezone       string
	WeekBoundary   domain.WeekBoundary
	DefaultPrivacy domain.PrivacyLevel
}

type userService struct {
	users    repository.UserRepo
	defaults ProfileDefaults
}

func NewUserService(users repository.UserRepo, defaults ProfileDefaults) UserService {
	if defaults.Timezone == "" {
		defaults.Timezone = "UTC"
	}
	if defaults.WeekBoundary == "" {
		defaults.WeekBoundary = domain.WeekMonFri
	}
	if defaults.DefaultPrivacy == "" {
		defaults.DefaultPrivacy = domain.PrivacyPrivate
	}
	return &userService{users: users, defaults: defaults}
}

func (s *userService) Get(ctx context.Context) (*domain.User, error) {
	u, err := s.users.Get(ctx)
	if errors.Is(err, apperr.ErrNotFound) {
		return s.defaultUser(), nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, p UpdateUserParams) (*domain.User, error) {
	u, err := s.users.Get(ctx)
	if errors.Is(err, apperr.ErrNotFound) {
		if p.FullName == nil || *p.FullName == "" {
			return nil, fmt.Errorf("full_name is required to create the user profile: %w", apperr.ErrInvalidArgument)
		}
		u = s.defaultUser()
	} else if err != nil {
		return nil, err
	}

	apply(&u.FullName, p.FullName)
	applyPtr(&u.Email, p.Email)
	applyPtr(&u.Phone, p.Phone)
	apply(&u.Timezone, p.Timezone)
	apply(&u.WeekBoundary, p.WeekBoundary)
	apply(&u.DefaultPrivacy, p.DefaultPrivacy)
	applyPtr(&u.WorkingHoursStart, p.WorkingHoursStart)
	applyPtr(&u.WorkingHoursEnd, p.WorkingHoursEnd)
	applyPtr(&u.CommunicationStyle, p.CommunicationStyle)
	applyPtr(&u.WorkApproach, p.WorkApproach)
	now := time.Now().UTC()
	u.ProfileLastUpdated = &now

	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Upsert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) defaultUser() *domain.User {
	return &domain.User{
		Timezone:       s.defaults.Timezone,
		WeekBoundary:   s.defaults.WeekBoundary,
		DefaultPrivacy: s.defaults.DefaultPrivacy,
	}
}
