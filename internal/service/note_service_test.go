package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/testutil"
)

func TestNoteService_Add_DefaultsPrivacyFromProfile(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewNoteService(env.notes, env.profile)
	ctx := context.Background()

	_, err := env.profile.Update(ctx, UpdateUserParams{
		FullName:       testutil.Ptr("Avery Chen"),
		DefaultPrivacy: testutil.Ptr(domain.PrivacyInternal),
	})
	require.NoError(t, err)

	note := &domain.Note{Text: "Prefers async updates"}
	require.NoError(t, svc.Add(ctx, note))
	assert.Equal(t, domain.PrivacyInternal, note.PrivacyLevel)

	explicit := &domain.Note{Text: "Salary negotiation notes", PrivacyLevel: domain.PrivacyPrivate}
	require.NoError(t, svc.Add(ctx, explicit))
	assert.Equal(t, domain.PrivacyPrivate, explicit.PrivacyLevel, "explicit privacy should not be overridden")
}

func TestNoteService_Add_HalfEntityRef(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewNoteService(env.notes, env.profile)

	entityType := domain.EntityProject
	note := &domain.Note{Text: "Dangling ref", EntityType: &entityType}
	err := svc.Add(context.Background(), note)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument, "entity_type without entity_id should be rejected")
}

func TestNoteService_Update_MovesEntityRef(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewNoteService(env.notes, env.profile)
	ctx := context.Background()

	proj := env.seedProject(t, "Website Redesign")
	person := env.seedPerson(t, "Alice Koch")

	note := testutil.NewTestNote("Kickoff follow-ups",
		testutil.WithNoteEntity(domain.EntityProject, proj.ID),
		testutil.WithNoteTags("kickoff"))
	require.NoError(t, svc.Add(ctx, note))

	entityType := domain.EntityPerson
	updated, err := svc.Update(ctx, note.ID, UpdateNoteParams{
		EntityType: &entityType,
		EntityID:   &person.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.EntityType)
	assert.Equal(t, domain.EntityPerson, *updated.EntityType)
	require.NotNil(t, updated.EntityID)
	assert.Equal(t, person.ID, *updated.EntityID)
	assert.Equal(t, "Kickoff follow-ups", updated.Text, "omitted text should stay untouched")
	assert.Equal(t, []string{"kickoff"}, updated.Tags)
}

func TestNoteService_Update_NotFound(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewNoteService(env.notes, env.profile)

	_, err := svc.Update(context.Background(), 999, UpdateNoteParams{Text: testutil.Ptr("x")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
