package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/repository"
	"github.com/alexanderramin/mosaic/internal/testutil"
)

func TestTaskService_AddActionItem_FillsDefaults(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewTaskService(env.actions, env.bookmarks, env.profile)
	ctx := context.Background()

	item := &domain.ActionItem{Title: "Draft SOW"}
	require.NoError(t, svc.AddActionItem(ctx, item))
	assert.Equal(t, domain.ActionPending, item.Status)
	assert.Equal(t, domain.PrivacyPrivate, item.PrivacyLevel, "privacy should fall back to the profile default")
	assert.Nil(t, item.CompletedAt)
}

func TestTaskService_UpdateActionItem_CompletionStamping(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewTaskService(env.actions, env.bookmarks, env.profile)
	ctx := context.Background()

	item := testutil.NewTestActionItem("Draft SOW")
	require.NoError(t, svc.AddActionItem(ctx, item))

	before := time.Now().UTC()
	completed, err := svc.UpdateActionItem(ctx, item.ID, UpdateActionItemParams{
		Status: testutil.Ptr(domain.ActionCompleted),
	})
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt, "entering completed should stamp the timestamp")
	assert.False(t, completed.CompletedAt.Before(before.Truncate(time.Second)))

	// Read the stamp back so both sides of the comparison below went
	// through storage precision.
	stored, err := env.actions.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)
	stamp := *stored.CompletedAt

	restamped, err := svc.UpdateActionItem(ctx, item.ID, UpdateActionItemParams{
		Status: testutil.Ptr(domain.ActionCompleted),
		Title:  testutil.Ptr("Draft SOW v2"),
	})
	require.NoError(t, err)
	require.NotNil(t, restamped.CompletedAt)
	assert.Equal(t, stamp, *restamped.CompletedAt, "re-sending completed should keep the original stamp")

	reopened, err := svc.UpdateActionItem(ctx, item.ID, UpdateActionItemParams{
		Status: testutil.Ptr(domain.ActionInProgress),
	})
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt, "leaving completed should clear the timestamp")
}

func TestTaskService_ListActionItems_OverdueDefaultsToNow(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewTaskService(env.actions, env.bookmarks, env.profile)
	ctx := context.Background()

	overdue := testutil.NewTestActionItem("Expired task",
		testutil.WithActionDueDate(time.Now().UTC().Add(-48*time.Hour)))
	require.NoError(t, svc.AddActionItem(ctx, overdue))

	future := testutil.NewTestActionItem("Future task",
		testutil.WithActionDueDate(time.Now().UTC().Add(48*time.Hour)))
	require.NoError(t, svc.AddActionItem(ctx, future))

	doneButOld := testutil.NewTestActionItem("Closed old task",
		testutil.WithActionDueDate(time.Now().UTC().Add(-72*time.Hour)),
		testutil.WithActionStatus(domain.ActionCompleted))
	require.NoError(t, svc.AddActionItem(ctx, doneButOld))

	got, err := svc.ListActionItems(ctx, repository.ActionItemFilter{OverdueOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1, "only open items past their due date count as overdue")
	assert.Equal(t, overdue.ID, got[0].ID)
}

func TestTaskService_ListActionItems_RejectsUnknownFilterValues(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewTaskService(env.actions, env.bookmarks, env.profile)
	ctx := context.Background()

	badStatus := domain.ActionItemStatus("someday")
	_, err := svc.ListActionItems(ctx, repository.ActionItemFilter{Status: &badStatus})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	badType := domain.EntityType("spaceship")
	_, err = svc.ListActionItems(ctx, repository.ActionItemFilter{EntityType: &badType})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestTaskService_DeleteActionItem(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewTaskService(env.actions, env.bookmarks, env.profile)
	ctx := context.Background()

	item := testutil.NewTestActionItem("Draft SOW")
	require.NoError(t, svc.AddActionItem(ctx, item))

	require.NoError(t, svc.DeleteActionItem(ctx, item.ID))
	assert.ErrorIs(t, svc.DeleteActionItem(ctx, item.ID), apperr.ErrNotFound)
}

func TestTaskService_AddBookmark_DefaultsPrivacyFromProfile(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewTaskService(env.actions, env.bookmarks, env.profile)
	ctx := context.Background()

	_, err := env.profile.Update(ctx, UpdateUserParams{
		FullName:       testutil.Ptr("Avery Chen"),
		DefaultPrivacy: testutil.Ptr(domain.PrivacyPublic),
	})
	require.NoError(t, err)

	b := &domain.Bookmark{Title: "Design system", URL: "https://design.example.test"}
	require.NoError(t, svc.AddBookmark(ctx, b))
	assert.Equal(t, domain.PrivacyPublic, b.PrivacyLevel)
}

func TestTaskService_UpdateBookmark_PartialEdit(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewTaskService(env.actions, env.bookmarks, env.profile)
	ctx := context.Background()

	proj := env.seedProject(t, "Website Redesign")
	b := testutil.NewTestBookmark("Staging", "https://staging.example.test",
		testutil.WithBookmarkEntity(domain.EntityProject, proj.ID))
	require.NoError(t, svc.AddBookmark(ctx, b))

	updated, err := svc.UpdateBookmark(ctx, b.ID, UpdateBookmarkParams{
		URL:         testutil.Ptr("https://staging2.example.test"),
		Description: testutil.Ptr("Second staging environment"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Staging", updated.Title)
	assert.Equal(t, "https://staging2.example.test", updated.URL)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Second staging environment", *updated.Description)
	require.NotNil(t, updated.EntityID)
	assert.Equal(t, proj.ID, *updated.EntityID)
}

func TestTaskService_ListBookmarks_Filters(t *testing.T) {
	env := newSvcEnv(t)
	svc := NewTaskService(env.actions, env.bookmarks, env.profile)
	ctx := context.Background()

	proj := env.seedProject(t, "Website Redesign")
	require.NoError(t, svc.AddBookmark(ctx, testutil.NewTestBookmark("Staging", "https://staging.example.test",
		testutil.WithBookmarkEntity(domain.EntityProject, proj.ID))))
	require.NoError(t, svc.AddBookmark(ctx, testutil.NewTestBookmark("Design system", "https://design.example.test")))

	entityType := domain.EntityProject
	got, err := svc.ListBookmarks(ctx, repository.BookmarkFilter{EntityType: &entityType, EntityID: &proj.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Staging", got[0].Title)

	badType := domain.EntityType("spaceship")
	_, err = svc.ListBookmarks(ctx, repository.BookmarkFilter{EntityType: &badType})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}
