package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgnet/internal/events"
	dErrors "orgnet/pkg/domain-errors"
	"orgnet/pkg/requestcontext"
)

var (
	now      = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	deadline = now.Add(48 * time.Hour)
)

func newTestService() (*Service, *events.Publisher, context.Context) {
	pub := events.NewPublisher(events.NewInMemoryStore())
	svc := NewService(NewInMemoryStore(), pub)
	ctx := requestcontext.WithTime(context.Background(), now)
	return svc, pub, ctx
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	svc, _, ctx := newTestService()

	first, err := svc.Create(ctx, "write report", deadline, "0xassignee", "0xassigner")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "review report", deadline, "0xassignee", "0xassigner")
	require.NoError(t, err)

	assert.EqualValues(t, 1, first.ID)
	assert.EqualValues(t, 2, second.ID)
	assert.Equal(t, StatusPending, first.Status)
	assert.Equal(t, now, first.CreatedAt)
}

func TestCreateValidation(t *testing.T) {
	svc, pub, ctx := newTestService()

	_, err := svc.Create(ctx, "", deadline, "0xassignee", "0xassigner")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))

	_, err = svc.Create(ctx, "write report", deadline, "", "0xassigner")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))

	_, err = svc.Create(ctx, "write report", now.Add(-time.Hour), "0xassignee", "0xassigner")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation), "past deadline must be rejected")

	trail, err := pub.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, trail)
}

func TestUpdateStatusByAssignerAndAssignee(t *testing.T) {
	svc, _, ctx := newTestService()

	created, err := svc.Create(ctx, "write report", deadline, "0xassignee", "0xassigner")
	require.NoError(t, err)

	inProgress, err := svc.UpdateStatus(ctx, created.ID, StatusInProgress, "0xassignee")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, inProgress.Status)

	cancelled, err := svc.UpdateStatus(ctx, created.ID, StatusCancelled, "0xassigner")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// No terminal states: a cancelled task can be revived.
	revived, err := svc.UpdateStatus(ctx, created.ID, StatusPending, "0xassigner")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, revived.Status)
}

func TestUpdateStatusRejectsStrangers(t *testing.T) {
	svc, pub, ctx := newTestService()

	created, err := svc.Create(ctx, "write report", deadline, "0xassignee", "0xassigner")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, StatusCompleted, "0xstranger")
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)

	trail, err := pub.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, trail, 1, "only the create event")
}

func TestUpdateStatusUnknownTask(t *testing.T) {
	svc, _, ctx := newTestService()

	_, err := svc.UpdateStatus(ctx, 0, StatusCompleted, "0xassigner")
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))

	_, err = svc.UpdateStatus(ctx, 5, StatusCompleted, "0xassigner")
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestListByPrincipalCoversBothRoles(t *testing.T) {
	svc, _, ctx := newTestService()

	_, err := svc.Create(ctx, "assigned by me", deadline, "0xother", "0xme")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "assigned to me", deadline, "0xme", "0xboss")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "unrelated", deadline, "0xthem", "0xboss")
	require.NoError(t, err)

	mine, err := svc.ListByPrincipal(ctx, "0xme")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "assigned by me", mine[0].Description)
	assert.Equal(t, "assigned to me", mine[1].Description)
}

func TestSelfAssignedTaskListedOnce(t *testing.T) {
	svc, _, ctx := newTestService()

	_, err := svc.Create(ctx, "solo work", deadline, "0xme", "0xme")
	require.NoError(t, err)

	mine, err := svc.ListByPrincipal(ctx, "0xme")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)

	_, err = ParseStatus("done")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
}
