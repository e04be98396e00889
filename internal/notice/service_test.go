package notice

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

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestService() (*Service, *events.Publisher, context.Context) {
	pub := events.NewPublisher(events.NewInMemoryStore())
	svc := NewService(NewInMemoryStore(), pub)
	ctx := requestcontext.WithTime(context.Background(), now)
	return svc, pub, ctx
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	svc, pub, ctx := newTestService()

	first, err := svc.Create(ctx, CategoryManagers, "all hands", PriorityHigh, "town hall friday", "0xhr")
	require.NoError(t, err)
	second, err := svc.Create(ctx, CategoryAllEmployees, "policy", PriorityLow, "new badge rules", "0xhr")
	require.NoError(t, err)

	assert.EqualValues(t, 1, first.ID)
	assert.EqualValues(t, 2, second.ID)
	assert.Equal(t, now, first.CreatedAt)

	trail, err := pub.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, events.ActionNoticeCreated, trail[0].Action)
}

func TestCreateValidation(t *testing.T) {
	svc, pub, ctx := newTestService()

	_, err := svc.Create(ctx, "board_members", "desc", PriorityLow, "content", "0xhr")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation), "category outside the allowlist must fail")

	_, err = svc.Create(ctx, CategoryManagers, "desc", Priority(4), "content", "0xhr")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))

	_, err = svc.Create(ctx, CategoryManagers, "", PriorityLow, "content", "0xhr")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))

	_, err = svc.Create(ctx, CategoryManagers, "desc", PriorityLow, "", "0xhr")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))

	_, err = svc.Create(ctx, CategoryManagers, "desc", PriorityLow, "content", "")
	assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "rejected creates must not allocate ids")
	trail, err := pub.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, trail)
}

func TestListByCategoryInPostingOrder(t *testing.T) {
	svc, _, ctx := newTestService()

	_, err := svc.Create(ctx, CategoryTechnicalTeam, "deploy freeze", PriorityUrgent, "no deploys until monday", "0xops")
	require.NoError(t, err)
	_, err = svc.Create(ctx, CategoryHRTeam, "reviews", PriorityMedium, "cycle opens", "0xhr")
	require.NoError(t, err)
	_, err = svc.Create(ctx, CategoryTechnicalTeam, "freeze lifted", PriorityHigh, "deploys resume", "0xops")
	require.NoError(t, err)

	tech, err := svc.ListByCategory(ctx, CategoryTechnicalTeam)
	require.NoError(t, err)
	require.Len(t, tech, 2)
	assert.Equal(t, "deploy freeze", tech[0].Description)
	assert.Equal(t, "freeze lifted", tech[1].Description)

	_, err = svc.ListByCategory(ctx, "everyone")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
}

func TestGetUnknownID(t *testing.T) {
	svc, _, ctx := newTestService()

	_, err := svc.Get(ctx, 1)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestParseCategoryIsCaseInsensitive(t *testing.T) {
	c, err := ParseCategory("Managers")
	require.NoError(t, err)
	assert.Equal(t, CategoryManagers, c)

	_, err = ParseCategory("interns")
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
}

func TestPriorityLabels(t *testing.T) {
	assert.Equal(t, "Low", PriorityLow.String())
	assert.Equal(t, "Urgent", PriorityUrgent.String())
	assert.Equal(t, "Unknown", Priority(9).String())
}
