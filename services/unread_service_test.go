package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/ws"
)

func TestBumpRetriesTransientFailure(t *testing.T) {
	repo := newFakeUnreadRepo()
	repo.failBumps = 2 // ilk iki deneme patlar, üçüncü geçer
	publisher := &fakePublisher{}
	svc := NewUnreadService(repo, publisher)

	err := svc.Bump(context.Background(), "u-1", "chan-1", true)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.bumpCalls)

	c, _ := repo.Get(context.Background(), "u-1", "chan-1")
	assert.Equal(t, 1, c.Count, "retries must not double-apply the increment")

	updates := publisher.withOp(ws.OpUnreadUpdate)
	require.Len(t, updates, 1)
	state := updates[0].Data.(models.UnreadState)
	assert.Equal(t, 1, state.Count)
	assert.True(t, state.HasMention)
}

func TestBumpExhaustedRetriesReturnsLedgerError(t *testing.T) {
	repo := newFakeUnreadRepo()
	repo.failBumps = 1000
	publisher := &fakePublisher{}
	svc := NewUnreadService(repo, publisher)

	err := svc.Bump(context.Background(), "u-1", "chan-1", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkg.ErrLedgerUnavailable)
	assert.Equal(t, bumpRetries, repo.bumpCalls, "retry count is bounded")
	assert.Empty(t, publisher.events, "no state is published on failure")
}

func TestMarkReadPublishesZeroState(t *testing.T) {
	repo := newFakeUnreadRepo()
	publisher := &fakePublisher{}
	svc := NewUnreadService(repo, publisher)
	ctx := context.Background()

	require.NoError(t, svc.Bump(ctx, "u-1", "chan-1", true))
	require.NoError(t, svc.MarkRead(ctx, "u-1", "chan-1"))

	updates := publisher.withOp(ws.OpUnreadUpdate)
	require.Len(t, updates, 2)

	// Son yayın sıfırlanmış durumu taşır — tüm cihazlarda badge söner.
	last := updates[1].Data.(models.UnreadState)
	assert.Equal(t, "u-1", updates[1].TargetID)
	assert.Equal(t, 0, last.Count)
	assert.False(t, last.HasMention)
}

func TestListForUser(t *testing.T) {
	repo := newFakeUnreadRepo()
	svc := NewUnreadService(repo, &fakePublisher{})
	ctx := context.Background()

	require.NoError(t, svc.Bump(ctx, "u-1", "chan-1", true))
	require.NoError(t, svc.Bump(ctx, "u-1", "chan-1", false))
	require.NoError(t, svc.Bump(ctx, "u-1", "chan-2", false))
	require.NoError(t, svc.MarkRead(ctx, "u-1", "chan-2"))

	states, err := svc.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, states, 1, "cleared channels are not listed")
	assert.Equal(t, "chan-1", states[0].ChannelID)
	assert.Equal(t, 2, states[0].Count)
	assert.True(t, states[0].HasMention)
}
