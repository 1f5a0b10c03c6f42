package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/ws"
)

type messageFixture struct {
	svc        *MessageService
	messages   *fakeMessageRepo
	mentions   *fakeMentionRepo
	servers    *fakeServerRepo
	unreadRepo *fakeUnreadRepo
	publisher  *fakePublisher
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()

	users := newFakeUserRepo(
		&models.User{ID: "u-alice", Username: "alice"},
		&models.User{ID: "u-bob", Username: "bob"},
		&models.User{ID: "u-carol", Username: "carol"},
	)
	servers := newFakeServerRepo()
	servers.members["srv-1"] = []string{"u-alice", "u-bob", "u-carol"}
	channels := newFakeChannelRepo(&models.Channel{ID: "chan-1", ServerID: "srv-1"})

	resolver := NewMentionResolverService(users, servers)
	t.Cleanup(resolver.Close)

	messages := &fakeMessageRepo{}
	mentions := &fakeMentionRepo{}
	unreadRepo := newFakeUnreadRepo()
	publisher := &fakePublisher{}
	unread := NewUnreadService(unreadRepo, publisher)

	return &messageFixture{
		svc:        NewMessageService(messages, mentions, channels, servers, resolver, unread, publisher),
		messages:   messages,
		mentions:   mentions,
		servers:    servers,
		unreadRepo: unreadRepo,
		publisher:  publisher,
	}
}

func TestIngestEmptyContentHasNoSideEffects(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.svc.Ingest(context.Background(), "chan-1", "u-alice", &models.CreateMessageRequest{Content: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	assert.Empty(t, f.messages.created, "rejected message must not be persisted")
	assert.Empty(t, f.mentions.saved)
	assert.Empty(t, f.publisher.events)
}

func TestIngestUnknownChannel(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.svc.Ingest(context.Background(), "chan-missing", "u-alice", &models.CreateMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestIngestNonMemberIsForbidden(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.svc.Ingest(context.Background(), "chan-1", "u-outsider", &models.CreateMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, pkg.ErrForbidden)
	assert.Empty(t, f.messages.created)
}

func TestIngestWithMentionBumpsAndPublishes(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	msg, err := f.svc.Ingest(ctx, "chan-1", "u-alice", &models.CreateMessageRequest{Content: "hey @bob"})
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, []string{"u-bob"}, msg.Mentions)

	// Mention kaydı yazıldı.
	require.Len(t, f.mentions.saved, 1)
	assert.Equal(t, msg.ID, f.mentions.saved[0].MessageID)
	assert.Equal(t, "u-bob", f.mentions.saved[0].UserID)

	// Sadece mention'lanan alıcının sayacı arttı.
	bob, err := f.unreadRepo.Get(ctx, "u-bob", "chan-1")
	require.NoError(t, err)
	assert.Equal(t, 1, bob.Count)
	assert.True(t, bob.HasMention)

	carol, err := f.unreadRepo.Get(ctx, "u-carol", "chan-1")
	require.NoError(t, err)
	assert.Equal(t, 0, carol.Count, "non-mentioned members do not get a bump")

	// Kanal yayını + alıcıya unread_update.
	created := f.publisher.withOp(ws.OpMessageCreate)
	require.Len(t, created, 1)
	assert.Equal(t, "chan-1", created[0].TargetID)

	updates := f.publisher.withOp(ws.OpUnreadUpdate)
	require.Len(t, updates, 1)
	assert.Equal(t, "u-bob", updates[0].TargetID)
}

func TestIngestPlainMessageSkipsLedger(t *testing.T) {
	f := newMessageFixture(t)

	msg, err := f.svc.Ingest(context.Background(), "chan-1", "u-alice", &models.CreateMessageRequest{Content: "no mentions"})
	require.NoError(t, err)
	assert.Empty(t, msg.Mentions)
	assert.Empty(t, f.mentions.saved)
	assert.Empty(t, f.publisher.withOp(ws.OpUnreadUpdate))
	require.Len(t, f.publisher.withOp(ws.OpMessageCreate), 1)
}

func TestIngestResolverFailureIsPartial(t *testing.T) {
	f := newMessageFixture(t)
	f.servers.membersErr = errors.New("connection refused")

	msg, err := f.svc.Ingest(context.Background(), "chan-1", "u-alice", &models.CreateMessageRequest{Content: "hey @bob"})

	// Mesaj KALIR, hata da görünür olur — kısmi ingest.
	require.Error(t, err)
	assert.ErrorIs(t, err, pkg.ErrDependencyUnavailable)
	require.NotNil(t, msg)
	require.Len(t, f.messages.created, 1)

	// Mention kaydı ve sayaç artışı uygulanmadı.
	assert.Empty(t, f.mentions.saved)
	assert.Empty(t, f.publisher.withOp(ws.OpUnreadUpdate))

	// Mesaj yine de yayınlandı — alıcılar mesajı görür.
	require.Len(t, f.publisher.withOp(ws.OpMessageCreate), 1)
}

func TestIngestLedgerExhaustionSurfacesError(t *testing.T) {
	f := newMessageFixture(t)
	f.unreadRepo.failBumps = 1000 // tüm denemeler patlar

	msg, err := f.svc.Ingest(context.Background(), "chan-1", "u-alice", &models.CreateMessageRequest{Content: "hey @bob"})

	require.Error(t, err)
	assert.ErrorIs(t, err, pkg.ErrLedgerUnavailable)
	require.NotNil(t, msg, "message itself is persisted")
	require.Len(t, f.publisher.withOp(ws.OpMessageCreate), 1)
}

func TestListFillsMentions(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	msg, err := f.svc.Ingest(ctx, "chan-1", "u-alice", &models.CreateMessageRequest{Content: "hey @bob"})
	require.NoError(t, err)

	page, err := f.svc.List(ctx, "chan-1", "u-bob", "", 50)
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	assert.Equal(t, msg.ID, page.Messages[0].ID)
	assert.Equal(t, []string{"u-bob"}, page.Messages[0].Mentions)
}

func TestListNonMemberIsForbidden(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.svc.List(context.Background(), "chan-1", "u-outsider", "", 50)
	assert.ErrorIs(t, err, pkg.ErrForbidden)
}
