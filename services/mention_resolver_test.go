package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
)

func resolverFixture(t *testing.T) (*MentionResolverService, *fakeServerRepo, *models.Channel) {
	t.Helper()

	users := newFakeUserRepo(
		&models.User{ID: "u-alice", Username: "alice"},
		&models.User{ID: "u-bob", Username: "bob"},
		&models.User{ID: "u-carol", Username: "carol"},
		&models.User{ID: "u-stranger", Username: "stranger"},
	)
	servers := newFakeServerRepo()
	servers.members["srv-1"] = []string{"u-alice", "u-bob", "u-carol"}

	resolver := NewMentionResolverService(users, servers)
	t.Cleanup(resolver.Close)

	return resolver, servers, &models.Channel{ID: "chan-1", ServerID: "srv-1"}
}

func TestResolveDirectMention(t *testing.T) {
	resolver, _, channel := resolverFixture(t)

	got, err := resolver.Resolve(context.Background(), channel, "u-alice", "hey @bob look at this")
	require.NoError(t, err)
	assert.Equal(t, []string{"u-bob"}, got)
}

func TestResolveNoMentionsReturnsEmpty(t *testing.T) {
	resolver, _, channel := resolverFixture(t)

	got, err := resolver.Resolve(context.Background(), channel, "u-alice", "no mentions here")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolveEveryoneExcludesAuthor(t *testing.T) {
	resolver, _, channel := resolverFixture(t)

	got, err := resolver.Resolve(context.Background(), channel, "u-alice", "@everyone meeting in 5")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u-bob", "u-carol"}, got)
	assert.NotContains(t, got, "u-alice", "author must never receive their own broadcast")
}

func TestResolveUnknownUsernameIsDropped(t *testing.T) {
	resolver, _, channel := resolverFixture(t)

	// Bilinmeyen isim mesajı BLOKLAMAZ — token düz metin muamelesi görür.
	got, err := resolver.Resolve(context.Background(), channel, "u-alice", "cc @ghost and @bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"u-bob"}, got)
}

func TestResolveNonMemberIsDropped(t *testing.T) {
	resolver, _, channel := resolverFixture(t)

	// "stranger" dizinde var ama sunucu üyesi değil — alıcı olamaz.
	got, err := resolver.Resolve(context.Background(), channel, "u-alice", "hi @stranger")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveDeduplicatesAcrossTokens(t *testing.T) {
	resolver, _, channel := resolverFixture(t)

	// @bob hem doğrudan hem @everyone içinde — tek kayıt.
	got, err := resolver.Resolve(context.Background(), channel, "u-alice", "@bob @everyone @bob")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u-bob", "u-carol"}, got)
}

func TestResolveIsCaseSensitive(t *testing.T) {
	resolver, _, channel := resolverFixture(t)

	got, err := resolver.Resolve(context.Background(), channel, "u-alice", "hey @Bob")
	require.NoError(t, err)
	assert.Empty(t, got, "username matching is exact, @Bob does not match bob")
}

func TestResolveMembershipFailureIsDependencyError(t *testing.T) {
	resolver, servers, channel := resolverFixture(t)
	servers.membersErr = errors.New("connection refused")

	_, err := resolver.Resolve(context.Background(), channel, "u-alice", "hey @bob")
	require.Error(t, err)
	assert.ErrorIs(t, err, pkg.ErrDependencyUnavailable)
}
