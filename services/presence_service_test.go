package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/ws"
)

// Testlerde kısa TTL kullanılır; expire bekleyişleri için cömert pay
// bırakılır ki yavaş CI'da test titremesin.
const testTypingTTL = 50 * time.Millisecond

func waitForOp(t *testing.T, p *fakePublisher, op string, count int) []publishedEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if events := p.withOp(op); len(events) >= count {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d %q events", count, op)
	return nil
}

func TestTypingStartsAndExpires(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewPresenceService(publisher, testTypingTTL)

	svc.TrackTyping("chan-1", "u-1", "alice", true)

	starts := publisher.withOp(ws.OpTypingStart)
	require.Len(t, starts, 1)
	assert.Equal(t, "chan-1", starts[0].TargetID)
	assert.Equal(t, []string{"u-1"}, svc.TypingUsers("chan-1"))
	assert.Empty(t, svc.TypingUsers("chan-2"))

	// Explicit stop gelmese de TTL sonunda gösterge düşer.
	stops := waitForOp(t, publisher, ws.OpTypingStop, 1)
	event := stops[0].Data.(typingEvent)
	assert.Equal(t, "u-1", event.UserID)
	assert.Empty(t, svc.TypingUsers("chan-1"))
}

func TestTypingRepeatSignalReArmsWithoutRebroadcast(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewPresenceService(publisher, testTypingTTL)

	svc.TrackTyping("chan-1", "u-1", "alice", true)
	time.Sleep(testTypingTTL / 2)
	svc.TrackTyping("chan-1", "u-1", "alice", true) // devam sinyali

	// Yayın tekrarlanmadı.
	assert.Len(t, publisher.withOp(ws.OpTypingStart), 1)

	// İlk TTL dolmuş olmalıydı ama timer yeniden kurulduğu için henüz
	// stop YOK; ikinci TTL dolunca gelir.
	waitForOp(t, publisher, ws.OpTypingStop, 1)
}

func TestTypingExplicitStop(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewPresenceService(publisher, time.Minute) // TTL devreye girmesin

	svc.TrackTyping("chan-1", "u-1", "alice", true)
	svc.TrackTyping("chan-1", "u-1", "alice", false)

	stops := publisher.withOp(ws.OpTypingStop)
	require.Len(t, stops, 1)

	// Stop sonrası tekrar stop no-op — çift yayın yok.
	svc.TrackTyping("chan-1", "u-1", "alice", false)
	assert.Len(t, publisher.withOp(ws.OpTypingStop), 1)
}

func TestSetStatusBroadcastsVisibleStatus(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewPresenceService(publisher, time.Minute)

	svc.SetStatus("u-1", models.UserStatusBusy)
	assert.Equal(t, models.UserStatusBusy, svc.Status("u-1"))

	events := publisher.withOp(ws.OpPresenceUpdate)
	require.Len(t, events, 1)
	assert.Equal(t, models.UserStatusBusy, events[0].Data.(presenceEvent).Status)
}

func TestInvisibleLooksOffline(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewPresenceService(publisher, time.Minute)

	svc.SetStatus("u-1", models.UserStatusInvisible)

	// Diğerlerine offline görünür — gerçek durum yayına düşmez.
	events := publisher.withOp(ws.OpPresenceUpdate)
	require.Len(t, events, 1)
	assert.Equal(t, models.UserStatusOffline, events[0].Data.(presenceEvent).Status)
	assert.Equal(t, models.UserStatusOffline, svc.Status("u-1"))
	assert.NotContains(t, svc.Snapshot(), "u-1")
}

func TestInvalidStatusIsIgnored(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewPresenceService(publisher, time.Minute)

	svc.SetStatus("u-1", models.UserStatus("haunted"))
	svc.SetStatus("u-1", models.UserStatusOffline) // client offline set edemez

	assert.Empty(t, publisher.events)
	assert.Equal(t, models.UserStatusOffline, svc.Status("u-1"))
}

func TestDisconnectClearsStatusAndTyping(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewPresenceService(publisher, time.Minute)

	svc.HandleConnect("u-1")
	svc.TrackTyping("chan-1", "u-1", "alice", true)
	svc.HandleDisconnect("u-1")

	// Typing göstergesi anında düştü, offline yayınlandı.
	require.Len(t, publisher.withOp(ws.OpTypingStop), 1)
	assert.Equal(t, models.UserStatusOffline, svc.Status("u-1"))

	updates := publisher.withOp(ws.OpPresenceUpdate)
	last := updates[len(updates)-1].Data.(presenceEvent)
	assert.Equal(t, models.UserStatusOffline, last.Status)
}
