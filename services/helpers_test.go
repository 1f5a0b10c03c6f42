package services

import (
	"context"
	"errors"
	"sync"

	"github.com/akinalp/velo/database"
	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
)

// Bu dosya, service testlerinin paylaştığı in-memory fake'leri içerir.
// Repository interface'leri küçük olduğu için mock kütüphanesi yerine
// elle yazılmış fake'ler kullanılır — davranış testte açıkça görünür.

// publishedEvent, fakePublisher'ın kaydettiği tek bir yayın.
type publishedEvent struct {
	Target   string // "channel" | "user" | "all"
	TargetID string
	Op       string
	Data     any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) BroadcastToChannel(channelID, op string, data any) {
	p.record(publishedEvent{Target: "channel", TargetID: channelID, Op: op, Data: data})
}

func (p *fakePublisher) BroadcastToUser(userID, op string, data any) {
	p.record(publishedEvent{Target: "user", TargetID: userID, Op: op, Data: data})
}

func (p *fakePublisher) BroadcastToAll(op string, data any) {
	p.record(publishedEvent{Target: "all", Op: op, Data: data})
}

func (p *fakePublisher) record(e publishedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

// withOp, belirli op'taki yayınları filtreler.
func (p *fakePublisher) withOp(op string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.Op == op {
			out = append(out, e)
		}
	}
	return out
}

// --- fakeUserRepo ---

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	byName  map[string]*models.User
	failAll error // set edilirse her lookup bu error ile döner
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[string]*models.User{}, byName: map[string]*models.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
		r.byName[u.Username] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[user.ID] = user
	r.byName[user.Username] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	if u, ok := r.byName[username]; ok {
		return u, nil
	}
	return nil, pkg.ErrNotFound
}

// --- fakeServerRepo ---

type fakeServerRepo struct {
	servers    map[string]*models.Server
	members    map[string][]string // server ID → üye ID'leri
	membersErr error               // set edilirse GetMemberIDs/IsMember patlar
}

func newFakeServerRepo() *fakeServerRepo {
	return &fakeServerRepo{servers: map[string]*models.Server{}, members: map[string][]string{}}
}

func (r *fakeServerRepo) Create(_ context.Context, _ database.Querier, server *models.Server) error {
	r.servers[server.ID] = server
	return nil
}

func (r *fakeServerRepo) GetByID(_ context.Context, id string) (*models.Server, error) {
	if s, ok := r.servers[id]; ok {
		return s, nil
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeServerRepo) AddMember(_ context.Context, _ database.Querier, serverID, userID string) error {
	for _, id := range r.members[serverID] {
		if id == userID {
			return nil
		}
	}
	r.members[serverID] = append(r.members[serverID], userID)
	return nil
}

func (r *fakeServerRepo) IsMember(_ context.Context, serverID, userID string) (bool, error) {
	if r.membersErr != nil {
		return false, r.membersErr
	}
	for _, id := range r.members[serverID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeServerRepo) GetMemberIDs(_ context.Context, serverID string) ([]string, error) {
	if r.membersErr != nil {
		return nil, r.membersErr
	}
	return r.members[serverID], nil
}

func (r *fakeServerRepo) ListByUser(_ context.Context, userID string) ([]models.Server, error) {
	var out []models.Server
	for id, memberIDs := range r.members {
		for _, m := range memberIDs {
			if m == userID {
				out = append(out, *r.servers[id])
			}
		}
	}
	return out, nil
}

// --- fakeChannelRepo ---

type fakeChannelRepo struct {
	channels map[string]*models.Channel
}

func newFakeChannelRepo(channels ...*models.Channel) *fakeChannelRepo {
	r := &fakeChannelRepo{channels: map[string]*models.Channel{}}
	for _, ch := range channels {
		r.channels[ch.ID] = ch
	}
	return r
}

func (r *fakeChannelRepo) Create(_ context.Context, _ database.Querier, channel *models.Channel) error {
	r.channels[channel.ID] = channel
	return nil
}

func (r *fakeChannelRepo) GetByID(_ context.Context, id string) (*models.Channel, error) {
	if ch, ok := r.channels[id]; ok {
		return ch, nil
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeChannelRepo) ListByServer(_ context.Context, serverID string) ([]models.Channel, error) {
	var out []models.Channel
	for _, ch := range r.channels {
		if ch.ServerID == serverID {
			out = append(out, *ch)
		}
	}
	return out, nil
}

// --- fakeMessageRepo ---

type fakeMessageRepo struct {
	created   []*models.Message
	createErr error
}

func (r *fakeMessageRepo) Create(_ context.Context, message *models.Message) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, message)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id string) (*models.Message, error) {
	for _, m := range r.created {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeMessageRepo) GetByChannelID(_ context.Context, channelID, _ string, limit int) (*models.MessagePage, error) {
	page := &models.MessagePage{Messages: []models.Message{}}
	for _, m := range r.created {
		if m.ChannelID == channelID && len(page.Messages) < limit {
			page.Messages = append(page.Messages, *m)
		}
	}
	return page, nil
}

// --- fakeMentionRepo ---

type fakeMentionRepo struct {
	saved   []models.MentionRecord
	saveErr error
}

func (r *fakeMentionRepo) SaveMentions(_ context.Context, records []models.MentionRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, records...)
	return nil
}

func (r *fakeMentionRepo) GetByMessageIDs(_ context.Context, messageIDs []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, rec := range r.saved {
		for _, id := range messageIDs {
			if rec.MessageID == id {
				out[id] = append(out[id], rec.UserID)
			}
		}
	}
	return out, nil
}

// --- fakeUnreadRepo ---

type fakeUnreadRepo struct {
	mu        sync.Mutex
	counters  map[string]*models.UnreadCounter // "user|channel" → sayaç
	failBumps int                              // ilk N bump'ı patlat (retry testi)
	bumpCalls int
}

func newFakeUnreadRepo() *fakeUnreadRepo {
	return &fakeUnreadRepo{counters: map[string]*models.UnreadCounter{}}
}

func unreadKey(userID, channelID string) string { return userID + "|" + channelID }

func (r *fakeUnreadRepo) Bump(_ context.Context, userID, channelID string, mentioned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bumpCalls++
	if r.bumpCalls <= r.failBumps {
		return errors.New("database is locked")
	}
	key := unreadKey(userID, channelID)
	c, ok := r.counters[key]
	if !ok {
		c = &models.UnreadCounter{UserID: userID, ChannelID: channelID}
		r.counters[key] = c
	}
	c.Count++
	c.HasMention = c.HasMention || mentioned
	return nil
}

func (r *fakeUnreadRepo) Get(_ context.Context, userID, channelID string) (*models.UnreadCounter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[unreadKey(userID, channelID)]; ok {
		copied := *c
		return &copied, nil
	}
	return &models.UnreadCounter{UserID: userID, ChannelID: channelID}, nil
}

func (r *fakeUnreadRepo) ListByUser(_ context.Context, userID string) ([]models.UnreadCounter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.UnreadCounter
	for _, c := range r.counters {
		if c.UserID == userID && c.Count > 0 {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeUnreadRepo) ListMentionsByUser(_ context.Context, userID string) ([]models.UnreadCounter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.UnreadCounter
	for _, c := range r.counters {
		if c.UserID == userID && c.HasMention {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeUnreadRepo) MarkRead(_ context.Context, userID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[unreadKey(userID, channelID)]; ok {
		c.Count = 0
		c.HasMention = false
	}
	return nil
}

// --- fakeFriendshipRepo ---

type fakeFriendshipRepo struct {
	requests map[string]*models.FriendRequest
	senders  map[string]*models.User // sender ID → kullanıcı (JOIN simülasyonu)
}

func newFakeFriendshipRepo() *fakeFriendshipRepo {
	return &fakeFriendshipRepo{requests: map[string]*models.FriendRequest{}, senders: map[string]*models.User{}}
}

func (r *fakeFriendshipRepo) Create(_ context.Context, req *models.FriendRequest) error {
	r.requests[req.ID] = req
	return nil
}

func (r *fakeFriendshipRepo) GetByID(_ context.Context, id string) (*models.FriendRequest, error) {
	if req, ok := r.requests[id]; ok {
		return req, nil
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeFriendshipRepo) GetByPair(_ context.Context, senderID, receiverID string) (*models.FriendRequest, error) {
	for _, req := range r.requests {
		if (req.SenderID == senderID && req.ReceiverID == receiverID) ||
			(req.SenderID == receiverID && req.ReceiverID == senderID) {
			return req, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeFriendshipRepo) ListIncoming(_ context.Context, receiverID string) ([]models.FriendRequestWithSender, error) {
	var out []models.FriendRequestWithSender
	for _, req := range r.requests {
		if req.ReceiverID != receiverID || req.Status != models.FriendRequestPending {
			continue
		}
		item := models.FriendRequestWithSender{
			ID: req.ID, SenderID: req.SenderID, CreatedAt: req.CreatedAt,
		}
		if sender, ok := r.senders[req.SenderID]; ok {
			item.SenderUsername = sender.Username
			item.SenderAvatar = sender.AvatarURL
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeFriendshipRepo) UpdateStatus(_ context.Context, id string, status models.FriendRequestStatus) error {
	req, ok := r.requests[id]
	if !ok {
		return pkg.ErrNotFound
	}
	req.Status = status
	return nil
}
