package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"profiles-feed-be/internal/entities"
)

// MemoryStore keeps users, tokens and feed items in process memory.
// It is used when no DATABASE_URL is configured and by tests; contents are lost on exit.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]entities.User
	tokens   map[string]entities.AuthToken
	feed     map[int64]entities.FeedItem
	lastFeed int64
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]entities.User),
		tokens: make(map[string]entities.AuthToken),
		feed:   make(map[int64]entities.FeedItem),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Users returns a UserRepository view of the store
func (s *MemoryStore) Users() UserRepository { return memoryUsers{s} }

// Tokens returns a TokenRepository view of the store
func (s *MemoryStore) Tokens() TokenRepository { return memoryTokens{s} }

// Feed returns a FeedRepository view of the store
func (s *MemoryStore) Feed() FeedRepository { return memoryFeed{s} }

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) Create(_ context.Context, email, passwordHash, name string) (*entities.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if m.s.emailTaken(email, "") {
		return nil, ErrDuplicate
	}

	now := m.s.now()
	user := entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.s.users[user.ID] = user
	return &user, nil
}

func (m memoryUsers) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	for _, user := range m.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m memoryUsers) FindByID(_ context.Context, id string) (*entities.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	user, ok := m.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m memoryUsers) Update(_ context.Context, id string, update UserUpdate) (*entities.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	user, ok := m.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Email != nil {
		if m.s.emailTaken(*update.Email, id) {
			return nil, ErrDuplicate
		}
		user.Email = *update.Email
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	user.UpdatedAt = m.s.now()
	m.s.users[id] = user
	return &user, nil
}

// emailTaken reports whether another user than exceptID holds email. Caller holds mu.
func (s *MemoryStore) emailTaken(email, exceptID string) bool {
	for id, user := range s.users {
		if id != exceptID && user.Email == email {
			return true
		}
	}
	return false
}

type memoryTokens struct{ s *MemoryStore }

func (m memoryTokens) Create(_ context.Context, key, userID string) (*entities.AuthToken, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, exists := m.s.tokens[key]; exists {
		return nil, ErrDuplicate
	}
	if _, exists := m.s.users[userID]; !exists {
		return nil, ErrNotFound
	}

	token := entities.AuthToken{Key: key, UserID: userID, CreatedAt: m.s.now()}
	m.s.tokens[key] = token
	return &token, nil
}

func (m memoryTokens) FindByKey(_ context.Context, key string) (*entities.AuthToken, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	token, ok := m.s.tokens[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &token, nil
}

type memoryFeed struct{ s *MemoryStore }

func (m memoryFeed) Create(_ context.Context, userID, description string) (*entities.FeedItem, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.lastFeed++
	now := m.s.now()
	item := entities.FeedItem{
		ID:          m.s.lastFeed,
		UserID:      userID,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.s.feed[item.ID] = item
	return &item, nil
}

func (m memoryFeed) ListByUserID(_ context.Context, userID string) ([]*entities.FeedItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	items := make([]*entities.FeedItem, 0)
	for _, item := range m.s.feed {
		if item.UserID == userID {
			item := item
			items = append(items, &item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (m memoryFeed) FindByID(_ context.Context, id int64, userID string) (*entities.FeedItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	item, ok := m.s.feed[id]
	if !ok || item.UserID != userID {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (m memoryFeed) Update(_ context.Context, id int64, userID string, description *string) (*entities.FeedItem, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	item, ok := m.s.feed[id]
	if !ok || item.UserID != userID {
		return nil, ErrNotFound
	}
	if description != nil {
		item.Description = *description
	}
	item.UpdatedAt = m.s.now()
	m.s.feed[id] = item
	return &item, nil
}

func (m memoryFeed) Delete(_ context.Context, id int64, userID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	item, ok := m.s.feed[id]
	if !ok || item.UserID != userID {
		return ErrNotFound
	}
	delete(m.s.feed, id)
	return nil
}
