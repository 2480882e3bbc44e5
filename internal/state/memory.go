package state

import (
	"context"
	"sync"
	"time"

	"storefront-service/internal/models"
)

// MemoryStore is an in-memory implementation of all three stores. Used
// in tests and as the fallback when Redis is not reachable; entries
// expire after the configured TTL and are reaped by the cleanup worker.
type MemoryStore struct {
	ttl       time.Duration
	mu        sync.RWMutex
	sessions  map[string]memoryEntry[*models.SessionState]
	carts     map[string]memoryEntry[*models.Cart]
	wishlists map[string]memoryEntry[[]models.WishlistItem]
}

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory store with the given entry TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		ttl:       ttl,
		sessions:  make(map[string]memoryEntry[*models.SessionState]),
		carts:     make(map[string]memoryEntry[*models.Cart]),
		wishlists: make(map[string]memoryEntry[[]models.WishlistItem]),
	}
}

// Get implements AuthStore.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	copied := *entry.value
	return &copied, nil
}

// Save implements AuthStore.
func (s *MemoryStore) Save(ctx context.Context, session *models.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.SessionID] = memoryEntry[*models.SessionState]{
		value:     &copied,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete implements AuthStore.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// GetCart implements CartStore.
func (s *MemoryStore) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.carts[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	copied := *entry.value
	copied.Items = append([]models.CartItem(nil), entry.value.Items...)
	return &copied, nil
}

// SaveCart implements CartStore.
func (s *MemoryStore) SaveCart(ctx context.Context, sessionID string, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	s.carts[sessionID] = memoryEntry[*models.Cart]{
		value:     &copied,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// DeleteCart implements CartStore.
func (s *MemoryStore) DeleteCart(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

// GetWishlist implements WishlistStore.
func (s *MemoryStore) GetWishlist(ctx context.Context, sessionID string) ([]models.WishlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.wishlists[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return append([]models.WishlistItem(nil), entry.value...), nil
}

// SaveWishlist implements WishlistStore.
func (s *MemoryStore) SaveWishlist(ctx context.Context, sessionID string, items []models.WishlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlists[sessionID] = memoryEntry[[]models.WishlistItem]{
		value:     append([]models.WishlistItem(nil), items...),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// DeleteWishlist implements WishlistStore.
func (s *MemoryStore) DeleteWishlist(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wishlists, sessionID)
	return nil
}

// Cleanup removes expired entries and returns how many were reaped.
// Called periodically by the session cleanup worker.
func (s *MemoryStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	for id, entry := range s.carts {
		if now.After(entry.expiresAt) {
			delete(s.carts, id)
			removed++
		}
	}
	for id, entry := range s.wishlists {
		if now.After(entry.expiresAt) {
			delete(s.wishlists, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of live sessions.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// memoryCartStore and friends adapt MemoryStore's method sets onto the
// store interfaces, which use Get/Save/Delete names per store.
type memoryCartStore struct{ *MemoryStore }

func (s memoryCartStore) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	return s.GetCart(ctx, sessionID)
}
func (s memoryCartStore) Save(ctx context.Context, sessionID string, cart *models.Cart) error {
	return s.SaveCart(ctx, sessionID, cart)
}
func (s memoryCartStore) Delete(ctx context.Context, sessionID string) error {
	return s.DeleteCart(ctx, sessionID)
}

type memoryWishlistStore struct{ *MemoryStore }

func (s memoryWishlistStore) Get(ctx context.Context, sessionID string) ([]models.WishlistItem, error) {
	return s.GetWishlist(ctx, sessionID)
}
func (s memoryWishlistStore) Save(ctx context.Context, sessionID string, items []models.WishlistItem) error {
	return s.SaveWishlist(ctx, sessionID, items)
}
func (s memoryWishlistStore) Delete(ctx context.Context, sessionID string) error {
	return s.DeleteWishlist(ctx, sessionID)
}

// CartStore returns the CartStore view of the memory store.
func (s *MemoryStore) CartStore() CartStore {
	return memoryCartStore{s}
}

// WishlistStore returns the WishlistStore view of the memory store.
func (s *MemoryStore) WishlistStore() WishlistStore {
	return memoryWishlistStore{s}
}
