package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront-service/internal/encryption"
	"storefront-service/internal/models"
)

// Key layout mirrors the browser local-storage schema the web UI used:
// one JSON blob per concern under the session ID.
const (
	authKeyPrefix     = "storefront:session:%s:auth"
	cartKeyPrefix     = "storefront:session:%s:cart"
	wishlistKeyPrefix = "storefront:session:%s:wishlist"
)

// RedisStore implements the stores on Redis, one JSON blob per concern
// keyed by session ID. Every save refreshes the TTL so active sessions
// stay alive. When a sealer is configured the bearer token is encrypted
// before it touches Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	sealer *encryption.TokenSealer
}

// NewRedisStore creates a Redis-backed store with the given session TTL.
// sealer may be nil; tokens are then stored unsealed.
func NewRedisStore(client *redis.Client, ttl time.Duration, sealer *encryption.TokenSealer) *RedisStore {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl, sealer: sealer}
}

func (s *RedisStore) getJSON(ctx context.Context, key string, out interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		// A corrupt blob is treated as absent; the caller falls back
		// to a fresh state rather than failing the request.
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) setJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// redisSessionBlob is the persisted session shape. The bearer token is
// json:"-" on SessionState so it never reaches API responses; here it
// must be persisted, hence the dedicated envelope.
type redisSessionBlob struct {
	Session *models.SessionState `json:"session"`
	Token   string               `json:"token,omitempty"`
	Expiry  *time.Time           `json:"tokenExpiry,omitempty"`
}

// Get implements AuthStore.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	var blob redisSessionBlob
	if err := s.getJSON(ctx, fmt.Sprintf(authKeyPrefix, sessionID), &blob); err != nil {
		return nil, err
	}
	if blob.Session == nil {
		return nil, ErrNotFound
	}
	token := blob.Token
	if s.sealer != nil {
		opened, err := s.sealer.Open(blob.Token)
		if err != nil {
			// A token sealed with another key is unusable; hand out a
			// fresh session instead of a broken one.
			return nil, ErrNotFound
		}
		token = opened
	}
	blob.Session.Token = token
	blob.Session.TokenExpiry = blob.Expiry
	return blob.Session, nil
}

// Save implements AuthStore.
func (s *RedisStore) Save(ctx context.Context, session *models.SessionState) error {
	token := session.Token
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(token)
		if err != nil {
			return fmt.Errorf("failed to seal session token: %w", err)
		}
		token = sealed
	}
	blob := redisSessionBlob{
		Session: session,
		Token:   token,
		Expiry:  session.TokenExpiry,
	}
	return s.setJSON(ctx, fmt.Sprintf(authKeyPrefix, session.SessionID), blob)
}

// Delete implements AuthStore.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, fmt.Sprintf(authKeyPrefix, sessionID)).Err()
}

type redisCartStore struct{ *RedisStore }

func (s redisCartStore) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	if err := s.getJSON(ctx, fmt.Sprintf(cartKeyPrefix, sessionID), &cart); err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

func (s redisCartStore) Save(ctx context.Context, sessionID string, cart *models.Cart) error {
	return s.setJSON(ctx, fmt.Sprintf(cartKeyPrefix, sessionID), cart)
}

func (s redisCartStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, fmt.Sprintf(cartKeyPrefix, sessionID)).Err()
}

type redisWishlistStore struct{ *RedisStore }

func (s redisWishlistStore) Get(ctx context.Context, sessionID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := s.getJSON(ctx, fmt.Sprintf(wishlistKeyPrefix, sessionID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s redisWishlistStore) Save(ctx context.Context, sessionID string, items []models.WishlistItem) error {
	return s.setJSON(ctx, fmt.Sprintf(wishlistKeyPrefix, sessionID), items)
}

func (s redisWishlistStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, fmt.Sprintf(wishlistKeyPrefix, sessionID)).Err()
}

// CartStore returns the CartStore view of the Redis store.
func (s *RedisStore) CartStore() CartStore {
	return redisCartStore{s}
}

// WishlistStore returns the WishlistStore view of the Redis store.
func (s *RedisStore) WishlistStore() WishlistStore {
	return redisWishlistStore{s}
}
