package clients

import (
	"context"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// I18nClient wraps the translations endpoint. The UI falls back to its
// bundled default strings when a language pack is missing, so fetches
// degrade silently to an empty map. Packs change rarely; cache them.
type I18nClient struct {
	backend  *Backend
	cache    map[string]translationCacheEntry
	cacheTTL time.Duration
	mu       sync.RWMutex
}

type translationCacheEntry struct {
	translations map[string]string
	expiresAt    time.Time
}

// NewI18nClient creates an i18n client.
func NewI18nClient(backend *Backend) *I18nClient {
	return &I18nClient{
		backend:  backend,
		cache:    make(map[string]translationCacheEntry),
		cacheTTL: 15 * time.Minute,
	}
}

// Translations fetches the language pack for a locale. Degrades to an
// empty map on any failure.
func (c *I18nClient) Translations(ctx context.Context, language string) map[string]string {
	if language == "" {
		return map[string]string{}
	}

	c.mu.RLock()
	if entry, ok := c.cache[language]; ok && time.Now().Before(entry.expiresAt) {
		c.mu.RUnlock()
		return entry.translations
	}
	c.mu.RUnlock()

	var resp struct {
		Translations map[string]string `json:"translations"`
	}
	if err := c.backend.DoJSON(ctx, http.MethodGet, "/api/i18n/"+language, "", nil, &resp); err != nil {
		log.WithError(err).WithField("language", language).Warn("translation fetch failed")
		return map[string]string{}
	}
	if resp.Translations == nil {
		resp.Translations = map[string]string{}
	}

	c.mu.Lock()
	c.cache[language] = translationCacheEntry{translations: resp.Translations, expiresAt: time.Now().Add(c.cacheTTL)}
	c.mu.Unlock()

	return resp.Translations
}
