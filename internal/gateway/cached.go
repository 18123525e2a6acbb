package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quizgen/quizgen-service/internal/cache"
	"github.com/quizgen/quizgen-service/internal/models"
	"github.com/quizgen/quizgen-service/internal/utils"
)

// CachedGenerator decorates a Generator with a short-lived result cache so
// regenerating from identical source material skips the gateway call.
// Failures are never cached.
type CachedGenerator struct {
	next   Generator
	cache  cache.CacheService
	ttl    time.Duration
	logger utils.Logger
}

// NewCachedGenerator wraps next with the given cache service.
func NewCachedGenerator(next Generator, cacheService cache.CacheService, ttl time.Duration, logger utils.Logger) *CachedGenerator {
	return &CachedGenerator{
		next:   next,
		cache:  cacheService,
		ttl:    ttl,
		logger: logger,
	}
}

// Generate implements Generator.
func (c *CachedGenerator) Generate(ctx context.Context, config models.QuizConfig) (*GeneratedQuiz, error) {
	key := cacheKey(config)

	var cached GeneratedQuiz
	err := c.cache.Get(ctx, key, &cached)
	if err == nil {
		c.logger.Debug("Generation cache hit", "key", key)
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		c.logger.Warn("Generation cache lookup failed", "key", key, "error", err)
	}

	quiz, err := c.next.Generate(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, quiz, c.ttl); err != nil {
		c.logger.Warn("Generation cache store failed", "key", key, "error", err)
	}
	return quiz, nil
}

// cacheKey derives a stable digest of the full configuration, so any change
// in source, difficulty, count or requested types produces a distinct entry.
func cacheKey(config models.QuizConfig) string {
	canonical, _ := json.Marshal(config)
	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("quizgen:generation:%s", hex.EncodeToString(sum[:]))
}
