package generate

import (
	"context"
	"strings"

	"github.com/debemdeboas/guidebot/internal/cache"
)

// Cached wraps a Client and remembers successful generations by title,
// so retrying the same title after a cancelled draft does not burn
// another API call. Failures are never cached.
type Cached struct {
	inner Client
	texts *cache.Cache[string, string]
}

func NewCached(inner Client) *Cached {
	return &Cached{
		inner: inner,
		texts: cache.NewCache[string, string](),
	}
}

func (c *Cached) Generate(ctx context.Context, title string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(title))
	if text, ok := c.texts.Get(key); ok {
		return text, nil
	}

	text, err := c.inner.Generate(ctx, title)
	if err != nil {
		return "", err
	}
	c.texts.Set(key, text)
	return text, nil
}
