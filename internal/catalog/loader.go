package catalog

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"vitrine/internal/feed"
)

// loadKey is the single singleflight key; all loads collapse into one.
const loadKey = "catalog"

// Loader fetches the feed and builds a fresh catalog from it. Failures
// never surface to the caller: the catalog degrades to empty and the
// diagnostic detail goes to the log only, so a broken feed costs the
// cards and nothing else.
type Loader struct {
	src feed.Source
	log *zap.Logger
	sf  singleflight.Group
}

// NewLoader wires a loader to a feed source. A nil source is a valid
// unconfigured state: every load yields an empty catalog. A nil logger
// silences diagnostics.
func NewLoader(src feed.Source, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{src: src, log: log}
}

// Load fetches, parses, and returns a complete replacement catalog.
// Concurrent calls share one fetch+parse via singleflight, which keeps
// file-watch event bursts from stacking work.
func (l *Loader) Load(ctx context.Context) *Catalog {
	v, _, _ := l.sf.Do(loadKey, func() (any, error) {
		return l.load(ctx), nil
	})
	return v.(*Catalog)
}

func (l *Loader) load(ctx context.Context) *Catalog {
	if l.src == nil {
		l.log.Info("no feed source configured, catalog stays empty")
		return New()
	}

	text, err := l.src.Fetch(ctx)
	if err != nil {
		l.log.Warn("feed fetch failed, catalog emptied", zap.Error(err))
		return New()
	}

	c := Build(FromRows(feed.Parse(text)))
	l.log.Info("catalog replaced", zap.Int("studies", c.Len()))
	return c
}
