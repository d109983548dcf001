package locator

import (
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/khalid-nowaf/placeip/pkg/entry"
	"github.com/khalid-nowaf/placeip/pkg/trie"
)

type Option func(*Locator) *Locator

func DefaultOptions() *Locator {
	return &Locator{
		records: trie.New[entry.Record](),
		log:     zap.NewNop(),
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(l *Locator) *Locator {
		l.log = log
		return l
	}
}

// WithCacheSize keeps up to size lookup results; 0 disables caching.
func WithCacheSize(size int) Option {
	return func(l *Locator) *Locator {
		if size <= 0 {
			l.cache = nil
			return l
		}
		l.cache, _ = lru.New(size) // Never errors for positive size.
		return l
	}
}

// WithReleaseHook is called for every record the underlying trie releases.
func WithReleaseHook(hook func(entry.Record)) Option {
	return func(l *Locator) *Locator {
		l.records = trie.New(trie.WithReleaseHook(hook))
		return l
	}
}
