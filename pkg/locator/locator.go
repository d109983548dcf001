package locator

import (
	"errors"
	"fmt"
	"io"
	"os"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/khalid-nowaf/placeip/pkg/entry"
	"github.com/khalid-nowaf/placeip/pkg/ipkey"
	"github.com/khalid-nowaf/placeip/pkg/trie"
)

// ErrNotFound is returned by Lookup when no record has been loaded.
var ErrNotFound = errors.New("no record found")

// Locator answers "which record owns this address?" over a trie of range records.
// Both ends of every range are stored as separate leaves.
//
// Load and Close must not run concurrently with anything else;
// Lookup calls may run concurrently with each other once loading is done.
type Locator struct {
	records *trie.Trie[entry.Record]
	cache   *lru.Cache // key -> entry.Record, nil when disabled
	log     *zap.Logger
}

// New creates an empty locator.
func New(opts ...Option) *Locator {
	l := DefaultOptions()
	for _, opt := range opts {
		l = opt(l)
	}
	return l
}

// LoadFile reads a dataset file, see Load.
func (l *Locator) LoadFile(path string) (*LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	result, err := l.Load(file)
	if err != nil {
		return result, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// Load inserts both ends of every range in r. A key that is already stored
// (typically a single-address range whose ends coincide) is skipped and counted.
// Loading stops at the first malformed line.
func (l *Locator) Load(r io.Reader) (*LoadResult, error) {
	result := &LoadResult{}

	err := entry.ReadRecords(r, func(line int, from, to entry.Record) error {
		result.Lines++
		for _, rec := range []entry.Record{from, to} {
			if err := l.Insert(rec); err != nil {
				if !errors.Is(err, trie.ErrDuplicateKey) {
					return fmt.Errorf("line %d: %w", line, err)
				}
				result.Duplicates++
				l.log.Debug("skipping duplicate key",
					zap.Int("line", line),
					zap.Uint32("key", rec.Key()),
					zap.String("address", ipkey.Format(rec.Key())))
				continue
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	l.log.Info("dataset loaded",
		zap.Int("lines", result.Lines),
		zap.Int("inserted", result.Inserted),
		zap.Int("duplicates", result.Duplicates))
	return result, nil
}

// Insert stores a single record and drops any cached lookups, since the new
// leaf may change which record a query reaches.
func (l *Locator) Insert(rec entry.Record) error {
	if err := l.records.Insert(rec); err != nil {
		return err
	}
	if l.cache != nil {
		l.cache.Purge()
	}
	return nil
}

// Lookup converts query to a key and returns the record the trie search reaches for it.
// Like the trie search, the record's key is the nearest stored one, not necessarily the query itself.
func (l *Locator) Lookup(query string) (entry.Record, error) {
	key, err := ipkey.Parse(query)
	if err != nil {
		return entry.Record{}, err
	}
	return l.LookupKey(key)
}

// LookupKey returns the record the trie search reaches for key.
func (l *Locator) LookupKey(key uint32) (entry.Record, error) {
	if l.cache != nil {
		if cached, ok := l.cache.Get(key); ok {
			return cached.(entry.Record), nil
		}
	}

	rec, ok := l.records.Search(key)
	if !ok {
		return entry.Record{}, fmt.Errorf("%w for %s", ErrNotFound, ipkey.Format(key))
	}
	if l.cache != nil {
		l.cache.Add(key, rec)
	}
	return rec, nil
}

// Stats recomputes the trie statistics.
func (l *Locator) Stats() trie.Stats {
	return l.records.Update()
}

// Records returns every stored record in trie order.
func (l *Locator) Records() []entry.Record {
	return l.records.Leaves()
}

// Render writes every record in trie order, one per line.
func (l *Locator) Render(w io.Writer) error {
	return l.records.Render(w, entry.Record.String)
}

// Close releases the trie and the lookup cache. The locator is empty afterwards.
func (l *Locator) Close() {
	l.records.Destroy()
	if l.cache != nil {
		l.cache.Purge()
	}
	l.log.Debug("locator closed")
}
