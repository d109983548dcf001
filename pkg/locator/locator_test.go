package locator

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/khalid-nowaf/placeip/pkg/entry"
	"github.com/khalid-nowaf/placeip/pkg/ipkey"
	"github.com/khalid-nowaf/placeip/pkg/trie"
)

const dataset = `"0","16777215","-","-","-","-"
"16777216","16777471","AU","Australia","Queensland","Brisbane"
"16777472","16778239","CN","China","Fujian","Fuzhou"
"16778240","16779263","AU","Australia","Victoria","Melbourne"
"167772161","167772161","US","United States","California","Mountain View"
`

func newLoaded(t *testing.T, opts ...Option) *Locator {
	t.Helper()
	l := New(opts...)
	_, err := l.Load(strings.NewReader(dataset))
	require.NoError(t, err)
	return l
}

func TestLoad(t *testing.T) {
	l := New()
	result, err := l.Load(strings.NewReader(dataset))
	require.NoError(t, err)

	assert.Equal(t, 5, result.Lines)
	assert.Equal(t, 9, result.Inserted)
	assert.Equal(t, 1, result.Duplicates, "The single-address range should be counted once")
	assert.Equal(t, "Lines: 5, Inserted records: 9, Skipped duplicates: 1", result.String())

	stats := l.Stats()
	assert.Equal(t, 9, stats.Leaves)
	assert.LessOrEqual(t, stats.Height, trie.MaxHeight)
}

func TestLoadLogsDuplicates(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := New(WithLogger(zap.New(core)))

	_, err := l.Load(strings.NewReader(dataset))
	require.NoError(t, err)

	dups := logs.FilterMessage("skipping duplicate key").All()
	require.Len(t, dups, 1)
	assert.Equal(t, int64(5), dups[0].ContextMap()["line"])
	assert.Equal(t, 1, logs.FilterMessage("dataset loaded").Len())
}

func TestLoadMalformed(t *testing.T) {
	l := New()
	_, err := l.Load(strings.NewReader(`"1","2","AU","Australia"` + "\n"))
	assert.ErrorIs(t, err, entry.ErrMalformedRecord)
}

func TestLoadEmpty(t *testing.T) {
	_, err := New().Load(strings.NewReader(""))
	assert.ErrorIs(t, err, entry.ErrEmptyDataset)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranges.csv")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))

	l := New()
	result, err := l.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Lines)

	_, err = l.LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestLookupExact(t *testing.T) {
	l := newLoaded(t)

	testCases := []struct {
		query string
		city  string
	}{
		{"1.0.0.0", "Brisbane"},
		{"16777216", "Brisbane"},
		{"1.0.0.255", "Brisbane"},
		{"1.0.1.0", "Fuzhou"},
		{"10.0.0.1", "Mountain View"},
		{"167772161", "Mountain View"},
	}
	for _, tc := range testCases {
		rec, err := l.Lookup(tc.query)
		require.NoError(t, err, "query %q", tc.query)
		assert.Equal(t, tc.city, rec.City(), "query %q", tc.query)

		key, _ := ipkey.Parse(tc.query)
		assert.Equal(t, key, rec.Key(), "stored keys should match exactly")
	}
}

func TestLookupApproximate(t *testing.T) {
	l := newLoaded(t)

	rec, err := l.Lookup("200.1.2.3")
	require.NoError(t, err)
	assert.NotEqual(t, "", rec.CountryCode(), "A non-empty locator should always answer")
}

func TestLookupInvalid(t *testing.T) {
	l := newLoaded(t)

	_, err := l.Lookup("example.com")
	assert.ErrorIs(t, err, ipkey.ErrInvalidInput)

	_, err = l.Lookup("300.0.0.1")
	assert.ErrorIs(t, err, ipkey.ErrInvalidKey)
}

func TestLookupEmpty(t *testing.T) {
	_, err := New().Lookup("10.0.0.1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupCache(t *testing.T) {
	l := newLoaded(t, WithCacheSize(8))

	first, err := l.Lookup("1.0.1.10")
	require.NoError(t, err)
	assert.Equal(t, 1, l.cache.Len())

	second, err := l.Lookup("1.0.1.10")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, l.Insert(entry.New(0x0100010A, "XX", "Test", "Test", "Test")))
	assert.Equal(t, 0, l.cache.Len(), "Insert should drop cached lookups")

	third, err := l.Lookup("1.0.1.10")
	require.NoError(t, err)
	assert.Equal(t, "XX", third.CountryCode())
}

func TestWithCacheSizeZero(t *testing.T) {
	l := New(WithCacheSize(0))
	assert.Nil(t, l.cache)
}

func TestRenderRoundTrip(t *testing.T) {
	l := newLoaded(t)

	var buf bytes.Buffer
	require.NoError(t, l.Render(&buf))

	parsed := []entry.Record{}
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		rec, err := entry.ParseRendered(scanner.Text())
		require.NoError(t, err)
		parsed = append(parsed, rec)
	}
	require.NoError(t, scanner.Err())

	assert.ElementsMatch(t, l.Records(), parsed)
	assert.Len(t, parsed, 9)
}

func TestCloseReleasesRecords(t *testing.T) {
	released := 0
	l := newLoaded(t, WithReleaseHook(func(entry.Record) { released++ }), WithCacheSize(4))
	_, err := l.Lookup("1.0.0.0")
	require.NoError(t, err)

	splits := released
	l.Close()

	assert.Equal(t, 9+splits, released)
	assert.Equal(t, 0, l.cache.Len())
	_, err = l.Lookup("1.0.0.0")
	assert.ErrorIs(t, err, ErrNotFound)
}
