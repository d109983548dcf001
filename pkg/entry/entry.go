package entry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/khalid-nowaf/placeip/pkg/ipkey"
)

// ErrMalformedRecord is returned for dataset lines or rendered lines that cannot be read as a record.
var ErrMalformedRecord = errors.New("malformed record")

// Bound selects which of the two range keys of a dataset line becomes the record key.
type Bound int

const (
	RangeFrom Bound = iota
	RangeTo
)

func (b Bound) String() string {
	if b == RangeTo {
		return "to"
	}
	return "from"
}

// field positions in a dataset line
const (
	fieldFrom = iota
	fieldTo
	fieldCountryCode
	fieldName
	fieldProvince
	fieldCity
	fieldCount
)

// Invalid is printed in place of a record when a query cannot be answered.
const Invalid = "(INVALID, -: -, -, -)"

// Record is one end of an IP range with its geolocation. It is immutable once built.
type Record struct {
	key         uint32
	countryCode string
	name        string
	province    string
	city        string
}

// New builds a record from its parts.
func New(key uint32, countryCode, name, province, city string) Record {
	return Record{
		key:         key,
		countryCode: countryCode,
		name:        name,
		province:    province,
		city:        city,
	}
}

// NewRecord builds a record from the six fields of a dataset line:
// range from, range to, country code, country name, province, city.
// b selects which range key the record carries.
func NewRecord(fields []string, b Bound) (Record, error) {
	if len(fields) != fieldCount {
		return Record{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, fieldCount, len(fields))
	}

	keyField := fields[fieldFrom]
	if b == RangeTo {
		keyField = fields[fieldTo]
	}
	key, err := strconv.ParseUint(strings.TrimSpace(keyField), 10, 32)
	if err != nil {
		return Record{}, fmt.Errorf("%w: range %s key %q is not a 32-bit number", ErrMalformedRecord, b, keyField)
	}

	rec := New(uint32(key),
		strings.TrimSpace(fields[fieldCountryCode]),
		strings.TrimSpace(fields[fieldName]),
		strings.TrimSpace(fields[fieldProvince]),
		strings.TrimSpace(fields[fieldCity]),
	)
	if err := rec.checkPrintable(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// checkPrintable rejects text that String could not print unambiguously:
// ParseRendered splits the country code at the first ":  " and the city and province at the last ", ".
func (r Record) checkPrintable() error {
	fields := []struct {
		name, value, sep string
	}{
		{"country code", r.countryCode, ":  "},
		{"province", r.province, ", "},
		{"city", r.city, ", "},
	}
	for _, f := range fields {
		if strings.Contains(f.value, f.sep) {
			return fmt.Errorf("%w: %s %q contains %q", ErrMalformedRecord, f.name, f.value, f.sep)
		}
	}
	for _, value := range []string{r.countryCode, r.name, r.province, r.city} {
		if strings.ContainsAny(value, "\r\n") {
			return fmt.Errorf("%w: field %q spans lines", ErrMalformedRecord, value)
		}
	}
	return nil
}

func (r Record) Key() uint32         { return r.key }
func (r Record) CountryCode() string { return r.countryCode }
func (r Record) Name() string        { return r.name }
func (r Record) Province() string    { return r.province }
func (r Record) City() string        { return r.city }

// Copy returns an independent copy of the record.
// Strings are immutable in Go, so a value copy shares no mutable state.
func (r Record) Copy() Record {
	return r
}

// String renders the record as
//
//	167772161:  (10.0.0.1, US:  United States, Mountain View, California)
func (r Record) String() string {
	b := ipkey.Bytes(r.key)
	return fmt.Sprintf("%d:  (%d.%d.%d.%d, %s:  %s, %s, %s)",
		r.key, b[0], b[1], b[2], b[3], r.countryCode, r.name, r.city, r.province)
}

// ParseRendered reads back a line produced by Record.String.
// The name may contain ", "; the city and province are taken from the right,
// which is why NewRecord refuses them when they contain ", " themselves.
func ParseRendered(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")

	keyPart, rest, ok := strings.Cut(line, ":  (")
	if !ok || !strings.HasSuffix(rest, ")") {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}
	rest = strings.TrimSuffix(rest, ")")

	key, err := strconv.ParseUint(keyPart, 10, 32)
	if err != nil {
		return Record{}, fmt.Errorf("%w: key %q", ErrMalformedRecord, keyPart)
	}

	quad, rest, ok := strings.Cut(rest, ", ")
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}
	if quadKey, err := ipkey.Parse(quad); err != nil || quadKey != uint32(key) {
		return Record{}, fmt.Errorf("%w: address %q does not match key %d", ErrMalformedRecord, quad, key)
	}

	countryCode, rest, ok := strings.Cut(rest, ":  ")
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}

	i := strings.LastIndex(rest, ", ")
	if i < 0 {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}
	province := rest[i+2:]
	rest = rest[:i]

	i = strings.LastIndex(rest, ", ")
	if i < 0 {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}
	name, city := rest[:i], rest[i+2:]

	return New(uint32(key), countryCode, name, province, city), nil
}
