package entry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyDataset is returned by ReadRecords when the input holds no records.
var ErrEmptyDataset = errors.New("empty dataset")

// ParseLine reads one dataset line, e.g.
//
//	"16777216","16777471","AU","Australia","Queensland","Brisbane"
//
// and returns the records for both ends of the range.
func ParseLine(line string) (from Record, to Record, err error) {
	reader := newCsvReader(strings.NewReader(line))
	fields, err := reader.Read()
	if err != nil {
		return Record{}, Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return fromFields(fields)
}

// ReadRecords streams a dataset and calls onEachRange with the 1-based line number
// and both records of every line. It stops at the first malformed line or callback error.
func ReadRecords(r io.Reader, onEachRange func(line int, from, to Record) error) error {
	reader := newCsvReader(r)

	read := 0
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return fmt.Errorf("line %d: %w: %v", parseErr.Line, ErrMalformedRecord, parseErr.Err)
			}
			return err
		}
		line, _ := reader.FieldPos(0)

		from, to, err := fromFields(fields)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := onEachRange(line, from, to); err != nil {
			return err
		}
		read++
	}

	if read == 0 {
		return ErrEmptyDataset
	}
	return nil
}

func newCsvReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	// the field count is checked by NewRecord so the error names the record
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

func fromFields(fields []string) (Record, Record, error) {
	from, err := NewRecord(fields, RangeFrom)
	if err != nil {
		return Record{}, Record{}, err
	}
	to, err := NewRecord(fields, RangeTo)
	if err != nil {
		return Record{}, Record{}, err
	}
	return from, to, nil
}
