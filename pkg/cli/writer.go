package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/khalid-nowaf/placeip/pkg/ipkey"
	"github.com/khalid-nowaf/placeip/pkg/locator"
)

type Writer interface {
	Write(l *locator.Locator, w io.Writer) error
}

func newWriter(format string) Writer {
	switch format {
	case "csv":
		return CsvWriter{}
	case "json":
		return JsonWriter{}
	}
	return TextWriter{}
}

// TextWriter prints records in the same layout as query answers.
type TextWriter struct{}

func (TextWriter) Write(l *locator.Locator, w io.Writer) error {
	return l.Render(w)
}

// CsvWriter prints one CSV row per record with a header.
type CsvWriter struct{}

var csvHeaders = []string{"key", "address", "country_code", "name", "province", "city"}

func (CsvWriter) Write(l *locator.Locator, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeaders); err != nil {
		return err
	}
	for _, rec := range l.Records() {
		row := []string{
			strconv.FormatUint(uint64(rec.Key()), 10),
			ipkey.Format(rec.Key()),
			rec.CountryCode(),
			rec.Name(),
			rec.Province(),
			rec.City(),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// JsonWriter prints a JSON array with one object per record.
type JsonWriter struct{}

type jsonRecord struct {
	Key         uint32 `json:"key"`
	Address     string `json:"address"`
	CountryCode string `json:"country_code"`
	Name        string `json:"name"`
	Province    string `json:"province"`
	City        string `json:"city"`
}

func (JsonWriter) Write(l *locator.Locator, w io.Writer) error {
	encoder := json.NewEncoder(w)

	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, rec := range l.Records() {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		err := encoder.Encode(jsonRecord{
			Key:         rec.Key(),
			Address:     ipkey.Format(rec.Key()),
			CountryCode: rec.CountryCode(),
			Name:        rec.Name(),
			Province:    rec.Province(),
			City:        rec.City(),
		})
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}

// writeRecords writes every record to path, or to the context output when path is empty.
func writeRecords(ctx *Context, writer Writer, path string) error {
	if path == "" {
		return writer.Write(ctx.locator, ctx.out)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	ctx.log.Info("writing records", zap.String("file", path))
	if err := writer.Write(ctx.locator, file); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}
