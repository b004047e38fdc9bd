package holiday

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/civil"
)

// CSVSource reads holidays from a CSV file whose header names at least a
// Date column (YYYY-MM-DD). Name and LocalName columns are picked up when
// present; other columns are ignored. Every row is returned regardless of
// year.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Holidays(_ context.Context, _ int) ([]Holiday, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("holiday.CSVSource.Holidays: %w", err)
	}
	defer f.Close()

	hs, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("holiday.CSVSource.Holidays: %s: %w", s.path, err)
	}
	return hs, nil
}

// ReadCSV parses holiday rows from r, matching columns by header name.
func ReadCSV(r io.Reader) ([]Holiday, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		// Strip a UTF-8 BOM some spreadsheet exports prepend.
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		cols[strings.ToLower(name)] = i
	}
	dateCol, ok := cols["date"]
	if !ok {
		return nil, errors.New("missing Date column")
	}

	field := func(rec []string, name string) string {
		if i, ok := cols[name]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	var out []Holiday
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if dateCol >= len(rec) {
			return nil, fmt.Errorf("line %d: missing Date value", line)
		}
		d, err := civil.ParseDate(strings.TrimSpace(rec[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, Holiday{
			Date:      d,
			Name:      field(rec, "name"),
			LocalName: field(rec, "localname"),
		})
	}
	return out, nil
}
