package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"billing-app/internal/domain"
)

// CustomerWriter persists imported customers.
type CustomerWriter interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
}

// CSVImporter reads customer contact exports and inserts them through the
// customer repository. Expected header: name,email,phone,address (order free,
// unknown columns ignored).
type CSVImporter struct {
	reader *csv.Reader
	repo   CustomerWriter
}

func NewCSVImporter(r io.Reader, repo CustomerWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, repo: repo}
}

// Run parses CSV rows and inserts one customer per non-blank row, returning
// the number imported. A row with data but no name aborts the import.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing required column: name")
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		name := pick(record, index, "name")
		if name == "" {
			if rowEmpty(record) {
				continue
			}
			return imported, fmt.Errorf("row %d: name required", line)
		}

		c := domain.Customer{
			Name:    name,
			Email:   pick(record, index, "email"),
			Phone:   pick(record, index, "phone"),
			Address: pick(record, index, "address"),
		}
		if _, err := i.repo.Create(ctx, c); err != nil {
			return imported, fmt.Errorf("insert customer %q: %w", name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func rowEmpty(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
