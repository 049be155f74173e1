// Package catalog reads raw product records from files and HTTP endpoints.
package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
)

// Formats understood by the decoders
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeCSV reads a header row followed by product rows. Header names are trimmed;
// empty cells are left out of the record so they read as absent.
func DecodeCSV(r io.Reader) ([]domain.RawProductRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, string(utf8BOM))
		}
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]domain.RawProductRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec := make(domain.RawProductRecord, len(headers))
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				break
			}
			if cell = strings.TrimSpace(cell); cell != "" {
				rec[headers[i]] = cell
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeJSON accepts either an array of product objects or an object wrapping
// the array under "products".
func DecodeJSON(data []byte) ([]domain.RawProductRecord, error) {
	data = bytes.TrimPrefix(bytes.TrimSpace(data), utf8BOM)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '{' {
		var wrapped struct {
			Products []domain.RawProductRecord `json:"products"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return dropNil(wrapped.Products), nil
	}

	var records []domain.RawProductRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return dropNil(records), nil
}

// Decode dispatches on format
func Decode(format string, data []byte) ([]domain.RawProductRecord, error) {
	switch format {
	case FormatCSV:
		return DecodeCSV(bytes.NewReader(data))
	case FormatJSON:
		return DecodeJSON(data)
	}
	return nil, fmt.Errorf("unsupported catalog format %q", format)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func dropNil(records []domain.RawProductRecord) []domain.RawProductRecord {
	out := records[:0]
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
