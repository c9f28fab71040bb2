package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/yungbote/lsbmorph-backend/internal/platform/errs"
)

// table is a CSV file read into header-addressed rows.
type table struct {
	cols map[string]int
	rows [][]string
}

func readTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %v", errs.ErrInvalidArgument, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty csv", errs.ErrInvalidArgument)
	}
	t := &table{cols: map[string]int{}, rows: records[1:]}
	for i, name := range records[0] {
		t.cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := t.cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", errs.ErrInvalidArgument, strings.Join(missing, ", "))
	}
	return t, nil
}

// get returns the trimmed cell, or "" when the column is absent or short.
func (t *table) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// rowError names the 1-based data line for a failed cell.
func rowError(line int, col string, err error) error {
	return fmt.Errorf("%w: row %d column %s: %v", errs.ErrInvalidArgument, line, col, err)
}

func parseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}

// optionalFloat treats blank and NaN cells as missing.
func optionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := parseFloat(raw)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) {
		return nil, nil
	}
	return &f, nil
}

func optionalBool(raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	b, err := parseBool(raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// parseBool accepts 0/1 and the usual true/false spellings.
func parseBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

func boolCell(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
