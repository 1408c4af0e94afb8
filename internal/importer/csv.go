package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"recordterm/internal/records"
)

// Result summarizes a CSV import operation.
type Result struct {
	Records []records.Record
	// Rows holds the CSV line number of each entry in Records.
	Rows    []int
	Created int
	Skipped int
	Errors  []string
}

// ErrNoNameColumn indicates a header without any first or last name column.
var ErrNoNameColumn = errors.New("csv missing name column")

// ReadCSV parses records from r. The header row decides which column feeds
// which field; rows without a first or last name are skipped and reported.
func ReadCSV(r io.Reader) (Result, error) {
	result := Result{}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("read header: %w", err)
	}
	index := map[records.Field]int{}
	for i, h := range header {
		field, err := records.ParseField(h)
		if err != nil {
			continue
		}
		if _, seen := index[field]; !seen {
			index[field] = i
		}
	}
	_, hasFirst := index[records.FieldFirstName]
	_, hasLast := index[records.FieldLastName]
	if !hasFirst && !hasLast {
		return result, ErrNoNameColumn
	}

	row := 1
	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			result.Skipped++
			continue
		}
		rec := records.Record{}
		for field, idx := range index {
			if idx < len(line) {
				rec.Set(field, strings.TrimSpace(line[idx]))
			}
		}
		if rec.FirstName == "" && rec.LastName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: name required", row))
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, rec)
		result.Rows = append(result.Rows, row)
		result.Created++
	}
	return result, nil
}

// ReadFile opens path, expanding a leading ~, and parses it with ReadCSV.
func ReadFile(path string) (Result, error) {
	resolved, err := ExpandPath(path)
	if err != nil {
		return Result{}, fmt.Errorf("import path: %w", err)
	}
	file, err := os.Open(resolved)
	if err != nil {
		return Result{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// ExpandPath resolves ~ to the home directory and returns an absolute path.
func ExpandPath(p string) (string, error) {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		return "", fmt.Errorf("empty path")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			switch {
			case len(trimmed) == 1:
				trimmed = home
			case trimmed[1] == '/', trimmed[1] == '\\':
				trimmed = filepath.Join(home, trimmed[2:])
			}
		}
	}
	return filepath.Abs(trimmed)
}

// Reject moves records that were turned away after parsing from Created to
// Skipped, reporting each against its CSV row.
func (r *Result) Reject(rejected []records.Rejection) {
	for _, rej := range rejected {
		row := 0
		if rej.Position >= 0 && rej.Position < len(r.Rows) {
			row = r.Rows[rej.Position]
		}
		r.Errors = append(r.Errors, fmt.Sprintf("row %d: %v", row, rej.Err))
		r.Created--
		r.Skipped++
	}
}

// Summary renders the counts the way the UI reports them.
func (r Result) Summary() string {
	parts := []string{fmt.Sprintf("Imported %d record(s)", r.Created)}
	if r.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("skipped %d", r.Skipped))
	}
	return strings.Join(parts, ", ")
}
