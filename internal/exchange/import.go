package exchange

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

// File is an opened import file.
type File struct {
	Name    string
	Path    string
	Format  Format
	Content string // raw text; empty for spreadsheets
	Size    int64
	Entries []Entry
}

// Entry is one name/status pair read from a file. Status is kept raw so
// validation happens in the registry.
type Entry struct {
	Line   int    `json:"line"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Skipped records an entry that could not be applied.
type Skipped struct {
	Entry Entry
	Err   error
}

// Report summarises an import.
type Report struct {
	Applied int
	Skipped []Skipped
}

// Open reads path and parses its entries.
func Open(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	f := &File{
		Name:   filepath.Base(path),
		Path:   path,
		Format: FormatFor(path),
		Size:   info.Size(),
	}

	switch f.Format {
	case FormatXLSX:
		f.Entries, err = readXLSX(path)
	case FormatJSON:
		var data []byte
		data, err = os.ReadFile(path)
		if err == nil {
			f.Content = string(data)
			f.Entries, err = parseJSON(data)
		}
	default:
		var data []byte
		data, err = os.ReadFile(path)
		if err == nil {
			f.Content = string(data)
			f.Entries, err = ParseText(f.Content)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	return f, nil
}

// ParseText parses name,status CSV records. Quoted names may contain commas.
// Blank lines and a leading "name,status" header are ignored; a record without
// a status becomes an entry with an empty status.
func ParseText(content string) ([]Entry, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	var entries []Entry
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
		line, _ := r.FieldPos(0)

		name := strings.TrimSpace(fields[0])
		status := ""
		if len(fields) > 1 {
			// Extra fields stay in the status so the entry is rejected, not truncated.
			status = strings.TrimSpace(strings.Join(fields[1:], ","))
		}
		if name == "" && status == "" {
			continue
		}
		if len(entries) == 0 && strings.EqualFold(name, "name") && strings.EqualFold(status, "status") {
			continue
		}
		entries = append(entries, Entry{Line: line, Name: name, Status: status})
	}
}

func parseJSON(data []byte) ([]Entry, error) {
	var agents []models.Agent
	if err := json.Unmarshal(data, &agents); err != nil {
		return nil, err
	}
	entries := make([]Entry, len(agents))
	for i, a := range agents {
		entries[i] = Entry{Line: i + 1, Name: a.Name, Status: string(a.Status)}
	}
	return entries, nil
}

func readXLSX(path string) ([]Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := SheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		status := ""
		if len(row) > 1 {
			status = strings.TrimSpace(row[1])
		}
		if i == 0 && strings.EqualFold(name, "name") {
			continue
		}
		entries = append(entries, Entry{Line: i + 1, Name: name, Status: status})
	}
	return entries, nil
}

// Apply dispatches every entry in order. Rejected entries are collected in
// the report and do not stop the import; a cancelled context does.
func Apply(ctx context.Context, d *wallboard.Dispatcher, entries []Entry, origin wallboard.Origin) (Report, error) {
	var report Report
	for _, e := range entries {
		_, err := d.Dispatch(ctx, e.Name, models.AgentStatus(e.Status), origin)
		switch {
		case err == nil:
			report.Applied++
		case wallboard.IsRejection(err):
			report.Skipped = append(report.Skipped, Skipped{Entry: e, Err: err})
		default:
			return report, err
		}
	}
	return report, nil
}
