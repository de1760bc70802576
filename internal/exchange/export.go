// Package exchange reads and writes agent lists from and to files.
package exchange

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/watchfire-io/wallboard/internal/models"
)

// SheetName is the worksheet used for spreadsheet exports.
const SheetName = "Agents"

// Format is a file format understood by Export and Open.
type Format string

const (
	FormatText Format = "text" // name,status lines (.csv, .txt and anything else)
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatText
	}
}

// ExportText renders agents as name,status CSV records in order, joined by
// newlines, without a header row or trailing newline. Names containing commas
// or quotes are quoted.
func ExportText(agents iter.Seq[models.Agent]) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for a := range agents {
		_ = w.Write([]string{a.Name, string(a.Status)})
	}
	w.Flush()
	return strings.TrimSuffix(buf.String(), "\n")
}

// Export writes agents to path in the format implied by its extension.
func Export(path string, agents iter.Seq[models.Agent]) error {
	var err error
	switch FormatFor(path) {
	case FormatJSON:
		err = exportJSON(path, agents)
	case FormatXLSX:
		err = exportXLSX(path, agents)
	default:
		err = os.WriteFile(path, []byte(ExportText(agents)), 0644)
	}
	if err != nil {
		return fmt.Errorf("failed to export to %s: %w", path, err)
	}
	return nil
}

func exportJSON(path string, agents iter.Seq[models.Agent]) error {
	list := []models.Agent{}
	for a := range agents {
		list = append(list, a)
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func exportXLSX(path string, agents iter.Seq[models.Agent]) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]interface{}{"Name", "Status"}); err != nil {
		return err
	}

	row := 2
	for a := range agents {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{a.Name, string(a.Status)}); err != nil {
			return err
		}
		row++
	}
	return f.SaveAs(path)
}
