package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Source reads a tabular file into raw string rows, header first.
type Source interface {
	CanLoad(path string) bool
	Rows(path string, opts Options) ([][]string, error)
}

var sources []Source

// Register adds a source implementation to the registry.
func Register(s Source) {
	sources = append(sources, s)
}

// ErrUnsupported indicates no registered source accepts the file.
var ErrUnsupported = errors.New("unsupported dataset format")

func sourceFor(path string) (Source, error) {
	for _, s := range sources {
		if s.CanLoad(path) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

func init() {
	Register(delimitedSource{})
	Register(xlsxSource{})
}

type delimitedSource struct{}

func (delimitedSource) CanLoad(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return true
	}
	return false
}

func (delimitedSource) Rows(path string, opts Options) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = opts.Delimiter
	if r.Comma == 0 {
		r.Comma = sniffDelimiter(path)
	}
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func sniffDelimiter(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

type xlsxSource struct{}

func (xlsxSource) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// Rows reads the configured sheet, or the first sheet when none is named.
// excelize trims trailing empty cells; Load pads rows back to the header width.
func (xlsxSource) Rows(path string, opts Options) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	sheet := opts.SheetName
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("open xlsx: workbook %s has no sheets", filepath.Base(path))
		}
		sheet = list[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'. Available sheets: %s",
			sheet, filepath.Base(path), strings.Join(f.GetSheetList(), ", "))
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}
