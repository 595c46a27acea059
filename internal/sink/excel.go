package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"envgen/internal/fixture"
)

const sheetName = "events"

// ExcelSink renders the fixture as a single-sheet workbook, one row per
// record, cells carrying the same text the CSV sink emits. The workbook
// is held in memory and saved on Close.
type ExcelSink struct {
	path   string
	f      *excelize.File
	row    int
	failed bool
}

func NewExcel(path string) (*ExcelSink, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("prepare workbook: %w", err)
	}
	return &ExcelSink{path: path, f: f}, nil
}

// Abort marks the run failed so Close drops the workbook unsaved.
func (s *ExcelSink) Abort() { s.failed = true }

func (s *ExcelSink) WriteHeader(fields []string) error { return s.append(fields) }

func (s *ExcelSink) WriteRecord(rec fixture.Record) error { return s.append(rec.Row()) }

func (s *ExcelSink) append(cells []string) error {
	s.row++
	anchor, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		s.failed = true
		return fmt.Errorf("write row %d: %w", s.row, err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := s.f.SetSheetRow(sheetName, anchor, &values); err != nil {
		s.failed = true
		return fmt.Errorf("write row %d: %w", s.row, err)
	}
	return nil
}

func (s *ExcelSink) Close() error {
	defer s.f.Close()
	if s.failed {
		return nil
	}
	if err := s.f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
