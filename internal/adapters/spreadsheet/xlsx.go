package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ogurasousui/shift-scheduler/internal/core/export"
)

const (
	defaultSheet = "Sheet1"
	columnWidth  = 16
)

// XLSXWriter は excelize を用いて export.Row を xlsx に書き出します。
type XLSXWriter struct{}

// NewXLSXWriter は XLSXWriter を生成します。
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

var _ export.Writer = (*XLSXWriter)(nil)

// Write は見出し行と各行を 1 枚のシートに書き込みます。
func (w *XLSXWriter) Write(out io.Writer, sheet string, columns []string, rows []export.Row) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", closeErr)
		}
	}()

	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	if len(columns) > 0 {
		if err := sw.SetColWidth(1, len(columns), columnWidth); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]interface{}, 0, len(columns))
	for _, c := range columns {
		header = append(header, c)
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{r.ShiftID, r.Date, r.StaffID, r.StaffName, r.Type}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
