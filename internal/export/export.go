// Package export renders logged interactions as an XLSX workbook for
// field-force operations reporting.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fieldrx/hcplog/internal/model"
)

const sheet = "Interactions"

var headers = []string{
	"Interaction ID",
	"Logged At",
	"HCP Name",
	"Date",
	"Time",
	"Sentiment",
	"Sentiment Source",
	"Topics Discussed",
	"Materials Shared",
	"Samples Distributed",
	"Summary",
}

// InteractionsXLSX returns a workbook with one row per interaction
func InteractionsXLSX(records []model.InteractionRecord) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, rec := range records {
		row := rowIdx + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, rec.ID)
		write(2, rec.CreatedAt.Format("2006-01-02 15:04"))
		write(3, orBlank(rec.HCPName))
		write(4, orBlank(rec.Date))
		write(5, orBlank(rec.Time))
		write(6, orBlank(rec.Sentiment))
		write(7, orBlank(rec.SentimentSource))
		write(8, orBlank(rec.TopicsDiscussed))
		write(9, strings.Join(rec.MaterialsShared, "; "))
		write(10, strings.Join(rec.SamplesDistributed, "; "))
		write(11, orBlank(rec.Summary))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func orBlank(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
