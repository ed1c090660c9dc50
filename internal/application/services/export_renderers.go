package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
)

const (
	reportWidth     = 80
	headerFillColor = "4472C4"
)

var columnWidths = []struct {
	col   string
	width float64
}{
	{"A", 8}, {"B", 20}, {"C", 12}, {"D", 12}, {"E", 18},
}

func renderCSV(entries []entities.FeedbackEntry, locale entities.Locale, _ Clock) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "satisfaction_level", "date", "time", "weekday"}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			locale.Label(e.SatisfactionLevel),
			e.Date,
			e.Time,
			e.Weekday,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderTXT(entries []entities.FeedbackEntry, locale entities.Locale, clock Clock) ([]byte, error) {
	var b strings.Builder
	rs := locale.Report
	banner := strings.Repeat("=", reportWidth)

	b.WriteString(banner + "\n")
	b.WriteString(rs.Title + "\n")
	b.WriteString(banner + "\n\n")

	for _, e := range entries {
		fmt.Fprintf(&b, "%s: %d\n", rs.IDHeader, e.ID)
		fmt.Fprintf(&b, "%s: %s\n", rs.LevelHeader, locale.Label(e.SatisfactionLevel))
		fmt.Fprintf(&b, "%s: %s\n", rs.DateHeader, e.Date)
		fmt.Fprintf(&b, "%s: %s\n", rs.TimeHeader, e.Time)
		fmt.Fprintf(&b, "%s: %s\n", rs.WeekdayHeader, e.Weekday)
		b.WriteString(strings.Repeat("-", reportWidth) + "\n\n")
	}

	fmt.Fprintf(&b, "\n%s: %d\n", rs.TotalRecords, len(entries))
	fmt.Fprintf(&b, "%s: %s\n", rs.GeneratedAt, clock.Now().Format("02/01/2006 15:04:05"))

	return []byte(b.String()), nil
}

func renderXLSX(entries []entities.FeedbackEntry, locale entities.Locale, _ Clock) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	rs := locale.Report
	sheet := rs.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	header := []interface{}{rs.IDHeader, rs.LevelHeader, rs.DateHeader, rs.TimeHeader, rs.WeekdayHeader}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", style); err != nil {
		return nil, err
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{e.ID, locale.Label(e.SatisfactionLevel), e.Date, e.Time, e.Weekday}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	for _, c := range columnWidths {
		if err := f.SetColWidth(sheet, c.col, c.col, c.width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
