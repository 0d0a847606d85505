package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	minColWidth = 10
	maxColWidth = 60
)

// formatSheet: жирная закреплённая шапка, автофильтр, ширина колонок по содержимому.
func formatSheet(f *excelize.File, s SheetSpec) error {
	cols := len(s.Header)
	for _, row := range s.Rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.Title, "A1", last+"1", bold); err != nil {
		return err
	}
	if err := f.AutoFilter(s.Title, "A1:"+last+"1", nil); err != nil {
		return err
	}
	if err := f.SetPanes(s.Title, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	for c, w := range columnWidths(s, cols) {
		name, _ := excelize.ColumnNumberToName(c + 1)
		if err := f.SetColWidth(s.Title, name, name, w); err != nil {
			return err
		}
	}
	return nil
}

// columnWidths оценивает ширину по числу символов; кириллица шире латиницы, отсюда 1.1.
func columnWidths(s SheetSpec, cols int) []float64 {
	out := make([]float64, cols)
	fit := func(c int, v string, pad float64) {
		w := float64(utf8.RuneCountInString(v))*1.1 + pad
		out[c] = min(max(out[c], w), maxColWidth)
	}
	for c := range out {
		out[c] = minColWidth
	}
	for c, h := range s.Header {
		fit(c, h, 1.5)
	}
	for _, row := range s.Rows {
		for c, v := range row {
			fit(c, v, 0)
		}
	}
	return out
}

var badFileChars = regexp.MustCompile(`[\\/:*?"<>|]+`)

// BuildDashboardFilename — имя файла выгрузки: «Аналитика — школа — дата.xlsx».
func BuildDashboardFilename(schoolName string, day time.Time) string {
	school := strings.Join(strings.Fields(schoolName), " ")
	if school == "" {
		school = "—"
	}
	name := fmt.Sprintf("Аналитика — %s — %s.xlsx", school, day.Format("02.01.2006"))
	return badFileChars.ReplaceAllString(name, "_")
}
