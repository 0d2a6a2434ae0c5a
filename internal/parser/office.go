package parser

import (
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"document-copilot/internal/models"
)

// Characters accumulated per synthetic page for formats without real pages.
const syntheticPageChars = 3000

func extractDOCX(path string) ([]models.Page, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening docx %s: %w", path, err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	return paginateParagraphs(strings.Split(content, "\n")), nil
}

func extractXLSX(path string) ([]models.Page, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx %s: %w", path, err)
	}

	var pages []models.Page
	for sheetNum, sheet := range f.Sheets {
		var text strings.Builder
		text.WriteString("Sheet: " + sheet.Name + "\n")
		for _, row := range sheet.Rows {
			var cells []string
			for _, cell := range row.Cells {
				cells = append(cells, cell.String())
			}
			text.WriteString(strings.Join(cells, "\t") + "\n")
		}
		if cleaned, ok := normalizePage(text.String()); ok {
			pages = append(pages, models.Page{Number: sheetNum + 1, Text: cleaned})
		}
	}
	return pages, nil
}

func extractODS(path string) ([]models.Page, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening ods %s: %w", path, err)
	}
	defer f.Close()

	var pages []models.Page
	for sheetNum, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		var text strings.Builder
		text.WriteString("Sheet: " + sheetName + "\n")
		for _, row := range rows {
			text.WriteString(strings.Join(row, "\t") + "\n")
		}
		if cleaned, ok := normalizePage(text.String()); ok {
			pages = append(pages, models.Page{Number: sheetNum + 1, Text: cleaned})
		}
	}
	return pages, nil
}

// paginateParagraphs groups paragraphs into synthetic pages so page-less
// formats keep page-level traceability downstream.
func paginateParagraphs(paragraphs []string) []models.Page {
	var pages []models.Page
	var buf strings.Builder
	pageNum := 1

	flush := func() {
		if cleaned, ok := normalizeBlocks(buf.String()); ok {
			pages = append(pages, models.Page{Number: pageNum, Text: cleaned})
			pageNum++
		}
		buf.Reset()
	}

	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		buf.WriteString(p + "\n\n")
		if buf.Len() >= syntheticPageChars {
			flush()
		}
	}
	flush()
	return pages
}
