// Package parser extracts per-page plain text from source documents. PDF
// pages map to physical pages; formats without a page concept get synthetic
// page boundaries so the rest of the pipeline stays page-oriented.
package parser

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"document-copilot/internal/models"
)

// ExtractPages reads the document at path and returns its normalized,
// minimum-length-filtered pages in order.
func ExtractPages(path string) ([]models.Page, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDOCX(path)
	case ".xlsx":
		return extractXLSX(path)
	case ".ods":
		return extractODS(path)
	case ".md", ".markdown":
		return extractMarkdown(path)
	case ".txt":
		return extractTXT(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

// DocumentID derives a stable id from file content: same document, same id.
func DocumentID(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:12], nil
}

func extractPDF(path string) ([]models.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}

	var pages []models.Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if cleaned, ok := normalizePage(text); ok {
			pages = append(pages, models.Page{Number: i, Text: cleaned})
		}
	}
	return pages, nil
}

func extractTXT(path string) ([]models.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cleaned, ok := normalizeBlocks(string(data))
	if !ok {
		return nil, nil
	}
	return []models.Page{{Number: 1, Text: cleaned}}, nil
}

// normalizePage trims every line, drops blank lines, and rejects pages
// below the minimum text length.
func normalizePage(text string) (string, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	cleaned := strings.Join(lines, "\n")
	if len(cleaned) < models.MinPageChars {
		return "", false
	}
	return cleaned, true
}

// normalizeBlocks trims lines but keeps blank-line block boundaries, which
// the chunker relies on for paragraph detection.
func normalizeBlocks(text string) (string, bool) {
	var lines []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(lines) > 0 && !blank {
				lines = append(lines, "")
				blank = true
			}
			continue
		}
		lines = append(lines, line)
		blank = false
	}
	cleaned := strings.TrimSpace(strings.Join(lines, "\n"))
	if len(cleaned) < models.MinPageChars {
		return "", false
	}
	return cleaned, true
}
