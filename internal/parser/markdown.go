package parser

import (
	"bytes"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"document-copilot/internal/models"
)

// extractMarkdown walks the goldmark AST and emits one synthetic page per
// top-level heading break. Heading lines stay in the page text so the
// chunker's section heuristics see them.
func extractMarkdown(path string) ([]models.Page, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

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

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok && heading.Level == 1 {
			flush()
		}
		if t := nodeText(n, src); t != "" {
			buf.WriteString(t + "\n\n")
		}
	}
	flush()

	return pages, nil
}

// nodeText collects the plain text content of a goldmark AST node. Leaf
// blocks expose their raw lines; container blocks recurse.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := nodeText(c, src); t != "" {
			buf.WriteString(t)
			buf.WriteByte('\n')
		}
	}
	return strings.TrimSpace(buf.String())
}
