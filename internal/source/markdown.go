package source

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown reads a markdown document and returns its headings and list items
// as candidate lines, in document order. This lets a notes file or a README
// act as a menu: every heading and every bullet becomes a pickable line.
func Markdown(r io.Reader) ([]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(content))

	var candidates []string
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if line := extractText(node, content); line != "" {
				candidates = append(candidates, line)
			}
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			// The item's text lives in its first block child (a TextBlock or
			// Paragraph); nested lists below it are walked separately.
			if first := node.FirstChild(); first != nil {
				if line := extractText(first, content); line != "" {
					candidates = append(candidates, line)
				}
			}
			return ast.WalkContinue, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return candidates, nil
}

// extractText extracts the plain text of an AST node, descending through
// inline containers such as emphasis and links.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		default:
			buf.WriteString(extractText(c, source))
		}
	}
	return strings.TrimSpace(buf.String())
}
