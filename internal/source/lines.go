// Package source collects candidate lines for the menu from the places the
// CLI can read them: an input stream or a markdown document.
package source

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Lines reads candidate lines from r, one candidate per line. Blank lines
// are dropped; interior whitespace is preserved.
func Lines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	// Allow pathological single-line inputs well beyond the default 64K.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	return lines, nil
}
