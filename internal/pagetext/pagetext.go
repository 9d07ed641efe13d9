// Package pagetext loads pre-extracted document text as page-indexed
// strings. PDF binary parsing is an external concern: the pipeline
// consumes the text dump a tool like pdftotext (or the upstream
// extractor) produces, with pages delimited either by "--- PAGE N ---"
// marker lines or by form feeds.
package pagetext

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Page is the raw text of one document page.
type Page struct {
	Index int // 1-based page number
	Text  string
}

var pageMarker = regexp.MustCompile(`(?m)^--- PAGE (\d+) ---$`)

// LoadFile reads a page text dump from disk.
func LoadFile(path string) ([]Page, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page text %s: %w", path, err)
	}
	return Split(string(raw)), nil
}

// Split divides raw dump text into pages. Marker lines win over form
// feeds; text with neither is treated as a single page.
func Split(raw string) []Page {
	if locs := pageMarker.FindAllStringSubmatchIndex(raw, -1); len(locs) > 0 {
		pages := make([]Page, 0, len(locs))
		for i, loc := range locs {
			end := len(raw)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			text := raw[loc[1]:end]
			if i == 0 && loc[0] > 0 {
				// Text before the first marker belongs to the first page.
				text = raw[:loc[0]] + text
			}
			num, _ := strconv.Atoi(raw[loc[2]:loc[3]])
			pages = append(pages, Page{Index: num, Text: text})
		}
		return pages
	}

	if strings.Contains(raw, "\f") {
		parts := strings.Split(raw, "\f")
		pages := make([]Page, 0, len(parts))
		for i, part := range parts {
			pages = append(pages, Page{Index: i + 1, Text: part})
		}
		return pages
	}

	return []Page{{Index: 1, Text: raw}}
}
