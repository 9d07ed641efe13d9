// Package segmenter slices page text into bounded, statement-aware
// chunks for extraction. Statement headings (English or Indonesian, as
// they appear in bilingual filings) are preferred split points and set
// the section hint carried by each chunk; a section spans pages until
// the next heading appears.
package segmenter

import (
	"regexp"
	"sort"
	"strings"

	"finstmt/internal/domain"
	"finstmt/internal/pagetext"
)

// statementSection pairs a canonical section name with the heading
// pattern that opens it.
type statementSection struct {
	name string
	re   *regexp.Regexp
}

var statementSections = []statementSection{
	{"Statement of financial position", regexp.MustCompile(`(?i)statement of financial position|laporan posisi keuangan`)},
	{"Statement of profit or loss", regexp.MustCompile(`(?i)statement of profit or loss|laporan laba rugi`)},
	{"Statement of cash flows", regexp.MustCompile(`(?i)statement of cash flows|laporan arus kas`)},
	{"Statement of changes in equity", regexp.MustCompile(`(?i)statement of changes in equity|laporan perubahan ekuitas`)},
}

// Segmenter produces chunks no larger than chunkSize characters.
type Segmenter struct {
	chunkSize int
}

// New creates a Segmenter with the given chunk size bound.
func New(chunkSize int) *Segmenter {
	return &Segmenter{chunkSize: chunkSize}
}

// Segment slices the document into chunks. Concatenating the chunk
// texts reconstructs the input pages verbatim; every chunk is at most
// chunkSize long. Returns domain.ErrEmptyDocument when no page has
// extractable content.
func (s *Segmenter) Segment(pages []pagetext.Page) ([]domain.Chunk, error) {
	empty := true
	for _, p := range pages {
		if strings.TrimSpace(p.Text) != "" {
			empty = false
			break
		}
	}
	if empty {
		return nil, domain.ErrEmptyDocument
	}

	var chunks []domain.Chunk
	hint := "" // carries across pages until the next heading
	for _, page := range pages {
		for _, seg := range splitAtHeadings(page.Text) {
			if seg.section != "" {
				hint = seg.section
			}
			for _, piece := range window(seg.text, s.chunkSize) {
				chunks = append(chunks, domain.Chunk{
					Index:       len(chunks),
					PageIndex:   page.Index,
					SectionHint: hint,
					Text:        piece,
				})
			}
		}
	}
	return chunks, nil
}

type segment struct {
	section string // empty = inherit previous section
	text    string
}

// splitAtHeadings cuts text at every statement-heading match, tagging
// each resulting segment with the section its heading opens. Text before
// the first heading has no section of its own.
func splitAtHeadings(text string) []segment {
	type headingMatch struct {
		pos  int
		name string
	}
	var matches []headingMatch
	for _, sec := range statementSections {
		for _, loc := range sec.re.FindAllStringIndex(text, -1) {
			matches = append(matches, headingMatch{pos: loc[0], name: sec.name})
		}
	}
	if len(matches) == 0 {
		if text == "" {
			return nil
		}
		return []segment{{text: text}}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	var segments []segment
	if matches[0].pos > 0 {
		segments = append(segments, segment{text: text[:matches[0].pos]})
	}
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1].pos
		}
		if end > m.pos {
			segments = append(segments, segment{section: m.name, text: text[m.pos:end]})
		}
	}
	return segments
}

// window splits text into pieces of at most size characters, preferring
// newline then sentence boundaries over hard cuts. Pieces concatenate
// back to the input; trailing content smaller than size is never
// dropped.
func window(text string, size int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}
	var pieces []string
	for len(text) > size {
		cut := lastBreak(text[:size])
		if cut <= 0 {
			cut = size
		}
		pieces = append(pieces, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		pieces = append(pieces, text)
	}
	return pieces
}

// lastBreak finds the best split position inside a window: after the
// last newline, else after the last sentence end. Returns -1 when the
// window has no usable boundary.
func lastBreak(window string) int {
	if i := strings.LastIndexByte(window, '\n'); i > 0 {
		return i + 1
	}
	if i := strings.LastIndex(window, ". "); i > 0 {
		return i + 2
	}
	return -1
}
