package feedback

import (
	"regexp"
	"strings"
)

var (
	listMarker = regexp.MustCompile(`^(?:[-•][ \t]*|\*[ \t]+|\d+[.)][ \t]+)`)
	emphasis   = regexp.MustCompile(`\*\*|__`)
)

// SplitList breaks a section body into list items. Items are separated by
// newlines or "•"; a leading "-", "*", "•" or "1." marker is dropped.
func SplitList(text string) []string {
	text = strings.ReplaceAll(text, "•", "\n")
	var items []string
	for _, line := range strings.Split(text, "\n") {
		item := strings.TrimSpace(listMarker.ReplaceAllString(strings.TrimSpace(line), ""))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Block is one rendered section of a Document.
type Block struct {
	Key       Key
	Title     string
	Icon      string
	Glyph     string
	Rating    string   // "7" on the block that carries the score badge
	Items     []string // set when the body is a list
	Paragraph string   // set when the body is not a list
	Verbatim  bool     // keep line breaks of Paragraph
}

// IsList reports whether the block renders as bullets.
func (b Block) IsList() bool {
	return len(b.Items) > 0
}

// Lines splits a verbatim paragraph on line breaks.
func (b Block) Lines() []string {
	return strings.Split(b.Paragraph, "\n")
}

// Document is feedback laid out for display.
type Document struct {
	Rating string
	Blocks []Block
}

// Structured reports whether any heading was recognized. An unstructured
// document has a single verbatim block holding the original text.
func (d Document) Structured() bool {
	return len(d.Blocks) > 0 && d.Blocks[0].Key != ""
}

// Layout extracts sections from text and arranges them in table order.
func Layout(text string) Document {
	return LayoutSections(text, Extract(text))
}

// LayoutSections arranges already extracted sections. text is used for the
// unstructured fallback.
func LayoutSections(text string, sections Sections) Document {
	doc := Document{Rating: sections[Rating]}

	if !sections.HasContent() {
		if strings.TrimSpace(text) == "" {
			return doc
		}
		doc.Blocks = []Block{{
			Rating:    doc.Rating,
			Paragraph: strings.TrimSpace(text),
			Verbatim:  true,
		}}
		return doc
	}

	for _, h := range Headings {
		body, ok := sections[h.Key]
		if !ok {
			continue
		}
		b := Block{Key: h.Key, Title: h.Title, Icon: h.Icon, Glyph: h.Glyph}
		switch h.Format {
		case List:
			if items := SplitList(body); len(items) > 1 {
				for i := range items {
					items[i] = plain(items[i])
				}
				b.Items = items
			} else {
				b.Paragraph = plain(body)
			}
		case Text:
			b.Paragraph = plain(body)
			b.Verbatim = true
		default:
			b.Paragraph = plain(body)
		}
		doc.Blocks = append(doc.Blocks, b)
	}

	// The score badge sits on the overall block, or on the first block when the
	// overall assessment is missing.
	if doc.Rating != "" {
		idx := 0
		for i, b := range doc.Blocks {
			if b.Key == Overall {
				idx = i
				break
			}
		}
		doc.Blocks[idx].Rating = doc.Rating
	}
	return doc
}

func plain(s string) string {
	return strings.TrimSpace(emphasis.ReplaceAllString(s, ""))
}
