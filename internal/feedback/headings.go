package feedback

import (
	"regexp"
	"strings"
)

// Key identifies one feedback category.
type Key string

const (
	Overall      Key = "overall"
	Rating       Key = "rating"
	Strengths    Key = "strengths"
	Improvements Key = "improvements"
	Content      Key = "content"
	Formatting   Key = "formatting"
	Actions      Key = "actions"
	ATS          Key = "ats"
)

// Format controls how a section body is laid out.
type Format int

const (
	// Paragraph renders the body as a single paragraph.
	Paragraph Format = iota
	// List renders the body as bullets when it splits into more than one item.
	List
	// Text keeps the body verbatim, line breaks included.
	Text
)

// Heading describes one recognized section: how it is introduced in the
// feedback text and how it is displayed.
type Heading struct {
	Key      Key
	Title    string
	Icon     string // Font Awesome class used by the HTML renderer
	Glyph    string // terminal marker
	Synonyms []string
	Format   Format
}

// Headings is the scan order. A section ends where a synonym of any heading
// later in this list begins, so order decides boundary precedence.
var Headings = []Heading{
	{
		Key:      Overall,
		Title:    "Overall Assessment",
		Icon:     "fa-star",
		Glyph:    "★",
		Synonyms: []string{"overall assessment", "brief summary", "summary"},
		Format:   Paragraph,
	},
	{
		Key:      Strengths,
		Title:    "Key Strengths",
		Icon:     "fa-thumbs-up",
		Glyph:    "+",
		Synonyms: []string{"key strengths", "strengths"},
		Format:   List,
	},
	{
		Key:      Improvements,
		Title:    "Areas for Improvement",
		Icon:     "fa-lightbulb",
		Glyph:    "!",
		Synonyms: []string{"areas for improvement", "improvements", "suggestions"},
		Format:   List,
	},
	{
		Key:      Content,
		Title:    "Content Analysis",
		Icon:     "fa-search",
		Glyph:    "?",
		Synonyms: []string{"content analysis", "content review"},
		Format:   Text,
	},
	{
		Key:      Formatting,
		Title:    "Formatting & Design",
		Icon:     "fa-paint-brush",
		Glyph:    "~",
		Synonyms: []string{"formatting feedback", "formatting", "design", "layout"},
		Format:   Paragraph,
	},
	{
		Key:      Actions,
		Title:    "Action Items",
		Icon:     "fa-tasks",
		Glyph:    ">",
		Synonyms: []string{"action items", "actionable steps", "specific steps"},
		Format:   List,
	},
	{
		Key:      ATS,
		Title:    "ATS Optimization",
		Icon:     "fa-robot",
		Glyph:    "#",
		Synonyms: []string{"ats optimization", "applicant tracking", "keywords"},
		Format:   Paragraph,
	},
}

// HeadingFor returns the table entry for key.
func HeadingFor(key Key) (Heading, bool) {
	for _, h := range Headings {
		if h.Key == key {
			return h, true
		}
	}
	return Heading{}, false
}

// scanner holds the compiled start and stop patterns for one heading in one
// matching mode. stop is nil for the last heading.
type scanner struct {
	heading Heading
	start   *regexp.Regexp
	stop    *regexp.Regexp
}

// A heading line may be prefixed by markdown or numbering: "## ", "**", "3. ", "- ".
const headingPrefix = `(?:[#>*_\-•]+[ \t]*|\d+[.)][ \t]*)*`

var (
	anchoredScanners = compileScanners(true)
	looseScanners    = compileScanners(false)
)

func compileScanners(anchored bool) []scanner {
	scanners := make([]scanner, len(Headings))
	for i, h := range Headings {
		scanners[i] = scanner{
			heading: h,
			start:   synonymPattern(h.Synonyms, anchored),
		}
		var later []string
		for _, next := range Headings[i+1:] {
			later = append(later, next.Synonyms...)
		}
		if len(later) > 0 {
			scanners[i].stop = synonymPattern(later, anchored)
		}
	}
	return scanners
}

// synonymPattern matches any of synonyms as whole words, case-insensitively.
// Anchored patterns only match at the start of a line. Loose patterns match
// anywhere but need a colon after the heading: "... Strengths: clear goals".
func synonymPattern(synonyms []string, anchored bool) *regexp.Regexp {
	quoted := make([]string, len(synonyms))
	for i, s := range synonyms {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(s), " ", `\s+`)
	}
	alt := `\b(?:` + strings.Join(quoted, "|") + `)\b`
	if anchored {
		return regexp.MustCompile(`(?im)^[ \t]*` + headingPrefix + alt)
	}
	return regexp.MustCompile(`(?i)` + alt + `[ \t*_]*:`)
}
