package feedback

import (
	"regexp"
	"strconv"
	"strings"
)

// Sections maps a section key to its trimmed body. A missing key means the
// section was not found.
type Sections map[Key]string

// Rating returns the extracted 0-10 rating, if any.
func (s Sections) Rating() (int, bool) {
	raw, ok := s[Rating]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// HasContent reports whether any section other than the rating was found.
func (s Sections) HasContent() bool {
	for k := range s {
		if k != Rating {
			return true
		}
	}
	return false
}

var (
	ratingPattern = regexp.MustCompile(`(?i)\b(?:rat(?:e|ed|ing)|scored?)\b[^\n]*?\b(\d{1,2})\s*(?:/|out\s+of)\s*10\b`)

	// Characters that decorate a heading on its own line: "**Strengths**:".
	headingDecoration = " \t:.*#_"

	// Numbering or markdown left over from the next heading: "\n\n2. **".
	trailingResidue = regexp.MustCompile(`(?:\n[ \t]*\d+[.)]|[\s*#_>])+$`)
)

// Extract splits free-form feedback into sections.
//
// Headings are looked for at the start of lines, which is how generated
// feedback is normally laid out. When that recognizes fewer than two sections,
// a second pass accepts "Heading:" anywhere in the text and wins if it finds
// more. A heading word inside a bullet without a colon never starts a section.
//
// Extract never fails. Text without recognizable headings yields an empty map.
func Extract(text string) Sections {
	sections := make(Sections)
	if n, ok := extractRating(text); ok {
		sections[Rating] = strconv.Itoa(n)
	}

	found := scan(text, anchoredScanners)
	if len(found) < 2 {
		if loose := scan(text, looseScanners); len(loose) > len(found) {
			found = loose
		}
	}
	for k, v := range found {
		sections[k] = v
	}
	return sections
}

func extractRating(text string) (int, bool) {
	m := ratingPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n > 10 {
		return 0, false
	}
	return n, true
}

// scan runs every scanner in table order. Each heading is looked for at or after
// the previous matched heading first, then anywhere, so a phrase mentioned early
// in the text does not shadow the real heading further down.
func scan(text string, scanners []scanner) map[Key]string {
	found := make(map[Key]string)
	cursor := 0
	for _, sc := range scanners {
		loc := sc.start.FindStringIndex(text[cursor:])
		if loc != nil {
			loc[0] += cursor
			loc[1] += cursor
		} else if loc = sc.start.FindStringIndex(text); loc == nil {
			continue
		}

		body := strings.TrimLeft(text[loc[1]:], headingDecoration)
		if sc.stop != nil {
			body = body[:stopIndex(sc.stop, body)]
		}
		body = strings.TrimSpace(trailingResidue.ReplaceAllString(body, ""))
		if body == "" {
			continue
		}
		found[sc.heading.Key] = body
		if loc[0] > cursor {
			cursor = loc[0]
		}
	}
	return found
}

// stopIndex returns where body ends: the first later heading that does not sit
// at offset 0, or len(body). A body is a suffix of a line, so an anchored match
// at offset 0 is not a real line start.
func stopIndex(stop *regexp.Regexp, body string) int {
	for _, m := range stop.FindAllStringIndex(body, 2) {
		if m[0] > 0 {
			return m[0]
		}
	}
	return len(body)
}
