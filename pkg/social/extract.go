package social

import (
	"regexp"
	"strings"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

const (
	maxPOIsPerNote = 5
	maxNameLen     = 120
	maxSnippetLen  = 500
)

// listItemRe matches numbered or bulleted location entries inside travel
// guide notes ("1. …", "① …", "📍 …").
var listItemRe = regexp.MustCompile(`(?m)^[①②③④⑤⑥⑦⑧⑨⑩📍\d]+[\.、\s]+([^\n]{3,60})`)

// addressRes are tried in order against the text near a POI name.
var addressRes = []*regexp.Regexp{
	regexp.MustCompile(`〒[\d\-]+\s+[^\n]{5,80}`),
	regexp.MustCompile(`地址[：:]([^\n]{5,80})`),
	regexp.MustCompile(`🏠[：:]?\s*([^\n]{5,80})`),
	regexp.MustCompile(`位于([^\n]{5,60})`),
	regexp.MustCompile(`在([^\n的]{3,40})附近`),
}

// ExtractPOIs parses one note and pulls out individual POI entries from
// numbered or bulleted location lists. When no list items are found the note
// title itself becomes a single candidate, so guide-style and single-spot
// posts both contribute.
func ExtractPOIs(note Note) []model.Candidate {
	text := note.Title + "\n" + note.Content

	var pois []model.Candidate
	for _, m := range listItemRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimRight(strings.TrimSpace(m[1]), "：:，,。.")
		if len([]rune(name)) < 3 || isDigits(name) {
			continue
		}
		pois = append(pois, model.Candidate{
			Name:       truncateRunes(name, maxNameLen),
			Address:    extractAddress(text, name),
			RawContent: truncateRunes(text, maxSnippetLen),
			SourceURL:  note.URL,
			Likes:      note.Likes,
		})
		if len(pois) == maxPOIsPerNote {
			return pois
		}
	}

	if len(pois) == 0 && note.Title != "" {
		pois = append(pois, model.Candidate{
			Name:       truncateRunes(note.Title, maxNameLen),
			RawContent: truncateRunes(note.Content, maxSnippetLen),
			SourceURL:  note.URL,
			Likes:      note.Likes,
		})
	}
	return pois
}

// extractAddress looks for an address pattern in the text near the POI name.
func extractAddress(text, poiName string) string {
	search := text
	if pos := strings.Index(text, poiName); pos != -1 {
		search = truncateRunes(text[pos:], maxSnippetLen)
	} else {
		search = truncateRunes(text, maxSnippetLen)
	}

	for _, re := range addressRes {
		m := re.FindStringSubmatch(search)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(m[0])
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
