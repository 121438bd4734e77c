package service

import (
	"regexp"
	"strings"

	"mindpath/internal/model"
)

var numberedLineRe = regexp.MustCompile(`^\s*\d+[.)]\s*(.+)$`)

// markdownStripper removes the emphasis markers LLMs like to wrap section
// headers and text in, so "**Pattern:**" matches the plain marker.
var markdownStripper = strings.NewReplacer("**", "", "*", "", "_", "")

// ParseInsightResponse extracts the required sections of a kind from the
// LLM's semi-structured plain-text reply. It is total: any input, including
// the empty string, yields a result; a missing marker yields an empty field,
// never an error.
func ParseInsightResponse(raw string, kind model.InsightKind) *model.InsightResult {
	text := markdownStripper.Replace(raw)
	specs := fieldSpecs(kind)
	markers := markersFor(kind)

	result := &model.InsightResult{
		Kind:   kind,
		Fields: make(map[string]string),
	}

	for _, spec := range specs {
		section := extractSection(text, spec.Marker, markers)
		if spec.List {
			if result.Lists == nil {
				result.Lists = make(map[string][]string)
			}
			result.Lists[spec.Name] = extractNumberedItems(section)
		} else {
			result.Fields[spec.Name] = strings.TrimSpace(section)
		}
	}

	return result
}

// extractSection returns the text between a marker and the next known marker
// (or end of text). Absent marker means absent section: empty string.
func extractSection(text, marker string, allMarkers []string) string {
	start := strings.Index(text, marker)
	if start < 0 {
		return ""
	}
	start += len(marker)

	end := len(text)
	for _, m := range allMarkers {
		if m == marker {
			continue
		}
		idx := strings.Index(text[start:], m)
		if idx >= 0 && start+idx < end {
			end = start + idx
		}
	}
	// A repeated occurrence of the same marker also terminates the section
	if idx := strings.Index(text[start:], marker); idx >= 0 && start+idx < end {
		end = start + idx
	}

	return text[start:end]
}

// extractNumberedItems pulls lines shaped like "1. foo" or "2) bar" in
// order. Lines that are not numbered list entries are discarded.
func extractNumberedItems(section string) []string {
	var items []string
	for _, line := range strings.Split(section, "\n") {
		if m := numberedLineRe.FindStringSubmatch(line); m != nil {
			item := strings.TrimSpace(m[1])
			if item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
