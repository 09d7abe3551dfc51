// Package slugtitle turns URL slugs from ticket pages into readable
// event titles, e.g. "marseille-v-liverpool-fc-21-jan-2026-0800pm-524"
// becomes "Marseille Vs LFC — 21 Jan — 8:00pm".
package slugtitle

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	trailingIDRegex   = regexp.MustCompile(`-\d+$`)
	timeTokenRegex    = regexp.MustCompile(`^(\d{2})(\d{2})(am|pm)$`)
	liverpoolFCRegex  = regexp.MustCompile(`(?i)liverpool fc`)
	monthAbbreviation = map[string]bool{
		"jan": true, "feb": true, "mar": true, "apr": true,
		"may": true, "jun": true, "jul": true, "aug": true,
		"sep": true, "oct": true, "nov": true, "dec": true,
	}
)

// TitleFromSlug derives a display title from a URL slug. Slugs carrying a
// recognizable fixture pattern (teams, day, month abbreviation, year and an
// optional kick-off time) are rendered as "{teams} — {day} {Month} — {time}";
// anything else falls back to the hyphen-to-space title-cased slug.
func TitleFromSlug(slug string) string {
	if idx := strings.LastIndex(slug, "/"); idx != -1 {
		slug = slug[idx+1:]
	}

	// A single trailing "-<digits>" segment is an internal page id, not content.
	stripped := trailingIDRegex.ReplaceAllString(slug, "")
	tokens := strings.Split(stripped, "-")

	dateIdx := findDateIndex(tokens)
	if dateIdx == -1 {
		return titleCase(strings.ReplaceAll(stripped, "-", " "))
	}

	teams := strings.Join(tokens[:dateIdx], " ")
	teams = strings.ReplaceAll(teams, " v ", " vs ")
	teams = strings.ReplaceAll(teams, " V ", " vs ")
	teams = liverpoolFCRegex.ReplaceAllString(teams, "LFC")
	teams = strings.ReplaceAll(titleCase(teams), "Lfc", "LFC")

	day := tokens[dateIdx]
	month := titleCase(strings.ToLower(tokens[dateIdx+1]))

	if kickoff, ok := formatKickoffTime(tokens, dateIdx+3); ok {
		return fmt.Sprintf("%s — %s %s — %s", teams, day, month, kickoff)
	}
	return fmt.Sprintf("%s — %s %s", teams, day, month)
}

// findDateIndex returns the index of the first token triple shaped like
// [day, month-abbreviation, 4-digit year], or -1 when none exists.
func findDateIndex(tokens []string) int {
	for i := 0; i+2 < len(tokens); i++ {
		if isAllDigits(tokens[i]) &&
			monthAbbreviation[strings.ToLower(tokens[i+1])] &&
			len(tokens[i+2]) == 4 && isAllDigits(tokens[i+2]) {
			return i
		}
	}
	return -1
}

// formatKickoffTime renders a "hhmm(am|pm)" token as "h:mmam". Hour 00 maps
// to 12. Tokens that do not match the pattern are ignored.
func formatKickoffTime(tokens []string, idx int) (string, bool) {
	if idx >= len(tokens) {
		return "", false
	}

	match := timeTokenRegex.FindStringSubmatch(strings.ToLower(tokens[idx]))
	if match == nil {
		return "", false
	}

	hour := strings.TrimLeft(match[1], "0")
	if hour == "" {
		hour = "12"
	}

	return hour + ":" + match[2] + match[3], true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
