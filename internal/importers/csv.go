package importers

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"soil-reco/internal/engine"
)

var delimiterCandidates = []string{",", ";", "\t", "|"}

var (
	headerCharset = regexp.MustCompile(`[^a-zA-Z0-9_\- ]`)
	headerSpaces  = regexp.MustCompile(`\s+`)
	decimalCell   = regexp.MustCompile(`^-?\d+,\d+$`)
)

var superscripts = strings.NewReplacer("¹", "1", "²", "2", "³", "3")

var dashes = strings.NewReplacer("–", "-", "—", "-", "−", "-")

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader turns a raw column header into a canonical key: accents
// removed, superscript digits folded, unicode dashes unified, anything
// outside [a-zA-Z0-9_- ] dropped, spaces collapsed to underscores and the
// whole thing lowercased. "Prof. (cm)" and "P (mg/dm³)" come out as
// "prof_cm" and "p_mgdm3" regardless of the lab that exported the file.
func NormalizeHeader(h string) string {
	out, _, err := transform.String(stripDiacritics, h)
	if err != nil {
		out = h
	}
	out = superscripts.Replace(out)
	out = dashes.Replace(out)
	out = headerCharset.ReplaceAllString(out, "")
	out = strings.TrimSpace(out)
	out = headerSpaces.ReplaceAllString(out, "_")
	return strings.ToLower(out)
}

// DetectDelimiter picks the most frequent candidate delimiter in the first
// 10 lines of the file. Ties go to the earlier candidate; an empty sample
// falls back to ";" which is what most lab exports use.
func DetectDelimiter(text string) string {
	lines := splitLines(text)
	if len(lines) > 10 {
		lines = lines[:10]
	}
	sample := strings.Join(lines, "\n")

	best := ";"
	bestCount := -1
	for _, d := range delimiterCandidates {
		count := strings.Count(sample, d)
		if count > bestCount {
			best = d
			bestCount = count
		}
	}
	if bestCount <= 0 {
		return ";"
	}
	return best
}

// ParseCSV parses a delimited soil report into a dataset. The delimiter is
// auto-detected, headers are normalized, blank lines skipped, decimal-comma
// cells repaired and short rows padded to header width.
func ParseCSV(text string) (engine.Dataset, string) {
	delimiter := DetectDelimiter(text)

	var lines []string
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return engine.Dataset{}, delimiter
	}

	headersRaw := strings.Split(lines[0], delimiter)
	headers := make([]string, len(headersRaw))
	for i, h := range headersRaw {
		headers[i] = NormalizeHeader(h)
	}

	rows := make([][]string, 0, len(lines)-1)
	for n, line := range lines[1:] {
		cols := strings.Split(line, delimiter)
		for i, c := range cols {
			c = strings.TrimSpace(c)
			if decimalCell.MatchString(c) {
				c = strings.Replace(c, ",", ".", 1)
			}
			cols[i] = c
		}
		if len(cols) != len(headers) {
			log.Debug().Msgf("Row %d has %d columns, expected %d - adjusting", n+1, len(cols), len(headers))
			for len(cols) < len(headers) {
				cols = append(cols, "")
			}
			cols = cols[:len(headers)]
		}
		rows = append(rows, cols)
	}

	return engine.Dataset{Headers: headers, Rows: rows}, delimiter
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
