package dataprocessing

import (
	"regexp"
	"strings"
	"unicode"

	"kwlens/pkg/contracts/domain"
)

var (
	nonLetterPattern      = regexp.MustCompile(`[^a-zA-Z\s,]`)
	keywordSplitPattern   = regexp.MustCompile(`[,\s]+`)
	referenceSplitPattern = regexp.MustCompile(`[ ,]+`)
)

// MissingVsTitleSubtitle lists the keyword's words that appear in neither
// the row's app name nor its subtitle. Matching is on whole lowercase
// whitespace-separated tokens. Returns nil when nothing is missing.
func MissingVsTitleSubtitle(row domain.KeywordRow) *string {
	present := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(row.AppName)) {
		present[w] = struct{}{}
	}
	for _, w := range strings.Fields(strings.ToLower(row.Subtitle)) {
		present[w] = struct{}{}
	}

	var missing []string
	for _, w := range strings.Fields(strings.ToLower(row.Keyword)) {
		if _, ok := present[w]; !ok {
			missing = append(missing, w)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	s := "missing: " + strings.Join(missing, ", ")
	return &s
}

// AnnotateTitleSubtitle sets MissingFromTitleSubtitle on every row.
func AnnotateTitleSubtitle(t domain.Table) domain.Table {
	rows := t.CloneRows()
	for i := range rows {
		rows[i].MissingFromTitleSubtitle = MissingVsTitleSubtitle(rows[i])
	}
	return t.WithRows(rows)
}

// MissingVsReference lists keyword words absent from the reference text.
// The keyword is reduced to ASCII letters, whitespace and commas before
// splitting; any Unicode space separates words. Returns domain.AllMissing when no word is found, the
// comma-joined missing words when some are, and nil when none are missing
// or the keyword has no words at all.
func MissingVsReference(keyword, reference string) *string {
	words := keywordWords(keyword)
	if len(words) == 0 {
		return nil
	}

	present := make(map[string]struct{})
	for _, w := range referenceSplitPattern.Split(strings.ToLower(reference), -1) {
		present[w] = struct{}{}
	}

	var missing []string
	for _, w := range words {
		if _, ok := present[w]; !ok {
			missing = append(missing, w)
		}
	}

	var s string
	switch {
	case len(missing) == 0:
		return nil
	case len(missing) == len(words):
		s = domain.AllMissing
	default:
		s = strings.Join(missing, ", ")
	}
	return &s
}

func keywordWords(keyword string) []string {
	// RE2 \s is ASCII only
	spaced := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, keyword)
	cleaned := strings.ToLower(nonLetterPattern.ReplaceAllString(spaced, ""))

	var words []string
	for _, w := range keywordSplitPattern.Split(cleaned, -1) {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// AnnotateReference sets MissingFromInput on every row.
func AnnotateReference(t domain.Table, reference string) domain.Table {
	rows := t.CloneRows()
	for i := range rows {
		rows[i].MissingFromInput = MissingVsReference(rows[i].Keyword, reference)
	}
	return t.WithRows(rows)
}
