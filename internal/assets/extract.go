package assets

import (
	"regexp"
	"strings"
)

// tickerRe is deliberately permissive: a $-prefixed run of 2-10 alphanumeric
// characters, or a bare token starting with a letter. Digit-leading tickers
// like 1INCH only qualify behind the $ prefix. Filtering happens afterwards
// via the stopword set.
var tickerRe = regexp.MustCompile(`\$[A-Za-z0-9]{2,10}\b|\$?\b[A-Za-z][A-Za-z0-9]{1,9}\b`)

// Candidate is one token that survived extraction, before resolution.
type Candidate struct {
	Token  string // uppercased
	Dollar bool   // token was $-prefixed in the utterance
}

// ExtractCandidates tokenizes the utterance into ticker candidates in order
// of appearance. A $-prefixed token bypasses stopword filtering entirely;
// everything else is dropped when it is a stopword. Aliases (full names,
// common misspellings) are normalized to their canonical ticker.
func ExtractCandidates(utterance string) []Candidate {
	matches := tickerRe.FindAllString(utterance, -1)

	seen := make(map[string]bool)
	out := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		dollar := strings.HasPrefix(m, "$")
		tok := strings.TrimPrefix(m, "$")

		lower := strings.ToLower(tok)
		if canonical, ok := aliasTable[lower]; ok {
			tok = canonical
		} else if !dollar && stopwords[lower] {
			continue
		}

		upper := strings.ToUpper(tok)
		if seen[upper] {
			continue
		}
		seen[upper] = true
		out = append(out, Candidate{Token: upper, Dollar: dollar})
	}
	return out
}
