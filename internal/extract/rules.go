package extract

import "regexp"

// Pattern lists are ordered by specificity: the first matching rule wins and
// the rest are never consulted. TRAX exports put nameplate values in table
// cells, so several rules tolerate whitespace between a label and its value.

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)substation\s+(\d+)`),
	regexp.MustCompile(`(?i)sub\s+(\d+)`),
	regexp.MustCompile(`(?i)station\s+(\d+)`),
	regexp.MustCompile(`(?i)transformer\s+(\w+)`),
	regexp.MustCompile(`(?i)tx[_-]?(\w+)`),
	regexp.MustCompile(`(?i)unit\s+(\w+)`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{4}`),
	regexp.MustCompile(`\d{4}[/-]\d{1,2}[/-]\d{1,2}`),
	regexp.MustCompile(`(?i)(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}`),
}

var serialPatterns = []*regexp.Regexp{
	// TRAX table format: "Serial #" with the value like "H 880287" nearby.
	regexp.MustCompile(`(?i)serial\s*#\s*([A-Z]\s+\d{6,})`),
	regexp.MustCompile(`(?i)serial\s*#?\s*([A-Z]?\s*\d{5,})`),
	regexp.MustCompile(`(?i)serial\s*number\s*:?\s*([A-Z]?\s*\d+)`),
	regexp.MustCompile(`(?i)s/n\s*:?\s*([A-Z]?\s*\d+)`),
	regexp.MustCompile(`\b([A-Z]\s+\d{6,})\b`),
	regexp.MustCompile(`Serial\s*#\s*([A-Z]\s+\d+)`),
	regexp.MustCompile(`Serial\s*#\s+([A-Z]\d+)`),
	regexp.MustCompile(`(?i)asset\s*id\s*:?\s*([A-Z]?\s*\d+)`),
	regexp.MustCompile(`(?i)unit\s*id\s*:?\s*([A-Z]?\s*\d+)`),
	regexp.MustCompile(`(?i)transformer\s*id\s*:?\s*([A-Z]?\s*\d+)`),
}

// Manufacturer matching is a closed vocabulary; free-text capture would drag
// in arbitrary words from test commentary.
const vendors = `GE|ABB|Siemens|Westinghouse|Cooper|Eaton|Schneider`

var manufacturerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)manufacturer\s*:?\s*(` + vendors + `)`),
	regexp.MustCompile(`(?i)made\s*by\s*:?\s*(` + vendors + `)`),
	regexp.MustCompile(`(?i)mfg\s*:?\s*(` + vendors + `)`),
	regexp.MustCompile(`(?i)\b(` + vendors + `)\b`),
}

var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)year\s*:?\s*(\d{4})`),
	regexp.MustCompile(`(?i)manufactured\s*:?\s*(\d{4})`),
	regexp.MustCompile(`(?i)date\s*of\s*manufacture\s*:?\s*(\d{4})`),
	regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`),
}

var mvaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*mva`),
	regexp.MustCompile(`(?i)mva\s*:?\s*(\d+\.?\d*)`),
	regexp.MustCompile(`(?i)rating\s*:?\s*(\d+\.?\d*)\s*mva`),
}

var voltagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*kv\s*/\s*(\d+\.?\d*)\s*kv`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*kv\s*-\s*(\d+\.?\d*)\s*kv`),
	regexp.MustCompile(`(?i)voltage\s*:?\s*(\d+\.?\d*)\s*kv\s*/\s*(\d+\.?\d*)\s*kv`),
}
