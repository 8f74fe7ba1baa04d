package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Token patterns shared by the feed header and bulletin formats.
const (
	categoryPattern  = `(?:\w+\s+){1,2}`
	codePattern      = `\d+\w+`
	namePattern      = `\([^()]+\)`
	warningPattern   = `Warning\s+#\d+`
	timestampPattern = `\d{6}Z`
	issuedAtPattern  = `\d+/\d+Z`
	latitudePattern  = `\d+\.\d+[NS]`
	longitudePattern = `\d+\.\d+[EW]`
	speedPattern     = `\d+ KT`
	radiusPattern    = `\d+ NM \w+ \w+`

	bulletinFilePattern = `^\w+\.txt$`
)

// Grammar holds the compiled token matchers. A Grammar is immutable and safe
// for concurrent use; build one with NewGrammar and pass it to the parsers.
type Grammar struct {
	category  *regexp.Regexp
	code      *regexp.Regexp
	name      *regexp.Regexp
	warning   *regexp.Regexp
	timestamp *regexp.Regexp
	issuedAt  *regexp.Regexp
	latitude  *regexp.Regexp
	longitude *regexp.Regexp
	speed     *regexp.Regexp
	radius    *regexp.Regexp
	header    *regexp.Regexp
	nonDigits *regexp.Regexp
	bulletin  *regexp.Regexp
}

// NewGrammar compiles the token matchers.
func NewGrammar() *Grammar {
	return &Grammar{
		category:  regexp.MustCompile(categoryPattern),
		code:      regexp.MustCompile(codePattern),
		name:      regexp.MustCompile(namePattern),
		warning:   regexp.MustCompile(warningPattern),
		timestamp: regexp.MustCompile(timestampPattern),
		issuedAt:  regexp.MustCompile(issuedAtPattern),
		latitude:  regexp.MustCompile(latitudePattern),
		longitude: regexp.MustCompile(longitudePattern),
		speed:     regexp.MustCompile(speedPattern),
		radius:    regexp.MustCompile(radiusPattern),
		header:    regexp.MustCompile(headerPattern(codePattern)),
		nonDigits: regexp.MustCompile(`\D+`),
		bulletin:  regexp.MustCompile(bulletinFilePattern),
	}
}

// headerPattern builds "<category> <code> (<name>) Warning #<n>" with the
// category and code captured.
func headerPattern(code string) string {
	return `(` + categoryPattern + `)(` + code + `)\s+` + namePattern + `\s+` + warningPattern
}

func first(re *regexp.Regexp, s string) (string, bool) {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[loc[0]:loc[1]], true
}

// Category matches one or two words followed by whitespace.
func (g *Grammar) Category(s string) (string, bool) {
	m, ok := first(g.category, s)
	return strings.TrimSpace(m), ok
}

// Code matches a cyclone code such as "07W".
func (g *Grammar) Code(s string) (string, bool) { return first(g.code, s) }

// Name returns the content of the first parenthesized name.
func (g *Grammar) Name(s string) (string, bool) {
	m, ok := first(g.name, s)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(m[1 : len(m)-1]), true
}

// Warning matches "Warning #NN" and returns its number.
func (g *Grammar) Warning(s string) (int, bool) {
	m, ok := first(g.warning, s)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(g.nonDigits.ReplaceAllString(m, ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Timestamp matches a bulletin "DDHHMMZ" token.
func (g *Grammar) Timestamp(s string) (string, bool) { return first(g.timestamp, s) }

// IssuedAt matches a feed "DD/HHMMZ" token.
func (g *Grammar) IssuedAt(s string) (string, bool) { return first(g.issuedAt, s) }

// Latitude matches e.g. "15.3N".
func (g *Grammar) Latitude(s string) (string, bool) { return first(g.latitude, s) }

// Longitude matches e.g. "125.4E".
func (g *Grammar) Longitude(s string) (string, bool) { return first(g.longitude, s) }

// Speed matches e.g. "65 KT".
func (g *Grammar) Speed(s string) (string, bool) { return first(g.speed, s) }

// Radii returns every quadrant-radius phrase, e.g. "120 NM NE QUADRANT".
func (g *Grammar) Radii(s string) []string { return g.radius.FindAllString(s, -1) }

// IsRadius reports whether s is exactly one quadrant-radius phrase.
func (g *Grammar) IsRadius(s string) bool {
	loc := g.radius.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}
