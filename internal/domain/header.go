package domain

import (
	"net/url"
	"path"
	"strings"
)

// bestTrackPrefix marks best-track products, which share the .txt suffix
// with warning bulletins but are not parseable as one.
const bestTrackPrefix = "ab"

// HeaderExtractor finds cyclone headers in feed item descriptions.
type HeaderExtractor struct {
	grammar *Grammar
	links   LinkLister
}

// NewHeaderExtractor creates a HeaderExtractor. links enumerates the
// hyperlinks of the markup following each header.
func NewHeaderExtractor(grammar *Grammar, links LinkLister) *HeaderExtractor {
	return &HeaderExtractor{grammar: grammar, links: links}
}

// ExtractHeaders returns every complete header in text keyed by cyclone code.
// Headers without an issue time or a bulletin link are left out.
func (e *HeaderExtractor) ExtractHeaders(text string) map[string]CycloneHeader {
	headers := make(map[string]CycloneHeader)

	occurrences := e.grammar.header.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range occurrences {
		end := len(text)
		if i+1 < len(occurrences) {
			end = occurrences[i+1][0]
		}
		h, ok := e.build(text, loc, text[loc[1]:end])
		if !ok {
			continue
		}
		headers[h.Code] = h
	}
	return headers
}

// FindHeader returns the header ExtractHeaders reports for code: the last
// complete occurrence in text.
func (e *HeaderExtractor) FindHeader(text, code string) (CycloneHeader, bool) {
	if code == "" {
		return CycloneHeader{}, false
	}
	h, ok := e.ExtractHeaders(text)[code]
	return h, ok
}

// build assembles a header from one composite match. loc holds the match and
// its category and code submatch offsets; section is the text between this
// header and the next one.
func (e *HeaderExtractor) build(text string, loc []int, section string) (CycloneHeader, bool) {
	occurrence := text[loc[0]:loc[1]]

	code := text[loc[4]:loc[5]]
	if code == "" {
		return CycloneHeader{}, false
	}

	issuedAt, ok := e.grammar.IssuedAt(section)
	if !ok {
		return CycloneHeader{}, false
	}

	link, ok := e.SelectBulletinLink(e.links.Links(section))
	if !ok {
		return CycloneHeader{}, false
	}

	name, _ := e.grammar.Name(occurrence)
	warning, _ := e.grammar.Warning(occurrence)

	return CycloneHeader{
		Code:          code,
		Category:      strings.Join(strings.Fields(text[loc[2]:loc[3]]), " "),
		Name:          name,
		WarningNumber: warning,
		IssuedAt:      issuedAt,
		BulletinLink:  link,
	}, true
}

// SelectBulletinLink returns the first link whose file name is a warning
// bulletin: word characters plus ".txt", not a best-track product.
func (e *HeaderExtractor) SelectBulletinLink(links []string) (string, bool) {
	for _, link := range links {
		name := fileName(link)
		if strings.HasPrefix(name, bestTrackPrefix) {
			continue
		}
		if e.grammar.bulletin.MatchString(name) {
			return link, true
		}
	}
	return "", false
}

// BulletinID derives the product identifier from a bulletin link,
// e.g. ".../wp0717web.txt" -> "wp0717".
func BulletinID(link string) string {
	name := strings.TrimSuffix(fileName(link), ".txt")
	return strings.Replace(name, "web", "", 1)
}

func fileName(link string) string {
	p := link
	if u, err := url.Parse(link); err == nil && u.Path != "" {
		p = u.Path
	}
	return path.Base(strings.TrimSpace(p))
}
