package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLLinks lists anchor targets of HTML fragments.
// It implements domain.LinkLister.
type HTMLLinks struct{}

// NewHTMLLinks creates an HTMLLinks.
func NewHTMLLinks() *HTMLLinks {
	return &HTMLLinks{}
}

// Links returns the href of every <a> element in document order. Malformed
// markup is repaired by the HTML5 parser; empty hrefs are skipped.
func (h *HTMLLinks) Links(fragment string) []string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attr(n, "href"); href != "" {
				links = append(links, href)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
