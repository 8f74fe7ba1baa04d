package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinks(t *testing.T) {
	fragment := ` </b><br>Issued at 01/0900Z<br>` +
		`<a href="https://www.metoc.navy.mil/jtwc/products/wp0717.gif" target="newwin">TC Warning Graphic</a><br>` +
		`<a href=" https://www.metoc.navy.mil/jtwc/products/wp0717web.txt ">TC Warning Text </a><br>` +
		`<a name="anchor">no target</a><a href="">empty</a>`

	got := NewHTMLLinks().Links(fragment)
	assert.Equal(t, []string{
		"https://www.metoc.navy.mil/jtwc/products/wp0717.gif",
		"https://www.metoc.navy.mil/jtwc/products/wp0717web.txt",
	}, got)
}

func TestLinks_UnclosedMarkup(t *testing.T) {
	got := NewHTMLLinks().Links(`<p><a href="wp1317web.txt">text<a href='ab1317web.txt'>best track`)
	assert.Equal(t, []string{"wp1317web.txt", "ab1317web.txt"}, got)
}

func TestLinks_NoAnchors(t *testing.T) {
	assert.Empty(t, NewHTMLLinks().Links("Issued at 13/0300Z"))
	assert.Empty(t, NewHTMLLinks().Links(""))
}
