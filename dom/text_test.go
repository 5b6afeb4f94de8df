package dom

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestStripBrackets(t *testing.T) {
	assert.Equal(t, "a red fruit", StripBrackets("(a red fruit)"))
	assert.Equal(t, " x ", StripBrackets("( x )"))
	assert.Equal(t, "", StripBrackets("()"))
	assert.Equal(t, "", StripBrackets("x"))
	assert.Equal(t, "żółw", StripBrackets("(żółw)"))
}

func TestDropLast(t *testing.T) {
	assert.Equal(t, "see also", DropLast("see also:"))
	assert.Equal(t, "", DropLast(""))
	assert.Equal(t, "zobacz też", DropLast("zobacz też:"))
}

func TestResolve(t *testing.T) {
	base, err := url.Parse("https://www.diki.pl/slownik-angielskiego?q=cat")
	require.NoError(t, err)

	got, err := Resolve(base, "/images-common/en/mp3/cat.mp3")
	require.NoError(t, err)
	assert.Equal(t, "https://www.diki.pl/images-common/en/mp3/cat.mp3", got)

	got, err = Resolve(base, "//img.diki.pl/pict.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://img.diki.pl/pict.jpg", got)

	_, err = Resolve(base, "   ")
	assert.ErrorIs(t, err, ErrEmptyURL)
}

func TestResolve_AbsoluteIsIdempotent(t *testing.T) {
	absolute := []string{
		"https://www.diki.pl/images-common/en/mp3/cat.mp3",
		"http://example.com/a/../b?x=1#frag",
		"https://img.diki.pl/dictpict/cat.jpg",
	}
	bases := []string{
		"https://www.diki.pl/slownik-angielskiego?q=cat",
		"http://other.example/x/y/",
	}
	for _, raw := range absolute {
		for _, b := range bases {
			base, err := url.Parse(b)
			require.NoError(t, err)

			once, err := Resolve(base, raw)
			require.NoError(t, err)
			assert.Equal(t, raw, once)

			twice, err := Resolve(base, once)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		}
	}
}

func TestNodeHelpers(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div id="a">x<span class="s">1</span><!-- c --><b>2</b></div><div id="b"><i>3</i></div>`))
	require.NoError(t, err)

	contents := doc.Find("#a").Contents().Nodes
	elements := Elements(contents)
	require.Len(t, elements, 2)
	assert.Equal(t, `<span class="s">1</span>`, OuterHTML(elements[0]))

	mixed := append(append([]*html.Node{}, elements...), doc.Find("#b i").Nodes...)
	assert.Len(t, SameParent(mixed), 2)

	sel := Select(doc, []*html.Node{elements[1], elements[0]})
	assert.Equal(t, "21", sel.Text())
}
