package dom

import (
	"errors"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

var ErrEmptyURL = errors.New("empty url")

// StripBrackets drops the first and last characters, e.g. "(a red fruit)" -> "a red fruit".
func StripBrackets(s string) string {
	r := []rune(s)
	if len(r) < 2 {
		return ""
	}
	return string(r[1 : len(r)-1])
}

// DropLast drops the trailing character, e.g. the colon of "see also:".
func DropLast(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	return string(r[:len(r)-1])
}

/*
Input: the page URL and a reference found in the markup. Output: an absolute URL string.

An already absolute reference is returned untouched.
*/
func Resolve(base *url.URL, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrEmptyURL
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return ref, nil
	}
	if base == nil {
		return "", errors.New("relative url without base:" + ref)
	}
	return base.ResolveReference(u).String(), nil
}

func OuterHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	return htmlquery.OutputHTML(n, true)
}

func IsElement(n *html.Node) bool {
	return n.Type == html.ElementNode
}

// Elements filters out text, comment and other non-element nodes.
func Elements(nodes []*html.Node) []*html.Node {
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if IsElement(n) {
			out = append(out, n)
		}
	}
	return out
}

// SameParent keeps the leading nodes that share the first node's parent.
func SameParent(nodes []*html.Node) []*html.Node {
	if len(nodes) == 0 {
		return nodes
	}
	parent := nodes[0].Parent
	for i, n := range nodes {
		if n.Parent != parent {
			return nodes[:i:i]
		}
	}
	return nodes
}
