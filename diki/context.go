package diki

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/dikicrawler/dom"
	"golang.org/x/net/html"
)

// Context is shared by every parser working on one page.
type Context struct {
	URL      *url.URL
	doc      *goquery.Document
	reporter Reporter
}

/*
Input: the parsed document, the URL the page was fetched from, and options. Output: a Context.

The page URL is the base that every audio, image and picture reference is resolved against.
*/
func NewContext(doc *goquery.Document, pageURL string, opts ...Option) (*Context, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url:%w", err)
	}

	return &Context{
		URL:      u,
		doc:      doc,
		reporter: options.reporter,
	}, nil
}

func (c *Context) resolve(ref string) (string, error) {
	return dom.Resolve(c.URL, ref)
}

func (c *Context) selection(nodes []*html.Node) *goquery.Selection {
	return dom.Select(c.doc, nodes)
}

func (c *Context) unknown(section string, child *goquery.Selection) {
	c.reporter.Warn(section, dom.OuterHTML(child.Get(0)), c.URL.String())
}
