package diki

import (
	"errors"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
)

var (
	containerPath = xpath.MustCompile(containerExpr)
	entityPath    = xpath.MustCompile(entityExpr)
)

// Page yields the dictionary entities of one result page, parsing each on demand.
type Page struct {
	ctx       *Context
	found     bool
	fragments []*html.Node
	next      int
}

/*
Input: the raw page, the URL it was fetched from, and options. Output: a Page.

Only the document is parsed here. Entities are parsed one at a time by Next, and a Page is
read once; to read it again, build a new one from the same markup.
*/
func NewPage(r io.Reader, pageURL string, opts ...Option) (*Page, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page:%w", err)
	}

	ctx, err := NewContext(goquery.NewDocumentFromNode(root), pageURL, opts...)
	if err != nil {
		return nil, err
	}

	return &Page{
		ctx:       ctx,
		found:     htmlquery.QuerySelector(root, containerPath) != nil,
		fragments: htmlquery.QuerySelectorAll(root, entityPath),
	}, nil
}

// Found reports whether the page has a results container at all.
func (p *Page) Found() bool {
	return p.found
}

// Len is the number of entity fragments on the page.
func (p *Page) Len() int {
	return len(p.fragments)
}

func (p *Page) URL() string {
	return p.ctx.URL.String()
}

/*
No input. Output: the next entity, or io.EOF once the page is exhausted.

A failed entity is consumed as well, so a caller may keep calling Next to skip it.
*/
func (p *Page) Next() (*DictionaryEntity, error) {
	if p.next >= len(p.fragments) {
		return nil, io.EOF
	}

	i := p.next
	p.next++

	entity, err := ParseDictionaryEntity(p.ctx, p.ctx.selection(p.fragments[i:i+1]))
	if err != nil {
		return nil, fmt.Errorf("dictionary entity %d:%w", i, err)
	}

	return entity, nil
}

// Collect drains the page. Without skipBroken it stops at the first failed entity;
// with it, failures are gathered and the remaining entities are still returned.
func Collect(p *Page, skipBroken bool) ([]*DictionaryEntity, error) {
	var (
		entities []*DictionaryEntity
		errs     error
	)
	for {
		entity, err := p.Next()
		if errors.Is(err, io.EOF) {
			return entities, errs
		}
		if err != nil {
			if !skipBroken {
				return entities, err
			}
			errs = multierr.Append(errs, err)
			continue
		}
		entities = append(entities, entity)
	}
}
