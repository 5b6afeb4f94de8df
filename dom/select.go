package dom

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Select turns a run of nodes from doc back into a selection, keeping their order.
func Select(doc *goquery.Document, nodes []*html.Node) *goquery.Selection {
	return doc.FindNodes(nodes...)
}
