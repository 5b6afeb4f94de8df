package diki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/dikicrawler/dom"
	"github.com/dszqbsm/dikicrawler/validator"
)

type RefItem struct {
	Term                        string                       `json:"term"`
	RecordingsAndTranscriptions *RecordingsAndTranscriptions `json:"recordingsAndTranscriptions,omitempty"`
}

// Ref is a group of cross references sharing one label, e.g. "see also".
type Ref struct {
	Type  string    `json:"type"`
	Items []RefItem `json:"items"`
}

// ParseRefItem parses a run of siblings that starts at one anchor.
func ParseRefItem(ctx *Context, run *goquery.Selection) (*RefItem, error) {
	const section = "RefItem"

	v := validator.New(section)
	term := validator.Required[string](v, "term", validator.Guarded())
	recordings := validator.Optional[*RecordingsAndTranscriptions](v, "recordingsAndTranscriptions", validator.Guarded())

	run.EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch classify(child.Get(0)) {
		case KindAnchor:
			term.Set(child.Text())
		case KindRecordings:
			r, err := ParseRecordingsAndTranscriptions(ctx, child)
			if err != nil {
				v.Fail("recordingsAndTranscriptions", err)
			} else if r != nil {
				recordings.Set(r)
			}
		default:
			ctx.unknown(section, child)
		}
		return v.Err() == nil
	})

	if _, err := v.Validate(); err != nil {
		return nil, err
	}

	return &RefItem{Term: term.Value(), RecordingsAndTranscriptions: recordings.Value()}, nil
}

/*
Input: the page context and a ".ref" element. Output: the cross reference group.

Text before the first anchor is the label, minus its trailing separator. From the first
anchor on, every anchor together with the elements after it forms one item.
*/
func ParseRef(ctx *Context, sel *goquery.Selection) (*Ref, error) {
	const section = "Ref"

	v := validator.New(section)
	label := validator.Required[string](v, "type")
	items := validator.RequiredList[RefItem](v, "items")

	isAnchor := is(KindAnchor)
	head, tail := dom.SplitAt(sel.Children().Contents().Nodes, isAnchor)

	ctx.selection(head).Each(func(_ int, child *goquery.Selection) {
		switch classify(child.Get(0)) {
		case KindText:
			text := child.Text()
			label.Update(func(s string) string { return s + text })
		case KindRefIcon, KindComment:
		default:
			ctx.unknown(section, child)
		}
	})

	for _, run := range dom.Segment(dom.Elements(tail), isAnchor) {
		item, err := ParseRefItem(ctx, ctx.selection(dom.SameParent(run)))
		if err != nil {
			v.Fail("items", err)
			break
		}
		items.Append(*item)
	}

	if s, ok := label.Get(); ok {
		label.Set(dom.DropLast(strings.TrimSpace(s)))
	}

	if _, err := v.Validate(); err != nil {
		return nil, err
	}

	return &Ref{Type: label.Value(), Items: items.Items()}, nil
}
