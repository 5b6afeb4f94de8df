package diki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/dikicrawler/dom"
	"github.com/dszqbsm/dikicrawler/validator"
)

// DictionaryEntity is one headword entry of a result page.
type DictionaryEntity struct {
	Headers       []Header       `json:"headers"`
	MeaningGroups []MeaningGroup `json:"meaningGroups"`
	Note          string         `json:"note,omitempty"`
	Pictures      []string       `json:"pictures,omitempty"`
}

/*
Input: the page context and a ".dictionaryEntity" element. Output: the entry.

The children fall into two sections, cut at the first part of speech header or meanings
list. The first holds the headwords and pictures. The second is regrouped into one meaning
group per meanings list, each with the header right before it. An entry may have no
meanings list at all.
*/
func ParseDictionaryEntity(ctx *Context, sel *goquery.Selection) (*DictionaryEntity, error) {
	const section = "DictionaryEntity"

	v := validator.New(section)
	headers := validator.RequiredList[Header](v, "headers", validator.Guarded())
	groups := validator.OptionalList[MeaningGroup](v, "meaningGroups")
	note := validator.Optional[string](v, "note", validator.Guarded())
	pictures := validator.OptionalList[string](v, "pictures")

	isHeader := is(KindPartOfSpeechHeader)
	isList := is(KindMeaningList)
	head, tail := dom.SplitAt(sel.Children().Nodes, is(KindPartOfSpeechHeader, KindMeaningList))

	ctx.selection(head).EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch classify(child.Get(0)) {
		case KindHeadwords:
			parsed, err := parseHeadwords(ctx, child)
			if err != nil {
				v.Fail("headers", err)
				break
			}
			headers.Set(parsed)
			if text := strings.TrimSpace(child.ChildrenMatcher(noteMarker).Text()); text != "" {
				note.Set(text)
			}
		case KindPicture:
			src, ok := child.ChildrenMatcher(imageTag).Attr(attrSrc)
			if !ok {
				v.Fail("pictures", ErrMissingExpectedField)
				break
			}
			u, err := ctx.resolve(src)
			if err != nil {
				v.Fail("pictures", err)
				break
			}
			pictures.Append(u)
		default:
			ctx.unknown(section, child)
		}
		return v.Err() == nil
	})

	if v.Err() == nil {
		for _, group := range dom.GroupAround(tail, isHeader, isList) {
			g, err := ParseMeaningGroup(ctx, ctx.selection(group))
			if err != nil {
				v.Fail("meaningGroups", err)
				break
			}
			groups.Append(*g)
		}
	}

	if _, err := v.Validate(); err != nil {
		return nil, err
	}

	// an entry without a meanings list still has a list, written as []
	meaningGroups := groups.Items()
	if meaningGroups == nil {
		meaningGroups = []MeaningGroup{}
	}

	return &DictionaryEntity{
		Headers:       headers.Items(),
		MeaningGroups: meaningGroups,
		Note:          note.Value(),
		Pictures:      pictures.Items(),
	}, nil
}

// parseHeadwords cuts every h1 of a ".hws" block into runs at headwords and commas and keeps
// the runs led by a headword.
func parseHeadwords(ctx *Context, hws *goquery.Selection) ([]Header, error) {
	var (
		headers []Header
		err     error
	)
	isHeadword := is(KindHeadword)
	hws.ChildrenMatcher(headingTag).EachWithBreak(func(_ int, h1 *goquery.Selection) bool {
		for _, run := range dom.Segment(h1.Children().Nodes, is(KindHeadword, KindHeadwordComma)) {
			if !isHeadword(run[0]) {
				continue
			}
			var h *Header
			if h, err = ParseHeader(ctx, ctx.selection(run)); err != nil {
				return false
			}
			headers = append(headers, *h)
		}
		return true
	})
	return headers, err
}
