package diki

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/dikicrawler/dom"
	"github.com/dszqbsm/dikicrawler/validator"
)

type MeaningGroup struct {
	PartOfSpeech   string    `json:"partOfSpeech,omitempty"`
	Meanings       []Meaning `json:"meanings"`
	IrregularForms []Form    `json:"irregularForms,omitempty"`
}

// ParseMeaningGroup parses one part of speech section: its optional header, the meanings
// list and whatever follows the list up to the next section.
func ParseMeaningGroup(ctx *Context, group *goquery.Selection) (*MeaningGroup, error) {
	const section = "MeaningGroup"

	v := validator.New(section)
	partOfSpeech := validator.Optional[string](v, "partOfSpeech", validator.Guarded())
	meanings := validator.RequiredList[Meaning](v, "meanings")
	forms := validator.OptionalList[Form](v, "irregularForms")

	group.EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch classify(child.Get(0)) {
		case KindPartOfSpeechHeader:
			partOfSpeech.Set(child.ChildrenMatcher(partOfSpeechLabel).Text())
		case KindMeaningList:
			child.ChildrenMatcher(listItemTag).EachWithBreak(func(_ int, item *goquery.Selection) bool {
				m, err := ParseMeaning(ctx, item)
				if err != nil {
					v.Fail("meanings", err)
					return false
				}
				meanings.Append(*m)
				return true
			})
		case KindIrregularForms:
			for _, run := range dom.Segment(child.Children().Nodes, is(KindFormTerm)) {
				f, err := ParseForm(ctx, ctx.selection(run))
				if err != nil {
					v.Fail("irregularForms", err)
					break
				}
				forms.Append(*f)
			}
		case KindAdditionalSentences:
		default:
			ctx.unknown(section, child)
		}
		return v.Err() == nil
	})

	if _, err := v.Validate(); err != nil {
		return nil, err
	}

	return &MeaningGroup{
		PartOfSpeech:   partOfSpeech.Value(),
		Meanings:       meanings.Items(),
		IrregularForms: forms.Items(),
	}, nil
}
