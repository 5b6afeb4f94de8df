package diki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/dikicrawler/dom"
	"github.com/dszqbsm/dikicrawler/validator"
)

type Meaning struct {
	ID                    string                 `json:"id"`
	Terms                 string                 `json:"terms"`
	NotForChildren        bool                   `json:"notForChildren"`
	AdditionalInformation *AdditionalInformation `json:"additionalInformation,omitempty"`
	GrammarTags           []string               `json:"grammarTags,omitempty"`
	// MF is kept verbatim; its meaning on the site is unknown.
	MF                   string            `json:"mf,omitempty"`
	ExampleSentences     []ExampleSentence `json:"exampleSentences,omitempty"`
	ThematicDictionaries []string          `json:"thematicDictionaries,omitempty"`
	Note                 string            `json:"note,omitempty"`
	Refs                 []Ref             `json:"refs,omitempty"`
	Copyright            string            `json:"copyright,omitempty"`
}

// meaningScope is what an outer meaning hands down to the hidden variant nested in it.
type meaningScope struct {
	notForChildren bool
	id             string
	hasID          bool
}

// ParseMeaning parses one meaning list item.
func ParseMeaning(ctx *Context, sel *goquery.Selection) (*Meaning, error) {
	return parseMeaning(ctx, sel, meaningScope{})
}

// ParseMeaningWithID parses a meaning whose identifier is already known.
func ParseMeaningWithID(ctx *Context, sel *goquery.Selection, id string) (*Meaning, error) {
	return parseMeaning(ctx, sel, meaningScope{id: id, hasID: true})
}

/*
A meaning that contains a ".hiddenNotForChildrenMeaning" element is replaced as a whole by
the meaning inside that element. The loop descends into it with the flag forced on and the
identifier carried over, for as many levels as the markup nests.
*/
func parseMeaning(ctx *Context, sel *goquery.Selection, scope meaningScope) (*Meaning, error) {
	for {
		m, hidden, err := parseMeaningContents(ctx, sel, scope)
		if err != nil || hidden == nil {
			return m, err
		}
		if !scope.hasID {
			scope.id, scope.hasID = meaningID(sel)
		}
		scope.notForChildren = true
		sel = hidden
	}
}

func parseMeaningContents(ctx *Context, sel *goquery.Selection, scope meaningScope) (*Meaning, *goquery.Selection, error) {
	const section = "Meaning"

	v := validator.New(section)
	id := validator.Required[string](v, "id", validator.Guarded())
	terms := validator.Required[string](v, "terms")
	notForChildren := validator.Required[bool](v, "notForChildren", validator.Guarded())
	info := validator.Optional[*AdditionalInformation](v, "additionalInformation", validator.Guarded())
	grammarTags := validator.OptionalList[string](v, "grammarTags")
	mf := validator.Optional[string](v, "mf", validator.Guarded())
	examples := validator.OptionalList[ExampleSentence](v, "exampleSentences")
	thematic := validator.OptionalList[string](v, "thematicDictionaries")
	note := validator.Optional[string](v, "note", validator.Guarded())
	refs := validator.OptionalList[Ref](v, "refs")
	copyright := validator.Optional[string](v, "copyright", validator.Guarded())

	var hidden *goquery.Selection
	sel.Contents().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch classify(child.Get(0)) {
		case KindNotForChildren:
			hidden = child
			return false
		case KindHeadword, KindText:
			text := child.Text()
			terms.Update(func(s string) string { return s + text })
		case KindGrammarTag:
			grammarTags.Append(dom.StripBrackets(child.Text()))
		case KindMeaningInfo:
			i, err := ParseAdditionalInformation(ctx, child)
			if err != nil {
				v.Fail("additionalInformation", err)
			} else if i != nil {
				info.Set(i)
			}
		case KindExampleSentence:
			e, err := ParseExampleSentence(ctx, child)
			if err != nil {
				v.Fail("exampleSentences", err)
				break
			}
			examples.Append(*e)
		case KindThematicDictionary:
			thematic.Append(strings.TrimSpace(child.Text()))
		case KindRef:
			r, err := ParseRef(ctx, child)
			if err != nil {
				v.Fail("refs", err)
				break
			}
			refs.Append(*r)
		case KindNote:
			note.Set(strings.TrimSpace(child.Text()))
		case KindMisc:
			mf.Set(strings.TrimSpace(child.Text()))
		case KindCopyright:
			copyright.Set(strings.TrimSpace(child.Text()))
		case KindRepetitionIcon, KindComment:
		default:
			ctx.unknown(section, child)
		}
		return v.Err() == nil
	})

	if err := v.Err(); err != nil {
		return nil, nil, err
	}
	if hidden != nil {
		return nil, hidden, nil
	}

	if scope.hasID {
		id.Set(scope.id)
	} else if s, ok := meaningID(sel); ok {
		id.Set(s)
	}
	notForChildren.Set(scope.notForChildren)
	if s, ok := terms.Get(); ok {
		terms.Set(strings.TrimSpace(s))
	}

	if _, err := v.Validate(); err != nil {
		return nil, nil, err
	}

	return &Meaning{
		ID:                    id.Value(),
		Terms:                 terms.Value(),
		NotForChildren:        notForChildren.Value(),
		AdditionalInformation: info.Value(),
		GrammarTags:           grammarTags.Items(),
		MF:                    mf.Value(),
		ExampleSentences:      examples.Items(),
		ThematicDictionaries:  thematic.Items(),
		Note:                  note.Value(),
		Refs:                  refs.Items(),
		Copyright:             copyright.Value(),
	}, nil, nil
}

// meaningID turns an element id such as "meaning42_id" into "42".
func meaningID(sel *goquery.Selection) (string, bool) {
	raw, ok := sel.Attr(attrID)
	if !ok {
		return "", false
	}
	r := []rune(strings.TrimSpace(raw))
	if len(r) <= 10 {
		return "", false
	}
	id := strings.Trim(string(r[7:len(r)-3]), "-_")
	return id, id != ""
}
