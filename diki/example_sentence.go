package diki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/dikicrawler/dom"
	"github.com/dszqbsm/dikicrawler/validator"
)

type ExampleSentence struct {
	Sentence                    string                       `json:"sentence"`
	Translation                 string                       `json:"translation"`
	RecordingsAndTranscriptions *RecordingsAndTranscriptions `json:"recordingsAndTranscriptions,omitempty"`
}

// ParseExampleSentence joins the bare text of the element into the sentence; the translation
// comes in brackets.
func ParseExampleSentence(ctx *Context, sel *goquery.Selection) (*ExampleSentence, error) {
	const section = "ExampleSentence"

	v := validator.New(section)
	sentence := validator.Required[string](v, "sentence")
	translation := validator.Required[string](v, "translation", validator.Guarded())
	recordings := validator.Optional[*RecordingsAndTranscriptions](v, "recordingsAndTranscriptions", validator.Guarded())

	sel.Contents().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch classify(child.Get(0)) {
		case KindText:
			text := child.Text()
			sentence.Update(func(s string) string { return s + text })
		case KindTranslation:
			translation.Set(dom.StripBrackets(strings.TrimSpace(child.Text())))
		case KindRecordings:
			r, err := ParseRecordingsAndTranscriptions(ctx, child)
			if err != nil {
				v.Fail("recordingsAndTranscriptions", err)
			} else if r != nil {
				recordings.Set(r)
			}
		case KindRepetitionIcon, KindComment:
		default:
			ctx.unknown(section, child)
		}
		return v.Err() == nil
	})

	if s, ok := sentence.Get(); ok {
		sentence.Set(strings.TrimSpace(s))
	}

	if _, err := v.Validate(); err != nil {
		return nil, err
	}

	return &ExampleSentence{
		Sentence:                    sentence.Value(),
		Translation:                 translation.Value(),
		RecordingsAndTranscriptions: recordings.Value(),
	}, nil
}
