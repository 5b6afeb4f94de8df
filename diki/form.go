package diki

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/dikicrawler/validator"
)

// Form is one row of an irregular forms table, e.g. {term: "went", form: "past tense"}.
type Form struct {
	Term                        string                       `json:"term"`
	Form                        string                       `json:"form"`
	RecordingsAndTranscriptions *RecordingsAndTranscriptions `json:"recordingsAndTranscriptions,omitempty"`
}

func ParseForm(ctx *Context, run *goquery.Selection) (*Form, error) {
	const section = "Form"

	v := validator.New(section)
	term := validator.Required[string](v, "term", validator.Guarded())
	label := validator.Required[string](v, "form", validator.Guarded())
	recordings := validator.Optional[*RecordingsAndTranscriptions](v, "recordingsAndTranscriptions", validator.Guarded())

	run.EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch classify(child.Get(0)) {
		case KindFormTerm:
			term.Set(child.Text())
		case KindFormLabel:
			label.Set(child.Text())
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

	return &Form{
		Term:                        term.Value(),
		Form:                        label.Value(),
		RecordingsAndTranscriptions: recordings.Value(),
	}, nil
}
