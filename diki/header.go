package diki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/dikicrawler/validator"
)

type Header struct {
	Title                       string                       `json:"title"`
	LessPopular                 bool                         `json:"lessPopular"`
	AdditionalInformation       *AdditionalInformation       `json:"additionalInformation,omitempty"`
	RecordingsAndTranscriptions *RecordingsAndTranscriptions `json:"recordingsAndTranscriptions,omitempty"`
}

// ParseHeader parses a run of siblings that starts at one headword.
func ParseHeader(ctx *Context, run *goquery.Selection) (*Header, error) {
	const section = "Header"

	v := validator.New(section)
	title := validator.Required[string](v, "title", validator.Guarded())
	lessPopular := validator.Required[bool](v, "lessPopular", validator.Guarded())
	info := validator.Optional[*AdditionalInformation](v, "additionalInformation", validator.Guarded())
	recordings := validator.Optional[*RecordingsAndTranscriptions](v, "recordingsAndTranscriptions", validator.Guarded())

	run.EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch classify(child.Get(0)) {
		case KindHeadword:
			title.Set(strings.TrimSpace(child.Text()))
			lessPopular.Set(child.IsMatcher(lessPopularHeadword))
		case KindRecordings:
			r, err := ParseRecordingsAndTranscriptions(ctx, child)
			if err != nil {
				v.Fail("recordingsAndTranscriptions", err)
			} else if r != nil {
				recordings.Set(r)
			}
		case KindHeaderInfo:
			i, err := ParseAdditionalInformation(ctx, child)
			if err != nil {
				v.Fail("additionalInformation", err)
			} else if i != nil {
				info.Set(i)
			}
		case KindLineBreak:
		default:
			ctx.unknown(section, child)
		}
		return v.Err() == nil
	})

	if _, err := v.Validate(); err != nil {
		return nil, err
	}

	return &Header{
		Title:                       title.Value(),
		LessPopular:                 lessPopular.Value(),
		AdditionalInformation:       info.Value(),
		RecordingsAndTranscriptions: recordings.Value(),
	}, nil
}
