package diki

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/dikicrawler/validator"
)

type RecordingsAndTranscriptions struct {
	Recordings     []Recording `json:"recordings,omitempty"`
	Transcriptions []string    `json:"transcriptions,omitempty"`
}

// ParseRecordingsAndTranscriptions returns nil when the block holds nothing recognizable.
func ParseRecordingsAndTranscriptions(ctx *Context, sel *goquery.Selection) (*RecordingsAndTranscriptions, error) {
	const section = "RecordingsAndTranscriptions"

	v := validator.New(section)
	recordings := validator.OptionalList[Recording](v, "recordings")
	transcriptions := validator.OptionalList[string](v, "transcriptions")

	sel.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch classify(child.Get(0)) {
		case KindRecording:
			r, err := ParseRecording(ctx, child)
			if err != nil {
				v.Fail("recordings", err)
				break
			}
			recordings.Append(*r)
		case KindTranscription:
			u, err := parseTranscription(ctx, child)
			if err != nil {
				v.Fail("transcriptions", err)
				break
			}
			transcriptions.Append(u)
		default:
			ctx.unknown(section, child)
		}
		return v.Err() == nil
	})

	present, err := v.Validate()
	if err != nil || !present {
		return nil, err
	}

	return &RecordingsAndTranscriptions{
		Recordings:     recordings.Items(),
		Transcriptions: transcriptions.Items(),
	}, nil
}

// parseTranscription reads the phonetic image URL of a ".phoneticTranscription" element.
func parseTranscription(ctx *Context, sel *goquery.Selection) (string, error) {
	src, ok := sel.ChildrenMatcher(anchorTag).ChildrenMatcher(imageTag).Attr(attrSrc)
	if !ok {
		return "", &validator.FieldError{Record: "Transcription", Field: "url", Err: ErrMissingExpectedField}
	}
	return ctx.resolve(src)
}
