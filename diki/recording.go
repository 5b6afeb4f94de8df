package diki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/dikicrawler/validator"
)

type Recording struct {
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

/*
Input: the page context and one ".hasRecording" element. Output: the recording.

The language variant is the first class of the element. The audio URL sits on its
".soundOnClick" child, under data-audio-url or, in newer markup, item-audio-url.
*/
func ParseRecording(ctx *Context, sel *goquery.Selection) (*Recording, error) {
	v := validator.New("Recording")
	lang := validator.Required[string](v, "lang")
	audio := validator.Required[string](v, "url")

	if classes := strings.Fields(sel.AttrOr(attrClass, "")); len(classes) > 0 {
		lang.Set(classes[0])
	} else {
		v.Fail("lang", ErrMissingExpectedField)
	}

	sound := sel.ChildrenMatcher(soundOnClick)
	ref, ok := sound.Attr(attrAudioURL)
	if !ok {
		ref, ok = sound.Attr(attrItemAudioURL)
	}
	if ok {
		u, err := ctx.resolve(ref)
		if err != nil {
			v.Fail("url", err)
		} else {
			audio.Set(u)
		}
	} else {
		v.Fail("url", ErrMissingExpectedField)
	}

	if _, err := v.Validate(); err != nil {
		return nil, err
	}

	return &Recording{URL: audio.Value(), Lang: lang.Value()}, nil
}
