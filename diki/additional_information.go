package diki

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/dikicrawler/dom"
	"github.com/dszqbsm/dikicrawler/validator"
)

type AdditionalInformation struct {
	Popularity       *int     `json:"popularity,omitempty"`
	LanguageVariety  string   `json:"languageVariety,omitempty"`
	LanguageRegister []string `json:"languageRegister,omitempty"`
	Other            []string `json:"other,omitempty"`
}

/*
Input: the page context and an additional information block. Output: the block, or nil.

Popularity is the number of star glyphs, zero included when the marker is empty. Bare text
is parenthesised, so it loses its first and last characters and is dropped when nothing
remains.
*/
func ParseAdditionalInformation(ctx *Context, sel *goquery.Selection) (*AdditionalInformation, error) {
	const section = "AdditionalInformation"

	v := validator.New(section)
	popularity := validator.Optional[int](v, "popularity", validator.Guarded())
	variety := validator.Optional[string](v, "languageVariety", validator.Guarded())
	register := validator.OptionalList[string](v, "languageRegister")
	other := validator.OptionalList[string](v, "other")

	sel.Contents().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch classify(child.Get(0)) {
		case KindPopularity:
			popularity.Set(utf8.RuneCountInString(child.Text()))
		case KindLanguageVariety:
			variety.Set(child.Text())
		case KindLanguageRegister:
			register.Append(child.Text())
		case KindText:
			if text := dom.StripBrackets(strings.TrimSpace(child.Text())); text != "" {
				other.Append(text)
			}
		case KindComment:
		default:
			ctx.unknown(section, child)
		}
		return v.Err() == nil
	})

	present, err := v.Validate()
	if err != nil || !present {
		return nil, err
	}

	info := &AdditionalInformation{
		LanguageVariety:  variety.Value(),
		LanguageRegister: register.Items(),
		Other:            other.Items(),
	}
	if stars, ok := popularity.Get(); ok {
		info.Popularity = &stars
	}
	return info, nil
}
