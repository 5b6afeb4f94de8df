package diki

// All knowledge of diki.pl class names lives in this file. Parsers switch on Kind only.

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindComment
	KindLineBreak
	KindAnchor
	KindHeadwords
	KindHeadword
	KindHeadwordComma
	KindPicture
	KindPartOfSpeechHeader
	KindMeaningList
	KindIrregularForms
	KindAdditionalSentences
	KindFormTerm
	KindFormLabel
	KindRecordings
	KindRecording
	KindTranscription
	KindHeaderInfo
	KindMeaningInfo
	KindPopularity
	KindLanguageVariety
	KindLanguageRegister
	KindNotForChildren
	KindGrammarTag
	KindExampleSentence
	KindTranslation
	KindThematicDictionary
	KindRef
	KindRefIcon
	KindNote
	KindMisc
	KindCopyright
	KindRepetitionIcon
)

var kindNames = map[Kind]string{
	KindUnknown:             "unknown",
	KindText:                "text",
	KindComment:             "comment",
	KindLineBreak:           "br",
	KindAnchor:              "a",
	KindHeadwords:           "hws",
	KindHeadword:            "hw",
	KindHeadwordComma:       "hwcomma",
	KindPicture:             "dictpict",
	KindPartOfSpeechHeader:  "partOfSpeechSectionHeader",
	KindMeaningList:         "foreignToNativeMeanings",
	KindIrregularForms:      "vf",
	KindAdditionalSentences: "additionalSentences",
	KindFormTerm:            "foreignTermText",
	KindFormLabel:           "foreignTermHeader",
	KindRecordings:          "recordingsAndTranscriptions",
	KindRecording:           "hasRecording",
	KindTranscription:       "phoneticTranscription",
	KindHeaderInfo:          "dictionaryEntryHeaderAdditionalInformation",
	KindMeaningInfo:         "meaningAdditionalInformation",
	KindPopularity:          "starsForNumOccurrences",
	KindLanguageVariety:     "languageVariety",
	KindLanguageRegister:    "languageRegister",
	KindNotForChildren:      "hiddenNotForChildrenMeaning",
	KindGrammarTag:          "grammarTag",
	KindExampleSentence:     "exampleSentence",
	KindTranslation:         "exampleSentenceTranslation",
	KindThematicDictionary:  "cat",
	KindRef:                 "ref",
	KindRefIcon:             "refIcon",
	KindNote:                "nt",
	KindMisc:                "mf",
	KindCopyright:           "meaning_copyright",
	KindRepetitionIcon:      "repetitionAddOrRemoveIconAnchor",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

type marker struct {
	kind Kind
	sel  cascadia.Selector
}

// Class markers come before tag markers, so an icon anchor is never taken for a term anchor.
var markers = []marker{
	{KindHeadwords, cascadia.MustCompile(".hws")},
	{KindHeadword, cascadia.MustCompile(".hw")},
	{KindHeadwordComma, cascadia.MustCompile(".hwcomma")},
	{KindPicture, cascadia.MustCompile(".dictpict")},
	{KindPartOfSpeechHeader, cascadia.MustCompile(".partOfSpeechSectionHeader")},
	{KindMeaningList, cascadia.MustCompile(".foreignToNativeMeanings")},
	{KindIrregularForms, cascadia.MustCompile(".vf")},
	{KindAdditionalSentences, cascadia.MustCompile(".additionalSentences")},
	{KindFormTerm, cascadia.MustCompile(".foreignTermText")},
	{KindFormLabel, cascadia.MustCompile(".foreignTermHeader")},
	{KindRecordings, cascadia.MustCompile(".recordingsAndTranscriptions")},
	{KindRecording, cascadia.MustCompile(".hasRecording")},
	{KindTranscription, cascadia.MustCompile(".phoneticTranscription")},
	{KindHeaderInfo, cascadia.MustCompile(".dictionaryEntryHeaderAdditionalInformation")},
	{KindMeaningInfo, cascadia.MustCompile(".meaningAdditionalInformation")},
	{KindPopularity, cascadia.MustCompile(".starsForNumOccurrences")},
	{KindLanguageVariety, cascadia.MustCompile(".languageVariety")},
	{KindLanguageRegister, cascadia.MustCompile(".languageRegister")},
	{KindNotForChildren, cascadia.MustCompile(".hiddenNotForChildrenMeaning")},
	{KindGrammarTag, cascadia.MustCompile(".grammarTag")},
	{KindExampleSentence, cascadia.MustCompile(".exampleSentence")},
	{KindTranslation, cascadia.MustCompile(".exampleSentenceTranslation")},
	{KindThematicDictionary, cascadia.MustCompile(".cat")},
	{KindRef, cascadia.MustCompile(".ref")},
	{KindRefIcon, cascadia.MustCompile(".refIcon")},
	{KindNote, cascadia.MustCompile(".nt")},
	{KindMisc, cascadia.MustCompile(".mf")},
	{KindCopyright, cascadia.MustCompile(".meaning_copyright")},
	{KindRepetitionIcon, cascadia.MustCompile(".repetitionAddOrRemoveIconAnchor")},
	{KindLineBreak, cascadia.MustCompile("br")},
	{KindAnchor, cascadia.MustCompile("a")},
}

// classify maps a node onto the closed set of kinds the parsers understand.
func classify(n *html.Node) Kind {
	if n == nil {
		return KindUnknown
	}
	switch n.Type {
	case html.TextNode:
		return KindText
	case html.CommentNode:
		return KindComment
	case html.ElementNode:
	default:
		return KindUnknown
	}
	for _, m := range markers {
		if m.sel.Match(n) {
			return m.kind
		}
	}
	return KindUnknown
}

func is(kinds ...Kind) func(*html.Node) bool {
	return func(n *html.Node) bool {
		k := classify(n)
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	}
}

// Secondary selectors, used inside an already classified node.
var (
	lessPopularHeadword = cascadia.MustCompile(".hwLessPopularAlternative")
	partOfSpeechLabel   = cascadia.MustCompile(".partOfSpeech")
	soundOnClick        = cascadia.MustCompile(".soundOnClick")
	headingTag          = cascadia.MustCompile("h1")
	listItemTag         = cascadia.MustCompile("li")
	anchorTag           = cascadia.MustCompile("a")
	imageTag            = cascadia.MustCompile("img")
	noteMarker          = cascadia.MustCompile(".nt")
)

const (
	attrClass        = "class"
	attrID           = "id"
	attrSrc          = "src"
	attrAudioURL     = "data-audio-url"
	attrItemAudioURL = "item-audio-url"
)

// Path from the "#en-pl" anchor to the entity fragments: its parent, the next sibling
// results container, the left column, one wrapper level, then the entities.
const (
	containerExpr = `//*[@id='en-pl']/parent::*/following-sibling::*[1]` +
		`[contains(concat(' ', normalize-space(@class), ' '), ' diki-results-container ')]`
	entityExpr = containerExpr +
		`/*[contains(concat(' ', normalize-space(@class), ' '), ' diki-results-left-column ')]` +
		`/*/*[contains(concat(' ', normalize-space(@class), ' '), ' dictionaryEntity ')]`
)
