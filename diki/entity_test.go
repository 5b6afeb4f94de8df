package diki

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dszqbsm/dikicrawler/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDictionaryEntity_Minimal(t *testing.T) {
	ctx, sel, rep := fragment(t, `<div class="dictionaryEntity">
		<div class="hws"><h1><span class="hw">cat</span></h1></div>
		<div class="partOfSpeechSectionHeader"><span class="partOfSpeech">noun</span></div>
		<ol class="foreignToNativeMeanings"><li id="meaning1_id"><span class="hw">a small domesticated animal</span></li></ol>
	</div>`, ".dictionaryEntity")

	got, err := ParseDictionaryEntity(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, &DictionaryEntity{
		Headers: []Header{{Title: "cat", LessPopular: false}},
		MeaningGroups: []MeaningGroup{{
			PartOfSpeech: "noun",
			Meanings:     []Meaning{{ID: "1", Terms: "a small domesticated animal"}},
		}},
	}, got)
	assert.Empty(t, rep.reports)
}

func TestParseDictionaryEntity_NoMeanings(t *testing.T) {
	ctx, sel, _ := fragment(t, `<div class="dictionaryEntity"><div class="hws"><h1><span class="hw">cat</span></h1></div></div>`, ".dictionaryEntity")

	got, err := ParseDictionaryEntity(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, "cat", got.Headers[0].Title)
	assert.NotNil(t, got.MeaningGroups)
	assert.Empty(t, got.MeaningGroups)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"meaningGroups":[]`)
}

func TestParseDictionaryEntity_Full(t *testing.T) {
	ctx, sel, rep := fragment(t, `<div class="dictionaryEntity">
		<div class="hws">
			<h1><span class="hw">go</span><span class="hwcomma">,</span><span class="hw hwLessPopularAlternative">goes</span>
			<span class="recordingsAndTranscriptions"><span class="en hasRecording"><span class="soundOnClick" data-audio-url="/go.mp3"></span></span></span></h1>
			<span class="nt">irregular verb</span>
		</div>
		<div class="dictpict"><img src="/pict/go.jpg"></div>
		<div class="partOfSpeechSectionHeader"><span class="partOfSpeech">verb</span></div>
		<ol class="foreignToNativeMeanings">
			<li id="meaning10_id"><span class="hw">iść</span></li>
			<li id="meaning11_id"><span class="hw">jechać</span></li>
		</ol>
		<div class="vf">
			<span class="foreignTermText">went</span><span class="foreignTermHeader">past tense</span>
			<span class="foreignTermText">gone</span><span class="foreignTermHeader">past participle</span>
		</div>
		<div class="additionalSentences">ignored</div>
		<ol class="foreignToNativeMeanings"><li id="meaning12_id"><span class="hw">pójście</span></li></ol>
		<div class="partOfSpeechSectionHeader"><span class="partOfSpeech">noun</span></div>
		<ol class="foreignToNativeMeanings"><li id="meaning13_id"><span class="hw">próba</span></li></ol>
	</div>`, ".dictionaryEntity")

	got, err := ParseDictionaryEntity(ctx, sel)
	require.NoError(t, err)

	require.Len(t, got.Headers, 2)
	assert.Equal(t, "go", got.Headers[0].Title)
	assert.False(t, got.Headers[0].LessPopular)
	assert.Nil(t, got.Headers[0].RecordingsAndTranscriptions)
	assert.Equal(t, "goes", got.Headers[1].Title)
	assert.True(t, got.Headers[1].LessPopular)
	require.NotNil(t, got.Headers[1].RecordingsAndTranscriptions)
	assert.Equal(t, "https://www.diki.pl/go.mp3", got.Headers[1].RecordingsAndTranscriptions.Recordings[0].URL)

	assert.Equal(t, "irregular verb", got.Note)
	assert.Equal(t, []string{"https://www.diki.pl/pict/go.jpg"}, got.Pictures)

	require.Len(t, got.MeaningGroups, 3)
	assert.Equal(t, "verb", got.MeaningGroups[0].PartOfSpeech)
	assert.Len(t, got.MeaningGroups[0].Meanings, 2)
	assert.Equal(t, []Form{
		{Term: "went", Form: "past tense"},
		{Term: "gone", Form: "past participle"},
	}, got.MeaningGroups[0].IrregularForms)
	assert.Equal(t, "", got.MeaningGroups[1].PartOfSpeech)
	assert.Equal(t, "pójście", got.MeaningGroups[1].Meanings[0].Terms)
	assert.Equal(t, "noun", got.MeaningGroups[2].PartOfSpeech)
	assert.Equal(t, "13", got.MeaningGroups[2].Meanings[0].ID)

	assert.Empty(t, rep.reports)
}

func TestParseDictionaryEntity_Errors(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		field   string
		wantErr error
	}{
		{
			name: "no headwords",
			markup: `<div class="dictionaryEntity">
				<ol class="foreignToNativeMeanings"><li id="meaning1_id">x</li></ol></div>`,
			field:   "headers",
			wantErr: validator.ErrMissingRequiredField,
		},
		{
			name: "two headword blocks",
			markup: `<div class="dictionaryEntity">
				<div class="hws"><h1><span class="hw">cat</span></h1></div>
				<div class="hws"><h1><span class="hw">cats</span></h1></div>
				<ol class="foreignToNativeMeanings"><li id="meaning1_id">x</li></ol></div>`,
			field:   "headers",
			wantErr: validator.ErrDuplicateFieldWrite,
		},
		{
			name: "picture without image",
			markup: `<div class="dictionaryEntity">
				<div class="hws"><h1><span class="hw">cat</span></h1></div>
				<div class="dictpict"></div>
				<ol class="foreignToNativeMeanings"><li id="meaning1_id">x</li></ol></div>`,
			field:   "pictures",
			wantErr: ErrMissingExpectedField,
		},
		{
			name: "broken meaning",
			markup: `<div class="dictionaryEntity">
				<div class="hws"><h1><span class="hw">cat</span></h1></div>
				<ol class="foreignToNativeMeanings"><li>x</li></ol></div>`,
			field:   "meaningGroups",
			wantErr: validator.ErrMissingRequiredField,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, sel, _ := fragment(t, tt.markup, ".dictionaryEntity")

			got, err := ParseDictionaryEntity(ctx, sel)
			assert.Nil(t, got)
			var fieldErr *validator.FieldError
			require.True(t, errors.As(err, &fieldErr), "got %v", err)
			assert.Equal(t, "DictionaryEntity", fieldErr.Record)
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestParseDictionaryEntity_UnknownChildren(t *testing.T) {
	ctx, sel, rep := fragment(t, `<div class="dictionaryEntity">
		<div class="hws"><h1><span class="hw">cat</span></h1></div>
		<div class="banner">ad</div>
		<ol class="foreignToNativeMeanings"><li id="meaning1_id">x</li></ol>
		<div class="footer">ad</div>
	</div>`, ".dictionaryEntity")

	_, err := ParseDictionaryEntity(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"DictionaryEntity", "MeaningGroup"}, rep.sections())
	assert.Equal(t, `<div class="banner">ad</div>`, rep.reports[0].markup)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "hw", KindHeadword.String())
	assert.Equal(t, "foreignToNativeMeanings", KindMeaningList.String())
	assert.Equal(t, "unknown", Kind(-1).String())
}
