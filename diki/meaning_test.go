package diki

import (
	"errors"
	"testing"

	"github.com/dszqbsm/dikicrawler/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeaning(t *testing.T) {
	ctx, sel, rep := fragment(t, `<ol class="foreignToNativeMeanings"><li id="meaning7_id">
		<span class="hw">kot</span>, <span class="hw">kotka</span>
		<span class="grammarTag">[C]</span>
		<span class="meaningAdditionalInformation"><span class="languageRegister">informal</span></span>
		<span class="mf">mf-7</span>
		<span class="nt">not to be confused with a lion</span>
		<div class="exampleSentence">The cat sat. <span class="exampleSentenceTranslation">(Kot siedział.)</span></div>
		<div class="cat">Animals</div>
		<div class="ref"><div>see also: <a>kitten</a></div></div>
		<div class="meaning_copyright"> PWN </div>
		<a class="repetitionAddOrRemoveIconAnchor"></a>
		<!-- end -->
		<blink>odd</blink>
	</li></ol>`, "li")

	got, err := ParseMeaning(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, &Meaning{
		ID:                    "7",
		Terms:                 "kot, kotka",
		AdditionalInformation: &AdditionalInformation{LanguageRegister: []string{"informal"}},
		GrammarTags:           []string{"C"},
		MF:                    "mf-7",
		ExampleSentences:      []ExampleSentence{{Sentence: "The cat sat.", Translation: "Kot siedział."}},
		ThematicDictionaries:  []string{"Animals"},
		Note:                  "not to be confused with a lion",
		Refs:                  []Ref{{Type: "see also", Items: []RefItem{{Term: "kitten"}}}},
		Copyright:             "PWN",
	}, got)
	assert.Equal(t, []string{"Meaning"}, rep.sections())
}

func TestParseMeaning_HiddenNotForChildren(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		wantID string
	}{
		{
			name:   "dashed id",
			markup: `<ul><li id="meaning-42-xx"><span class="hiddenNotForChildrenMeaning">vulgar term</span></li></ul>`,
			wantID: "42",
		},
		{
			name:   "underscore id",
			markup: `<ul><li id="meaning42_id"><span class="hiddenNotForChildrenMeaning">vulgar term</span></li></ul>`,
			wantID: "42",
		},
		{
			name:   "outer text is discarded",
			markup: `<ul><li id="meaning42_id">decoy <span class="hiddenNotForChildrenMeaning"> vulgar term </span></li></ul>`,
			wantID: "42",
		},
		{
			name:   "id on the hidden element",
			markup: `<ul><li><span class="hiddenNotForChildrenMeaning" id="meaning99_id">vulgar term</span></li></ul>`,
			wantID: "99",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, sel, _ := fragment(t, tt.markup, "li")

			got, err := ParseMeaning(ctx, sel)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, "vulgar term", got.Terms)
			assert.True(t, got.NotForChildren)
		})
	}
}

func TestParseMeaningWithID(t *testing.T) {
	ctx, sel, _ := fragment(t, `<ul><li id="meaning42_id"><span class="hiddenNotForChildrenMeaning">vulgar term</span></li></ul>`, "li")

	got, err := ParseMeaningWithID(ctx, sel, "given")
	require.NoError(t, err)
	assert.Equal(t, "given", got.ID)
	assert.True(t, got.NotForChildren)
}

func TestParseMeaning_Errors(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		field   string
		wantErr error
	}{
		{
			name:    "missing id",
			markup:  `<ul><li>plain</li></ul>`,
			field:   "id",
			wantErr: validator.ErrMissingRequiredField,
		},
		{
			name:    "missing terms",
			markup:  `<ul><li id="meaning1_id"><span class="nt">note</span></li></ul>`,
			field:   "terms",
			wantErr: validator.ErrMissingRequiredField,
		},
		{
			name:    "two notes",
			markup:  `<ul><li id="meaning1_id">term<span class="nt">a</span><span class="nt">b</span></li></ul>`,
			field:   "note",
			wantErr: validator.ErrDuplicateFieldWrite,
		},
		{
			name:    "two mf markers",
			markup:  `<ul><li id="meaning1_id">term<span class="mf">x</span><span class="mf">x</span></li></ul>`,
			field:   "mf",
			wantErr: validator.ErrDuplicateFieldWrite,
		},
		{
			name:    "broken example",
			markup:  `<ul><li id="meaning1_id">term<div class="exampleSentence">no translation</div></li></ul>`,
			field:   "exampleSentences",
			wantErr: validator.ErrMissingRequiredField,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, sel, _ := fragment(t, tt.markup, "li")

			got, err := ParseMeaning(ctx, sel)
			assert.Nil(t, got)
			var fieldErr *validator.FieldError
			require.True(t, errors.As(err, &fieldErr), "got %v", err)
			assert.Equal(t, "Meaning", fieldErr.Record)
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestMeaningID(t *testing.T) {
	tests := []struct {
		id     string
		want   string
		wantOK bool
	}{
		{id: "meaning42_id", want: "42", wantOK: true},
		{id: "meaning-42-xx", want: "42", wantOK: true},
		{id: "meaning12345_id", want: "12345", wantOK: true},
		{id: "meaning_id", wantOK: false},
		{id: "short", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, sel, _ := fragment(t, `<ul><li id="`+tt.id+`">x</li></ul>`, "li")
			got, ok := meaningID(sel)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
