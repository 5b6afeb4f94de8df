package diki

import (
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const testPageURL = "https://www.diki.pl/slownik-angielskiego?q=cat"

type report struct {
	section string
	markup  string
	url     string
}

type recordingReporter struct {
	mu      sync.Mutex
	reports []report
}

func (r *recordingReporter) Warn(section, markup, pageURL string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report{section: section, markup: markup, url: pageURL})
}

func (r *recordingReporter) sections() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, rep := range r.reports {
		out = append(out, rep.section)
	}
	return out
}

// fragment parses markup and returns the first element matching selector.
func fragment(t *testing.T, markup, selector string) (*Context, *goquery.Selection, *recordingReporter) {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)

	rep := &recordingReporter{}
	ctx, err := NewContext(doc, testPageURL, WithReporter(rep))
	require.NoError(t, err)

	sel := doc.Find(selector).First()
	require.Equal(t, 1, sel.Length(), "selector %q", selector)

	return ctx, sel, rep
}

func intPtr(n int) *int {
	return &n
}
