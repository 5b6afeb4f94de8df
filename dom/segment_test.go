package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func isUpper(s string) bool { return strings.ToUpper(s) == s }

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  [][]string
	}{
		{name: "empty", items: nil, want: nil},
		{name: "no marker", items: []string{"a", "b"}, want: nil},
		{name: "single run", items: []string{"A", "b", "c"}, want: [][]string{{"A", "b", "c"}}},
		{name: "adjacent markers", items: []string{"A", "B", "c"}, want: [][]string{{"A"}, {"B", "c"}}},
		{name: "leading items dropped", items: []string{"x", "A", "b", "C"}, want: [][]string{{"A", "b"}, {"C"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.items, isUpper))
		})
	}
}

func TestSegment_Completeness(t *testing.T) {
	inputs := [][]string{
		{"A", "b", "c", "D", "e", "F"},
		{"A", "B", "C"},
		{"A"},
		{"A", "b", "b", "b", "b"},
	}
	for _, items := range inputs {
		runs := Segment(items, isUpper)

		markers := 0
		for _, item := range items {
			if isUpper(item) {
				markers++
			}
		}
		assert.Len(t, runs, markers)

		var flat []string
		for _, run := range runs {
			assert.True(t, isUpper(run[0]), "every run starts at its marker")
			for _, item := range run[1:] {
				assert.False(t, isUpper(item), "no marker inside a run")
			}
			flat = append(flat, run...)
		}
		assert.Equal(t, items, flat)
	}
}

func TestSplitAt(t *testing.T) {
	head, tail := SplitAt([]string{"a", "b", "C", "d"}, isUpper)
	assert.Equal(t, []string{"a", "b"}, head)
	assert.Equal(t, []string{"C", "d"}, tail)

	head, tail = SplitAt([]string{"a", "b"}, isUpper)
	assert.Equal(t, []string{"a", "b"}, head)
	assert.Empty(t, tail)

	head, tail = SplitAt([]string{"A"}, isUpper)
	assert.Empty(t, head)
	assert.Equal(t, []string{"A"}, tail)
}

func TestGroupAround(t *testing.T) {
	isLead := func(s string) bool { return strings.HasPrefix(s, "pos") }
	isAnchor := func(s string) bool { return strings.HasPrefix(s, "list") }

	tests := []struct {
		name  string
		items []string
		want  [][]string
	}{
		{
			name:  "lead and anchor",
			items: []string{"pos1", "list1", "vf1", "pos2", "list2"},
			want:  [][]string{{"pos1", "list1", "vf1"}, {"pos2", "list2"}},
		},
		{
			name:  "anchor without lead",
			items: []string{"list1", "extra", "list2"},
			want:  [][]string{{"list1", "extra"}, {"list2"}},
		},
		{
			name:  "dangling lead",
			items: []string{"pos1", "list1", "pos2"},
			want:  [][]string{{"pos1", "list1"}},
		},
		{
			name:  "lead not adjacent",
			items: []string{"pos1", "note", "list1"},
			want:  [][]string{{"list1"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupAround(tt.items, isLead, isAnchor))
		})
	}
}
