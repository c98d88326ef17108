package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStore(t *testing.T) *Store {
	t.Helper()
	return NewStore([]Todo{
		{Text: "Milk", Category: "Groceries"},
		{Text: "Call mom", Category: "Family", Done: true},
		{Text: "Write report", Category: "Work"},
		{Text: "Review PR", Category: "work", Done: true},
		{Text: "Plan offsite", Category: "Work2"},
		{Text: "Water plants"},
	})
}

func TestFilter_ZeroValueShowsEverything(t *testing.T) {
	s := sampleStore(t)
	var f Filter

	assert.False(t, f.Active())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, f.Visible(s))
}

func TestFilter_Status(t *testing.T) {
	s := sampleStore(t)

	assert.Equal(t, []int{0, 2, 4, 5}, Filter{Status: StatusPending}.Visible(s))
	assert.Equal(t, []int{1, 3}, Filter{Status: StatusDone}.Visible(s))
}

func TestFilter_CategoryIsExactCaseInsensitive(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"work", true},
		{"WORK", true},
		{"Work", true},
		{"Work2", false},
		{"Wor", false},
		{"", false},
	}
	f := Filter{Category: "Work"}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := f.Matches(Todo{Text: "anything", Category: tt.category})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_SearchIsSubstringOfTextOrCategory(t *testing.T) {
	s := sampleStore(t)

	// "mil" hits the text "Milk" and the category "Family".
	assert.Equal(t, []int{0, 1}, Filter{Search: "mil"}.Visible(s))
	assert.Equal(t, []int{2, 3, 4}, Filter{Search: "WORK"}.Visible(s))
	assert.Empty(t, Filter{Search: "zzz"}.Visible(s))
}

func TestFilter_CriteriaCombine(t *testing.T) {
	s := sampleStore(t)

	f := Filter{Status: StatusDone, Category: "work"}
	assert.Equal(t, []int{3}, f.Visible(s))

	f.Search = "review"
	assert.Equal(t, []int{3}, f.Visible(s))

	f.Search = "report"
	assert.Empty(t, f.Visible(s))
}

func TestFilter_AddingCriterionNeverGrowsVisibleSet(t *testing.T) {
	s := sampleStore(t)
	statuses := []StatusFilter{StatusAll, StatusPending, StatusDone}
	categories := []string{"", "work", "family", "nope"}
	searches := []string{"", "mil", "r", "zzz"}

	subset := func(small, big []int) bool {
		in := make(map[int]bool, len(big))
		for _, i := range big {
			in[i] = true
		}
		for _, i := range small {
			if !in[i] {
				return false
			}
		}
		return true
	}

	for _, st := range statuses {
		for _, cat := range categories {
			for _, q := range searches {
				full := Filter{Status: st, Category: cat, Search: q}
				got := full.Visible(s)

				loosened := []Filter{
					{Category: cat, Search: q},
					{Status: st, Search: q},
					{Status: st, Category: cat},
				}
				for _, l := range loosened {
					assert.True(t, subset(got, l.Visible(s)), "%+v visible %v not within %+v", full, got, l)
				}
			}
		}
	}
}

func TestFilter_EmptyStore(t *testing.T) {
	s := NewStore(nil)
	assert.Empty(t, Filter{Status: StatusDone, Category: "x", Search: "y"}.Visible(s))
}

func TestStatusFilter_NextCycles(t *testing.T) {
	st := StatusAll
	st = st.Next()
	assert.Equal(t, StatusPending, st)
	st = st.Next()
	assert.Equal(t, StatusDone, st)
	st = st.Next()
	assert.Equal(t, StatusAll, st)
}

func TestParseStatusFilter(t *testing.T) {
	for in, want := range map[string]StatusFilter{
		"":        StatusAll,
		"all":     StatusAll,
		"Pending": StatusPending,
		" done ":  StatusDone,
	} {
		got, err := ParseStatusFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatusFilter("later")
	assert.Error(t, err)
}

func TestFilter_ResetAndDescribe(t *testing.T) {
	f := Filter{Status: StatusPending, Category: "Work", Search: "rep"}
	require.True(t, f.Active())

	cat, status, search := f.Describe()
	assert.Equal(t, "Work", cat)
	assert.Equal(t, "Pending", status)
	assert.Equal(t, "rep", search)

	f.Reset()
	assert.False(t, f.Active())
	cat, status, search = f.Describe()
	assert.Equal(t, "All", cat)
	assert.Equal(t, "All", status)
	assert.Equal(t, "None", search)
}

func TestEndToEnd_CategoryFilter(t *testing.T) {
	s := NewStore(nil)
	_, err := s.Add("Buy milk")
	require.NoError(t, err)
	_, err = s.Add("Call Bob")
	require.NoError(t, err)
	require.True(t, s.SetCategory(0, "Errands"))

	for _, cat := range []string{"errands", "ERRANDS", "Errands"} {
		visible := Filter{Category: cat}.Visible(s)
		require.Len(t, visible, 1)
		got, _ := s.At(visible[0])
		assert.Equal(t, "Buy milk", got.Text)
	}
}
