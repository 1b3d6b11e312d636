package domain

import (
	"testing"
	"time"
)

func paperAt(id, title string, published time.Time) *Paper {
	return &Paper{ID: id, Title: title, PublishedDate: published}
}

func TestQueryPapersFilter(t *testing.T) {
	now := time.Now()
	papers := []*Paper{
		paperAt("1", "Quantum Computing", now),
		paperAt("2", "Blockchain", now.AddDate(0, 0, -10)),
	}

	got := QueryPapers(papers, "quantum", now.AddDate(0, 0, -7), SortTimestamp)
	if len(got) != 1 {
		t.Fatalf("QueryPapers() returned %d papers, want 1", len(got))
	}
	if got[0].Title != "Quantum Computing" {
		t.Errorf("QueryPapers() returned %q, want %q", got[0].Title, "Quantum Computing")
	}
}

func TestQueryPapersFilterIsCaseInsensitive(t *testing.T) {
	now := time.Now()
	papers := []*Paper{
		paperAt("1", "Deep Learning in Computer Vision", now),
	}

	for _, q := range []string{"DEEP", "deep", "Learning", "computer vision"} {
		got := QueryPapers(papers, q, time.Time{}, SortTimestamp)
		if len(got) != 1 {
			t.Errorf("QueryPapers(%q) returned %d papers, want 1", q, len(got))
		}
	}
}

func TestQueryPapersEmptySearchKeepsAll(t *testing.T) {
	now := time.Now()
	papers := []*Paper{
		paperAt("1", "A", now),
		paperAt("2", "B", now.Add(-time.Hour)),
	}

	got := QueryPapers(papers, "", time.Time{}, SortTimestamp)
	if len(got) != 2 {
		t.Fatalf("QueryPapers() returned %d papers, want 2", len(got))
	}
}

func TestQueryPapersMinDateIsInclusive(t *testing.T) {
	cutoff := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	papers := []*Paper{
		paperAt("1", "On the cutoff", cutoff),
		paperAt("2", "Too old", cutoff.Add(-time.Nanosecond)),
	}

	got := QueryPapers(papers, "", cutoff, SortTimestamp)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("QueryPapers() = %v papers, want only the paper published exactly at the cutoff", len(got))
	}
}

func TestQueryPapersSortOrders(t *testing.T) {
	now := time.Now()
	papers := []*Paper{
		{ID: "a", Title: "Charlie", PublishedDate: now.Add(-2 * time.Hour), Upvotes: 1, Downvotes: 9,
			Comments: []*Comment{{ID: "c1"}}},
		{ID: "b", Title: "Alpha", PublishedDate: now, Upvotes: 5, Downvotes: 2,
			Comments: []*Comment{{ID: "c2"}, {ID: "c3"}, {ID: "c4"}}},
		{ID: "c", Title: "Bravo", PublishedDate: now.Add(-time.Hour), Upvotes: 3, Downvotes: 7,
			Comments: []*Comment{{ID: "c5"}, {ID: "c6"}}},
	}

	tests := []struct {
		name string
		sort SortOption
		want []string // expected paper IDs in order
	}{
		{"alphabetic ascending", SortAlphabetic, []string{"b", "c", "a"}},
		{"upvotes descending", SortUpvotes, []string{"b", "c", "a"}},
		{"downvotes descending", SortDownvotes, []string{"a", "c", "b"}},
		{"comments descending", SortComments, []string{"b", "c", "a"}},
		{"timestamp newest first", SortTimestamp, []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QueryPapers(papers, "", time.Time{}, tt.sort)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d papers, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestQueryPapersTimestampOrderInvariant(t *testing.T) {
	now := time.Now()
	var papers []*Paper
	for i := 0; i < 10; i++ {
		papers = append(papers, paperAt("p", "p", now.Add(time.Duration(i%4)*time.Hour)))
	}

	got := QueryPapers(papers, "", time.Time{}, SortTimestamp)
	for i := 1; i < len(got); i++ {
		if got[i-1].PublishedDate.Before(got[i].PublishedDate) {
			t.Fatalf("timestamp sort violated at index %d", i)
		}
	}
}

func TestQueryPapersDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	papers := []*Paper{
		paperAt("1", "B", now.Add(-time.Hour)),
		paperAt("2", "A", now),
	}

	_ = QueryPapers(papers, "", time.Time{}, SortAlphabetic)

	if papers[0].ID != "1" || papers[1].ID != "2" {
		t.Error("QueryPapers() reordered the input slice")
	}
}

func TestParseSortOption(t *testing.T) {
	tests := []struct {
		in   string
		want SortOption
	}{
		{"title", SortAlphabetic},
		{"upvotes", SortUpvotes},
		{"downvotes", SortDownvotes},
		{"comments", SortComments},
		{"date", SortTimestamp},
		{"", SortTimestamp},
		{"garbage", SortTimestamp},
		{" UPVOTES ", SortUpvotes},
	}
	for _, tt := range tests {
		if got := ParseSortOption(tt.in); got != tt.want {
			t.Errorf("ParseSortOption(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDateRangeSince(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		in   DateRange
		want time.Time
	}{
		{RangeToday, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)},
		{RangeThreeDay, now.AddDate(0, 0, -3)},
		{RangeWeek, now.AddDate(0, 0, -7)},
		{RangeMonth, now.AddDate(0, -1, 0)},
		{RangeYear, now.AddDate(-1, 0, 0)},
	}
	for _, tt := range tests {
		if got := tt.in.Since(now); !got.Equal(tt.want) {
			t.Errorf("DateRange(%s).Since() = %v, want %v", tt.in, got, tt.want)
		}
	}

	if ParseDateRange("bogus") != RangeWeek {
		t.Error("ParseDateRange should default to the last week")
	}
}

func TestMergeMetaPreservesUserState(t *testing.T) {
	p := &Paper{
		ID:        "2104.12345",
		Title:     "Old title",
		Upvotes:   3,
		Downvotes: 1,
		Comments:  []*Comment{{ID: "c1", Text: "nice"}},
	}
	src := &Paper{
		ID:            "2104.12345",
		Title:         "New title",
		Authors:       []string{"Alice"},
		Summary:       "updated",
		PublishedDate: time.Now(),
		PDFURL:        "https://arxiv.org/pdf/2104.12345.pdf",
	}

	p.MergeMeta(src)

	if p.Title != "New title" || p.Summary != "updated" {
		t.Error("MergeMeta should overwrite descriptive fields")
	}
	if p.Upvotes != 3 || p.Downvotes != 1 || len(p.Comments) != 1 {
		t.Error("MergeMeta must not touch votes or comments")
	}
}
