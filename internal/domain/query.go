package domain

import (
	"sort"
	"strings"
	"time"
)

// SortOption selects the ordering of a paper list.
type SortOption string

const (
	SortAlphabetic SortOption = "title"     // ascending by title
	SortUpvotes    SortOption = "upvotes"   // descending
	SortDownvotes  SortOption = "downvotes" // descending
	SortComments   SortOption = "comments"  // descending by comment count
	SortTimestamp  SortOption = "date"      // descending by published date (default)
)

// ParseSortOption maps user input to a SortOption, defaulting to SortTimestamp.
func ParseSortOption(s string) SortOption {
	switch SortOption(strings.ToLower(strings.TrimSpace(s))) {
	case SortAlphabetic:
		return SortAlphabetic
	case SortUpvotes:
		return SortUpvotes
	case SortDownvotes:
		return SortDownvotes
	case SortComments:
		return SortComments
	default:
		return SortTimestamp
	}
}

// DateRange is a preset lower bound on the published date.
type DateRange string

const (
	RangeToday    DateRange = "today"
	RangeThreeDay DateRange = "3days"
	RangeWeek     DateRange = "week" // default
	RangeMonth    DateRange = "month"
	RangeYear     DateRange = "year"
)

// ParseDateRange maps user input to a DateRange, defaulting to RangeWeek.
func ParseDateRange(s string) DateRange {
	switch DateRange(strings.ToLower(strings.TrimSpace(s))) {
	case RangeToday:
		return RangeToday
	case RangeThreeDay:
		return RangeThreeDay
	case RangeMonth:
		return RangeMonth
	case RangeYear:
		return RangeYear
	default:
		return RangeWeek
	}
}

// Since returns the minimum published date the range allows, relative to now.
func (r DateRange) Since(now time.Time) time.Time {
	switch r {
	case RangeToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case RangeThreeDay:
		return now.AddDate(0, 0, -3)
	case RangeMonth:
		return now.AddDate(0, -1, 0)
	case RangeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// QueryPapers derives the visible list from all stored papers: a
// case-insensitive title filter plus a published-date lower bound,
// then one of five sort orders. Pure and side-effect free; the working
// set is small enough to recompute on every request.
func QueryPapers(papers []*Paper, searchText string, minDate time.Time, sortBy SortOption) []*Paper {
	needle := strings.ToLower(strings.TrimSpace(searchText))

	out := make([]*Paper, 0, len(papers))
	for _, p := range papers {
		if needle != "" && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		if p.PublishedDate.Before(minDate) {
			continue
		}
		out = append(out, p)
	}

	// Stable sort so ties keep a reproducible order.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch sortBy {
		case SortAlphabetic:
			return a.Title < b.Title
		case SortUpvotes:
			return a.Upvotes > b.Upvotes
		case SortDownvotes:
			return a.Downvotes > b.Downvotes
		case SortComments:
			return len(a.Comments) > len(b.Comments)
		default:
			return a.PublishedDate.After(b.PublishedDate)
		}
	})

	return out
}
