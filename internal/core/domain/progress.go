package domain

import (
	"fmt"
	"math"
)

// Progress is a completion ratio. Percent is exact; Rounded is the 0-decimal display value.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	Rounded   int     `json:"rounded"`
}

// NewProgress computes completed/total*100, or 0 when total is 0.
func NewProgress(completed, total int) Progress {
	p := Progress{Completed: completed, Total: total}
	if total <= 0 {
		return p
	}
	p.Percent = float64(completed) * 100 / float64(total)
	p.Rounded = int(math.Round(p.Percent))
	return p
}

// Display renders the rounded percentage, e.g. "38%".
func (p Progress) Display() string {
	return fmt.Sprintf("%d%%", p.Rounded)
}

// CategoryProgress is overall progress plus a breakdown by group.
type CategoryProgress[K comparable] struct {
	Overall Progress       `json:"overall"`
	ByGroup map[K]Progress `json:"byGroup"`
}

func groupProgress[K comparable, T any](items []T, group func(T) K, done func(T) bool) CategoryProgress[K] {
	totals := make(map[K]int)
	completed := make(map[K]int)
	completedAll := 0
	for _, item := range items {
		k := group(item)
		totals[k]++
		if done(item) {
			completed[k]++
			completedAll++
		}
	}
	byGroup := make(map[K]Progress, len(totals))
	for k, total := range totals {
		byGroup[k] = NewProgress(completed[k], total)
	}
	return CategoryProgress[K]{
		Overall: NewProgress(completedAll, len(items)),
		ByGroup: byGroup,
	}
}
