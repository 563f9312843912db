// Package view derives the ordered list of tasks shown for a view and a
// search query. Everything here is pure: no state, no I/O.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/nhle/pending/internal/model"
)

// Today returns the local calendar date of now in YYYY-MM-DD form, the
// format stored in Task.Date.
func Today(now time.Time) string {
	return now.Format(model.DateLayout)
}

// Project filters tasks by view and query, then sorts them: incomplete
// before completed, favorites before the rest, oldest first. The input is
// left untouched and a fresh slice is returned on every call.
func Project(tasks []model.Task, v model.View, query, today string) []model.Task {
	q := normalizeQuery(query)

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !Matches(t, v, today) || !matchesNormalized(t, q) {
			continue
		}
		out = append(out, t.Clone())
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

// Matches reports whether t belongs to view v on the given day. Deleted
// tasks only ever show in the trash, and the trash only shows deleted tasks.
func Matches(t model.Task, v model.View, today string) bool {
	if v == model.ViewTrash {
		return t.Deleted
	}
	if t.Deleted {
		return false
	}

	switch v {
	case model.ViewToday:
		return t.Date != nil && *t.Date == today
	case model.ViewFavorites:
		return t.Favorite
	case model.ViewAssigned:
		return t.HasAssignee()
	default:
		return true
	}
}

// MatchesQuery reports whether the case-folded query occurs in any of the
// task's text fields. A blank query matches everything.
func MatchesQuery(t model.Task, query string) bool {
	return matchesNormalized(t, normalizeQuery(query))
}

// Counts returns how many tasks each view holds, ignoring any search.
func Counts(tasks []model.Task, today string) map[model.View]int {
	counts := make(map[model.View]int, len(model.Views))
	for _, v := range model.Views {
		counts[v] = 0
	}
	for _, t := range tasks {
		for _, v := range model.Views {
			if Matches(t, v, today) {
				counts[v]++
			}
		}
	}
	return counts
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func matchesNormalized(t model.Task, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(haystack(t), q)
}

// haystack joins the searchable fields that are present.
func haystack(t model.Task) string {
	fields := []string{t.Title}
	for _, f := range []*string{t.Label, t.Assignee, t.Description} {
		if f != nil && *f != "" {
			fields = append(fields, *f)
		}
	}
	if t.Priority != nil && *t.Priority != "" {
		fields = append(fields, string(*t.Priority))
	}
	for _, f := range []*string{t.Date, t.Time} {
		if f != nil && *f != "" {
			fields = append(fields, *f)
		}
	}
	return strings.ToLower(strings.Join(fields, " "))
}

func less(a, b model.Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	if a.Favorite != b.Favorite {
		return a.Favorite
	}
	return a.CreatedAt.Before(b.CreatedAt)
}
