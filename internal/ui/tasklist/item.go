package tasklist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/pending/internal/i18n"
	"github.com/nhle/pending/internal/model"
	"github.com/nhle/pending/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// ItemDelegate implements list.ItemDelegate for rendering tasks.
type ItemDelegate struct {
	tr     *i18n.Translator
	styles theme.Styles
}

// NewDelegate returns a delegate rendering with the given language and theme.
func NewDelegate(tr *i18n.Translator, styles theme.Styles) ItemDelegate {
	return ItemDelegate{tr: tr, styles: styles}
}

// Height returns the number of lines each item takes: title and meta.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.render(ti.Task, index == m.Index()))
}

func (d ItemDelegate) render(t model.Task, isSelected bool) string {
	check := "○"
	if t.Completed {
		check = "✓"
	}

	star := d.styles.StarOff.Render("☆")
	if t.Favorite {
		star = d.styles.Star.Render("★")
	}

	title := t.Title
	if title == "" {
		title = d.tr.T(i18n.Untitled)
	}
	if t.Completed {
		title = d.styles.Dimmed.Render(title)
	}

	badge := d.styles.PriorityBadge(t.Priority).Render(d.tr.PriorityLabel(t.Priority))

	line := fmt.Sprintf("%s %s %s %s", check, star, title, badge)
	meta := "  " + d.styles.Meta.Render(d.tr.Meta(t))

	if isSelected {
		return d.styles.SelectedItem.Render(line + "\n" + meta)
	}
	return d.styles.ListItem.Render(line + "\n" + meta)
}
