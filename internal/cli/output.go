package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/nhle/pending/internal/i18n"
	"github.com/nhle/pending/internal/model"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// shortIDLen is how much of an id the text format shows. Commands accept
// any unambiguous prefix, so the short form can be pasted back.
const shortIDLen = 8

func writeTasks(w io.Writer, format string, tr *i18n.Translator, list []model.Task) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(list))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nonNil(list)); err != nil {
			return err
		}
		return enc.Close()
	case formatText, "":
		return writeText(w, tr, list)
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func writeText(w io.Writer, tr *i18n.Translator, list []model.Task) error {
	if len(list) == 0 {
		_, err := fmt.Fprintf(w, "%s. %s\n", tr.T(i18n.NoTasksTitle), tr.T(i18n.NoTasksSub))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s%s\t%s\t%s\t%s\n",
			shortID(t.ID),
			checkMark(t),
			star(t),
			t.Title,
			tr.PriorityLabel(t.Priority),
			tr.Meta(t),
		)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func checkMark(t model.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

func star(t model.Task) string {
	if t.Favorite {
		return "★"
	}
	return " "
}

// nonNil keeps empty listings encoded as [] rather than null.
func nonNil(list []model.Task) []model.Task {
	if list == nil {
		return []model.Task{}
	}
	return list
}
