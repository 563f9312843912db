package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/pending/internal/model"
	"github.com/nhle/pending/internal/store"
)

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the saved view, language and theme",
		Args:  cobra.NoArgs,
		RunE:  runPrefs,
	}

	cmd.Flags().String("view", "", "Set the current view")
	cmd.Flags().String("lang", "", "Set the language (pt, en)")
	cmd.Flags().String("theme", "", "Set the theme (light, dark)")

	return cmd
}

func runPrefs(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	e, err := openEnv(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p := e.prefs

	if s := lowerFlag(cmd, "view"); s != "" {
		v := model.View(s)
		if !v.Valid() {
			return fmt.Errorf("unknown view %q", s)
		}
		if err := store.SaveView(ctx, e.db, v); err != nil {
			return err
		}
		p.View = v
	}
	if s := lowerFlag(cmd, "lang"); s != "" {
		l := model.Language(s)
		if !l.Valid() {
			return fmt.Errorf("unknown language %q", s)
		}
		if err := store.SaveLanguage(ctx, e.db, l); err != nil {
			return err
		}
		p.Language = l
	}
	if s := lowerFlag(cmd, "theme"); s != "" {
		t := model.Theme(s)
		if !t.Valid() {
			return fmt.Errorf("unknown theme %q", s)
		}
		if err := store.SaveTheme(ctx, e.db, t); err != nil {
			return err
		}
		p.Theme = t
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "view:  %s\n", p.View)
	fmt.Fprintf(out, "lang:  %s\n", p.Language)
	fmt.Fprintf(out, "theme: %s\n", p.Theme)
	return nil
}

func lowerFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return strings.ToLower(strings.TrimSpace(v))
}
