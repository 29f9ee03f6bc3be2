package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/caedis/fabric-mod-manager/internal/logging"
	"github.com/caedis/fabric-mod-manager/internal/updater"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	listSide  string
	listPlain bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed mods",
	Long: `List installed mods as a table of id, version, side and file name.

Use --plain for one "<id> <version>" line per mod, suitable for scripts.
Versions marked with * are not semantic versions and are skipped by update.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := normalizeSide(listSide)
		if err != nil {
			return err
		}
		opts, err := updaterOptions()
		if err != nil {
			return err
		}
		entries, err := updater.List(opts)
		if err != nil {
			return err
		}
		entries = filterSide(entries, filter)

		if listPlain {
			for _, e := range entries {
				logging.Infof("%s %s\n", e.ID, e.Version)
			}
			return nil
		}
		if len(entries) == 0 {
			logging.Infoln("No mods installed.")
			return nil
		}
		renderList(logging.Writer(), entries)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listSide, "side", "", "Only show mods that load on this side: client or server")
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "Print \"<id> <version>\" lines instead of a table")
	rootCmd.AddCommand(listCmd)
}

func normalizeSide(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "", "client", "server":
		return s, nil
	default:
		return "", wrapUsageError(fmt.Errorf("invalid --side %q (expected client or server)", raw))
	}
}

func filterSide(entries []updater.ListEntry, installSide string) []updater.ListEntry {
	if installSide == "" {
		return entries
	}
	var out []updater.ListEntry
	for _, e := range entries {
		if e.Environment.IncludedIn(installSide) {
			out = append(out, e)
		}
	}
	return out
}

func renderList(w io.Writer, entries []updater.ListEntry) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Version", "Side", "File"})
	for _, e := range entries {
		version := e.Version
		if !e.IsSemver {
			version += " *"
		}
		t.AppendRow(table.Row{e.ID, version, e.Environment.String(), e.FileName})
	}
	t.Render()

	for _, e := range entries {
		if !e.IsSemver {
			fmt.Fprintln(w, "* version is not semantic; update cannot check this mod")
			break
		}
	}
}
