package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/monsterdex/monsterdex/internal/catalog"
	"github.com/monsterdex/monsterdex/internal/tui/components"
)

func newValidateCmd(opts *options) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the data files and report what they contain",
		Long: `Load the three data files and print record counts, per-family counts and the
names the relation files mention without a creature record. Malformed input
fails with the offending file and line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			unresolved := writeReport(cmd.OutOrStdout(), s.cat, s.cfg.Data.Dir)
			if strict && unresolved > 0 {
				return fmt.Errorf("%d referenced name(s) have no creature record", unresolved)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when relation files name undocumented creatures")

	return cmd
}

// writeReport prints the validation report and returns the unresolved count.
func writeReport(w io.Writer, cat *catalog.Catalog, dir string) int {
	usage, parents := 0, 0
	for range cat.UsageEntries() {
		usage++
	}
	for range cat.ParentEntries() {
		parents++
	}

	fmt.Fprintf(w, "Catalog OK: %s\n", dir)
	fmt.Fprintf(w, "  creatures:          %d\n", cat.Len())
	fmt.Fprintf(w, "  usage entries:      %d\n", usage)
	fmt.Fprintf(w, "  parentage entries:  %d\n", parents)
	fmt.Fprintln(w)

	table := components.NewTable([]components.Column{
		{Title: "Family", Width: 10},
		{Title: "Count", Width: 5, Align: lipgloss.Right},
	})
	plain := lipgloss.NewStyle()
	table.SetStyles(plain.Bold(true), plain, plain, plain)
	for _, fc := range cat.Families() {
		table.AddRow(fc.Family.String(), strconv.Itoa(fc.Count))
	}
	fmt.Fprintln(w, table.Render())

	unresolved := cat.Unresolved()
	fmt.Fprintln(w)
	if len(unresolved) == 0 {
		fmt.Fprintln(w, "Every referenced name has a creature record.")
		return 0
	}

	fmt.Fprintf(w, "%d referenced name(s) without a creature record:\n", len(unresolved))
	for _, name := range unresolved {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return len(unresolved)
}
