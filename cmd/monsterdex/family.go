package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/monsterdex/monsterdex/internal/models"
	"github.com/monsterdex/monsterdex/internal/tui/components"
	"github.com/monsterdex/monsterdex/internal/tui/views/dex"
)

func newFamilyCmd(opts *options) *cobra.Command {
	var (
		fromDB bool
		page   int
	)

	cmd := &cobra.Command{
		Use:   "family [tag]",
		Short: "List the creatures of a family",
		Long: `List every creature of one family in catalog order. Without a tag, list the
whole library with per-family counts.

With --from-db, list the family as the last export stored it, one page at
a time.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromDB {
				if len(args) == 0 {
					return errors.New("--from-db needs a family tag")
				}
				return listStored(cmd, opts, args[0], page)
			}

			s, err := openSession(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				_, err := fmt.Fprintln(out, dex.NewLibraryList(s.cat, outputWidth).Render())
				return err
			}

			tax := s.cat.Taxonomy()
			family, ok := tax.LookupFamily(args[0])
			if !ok {
				return fmt.Errorf("unknown family %q (want one of: %s)", args[0], familyTags(tax))
			}

			_, err = fmt.Fprintln(out, dex.NewFamilyList(s.cat, family, outputWidth).Render())
			return err
		},
	}

	cmd.Flags().BoolVar(&fromDB, "from-db", false, "List the family from the snapshot database")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show with --from-db")

	return cmd
}

// listStored prints one page of a family read back from the snapshot.
func listStored(cmd *cobra.Command, opts *options, tag string, page int) error {
	ctx := cmd.Context()

	s, err := openConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	tax := models.DefaultTaxonomy()
	family, ok := tax.LookupFamily(tag)
	if !ok {
		return fmt.Errorf("unknown family %q (want one of: %s)", tag, familyTags(tax))
	}

	snap, err := openSnapshot(ctx, s.cfg, opts.dbPath, tax, true)
	if err != nil {
		return err
	}
	defer snap.Close()

	pagination := models.DefaultPagination()
	pagination.Page = page
	list, err := snap.svc.ListFamily(ctx, family, pagination)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if list.Total == 0 {
		_, err := fmt.Fprintf(out, "No %s family creatures in %s.\n", family, snap.path)
		return err
	}

	table := components.NewTable([]components.Column{
		{Title: "Name", Width: 14},
		{Title: "HP", Width: 4, Align: lipgloss.Right},
		{Title: "MP", Width: 4, Align: lipgloss.Right},
		{Title: "ATK", Width: 4, Align: lipgloss.Right},
		{Title: "DEF", Width: 4, Align: lipgloss.Right},
		{Title: "AGL", Width: 4, Align: lipgloss.Right},
		{Title: "INT", Width: 4, Align: lipgloss.Right},
	})
	plain := lipgloss.NewStyle()
	table.SetStyles(plain.Bold(true), plain, plain, plain)
	for _, c := range list.Creatures {
		table.AddRow(c.Name,
			strconv.Itoa(c.Stats.HP),
			strconv.Itoa(c.Stats.MP),
			strconv.Itoa(c.Stats.Attack),
			strconv.Itoa(c.Stats.Defense),
			strconv.Itoa(c.Stats.Agility),
			strconv.Itoa(c.Stats.Intelligence),
		)
	}
	table.SetFooter(fmt.Sprintf("page %d of %d (%d total)", max(list.Page, 1), list.TotalPages, list.Total))

	_, err = fmt.Fprintln(out, table.Render())
	return err
}

func familyTags(tax *models.Taxonomy) string {
	families := tax.Families()
	tags := make([]string, 0, len(families))
	for _, f := range families {
		tags = append(tags, string(f))
	}
	return strings.Join(tags, ", ")
}
