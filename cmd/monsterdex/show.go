package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/monsterdex/monsterdex/internal/catalog"
	"github.com/monsterdex/monsterdex/internal/models"
	"github.com/monsterdex/monsterdex/internal/repository"
	"github.com/monsterdex/monsterdex/internal/tui/views/dex"
)

// outputWidth is the render width for text output outside the session.
const outputWidth = 80

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func newShowCmd(opts *options) *cobra.Command {
	var (
		output      string
		resistances bool
		fromDB      bool
	)

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one creature's entry",
		Long:  `Show a creature's stats, skills and breeding relations. Names are matched case-insensitively.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromDB {
				return showStored(cmd, opts, args[0], output, resistances)
			}

			s, err := openSession(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			c, ok := s.cat.FindByName(args[0])
			if !ok {
				return notFoundError(s.cat, args[0])
			}

			return writeCreature(cmd.OutOrStdout(), s.cat, c, output, resistances)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&resistances, "resistances", false, "Include the resistance table in text output")
	cmd.Flags().BoolVar(&fromDB, "from-db", false, "Read the creature from the snapshot database instead of the data files")

	return cmd
}

// showStored prints a creature as the last export recorded it.
func showStored(cmd *cobra.Command, opts *options, name, output string, resistances bool) error {
	ctx := cmd.Context()

	s, err := openConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := openSnapshot(ctx, s.cfg, opts.dbPath, nil, true)
	if err != nil {
		return err
	}
	defer snap.Close()

	c, err := snap.svc.Lookup(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("no creature named %q in %s", name, snap.path)
	}
	if err != nil {
		return err
	}

	return writeCreature(cmd.OutOrStdout(), nil, c, output, resistances)
}

// notFoundError reports an unknown creature name with close matches, if any.
func notFoundError(cat *catalog.Catalog, name string) error {
	if suggestions := cat.Suggest(name, 3); len(suggestions) > 0 {
		return fmt.Errorf("no creature named %q (did you mean: %s?)", name, strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("no creature named %q", name)
}

// writeCreature prints c in format. A nil catalog renders relations without
// resolving them.
func writeCreature(w io.Writer, cat *catalog.Catalog, c *models.Creature, format string, resistances bool) error {
	switch format {
	case outputText:
		view := dex.NewEntryView(cat)
		view.SetShowResistances(resistances)
		_, err := fmt.Fprintln(w, view.Render(c, outputWidth))
		return err

	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil

	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}
