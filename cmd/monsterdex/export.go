package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/monsterdex/monsterdex/internal/util"
)

func newExportCmd(opts *options) *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog into a SQLite snapshot",
		Long: `Load the data files and replace the contents of the snapshot database with
them. Each export is recorded; a failed export leaves the previous snapshot
in place.

With --status, report the snapshot's schema and recorded exports instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if status {
				return runExportStatus(cmd, opts)
			}

			ctx := cmd.Context()

			s, err := openSession(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			snap, err := openSnapshot(ctx, s.cfg, opts.dbPath, s.cat.Taxonomy(), false)
			if err != nil {
				return err
			}
			defer snap.Close()

			run, err := snap.svc.Export(ctx, s.cat, s.cfg.Data.Dir)
			if err != nil {
				return err
			}

			summary, err := snap.svc.Summary(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported %d creature(s) to %s\n", run.CreatureCount, snap.path)
			fmt.Fprintf(out, "  run:        %s\n", run.ID)
			fmt.Fprintf(out, "  at:         %s\n", util.FormatDateTime(run.ExportedAt))
			fmt.Fprintf(out, "  unresolved: %d\n", run.UnresolvedCount)
			fmt.Fprintf(out, "  stored:     %d\n", summary.Creatures)
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "Report the snapshot schema and recorded exports without exporting")

	return cmd
}

func runExportStatus(cmd *cobra.Command, opts *options) error {
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

	st, err := snap.svc.Status(ctx)
	if err != nil {
		return err
	}

	writeStatus(cmd.OutOrStdout(), st)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "monsterdex version %s (built %s)\n", Version, BuildTime)
		},
	}
}
