package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"bench-dashboard/internal/benchmark"
	"bench-dashboard/internal/config"
	"bench-dashboard/internal/export"
	"bench-dashboard/internal/logging"
	"bench-dashboard/internal/plot"
	"bench-dashboard/internal/view"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	name      string
	scenario  string
	languages []string
	selected  []string
	levels    []float64
	scope     string
	formats   []string
	upload    bool
	output    string
}

// exportState builds the dashboard state of a headless export. Without
// explicit names every framework matching the language filter is listed,
// which selects all of them.
func exportState(cfg *config.Config, store *benchmark.Store, opts exportOptions) (view.State, error) {
	scope, err := view.ParseScope(opts.scope)
	if err != nil {
		return view.State{}, err
	}
	state := view.State{
		Scenario:  benchmark.Scenario(opts.scenario),
		Languages: opts.languages,
		Levels:    opts.levels,
		Scope:     scope,
		Selection: make(map[string]bool),
	}
	if state.Scenario == "" {
		state.Scenario = benchmark.Scenario(cfg.Dashboard.DefaultScenario)
	}
	if len(state.Languages) == 0 {
		state.Languages = cfg.Dashboard.DefaultLanguages
	}

	if len(opts.selected) > 0 {
		for _, id := range opts.selected {
			state.Selection[id] = true
		}
	} else {
		table, err := view.Entities(store, state)
		if err != nil {
			return view.State{}, err
		}
		for _, e := range table.Entities {
			state.Selection[e.ID] = false
		}
	}
	return state, nil
}

func runExport(ctx context.Context, cfg *config.Config, store *benchmark.Store, coordinator *export.Coordinator, opts exportOptions) (*export.Result, error) {
	if err := export.ValidateName(opts.name); err != nil {
		return nil, err
	}
	names := opts.formats
	if len(names) == 0 {
		names = cfg.Export.Formats
	}
	formats, err := plot.ParseFormats(names)
	if err != nil {
		return nil, err
	}

	state, err := exportState(cfg, store, opts)
	if err != nil {
		return nil, err
	}
	model, err := view.Build(store, state)
	if err != nil {
		return nil, err
	}
	if model.Empty {
		return nil, fmt.Errorf("nothing selected to export")
	}

	artifacts, err := plot.NewManager().RenderAll(ctx, model.Charts, formats)
	if err != nil {
		return nil, err
	}
	return coordinator.Export(ctx, opts.name, artifacts)
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the charts of a dashboard state as a zip archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := buildStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			coordinator, closeUploader, err := newCoordinator(cmd.Context(), cfg, opts.upload)
			if err != nil {
				return err
			}
			defer closeUploader()

			res, err := runExport(cmd.Context(), cfg, store, coordinator, opts)
			if err != nil {
				return err
			}

			fields := logrus.Fields{"export_id": res.ID, "files": len(res.Files)}
			if res.UploadURL != "" {
				fields["location"] = res.UploadURL
			}

			if opts.output == "" {
				fields["path"] = res.ArchivePath
				logger.WithFields(fields).Info("Export written")
				return nil
			}

			var w io.Writer = cmd.OutOrStdout()
			if opts.output != "-" {
				f, err := os.Create(opts.output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", opts.output, err)
				}
				defer f.Close()
				w = f
			}
			if err := coordinator.Deliver(res, w); err != nil {
				return err
			}
			fields["output"] = opts.output
			logger.WithFields(fields).Info("Export delivered")
			return nil
		},
	}

	flags := exportCmd.Flags()
	flags.StringVar(&opts.name, "name", "", "Archive name")
	flags.StringVar(&opts.scenario, "scenario", "", "Scenario (defaults to dashboard.default_scenario)")
	flags.StringSliceVar(&opts.languages, "languages", nil, "Languages listed for selection (defaults to dashboard.default_languages)")
	flags.StringSliceVar(&opts.selected, "select", nil, "Framework names to select (defaults to every listed framework)")
	flags.Float64SliceVar(&opts.levels, "levels", nil, "Restrict the table to these levels")
	flags.StringVar(&opts.scope, "scope", string(view.ScopeCPU), "Energy scope (cpu, dram)")
	flags.StringSliceVar(&opts.formats, "format", nil, "Chart formats (pdf, svg, png, html, tikz)")
	flags.BoolVar(&opts.upload, "upload", false, "Publish the archive to the configured bucket")
	flags.StringVarP(&opts.output, "output", "o", "", "Stream the archive to this file ('-' for stdout) and remove it afterwards")
	exportCmd.MarkFlagRequired("name")
	return exportCmd
}
