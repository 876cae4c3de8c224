package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/reactor/internal/bench"
	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/render"
)

func renderCmd(configPath *string) *cobra.Command {
	var (
		rows     int
		selected int
		pretty   bool
		page     bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the benchmark table as HTML",
		Long: `Mount the app in memory, build rows and print the resulting HTML.

Examples:
  reactor render --rows 5
  reactor render --rows 3 --select 2 --pretty
  reactor render --page > index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows < 0 || selected < 0 {
				return errors.New("E202").WithDetail("--rows and --select must not be negative")
			}
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			app, doc := bench.NewMemoryInstance(bench.Options{
				Seed:     cfg.Seed,
				MaxDepth: cfg.Reactive.MaxDepth,
			})
			defer app.Close()

			app.Store.Create(rows)
			if selected > 0 {
				app.Store.Select(selected)
			}

			r := render.NewRenderer(render.RendererConfig{Pretty: pretty})
			out := cmd.OutOrStdout()
			if page {
				err = r.RenderPage(out, render.PageData{
					Title:       bench.Title,
					Body:        doc.Root(),
					StyleSheets: cfg.Serve.StyleSheets,
				})
			} else {
				err = r.RenderToWriter(out, doc.Root())
			}
			if err != nil {
				return errors.New("E204").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "r", 10, "Number of rows to build")
	cmd.Flags().IntVar(&selected, "select", 0, "Row id to mark as selected (0 selects none)")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the output")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the table in a full HTML document")

	return cmd
}
