package main

import (
	"context"
	"fmt"
	"os"

	"dogceo/browser/internal/catalog"
	"dogceo/browser/internal/domain"
	"dogceo/browser/internal/render"
	"dogceo/browser/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive breed browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context(), opts)
		},
	}
}

func runBrowse(ctx context.Context, opts *rootOptions) error {
	app, err := setup(ctx, opts, true)
	if err != nil {
		return err
	}
	defer app.Close()

	log.Info("Starting dog breed browser...")

	program := tea.NewProgram(
		tui.NewAppModel(ctx, app.Service),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browser exited with error: %w", err)
	}

	log.Info("Browser closed")
	return nil
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		query      string
		withImages bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the breed catalog",
		Example: `  dogbrowser list
  dogbrowser list --query terrier --images`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := setup(ctx, opts, false)
			if err != nil {
				return err
			}
			defer app.Close()

			svc := app.Service
			if err := svc.LoadCatalog(ctx); err != nil {
				return fmt.Errorf("%s: %w", catalog.ErrorMessage, err)
			}
			if withImages {
				svc.EnrichAll(ctx)
			}

			svc.Search(query)
			cards := svc.Cards()
			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, catalog.EmptyMessage)
				return nil
			}
			for _, card := range cards {
				if withImages {
					fmt.Fprintf(out, "%-28s %-24s %s\n", card.Name, card.Descriptor, card.Image)
				} else {
					fmt.Fprintf(out, "%-28s %s\n", card.Name, card.Descriptor)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show breeds whose name contains this text")
	cmd.Flags().BoolVar(&withImages, "images", false, "Fetch sample images and print the first one")

	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "show <breed-key>",
		Short:   "Print the details of one breed",
		Example: "  dogbrowser show terrier-boston",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := setup(ctx, opts, false)
			if err != nil {
				return err
			}
			defer app.Close()

			svc := app.Service
			if err := svc.LoadCatalog(ctx); err != nil {
				return fmt.Errorf("%s: %w", catalog.ErrorMessage, err)
			}

			breed, ok := svc.Catalog().Find(args[0])
			if !ok {
				return fmt.Errorf("unknown breed %q", args[0])
			}
			for range svc.Enrich(ctx, svc.Generation(), []domain.Breed{breed}) {
			}

			view, err := svc.OpenDetail(ctx, breed.Key())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), breed.DisplayName())
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDetail(view, -1))
			return nil
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		query   string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an HTML gallery of the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := setup(ctx, opts, false)
			if err != nil {
				return err
			}
			defer app.Close()

			svc := app.Service
			if err := svc.LoadCatalog(ctx); err != nil {
				return fmt.Errorf("%s: %w", catalog.ErrorMessage, err)
			}

			svc.Search(query)
			for range svc.Enrich(ctx, svc.Generation(), svc.Catalog().Filtered()) {
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer f.Close()

			if err := render.WriteCatalog(f, "Dog Breeds", query, svc.Cards()); err != nil {
				return err
			}

			log.Infof("✅ Wrote %s", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only export breeds whose name contains this text")
	cmd.Flags().StringVarP(&outPath, "out", "o", "catalog.html", "Output file")

	return cmd
}
