package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-builder/internal/portfolio"
	"github.com/Zachkp/portfolio-builder/internal/render"
)

var (
	previewTemplate string
	previewHTML     bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the seeded portfolio to the terminal or as HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newSession()
		if err != nil {
			return err
		}
		defer store.Close()

		if previewTemplate != "" {
			store.SetSelectedTemplate(previewTemplate)
		}
		snap := store.Snapshot()

		if previewHTML {
			r, err := render.New()
			if err != nil {
				return err
			}
			return r.Render(cmd.OutOrStdout(), snap.Template, render.NewPage(snap))
		}

		out, err := render.Terminal(snap)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the seeded skills grouped by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newSession()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, g := range portfolio.GroupByCategory(store.Skills()) {
			fmt.Fprintln(cmd.OutOrStdout(), render.Header(g.Category))
			for _, sk := range g.Skills {
				fmt.Fprintln(cmd.OutOrStdout(), "  "+render.SkillLine(sk))
			}
		}
		return nil
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range portfolio.Templates {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewTemplate, "template", "t", "", "template to render (default: selected)")
	previewCmd.Flags().BoolVar(&previewHTML, "html", false, "write HTML instead of terminal output")
	rootCmd.AddCommand(previewCmd, skillsCmd, templatesCmd)
}
