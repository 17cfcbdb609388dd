package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/layout"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		src    source
		page   bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "render [form]",
		Short: "Render a form as HTML",
		Example: `  formfields render contact
  formfields render contact --theme bulma --page --output contact.html
  formfields render --openapi api.yaml --operation createUser`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, store, err := a.definition(cmd, src, args)
			if err != nil {
				return err
			}
			renderer, err := layout.New(layout.WithStore(store))
			if err != nil {
				return err
			}

			var out string
			if page {
				out, err = renderer.Page(cmd.Context(), def, nil)
			} else {
				out, err = renderer.Render(cmd.Context(), def, nil)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			if err := os.WriteFile(output, []byte(out+"\n"), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			a.logger.Info("form written", zap.String("form", def.Name), zap.String("output", output))
			return nil
		},
	}
	src.bind(cmd)
	cmd.Flags().BoolVar(&page, "page", false, "wrap the form in a full HTML page")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
