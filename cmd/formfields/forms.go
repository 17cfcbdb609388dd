package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfields/pkg/openapi"
)

func (a *app) formsCmd() *cobra.Command {
	var location string
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "List the available forms, or the operations of an OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()

			if location = strings.TrimSpace(location); location != "" {
				data, err := openapi.Read(cmd.Context(), location)
				if err != nil {
					return err
				}
				ops, err := openapi.Operations(cmd.Context(), data)
				if err != nil {
					return err
				}
				for _, op := range ops {
					fmt.Fprintf(w, "%s\t%s %s\t%s\n", op.ID, strings.ToUpper(op.Method), op.Path, op.Summary)
				}
				return nil
			}

			store, err := a.store()
			if err != nil {
				return err
			}
			for _, name := range store.Forms() {
				def, _ := store.Form(name)
				fmt.Fprintf(w, "%s\t%s\t%d fields\n", name, def.FormName, len(def.Fields))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&location, "openapi", "", "OpenAPI document path or URL")
	return cmd
}
