package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/prompt"
)

func (a *app) fillCmd() *cobra.Command {
	var (
		src    source
		format string
		only   []string
	)
	cmd := &cobra.Command{
		Use:   "fill [form]",
		Short: "Fill a form interactively and print its values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q (json or yaml)", format)
			}
			def, _, err := a.definition(cmd, src, args)
			if err != nil {
				return err
			}
			form := def.Model()

			var opts []prompt.Option
			if len(only) > 0 {
				opts = append(opts, prompt.WithOnly(only...))
			}
			if err := prompt.Fill(cmd.Context(), prompt.NewSurveyDriver(), def, form, opts...); err != nil {
				return err
			}
			return writeValues(cmd, format, form.Values())
		},
	}
	src.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringSliceVar(&only, "only", nil, "prompt only for these attributes")
	return cmd
}

func writeValues(cmd *cobra.Command, format string, values map[string]any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml":
		data, err = yaml.Marshal(values)
	default:
		data, err = json.MarshalIndent(values, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
