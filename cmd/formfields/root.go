package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	formfields "github.com/goliatone/go-formfields"
	"github.com/goliatone/go-formfields/pkg/config"
)

// app holds the state shared by every subcommand.
type app struct {
	configPath string
	debug      bool
	logger     *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "formfields",
		Short: "Render and fill HTML forms from definitions",
		Long: `formfields renders form definitions as themed HTML.

Definitions come from YAML/JSON files (--config) or from the request body
schema of an OpenAPI operation (--openapi). Without --config the bundled
sample forms are used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if a.debug {
				cfg = zap.NewDevelopmentConfig()
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "definition file or directory (bundled samples when empty)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		a.renderCmd(),
		a.fillCmd(),
		a.formsCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) store() (*config.Store, error) {
	store, err := formfields.LoadStore(a.configPath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("definitions loaded",
		zap.String("config", a.configPath),
		zap.Strings("forms", store.Forms()),
	)
	return store, nil
}

// source selects where a command reads its definition from.
type source struct {
	openapi   string
	operation string
	theme     string
	variant   string
}

func (s *source) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.openapi, "openapi", "", "OpenAPI document path or URL")
	cmd.Flags().StringVar(&s.operation, "operation", "", "OpenAPI operation ID")
	cmd.Flags().StringVar(&s.theme, "theme", "", "theme override")
	cmd.Flags().StringVar(&s.variant, "variant", "", "theme variant override")
}

// definition resolves the form named by args, or the OpenAPI operation when
// --openapi is set.
func (a *app) definition(cmd *cobra.Command, src source, args []string) (config.FormDefinition, *config.Store, error) {
	store, err := a.store()
	if err != nil {
		return config.FormDefinition{}, nil, err
	}

	var def config.FormDefinition
	if loc := strings.TrimSpace(src.openapi); loc != "" {
		if src.operation == "" {
			return def, nil, errors.New("--operation is required with --openapi")
		}
		def, err = formfields.FromOpenAPI(cmd.Context(), loc, src.operation)
		if err != nil {
			return def, nil, err
		}
		a.logger.Debug("definition built from openapi",
			zap.String("location", loc),
			zap.String("operation", src.operation),
			zap.Int("fields", len(def.Fields)),
		)
	} else {
		if len(args) == 0 {
			return def, nil, fmt.Errorf("a form name is required (one of: %s)", strings.Join(store.Forms(), ", "))
		}
		var ok bool
		def, ok = store.Form(args[0])
		if !ok {
			return def, nil, fmt.Errorf("form %q not found", args[0])
		}
	}

	if src.theme != "" {
		def.Theme = src.theme
		def.Variant = src.variant
	}
	return def, store, nil
}
