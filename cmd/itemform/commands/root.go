package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-itemform/internal/config"
	"github.com/goliatone/go-itemform/pkg/model"
	"github.com/goliatone/go-itemform/pkg/orchestrator"
	"github.com/goliatone/go-itemform/pkg/render"
	"github.com/goliatone/go-itemform/pkg/renderers/jsonspec"
	"github.com/goliatone/go-itemform/pkg/renderers/tui"
	"github.com/goliatone/go-itemform/pkg/schema"
)

var version = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return NewRootCommand(nil).Execute()
}

// app carries state shared by subcommands once flags and config resolve.
type app struct {
	configFile     string
	verbose        bool
	format         string
	operation      string
	preset         string
	sanitizeLabels bool
	values         map[string]string

	driver tui.PromptDriver
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand returns the itemform command tree. A nil driver selects the
// interactive survey driver for the prompt command.
func NewRootCommand(driver tui.PromptDriver) *cobra.Command {
	a := &app{driver: driver}

	root := &cobra.Command{
		Use:   "itemform",
		Short: "Build optional-field widgets for work item creation",
		Long: `itemform reads a work item tracker's create metadata (or an OpenAPI
create operation) and turns the optional fields into selection and text
widgets. Mandatory fields such as project, summary and description are left
to the rest of the creation flow.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is ./"+config.DefaultConfigFile+" when present)")
	flags.BoolVar(&a.verbose, "verbose", false, "debug logging and descriptor dumps on stderr")
	flags.StringVar(&a.format, "format", "", "input format: auto, json, yaml or openapi")
	flags.StringVar(&a.operation, "operation", "", "OpenAPI operation id when --format=openapi")
	flags.StringVar(&a.preset, "preset", "", "YAML/JSON preset that renames, relabels or drops fields")
	flags.BoolVar(&a.sanitizeLabels, "sanitize-labels", false, "strip markup from field and option labels")
	flags.StringToStringVar(&a.values, "value", nil, "prefill a field value, repeatable (id=value)")

	root.AddCommand(
		newWidgetsCommand(a),
		newPlanCommand(a),
		newPromptCommand(a),
		newFieldsCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Input.Format = a.format
	}
	if flags.Changed("operation") {
		cfg.Input.Operation = a.operation
	}
	if flags.Changed("preset") {
		cfg.Input.Preset = a.preset
	}
	if flags.Changed("sanitize-labels") {
		cfg.Input.SanitizeLabels = a.sanitizeLabels
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// orchestrator wires the configured transformer and a registry whose tui
// renderer honours render.output.
func (a *app) orchestrator(stderr io.Writer) (*orchestrator.Orchestrator, error) {
	driver := a.driver
	if driver == nil {
		driver = tui.NewSurveyDriver()
	}

	registry := render.NewRegistry()
	registry.MustRegister(jsonspec.New(jsonspec.WithIndent("  ")))
	registry.MustRegister(tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(a.cfg.OutputFormat()),
	))

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(a.cfg.Render.Renderer),
		orchestrator.WithLabelSanitizer(a.cfg.Input.SanitizeLabels),
	}

	if a.cfg.Input.Preset != "" {
		preset, err := orchestrator.NewPresetTransformerFromFS(
			os.DirFS(filepath.Dir(a.cfg.Input.Preset)),
			filepath.Base(a.cfg.Input.Preset),
		)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("preset loaded", "path", a.cfg.Input.Preset)
		options = append(options, orchestrator.WithTransformer(a.dumping(preset, stderr)))
	} else if a.verbose {
		options = append(options, orchestrator.WithTransformer(a.dumping(nil, stderr)))
	}

	return orchestrator.New(options...), nil
}

// dumping wraps next so the final descriptor batch is dumped in verbose mode.
func (a *app) dumping(next orchestrator.Transformer, stderr io.Writer) orchestrator.Transformer {
	return orchestrator.TransformerFunc(func(ctx context.Context, descriptors []model.FieldDescriptor) ([]model.FieldDescriptor, error) {
		if next != nil {
			var err error
			descriptors, err = next.Transform(ctx, descriptors)
			if err != nil {
				return nil, err
			}
		}
		if a.verbose {
			spew.Fdump(stderr, descriptors)
		}
		return descriptors, nil
	})
}

func (a *app) request(path string) orchestrator.Request {
	return orchestrator.Request{
		Source:        schema.SourceFromFile(path),
		Input:         a.cfg.InputKind(),
		Encoding:      a.cfg.Encoding(),
		OperationID:   a.cfg.Input.Operation,
		RenderOptions: render.RenderOptions{Values: a.values},
	}
}
