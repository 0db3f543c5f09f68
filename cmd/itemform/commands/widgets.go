package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-itemform/pkg/renderers/jsonspec"
)

func newWidgetsCommand(a *app) *cobra.Command {
	var (
		renderer string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "widgets <file>",
		Short: "Synthesize and render the optional-field widgets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			req := a.request(args[0])
			if renderer != "" {
				req.Renderer = renderer
			}

			a.logger.Debug("generating widgets", "source", args[0], "renderer", req.Renderer, "input", req.Input)
			out, err := orch.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, out, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				a.logger.Info("widgets written", "path", output)
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&renderer, "renderer", "", "renderer to use (default from render.renderer, "+jsonspec.Name+")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
