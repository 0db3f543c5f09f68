package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-itemform/pkg/renderers/tui"
)

func newPromptCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <file>",
		Short: "Ask for each optional field interactively and print the answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			req := a.request(args[0])
			req.Renderer = tui.Name

			out, err := orch.Generate(cmd.Context(), req)
			if errors.Is(err, tui.ErrAborted) {
				a.logger.Warn("prompt aborted")
				return err
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}
