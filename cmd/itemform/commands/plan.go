package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-itemform/pkg/synth"
)

func newPlanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <file>",
		Short: "Show how every field is classified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := a.orchestrator(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			entries, err := orch.Plan(cmd.Context(), a.request(args[0]))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FIELD\tNAME\tREQUIRED\tDECISION\tWIDGET")
			for _, entry := range entries {
				kind := "-"
				if entry.Widget != nil {
					kind = string(entry.Widget.Kind())
				}
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n",
					entry.Descriptor.FieldID,
					entry.Descriptor.Name,
					entry.Descriptor.Required,
					entry.Decision,
					kind,
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			for _, desc := range synth.Excluded(entries) {
				a.logger.Warn("required field left to the caller", "field", desc.FieldID, "name", desc.Name)
			}
			return nil
		},
	}
}
