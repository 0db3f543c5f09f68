package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-itemform/pkg/fields"
)

func newFieldsCommand(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "Print the skip and force-include tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "skip: %s\n", joinIDs(fields.SkipFields())); err != nil {
				return err
			}
			_, err := fmt.Fprintf(out, "force-include: %s\n", joinIDs(fields.ForceIncludeFields()))
			return err
		},
	}
}

func joinIDs(ids []fields.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
