package cmd

import (
	"fmt"

	"github.com/zjrosen/soundfetch/internal/source"

	"github.com/spf13/cobra"
)

func newURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "url <file-id>",
		Short:       "Print the direct-download URL for a file ID",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), source.DriveURL(args[0]))
			return err
		},
	}
}
