package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alexanderramin/rcpsp/internal/importer"
	"github.com/spf13/cobra"
)

func newParseCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Dump the parsed sections of a dataset file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := importer.ReadFile(args[0])
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := importer.WriteJSON(&buf, sections); err != nil {
				return fmt.Errorf("encoding sections: %w", err)
			}

			if out == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data saved to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write JSON to this file instead of stdout")

	return cmd
}
