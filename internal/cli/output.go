package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// render writes view as indented JSON under --format json, text otherwise.
func render(cmd *cobra.Command, opts *options, view any, text string) error {
	if opts.json() {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
