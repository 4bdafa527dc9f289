package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	jsonio "github.com/matzehuels/formio/pkg/io"
)

// fieldsCommand creates the fields command.
func (c *CLI) fieldsCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the fields an import checks for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if plain {
				for _, name := range cfg.Form.Names() {
					fmt.Fprintln(w, name)
				}
				return nil
			}

			defaults := cfg.Form.Defaults()
			rows := make([][]string, 0, len(cfg.Form.Fields))
			for _, f := range cfg.Form.Fields {
				v, _ := defaults.Get(f.Name)
				rows = append(rows, []string{
					f.Name,
					f.Label(),
					string(f.Kind),
					jsonio.Stringify(v),
					strings.Join(f.Options, ", "),
				})
			}
			if cfg.Form.Title != "" {
				fmt.Fprintln(w, StyleTitle.Render(cfg.Form.Title))
			}
			fmt.Fprintln(w, renderTable([]string{"Name", "Title", "Kind", "Default", "Options"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print one name per line")

	return cmd
}
