package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/formio/pkg/errors"
	"github.com/matzehuels/formio/pkg/form"
	jsonio "github.com/matzehuels/formio/pkg/io"
)

// importOpts holds the flags of the import command.
type importOpts struct {
	strict bool
	json   bool
}

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	opts := importOpts{}

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Apply an exported input.json to the form",
		Long: `Apply a previously exported JSON file to the form and print the result.

Fields the form expects but the file lacks keep their defaults and are
reported. Keys the form does not know are ignored.`,
		Example: `  formio import input.json
  formio import --strict --json input.json > checked.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when the file lacks any expected field")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the resulting values as JSON")

	return cmd
}

func (c *CLI) runImport(cmd *cobra.Command, path string, opts importOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := errors.ValidatePath(path); err != nil {
		return err
	}

	prog := newProgress(logger)
	rec := cfg.Form.Defaults()
	out, err := newImporter(&cfg.Form, rec, logger).Upload(ctx, form.PathInput(path))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Imported %s", out.File))

	if opts.json {
		if err := jsonio.WriteJSON(rec, cmd.OutOrStdout()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, valueRows(&cfg.Form, rec)))
		printDetail("%d applied, %d missing", len(out.Applied), len(out.Missing))
	}

	if opts.strict && len(out.Missing) > 0 {
		return &errors.MissingFieldsError{Fields: out.Missing}
	}
	return nil
}
