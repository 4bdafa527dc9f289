package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/formio/pkg/download"
	"github.com/matzehuels/formio/pkg/errors"
	"github.com/matzehuels/formio/pkg/form"
)

// exportOpts holds the flags of the export command.
type exportOpts struct {
	output string
	from   string
	sets   []string
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the form's values to input.json",
		Long: `Write the form's current values as pretty-printed JSON.

Values start from the form's defaults. --from applies a previously exported
file first, then each --set name=value is applied in order.`,
		Example: `  formio export
  formio export --set x=3 --set y=4 -o sum.json
  formio export --from old.json -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", form.DefaultFilename, "output file (- for stdout)")
	cmd.Flags().StringVar(&opts.from, "from", "", "start from the values in this JSON file")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "set a field (name=value, repeatable)")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, opts exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	if opts.output != "-" {
		if err := errors.ValidatePath(opts.output); err != nil {
			return err
		}
		if err := errors.ValidateDownloadName(filepath.Base(opts.output)); err != nil {
			return err
		}
	}

	prog := newProgress(logger)
	rec, err := buildRecord(ctx, &cfg.Form, opts.from, opts.sets, logger)
	if err != nil {
		return err
	}

	exp := &form.Exporter{Filename: filepath.Base(opts.output), Logger: logger}
	if opts.output == "-" {
		exp.Filename = form.DefaultFilename
	}
	store := download.NewMemoryStore()
	exp.Store = store

	err = exp.Export(ctx, rec, func(ctx context.Context, url string) error {
		blob, err := store.Open(ctx, url)
		if err != nil {
			return err
		}
		if opts.output == "-" {
			_, err := cmd.OutOrStdout().Write(append(blob.Data, '\n'))
			return err
		}
		return writeFileAtomic(opts.output, blob.Data)
	})
	if err != nil {
		return err
	}

	if opts.output != "-" {
		prog.done(fmt.Sprintf("Exported %d fields", rec.Len()))
		printFile(opts.output)
		printNextStep("Load it again", "formio import "+opts.output)
	}
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
