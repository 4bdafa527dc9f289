package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/formio/pkg/errors"
	"github.com/matzehuels/formio/pkg/form"
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var output, input string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the form's values in the terminal",
		Long: `Edit the form's values in an interactive terminal view.

Ctrl+S saves the values to --output, Ctrl+O loads --input onto the form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := errors.ValidatePath(output); err != nil {
				return err
			}
			if input == "" {
				input = output
			}

			// Log output would tear the terminal view.
			model := NewEditorModel(cmd.Context(), &cfg.Form, cfg.Form.Defaults(), output, input, nil)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(EditorModel); ok && m.Saved {
				printSuccess("Saved")
				printFile(m.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", form.DefaultFilename, "file Ctrl+S writes")
	cmd.Flags().StringVarP(&input, "input", "i", "", "file Ctrl+O reads (defaults to --output)")

	return cmd
}
