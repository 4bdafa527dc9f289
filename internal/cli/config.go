package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/formio/pkg/schema"
)

// loadConfig reads the --config file. When the flag was left at its
// default and the file does not exist, the built-in example form is used.
func (c *CLI) loadConfig(cmd *cobra.Command) (*schema.Config, error) {
	logger := loggerFromContext(cmd.Context())

	explicit := cmd.Flags().Changed("config")
	if !explicit {
		if _, err := os.Stat(c.configPath); errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no config file, using the example form", "path", c.configPath)
			return schema.Example(), nil
		}
	}

	cfg, err := schema.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded config", "path", c.configPath, "fields", len(cfg.Form.Fields))
	return cfg, nil
}
