// Package cli implements the boxwright command-line interface.
//
// # Commands
//
//   - render: lay out a scene and write it as a PNG
//   - tree: print a scene's paint tree
//   - show: open a scene in an interactive window
//   - pack: convert an image into the pixel dump format
//
// All commands accept --config to read a TOML file (see package config)
// and --verbose (-v) for debug logging. Command flags override values
// from the file.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"boxwright/pkg/config"
)

var (
	version = "dev"
	commit  string
)

// SetVersion sets what --version prints. main calls it with values
// injected through ldflags.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute runs the boxwright CLI.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "boxwright",
		Short:        "boxwright lays out and renders box-model scenes",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			level := cfg.LogLevel()
			if verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(logOut, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("boxwright %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newTreeCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newPackCmd())

	return root
}
