package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/notesync-go/internal/config"
)

var flagInitForce bool

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file with default values",
		Long: `Write a commented config.toml at the default (or --config) path,
populated with the built-in defaults for the Device container, Host
binary, and sync tunables. Edit the file afterwards to point at your
actual container name and database.`,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE:        runInit,
	}

	cmd.Flags().BoolVar(&flagInitForce, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	logger := buildLogger(nil)

	path := flagConfigPath
	if path == "" {
		env := config.ReadEnvOverrides()
		path = config.ResolveConfigPath(env, config.CLIOverrides{}, logger)
	}

	if path == "" {
		return fmt.Errorf("could not determine a default config path; pass --config explicitly")
	}

	if err := config.WriteInitialConfig(path, config.DefaultConfig(), flagInitForce); err != nil {
		return err
	}

	fmt.Printf("Wrote config to %s\n", path)
	fmt.Println("Edit device.container and device.database to match your setup.")

	return nil
}
