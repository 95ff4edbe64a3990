package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillbuf/coretext/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or seed the coretext config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config as a starting coretext.yaml",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "coretext.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("coretext: %s already exists, remove it first", path)
	}
	if err := config.Save(path, config.DefaultModelOptions()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
