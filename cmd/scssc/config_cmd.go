package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/titpetric/scssgo/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config init",
	Short: "Write a default .scssc.toml in the current directory",
	RunE:  runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Save(flagConfigFile, config.Default()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", flagConfigFile)
	return nil
}
