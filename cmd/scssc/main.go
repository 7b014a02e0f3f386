// Command scssc is the CLI front-end over package compiler: the thin
// flag-to-API mapper SPEC_FULL.md §6.4 describes. Grounded on the
// teacher's own cmd/lessgo/main.go for the "one binary, a handful of
// subcommands, read file → compile → print/write" shape, rebuilt on
// github.com/spf13/cobra the way github.com/fredcamaral/slicli's
// cmd/slicli/main.go structures its own CLI (root command with
// PersistentFlags, one cobra.Command per verb, Execute() from main).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	flagStyle         string
	flagPrecision     int
	flagLoadPaths     []string
	flagSourceMap     string
	flagSourceMapFile string
	flagOutput        string
	flagConfigFile    string
	flagQuiet         bool
	flagColors        bool
)

var rootCmd = &cobra.Command{
	Use:     "scssc",
	Short:   "A Sass/SCSS compiler",
	Long:    "scssc compiles SCSS stylesheets to plain CSS: variables, nesting, mixins, functions, modules and @extend, reduced to a single CSS document plus an optional source map.",
	Version: version,
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&flagStyle, "style", "s", "", "output style: nested, expanded, compact, compressed (default from config or expanded)")
	rootCmd.PersistentFlags().IntVar(&flagPrecision, "precision", 0, "number of fractional digits to emit (default from config or 10)")
	rootCmd.PersistentFlags().StringArrayVarP(&flagLoadPaths, "load-path", "I", nil, "additional directory to search for @use/@forward/@import (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flagSourceMap, "source-map", "", "source map mode: none, inline, linked")
	rootCmd.PersistentFlags().StringVar(&flagSourceMapFile, "source-map-file", "", "file name referenced by a linked source map's sourceMappingURL comment")
	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", ".scssc.toml", "project config file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress warnings on stderr")
	rootCmd.PersistentFlags().BoolVar(&flagColors, "colors", true, "colorize diagnostics")

	rootCmd.AddCommand(compileCmd, serveCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "scssc: %v\n", err)
		os.Exit(1)
	}
}
