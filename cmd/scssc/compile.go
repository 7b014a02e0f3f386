package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/titpetric/scssgo/compiler"
	"github.com/titpetric/scssgo/internal/diag"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile an SCSS file to CSS",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write CSS to this file instead of stdout")
}

func runCompile(cmd *cobra.Command, args []string) error {
	opts, cfg, err := resolveOptions()
	if err != nil {
		return err
	}

	path := args[0]
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	fsys := os.DirFS(dir)

	// buildID tags this run's diagnostics so output piped through a build
	// system's own log aggregation can be correlated back to one invocation.
	buildID := uuid.New().String()

	c := compiler.New(opts)
	c.SetEntryFile(fsys, name, compiler.SyntaxSCSS)
	c.Debug = os.Stderr

	if err := c.Render(); err != nil {
		fmt.Fprintf(os.Stderr, "scssc[%s]: compile failed\n", buildID)
		if se, ok := err.(interface{ Formatted() string }); ok {
			fmt.Fprintln(os.Stderr, se.Formatted())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}

	if !flagQuiet {
		printCompileWarnings(c)
	}

	out := c.CSS()
	if flagOutput == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(flagOutput, []byte(out), 0o644); err != nil {
		return err
	}
	if mapText := c.SourceMap(); mapText != "" && cfg.SourceMapFile != "" {
		return os.WriteFile(cfg.SourceMapFile, []byte(mapText), 0o644)
	}
	return nil
}

func printCompileWarnings(c *compiler.Compiler) {
	for _, w := range c.Warnings() {
		fmt.Fprintln(os.Stderr, diag.Render(w, diag.Options{Colors: flagColors, Unicode: true}))
	}
}
