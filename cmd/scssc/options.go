package main

import (
	"github.com/titpetric/scssgo/compiler"
	"github.com/titpetric/scssgo/internal/config"
	"github.com/titpetric/scssgo/render"
)

// resolveOptions merges .scssc.toml (if present) with any flags the caller
// actually set, flags winning: the same precedence cmd/slicli's config
// loader documents for its own global-vs-local-vs-flag layering.
func resolveOptions() (compiler.Options, config.File, error) {
	cfg, err := config.Load(flagConfigFile)
	if err != nil {
		return compiler.Options{}, cfg, err
	}

	style := cfg.Style
	if flagStyle != "" {
		style = flagStyle
	}
	precision := cfg.Precision
	if flagPrecision != 0 {
		precision = flagPrecision
	}
	sourceMap := cfg.SourceMap
	if flagSourceMap != "" {
		sourceMap = flagSourceMap
	}
	sourceMapFile := cfg.SourceMapFile
	if flagSourceMapFile != "" {
		sourceMapFile = flagSourceMapFile
	}
	loadPaths := append(append([]string{}, cfg.LoadPaths...), flagLoadPaths...)

	opts := compiler.Options{
		Precision:      precision,
		Style:          render.Style(style),
		LoadPaths:      loadPaths,
		SourceMapMode:  render.SourceMapMode(sourceMap),
		SourceMapFile:  sourceMapFile,
		SuppressStderr: flagQuiet,
	}
	return opts, cfg, nil
}
