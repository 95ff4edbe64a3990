package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillbuf/coretext/internal/config"
	"github.com/quillbuf/coretext/internal/logx"
	"github.com/quillbuf/coretext/model"
)

var (
	version = "dev"
	cfgFile string
	logFile string
	logJSON bool

	modelOpts config.ModelOptions
)

var rootCmd = &cobra.Command{
	Use:     "coretext",
	Short:   "Exercise the coretext text model from a terminal",
	Version: version,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"path whose directory is searched for coretext.yaml before ~ and ./ (the file name itself is not used)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"log file path (default: ~/.cache/coretext/coretext.log)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false,
		"emit structured JSON logs instead of text")

	rootCmd.AddCommand(demoCmd, benchCmd)
}

func initConfig() {
	var searchPaths []string
	if cfgFile != "" {
		searchPaths = append(searchPaths, filepath.Dir(cfgFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, home)
	}

	opts, err := config.Load(searchPaths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "coretext: %v\n", err)
		os.Exit(1)
	}
	modelOpts = opts
}

// buildModelOptions translates the loaded file config into model.Options,
// attaching logger.
func buildModelOptions(logger *slog.Logger) model.Options {
	return model.Options{
		TabSize:            modelOpts.TabSize,
		InsertSpaces:       modelOpts.InsertSpaces,
		TrimAutoWhitespace: modelOpts.TrimAutoWhitespace,
		MaxSyncBytes:       modelOpts.MaxSyncBytes,
		TooLargeBytes:      modelOpts.TooLargeBytes,
		TooLargeLines:      modelOpts.TooLargeLines,
		LongLineThreshold:  modelOpts.LongLineThreshold,
		Logger:             logger,
	}
}

func newLogger() (*slog.Logger, func() error) {
	logger, closer, err := logx.New(logx.Config{
		Path:  logFile,
		Level: slog.LevelInfo,
		JSON:  logJSON,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "coretext: logging disabled: %v\n", err)
		return slog.Default(), func() error { return nil }
	}
	return logger, closer
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion overrides the version string, for ldflags-based builds.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
