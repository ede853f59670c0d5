package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config mirrors SPEC_FULL.md's §4.I configuration shape: one set of
// fields, populated from (in ascending priority) the config file,
// HWDBC_* environment variables, and command-line flags.
type Config struct {
	Directories []string
	OutputPath  string
	CachePath   string
	HistoryDir  string
	Verbose     bool
}

func bindConfigFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "/etc/hwdbc/hwdbc.yaml", "path to configuration file")
	cmd.PersistentFlags().StringSlice("dir", nil, "source directory to scan for .hwdb files (repeatable)")
	cmd.PersistentFlags().String("output", "/etc/hwdb.bin", "path to write the compiled database to")
	cmd.PersistentFlags().String("cache", "/var/cache/hwdbc/parse-cache.bolt", "path to the per-file parse cache")
	cmd.PersistentFlags().String("history", "/var/lib/hwdbc/history", "directory for the build-history journal")
	cmd.PersistentFlags().Bool("verbose", false, "enable verbose logging")
}

func loadConfig(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HWDBC")
	v.AutomaticEnv()

	v.SetDefault("output", "/etc/hwdb.bin")
	v.SetDefault("cache", "/var/cache/hwdbc/parse-cache.bolt")
	v.SetDefault("history", "/var/lib/hwdbc/history")

	configPath, _ := cmd.Flags().GetString("config")
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("hwdbc: reading %s: %w", configPath, err)
		}
	}

	if err := v.BindPFlag("dir", cmd.Flags().Lookup("dir")); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlag("output", cmd.Flags().Lookup("output")); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlag("cache", cmd.Flags().Lookup("cache")); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlag("history", cmd.Flags().Lookup("history")); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlag("verbose", cmd.Flags().Lookup("verbose")); err != nil {
		return Config{}, err
	}

	return Config{
		Directories: v.GetStringSlice("dir"),
		OutputPath:  v.GetString("output"),
		CachePath:   v.GetString("cache"),
		HistoryDir:  v.GetString("history"),
		Verbose:     v.GetBool("verbose"),
	}, nil
}
