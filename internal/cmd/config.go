package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/zhong/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View zhong configuration",
		Long: `View zhong configuration.

Without arguments, displays the current configuration.
Use subcommands to locate or create a config file.`,
		RunE: runConfigShow,
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current configuration",
			RunE:  runConfigShow,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show the config file path",
			RunE:  runConfigPath,
		},
		&cobra.Command{
			Use:   "init",
			Short: "Create a default config file",
			Long:  `Create a default config file at ~/.config/zhong/config.yaml with all available options.`,
			RunE:  runConfigInit,
		},
	)
	return configCmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	format := cfg.Output.Format
	if format == "text" {
		// Show where config is being read from
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintln(w, mutedStyle.Render("# Config file: "+used))
		} else {
			fmt.Fprintln(w, mutedStyle.Render("# Config file: (none - using defaults)"))
		}
		format = "yaml"
	}

	return writeOutput(w, format, cfg, nil)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintln(w, used)
		return nil
	}

	fmt.Fprintln(w, config.ConfigFile())
	if exists, _ := afero.Exists(appFs, config.ConfigFile()); !exists {
		fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("(file does not exist - run 'zhong config init' to create it)"))
	}
	return nil
}

const configHeader = `# zhong configuration
#
# Relative data paths are resolved against the directory of this file.
# data.decomposition_file: id:type:relation:components lines
# data.dictionary_file: CC-CEDICT lines
# data.*_frequency_file: "<character> <frequency>" lines
#
# Every key can be overridden with a ZHONG_ environment variable,
# e.g. ZHONG_SEGMENT_CHARACTER_SET=simplified

`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	exists, err := afero.Exists(appFs, configFile)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}
	if exists {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := appFs.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	body, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := afero.WriteFile(appFs, configFile, append([]byte(configHeader), body...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, successStyle.Render("Created config file: "+configFile))
	fmt.Fprintln(out, mutedStyle.Render("Set data.decomposition_file and data.dictionary_file before running other commands."))
	return nil
}
