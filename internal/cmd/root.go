package cmd

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/zhong/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the zhong command tree. Persistent flags are bound to
// their viper keys, so a flag overrides the config file and the
// environment.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zhong",
		Short: "Decompose Chinese characters and segment Chinese text",
		Long: `zhong breaks a single Chinese character into its structural components
using a decomposition table, and splits longer Chinese text into dictionary
words using bounded maximum matching.

Data files are configured in the config file (see 'zhong config init').`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/zhong/config.yaml)")
	flags.String("charset", "", "character set: traditional, simplified or both")
	flags.Int("max-word-length", 0, "longest dictionary word considered, in characters")
	flags.StringP("format", "f", "", "output format: text, json or yaml")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("segment.character_set", flags.Lookup("charset"))
	_ = viper.BindPFlag("segment.max_word_length", flags.Lookup("max-word-length"))
	_ = viper.BindPFlag("output.format", flags.Lookup("format"))

	rootCmd.AddCommand(
		newDecomposeCmd(),
		newSegmentCmd(),
		newResolveCmd(),
		newCheckCyclesCmd(),
		newLookupCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// Execute runs the root command. Errors other than silentError are printed
// to stderr before being returned.
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil && !isSilent(err) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), errorStyle.Render("Error: "+err.Error()))
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ZHONG")
	// Replace dots with underscores for nested keys in env vars
	// e.g., ZHONG_SEGMENT_MAX_WORD_LENGTH for segment.max_word_length
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// silentError signals that a command failed but its output was already
// written. Used to set exit code 1 without printing a duplicate message.
type silentError struct {
	reason string
}

func (e *silentError) Error() string {
	return e.reason
}

func isSilent(err error) bool {
	_, ok := err.(*silentError)
	return ok
}
