package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/examdrill/examdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "examdrill",
	Short: "Terminal practice-exam runner",
	Long:  "Examdrill — a local multiple-choice quiz runner for certification prep, with practice and timed exam modes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXAMDRILL_DB env var)")
	rootCmd.PersistentFlags().String("questions", "", "Path to the question bank JSON file")
	rootCmd.Flags().Int("threshold", 0, "Pass threshold percentage (default 70)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// viperForCmd binds a command's flags and environment to a fresh viper
// instance, layered over an optional examdrill.{yaml,toml,json} config
// file.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("EXAMDRILL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("examdrill")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/examdrill")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "warning: error reading config file:", err)
		}
	}

	return v
}

// resolveDBPath returns the database path using --db / config / env
// (highest priority first), then the default XDG path.
func resolveDBPath(v *viper.Viper) (string, error) {
	if p := v.GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveBankPath returns the question bank path from --questions /
// config / env, falling back to questions.json in the working
// directory.
func resolveBankPath(v *viper.Viper) string {
	if p := v.GetString("questions"); p != "" {
		return p
	}
	return "questions.json"
}
