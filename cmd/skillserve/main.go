package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillworks/skillserve/pkg/logger"
	"github.com/skillworks/skillserve/pkg/presenter"
	"github.com/skillworks/skillserve/pkg/skills"
)

func init() {
	// Environment variables (SKILLSERVE_SKILLS_DIR, SKILLSERVE_LOG_LEVEL, ...)
	viper.SetEnvPrefix("SKILLSERVE")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillserve")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillserve",
	Short: "Serve expert skill documents to agents over MCP",
	Long: `Skillserve aggregates SKILL.md documents from conventional local
directories and serves them to automated agents through an MCP stdio
server with a single get_skill tool. Skills added or edited on disk are
visible on the next request without a restart.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			presenter.Warning(fmt.Sprintf("invalid log level %q, using info", viper.GetString("log_level")))
		}
		logger.SetLogFormat(viper.GetString("log_format"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
		os.Exit(1)
	},
}

// newDiscovery builds the skill discovery with the conventional
// directory list plus the configured override. The override is read
// once here; directory membership stays fixed for the process.
func newDiscovery() (*skills.Discovery, error) {
	return skills.NewDiscovery(skills.WithDefaultDirs(viper.GetString("skills_dir")))
}

func main() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")
	rootCmd.PersistentFlags().String("skills-dir", "", "Extra skills directory with the highest override priority")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("skills_dir", rootCmd.PersistentFlags().Lookup("skills-dir"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
