package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillworks/skillserve/pkg/mcpserver"
	"github.com/skillworks/skillserve/pkg/presenter"
)

var showCmd = &cobra.Command{
	Use:   "show <skill-name>",
	Short: "Print one skill's full instructions",
	Long: `Load a skill fresh from disk and print it in the same format the
get_skill tool returns to agents.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runShowCommand(cmd, args[0])
	},
}

func runShowCommand(cmd *cobra.Command, name string) {
	discovery, err := newDiscovery()
	if err != nil {
		presenter.Error(err, "failed to initialize skill discovery")
		os.Exit(1)
	}

	skill, err := discovery.LoadSkill(cmd.Context(), name)
	if err != nil {
		presenter.Error(err, "failed to load skill")
		os.Exit(1)
	}

	fmt.Println(mcpserver.FormatSkill(skill))
}
