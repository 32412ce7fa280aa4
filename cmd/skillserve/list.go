package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skillworks/skillserve/pkg/presenter"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available skills",
	Long:  `List all available skills with their names, source directories, and descriptions.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runListCommand(cmd)
	},
}

func runListCommand(cmd *cobra.Command) {
	ctx := cmd.Context()

	discovery, err := newDiscovery()
	if err != nil {
		presenter.Error(err, "failed to initialize skill discovery")
		os.Exit(1)
	}

	names := discovery.Discover(ctx)
	if len(names) == 0 {
		presenter.Info("No skills available. Configured directories:")
		for _, dir := range discovery.Dirs() {
			presenter.Info("  " + dir)
		}
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSOURCE\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t------\t-----------")

	for _, name := range names {
		meta, err := discovery.SkillMetadata(ctx, name)
		if err != nil {
			fmt.Fprintf(tw, "%s\t\t(invalid: %v)\n", name, err)
			continue
		}
		description := meta.Description
		if len(description) > 60 {
			description = description[:57] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, meta.SourceDir, description)
	}
	tw.Flush()
}
