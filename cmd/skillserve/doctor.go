package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/skillworks/skillserve/pkg/presenter"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate every discoverable skill file",
	Long: `Parse every discoverable SKILL.md and report all format violations at
once: missing frontmatter delimiters, missing name, missing description.
Exits non-zero when any skill is invalid.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runDoctorCommand(cmd)
	},
}

func runDoctorCommand(cmd *cobra.Command) {
	ctx := cmd.Context()

	discovery, err := newDiscovery()
	if err != nil {
		presenter.Error(err, "failed to initialize skill discovery")
		os.Exit(1)
	}

	names := discovery.Discover(ctx)
	if len(names) == 0 {
		presenter.Info("No skills found. Configured directories:")
		for _, dir := range discovery.Dirs() {
			presenter.Info("  " + dir)
		}
		return
	}

	var result *multierror.Error
	for _, name := range names {
		if _, err := discovery.LoadSkill(ctx, name); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		presenter.Error(err, fmt.Sprintf("%d of %d skill(s) invalid", len(result.Errors), len(names)))
		os.Exit(1)
	}

	presenter.Success(fmt.Sprintf("All %d skill(s) valid", len(names)))
}
