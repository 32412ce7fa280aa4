package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillworks/skillserve/pkg/presenter"
	"github.com/skillworks/skillserve/pkg/skills"
)

type SkillNewConfig struct {
	Global bool
}

func NewSkillNewConfig() *SkillNewConfig {
	return &SkillNewConfig{
		Global: false,
	}
}

var newCmd = &cobra.Command{
	Use:   "new <skill-name>",
	Short: "Scaffold a new skill",
	Long: `Create a new skill directory with a SKILL.md template.

Examples:
  skillserve new release-runbook
  skillserve new release-runbook -g`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getSkillNewConfigFromFlags(cmd)
		runNewCommand(args[0], config)
	},
}

func init() {
	defaults := NewSkillNewConfig()
	newCmd.Flags().BoolP("global", "g", defaults.Global, "Create in the global ~/.skillserve/skills directory instead of local ./.skillserve/skills")
}

func getSkillNewConfigFromFlags(cmd *cobra.Command) *SkillNewConfig {
	config := NewSkillNewConfig()
	if global, err := cmd.Flags().GetBool("global"); err == nil {
		config.Global = global
	}
	return config
}

var skillNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func runNewCommand(name string, config *SkillNewConfig) {
	skillsDir, err := targetSkillsDir(config.Global)
	if err != nil {
		presenter.Error(err, "failed to determine skills directory")
		os.Exit(1)
	}

	path, err := scaffoldSkill(skillsDir, name)
	if err != nil {
		presenter.Error(err, "failed to create skill")
		os.Exit(1)
	}

	presenter.Success(fmt.Sprintf("Created skill %q", name))
	presenter.Info("Edit " + path + " to fill in the description and instructions.")
}

func targetSkillsDir(global bool) (string, error) {
	if global {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "failed to get user home directory")
		}
		return filepath.Join(homeDir, ".skillserve", "skills"), nil
	}
	return filepath.Join(".skillserve", "skills"), nil
}

// scaffoldSkill writes <skillsDir>/<name>/SKILL.md with a valid
// frontmatter template and returns the file path.
func scaffoldSkill(skillsDir, name string) (string, error) {
	if !skillNamePattern.MatchString(name) {
		return "", errors.Errorf("invalid skill name %q: use lowercase letters, digits, and hyphens", name)
	}

	skillDir := filepath.Join(skillsDir, name)
	skillFile := filepath.Join(skillDir, skills.SkillFileName)

	if _, err := os.Stat(skillFile); err == nil {
		return "", errors.Errorf("skill %q already exists at %s", name, skillDir)
	}

	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create skill directory")
	}

	content := fmt.Sprintf(`---
name: %s
description: Describe what this skill does and when an agent should use it.
---

# %s

## Instructions

1. Replace this body with the skill's instructions.
`, name, name)

	if err := os.WriteFile(skillFile, []byte(content), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write skill file")
	}

	return skillFile, nil
}
