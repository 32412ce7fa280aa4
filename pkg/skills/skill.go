// Package skills aggregates named expert skill documents from a set of
// local directories and loads them on demand. Skills are packaged as
// directories containing a SKILL.md file with YAML frontmatter declaring
// the skill's name and description, followed by a free-form instruction
// body.
//
// Directory membership is resolved once per process; directory contents
// are re-read on every discovery or load call, so edits, additions, and
// removals on disk are visible on the very next call without a restart.
package skills

// SkillFileName is the document probed for in every skill subdirectory.
const SkillFileName = "SKILL.md"

// Skill is one fully loaded skill document. It is produced fresh per
// load and never cached.
type Skill struct {
	Name        string // from frontmatter, not the directory name
	Description string // from frontmatter
	Content     string // body after the frontmatter block, trimmed
	Path        string // full path to the SKILL.md file
	SourceDir   string // configured directory the skill resolved from
}

// Metadata is the YAML frontmatter of a SKILL.md file. Additional
// fields are permitted and ignored.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
