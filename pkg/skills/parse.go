package skills

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// parseSkillFile applies the SKILL.md format contract to raw file text:
// an opening delimiter line, a YAML block with non-empty name and
// description, a closing delimiter line, and a trailing body. The body
// is returned with surrounding whitespace trimmed. Each violated rule
// yields its own sentinel so callers never see a collapsed generic
// error.
func parseSkillFile(raw []byte) (Metadata, string, error) {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	if strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return Metadata{}, "", ErrMissingOpenDelimiter
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return Metadata{}, "", ErrMissingCloseDelimiter
	}

	var meta Metadata
	header := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return Metadata{}, "", errors.Wrap(err, "invalid frontmatter")
	}

	meta.Name = strings.TrimSpace(meta.Name)
	meta.Description = strings.TrimSpace(meta.Description)
	if meta.Name == "" {
		return Metadata{}, "", ErrMissingName
	}
	if meta.Description == "" {
		return Metadata{}, "", ErrMissingDescription
	}

	body := strings.TrimSpace(strings.Join(lines[end+1:], "\n"))
	return meta, body, nil
}
