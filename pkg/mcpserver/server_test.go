package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillworks/skillserve/pkg/skills"
)

func writeSkill(t *testing.T, dir, name, description, body string) string {
	t.Helper()

	skillDir := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))

	content := "---\nname: " + name + "\ndescription: " + description + "\n---\n\n" + body + "\n"
	path := filepath.Join(skillDir, skills.SkillFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestServer(t *testing.T, dirs ...string) *Server {
	t.Helper()

	discovery, err := skills.NewDiscovery(skills.WithSkillDirs(dirs...))
	require.NoError(t, err)
	return New("test", discovery)
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestDescribeSkills(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writeSkill(t, dir, "code-review", "Review pull requests carefully", "Body.")
	writeSkill(t, dir, "api-design", "Design clean HTTP APIs", "Body.")

	desc := newTestServer(t, dir).describeSkills(ctx)

	assert.Contains(t, desc, "Available skills:")
	assert.Contains(t, desc, "- api-design: Design clean HTTP APIs")
	assert.Contains(t, desc, "- code-review: Review pull requests carefully")
	assert.Less(t, strings.Index(desc, "api-design"), strings.Index(desc, "code-review"),
		"skills must be listed in sorted order")
}

func TestDescribeSkillsTruncatesLongDescriptions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	long := strings.Repeat("very long description ", 10)
	writeSkill(t, dir, "verbose", long, "Body.")

	desc := newTestServer(t, dir).describeSkills(ctx)

	assert.Contains(t, desc, "...")
	assert.NotContains(t, desc, long)
}

func TestDescribeSkillsFirstLineOnly(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	skillDir := filepath.Join(dir, "multiline")
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	content := "---\nname: multiline\ndescription: |-\n  First line.\n  Second line.\n---\n\nBody.\n"
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, skills.SkillFileName), []byte(content), 0o644))

	desc := newTestServer(t, dir).describeSkills(ctx)

	assert.Contains(t, desc, "- multiline: First line.\n")
	assert.NotContains(t, desc, "Second line.")
}

func TestDescribeSkillsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	desc := newTestServer(t, dir).describeSkills(ctx)

	assert.Contains(t, desc, "No skills are currently available.")
	assert.Contains(t, desc, dir, "the empty message must name the configured directories")
}

func TestDescribeSkillsInvalidSkillFallsBackToBareName(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writeSkill(t, dir, "good", "A valid skill", "Body.")

	brokenDir := filepath.Join(dir, "broken")
	require.NoError(t, os.MkdirAll(brokenDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(brokenDir, skills.SkillFileName),
		[]byte("no frontmatter at all\n"),
		0o644,
	))

	desc := newTestServer(t, dir).describeSkills(ctx)

	assert.Contains(t, desc, "- broken\n", "a broken skill is listed without a description")
	assert.Contains(t, desc, "- good: A valid skill")
}

func TestCallToolUnknownTool(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, t.TempDir())

	result := s.CallTool(ctx, "delete_skill", map[string]any{"skill_name": "x"})

	assert.False(t, result.IsError)
	text := resultText(t, result)
	assert.Contains(t, text, `Unknown tool "delete_skill"`)
	assert.Contains(t, text, GetSkillToolName)
}

func TestCallToolMissingParameter(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, t.TempDir())

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "absent", args: map[string]any{}},
		{name: "empty", args: map[string]any{"skill_name": ""}},
		{name: "whitespace", args: map[string]any{"skill_name": "   "}},
		{name: "wrong type", args: map[string]any{"skill_name": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.CallTool(ctx, GetSkillToolName, tt.args)
			assert.False(t, result.IsError)
			assert.Contains(t, resultText(t, result), "skill_name")
		})
	}
}

func TestCallToolSkillNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, t.TempDir())

	result := s.CallTool(ctx, GetSkillToolName, map[string]any{"skill_name": "nope"})

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "nope")
}

func TestCallToolSuccess(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writeSkill(t, dir, "deploy", "Deploy the service", "Run the deploy script.")
	s := newTestServer(t, dir)

	result := s.CallTool(ctx, GetSkillToolName, map[string]any{"skill_name": "deploy"})

	assert.False(t, result.IsError)
	text := resultText(t, result)
	assert.Contains(t, text, "# Skill: deploy")
	assert.Contains(t, text, "Deploy the service")
	assert.Contains(t, text, "Source: "+dir)
	assert.Contains(t, text, "Run the deploy script.")
}

func TestCallToolSeesLiveEdits(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	path := writeSkill(t, dir, "live", "Live skill", "Old body.")
	s := newTestServer(t, dir)

	result := s.CallTool(ctx, GetSkillToolName, map[string]any{"skill_name": "live"})
	require.Contains(t, resultText(t, result), "Old body.")

	updated := "---\nname: live\ndescription: Live skill\n---\n\nNew body.\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	result = s.CallTool(ctx, GetSkillToolName, map[string]any{"skill_name": "live"})
	assert.Contains(t, resultText(t, result), "New body.")
}

func TestFormatSkill(t *testing.T) {
	skill := &skills.Skill{
		Name:        "example",
		Description: "An example",
		Content:     "Do the thing.",
		SourceDir:   "/tmp/skills",
	}

	want := "# Skill: example\n\nAn example\n\nSource: /tmp/skills\n\n---\n\nDo the thing."
	assert.Equal(t, want, FormatSkill(skill))
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "short", oneLine("short", 80))
	assert.Equal(t, "first", oneLine("first\nsecond", 80))
	assert.Equal(t, "abcde...", oneLine("abcdefghij", 8))
}
