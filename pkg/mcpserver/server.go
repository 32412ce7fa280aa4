// Package mcpserver exposes the skill engine over the Model Context
// Protocol (MCP) via stdio.
//
// The server publishes a single tool, get_skill, whose description is
// regenerated on every tools/list request from a fresh directory scan.
// An agent first lists tools to learn which skills exist, then calls
// get_skill with a skill name to load one document's full instructions.
// Every invocation-time failure is returned as readable text through the
// normal tool-result channel rather than a protocol fault, so the
// calling agent can act on it (retry discovery, fix a parameter).
package mcpserver

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/skillworks/skillserve/pkg/logger"
	"github.com/skillworks/skillserve/pkg/skills"
)

const (
	// GetSkillToolName is the single tool the server exposes.
	GetSkillToolName = "get_skill"

	// skillNameParam is the tool's one required string parameter.
	skillNameParam = "skill_name"

	// maxListDescriptionLen caps per-skill descriptions embedded in the
	// tool description.
	maxListDescriptionLen = 80
)

// Server wraps an MCP server around a skills.Discovery.
type Server struct {
	mcpServer *server.MCPServer
	discovery *skills.Discovery
}

// New creates the MCP server. The discovery's directory list is fixed
// for the server's lifetime; its contents are rescanned on every
// tools/list request.
func New(version string, discovery *skills.Discovery) *Server {
	s := &Server{discovery: discovery}

	hooks := &server.Hooks{}
	hooks.AddBeforeListTools(func(ctx context.Context, _ any, _ *mcp.ListToolsRequest) {
		s.refreshSkillTool(ctx)
	})

	// listChanged stays off: the tool is re-registered on every list
	// request, which must not fan out change notifications.
	s.mcpServer = server.NewMCPServer(
		"skillserve", version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithHooks(hooks),
		server.WithInstructions("skillserve serves named expert skills. List tools to see the current skill catalog, then call get_skill to load one skill's full instructions."),
	)
	s.refreshSkillTool(context.Background())

	return s
}

// refreshSkillTool re-registers get_skill with a description built from
// a fresh discovery scan. Re-registration under the same name replaces
// the previous definition.
func (s *Server) refreshSkillTool(ctx context.Context) {
	tool := mcp.NewTool(GetSkillToolName,
		mcp.WithDescription(s.describeSkills(ctx)),
		mcp.WithString(skillNameParam,
			mcp.Required(),
			mcp.Description("Name of the skill to load"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleGetSkill)
}

// describeSkills builds the capability description embedding the
// current sorted skill list. A metadata failure for one skill degrades
// to listing the bare name; an empty registry states so plainly and
// names the configured directories as a diagnostic aid.
func (s *Server) describeSkills(ctx context.Context) string {
	names := s.discovery.Discover(ctx)

	var sb strings.Builder
	sb.WriteString("Load a named expert skill: a document with specialized instructions for a particular kind of task. ")
	sb.WriteString("Call this tool with the skill name before attempting a task a skill covers.\n\n")

	if len(names) == 0 {
		sb.WriteString("No skills are currently available. Configured skill directories:\n")
		for _, dir := range s.discovery.Dirs() {
			fmt.Fprintf(&sb, "- %s\n", dir)
		}
		return sb.String()
	}

	sb.WriteString("Available skills:\n")
	for _, name := range names {
		meta, err := s.discovery.SkillMetadata(ctx, name)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("skill", name).Debug("listing skill without description")
			fmt.Fprintf(&sb, "- %s\n", name)
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", name, oneLine(meta.Description, maxListDescriptionLen))
	}
	return sb.String()
}

// oneLine collapses a description to its first line and truncates it
// with an ellipsis marker when it exceeds max.
func oneLine(s string, max int) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		s = s[:i]
	}
	if len(s) > max {
		s = s[:max-3] + "..."
	}
	return s
}

func (s *Server) handleGetSkill(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.CallTool(ctx, GetSkillToolName, request.GetArguments()), nil
}

// CallTool dispatches one invocation. Every failure comes back as a
// text result on the normal response channel: unknown tool names and
// missing parameters as plain text, load failures as error-marked text.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	if name != GetSkillToolName {
		return mcp.NewToolResultText(fmt.Sprintf("Unknown tool %q. The only available tool is %q.", name, GetSkillToolName))
	}

	skillName, _ := args[skillNameParam].(string)
	skillName = strings.TrimSpace(skillName)
	if skillName == "" {
		return mcp.NewToolResultText(fmt.Sprintf("The %s parameter is required and must be a non-empty string.", skillNameParam))
	}

	skill, err := s.discovery.LoadSkill(ctx, skillName)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}

	return mcp.NewToolResultText(FormatSkill(skill))
}

// FormatSkill renders a loaded skill into the fixed text template
// returned to agents: heading, description, source directory, a
// separator, then the body verbatim.
func FormatSkill(skill *skills.Skill) string {
	return fmt.Sprintf("# Skill: %s\n\n%s\n\nSource: %s\n\n---\n\n%s",
		skill.Name, skill.Description, skill.SourceDir, skill.Content)
}

// Serve runs the MCP server over stdio until the input closes or the
// context is cancelled. Logs must already be routed away from stdout.
func (s *Server) Serve(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcpServer)
	err := stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "stdio transport failed")
	}
	return nil
}
