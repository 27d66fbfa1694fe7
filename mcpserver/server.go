// Package mcpserver exposes the query engine as Model Context Protocol tools,
// so an assistant can resolve canonical sentences without a shell.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/teranos/shufa/engine"
	"github.com/teranos/shufa/grammar"
	"github.com/teranos/shufa/version"
)

// Server wraps an Engine and exposes it via Model Context Protocol
type Server struct {
	engine *engine.Engine
	server *server.MCPServer
}

// New creates an MCP server backed by e
func New(e *engine.Engine) *Server {
	s := &Server{engine: e}

	s.server = server.NewMCPServer(
		"shufa",
		version.Get().Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	resolveTool := mcp.NewTool("resolve",
		mcp.WithDescription("Answer a canonical calligraphy query sentence, e.g. 查询书法家王羲之. "+
			"Unrecognized sentences return 无法理解您的查询，请尝试重新表述"),
		mcp.WithString("sentence",
			mcp.Required(),
			mcp.Description("Canonical query sentence; see the shapes tool for accepted forms"),
		),
	)
	s.server.AddTool(resolveTool, s.handleResolve)

	tokenizeTool := mcp.NewTool("tokenize",
		mcp.WithDescription("Show how a sentence is tokenized and which shape it matches"),
		mcp.WithString("sentence",
			mcp.Required(),
			mcp.Description("Sentence to tokenize"),
		),
	)
	s.server.AddTool(tokenizeTool, s.handleTokenize)

	shapesTool := mcp.NewTool("shapes",
		mcp.WithDescription("List the accepted sentence shapes with an example of each"),
	)
	s.server.AddTool(shapesTool, s.handleShapes)
}

func (s *Server) handleResolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sentence, err := request.RequireString("sentence")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.engine.Resolve(sentence)), nil
}

func (s *Server) handleTokenize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sentence, err := request.RequireString("sentence")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tokens, skipped := s.engine.Tokens(sentence)

	var b strings.Builder
	for _, t := range tokens {
		fmt.Fprintf(&b, "%d:%d %s\n", t.Range.Start.Line, t.Range.Start.Character, t)
	}
	for _, sk := range skipped {
		fmt.Fprintf(&b, "%d:%d skipped %q\n", sk.Position.Line, sk.Position.Character, sk.Rune)
	}

	if m, err := grammar.MatchTokens(tokens); err != nil {
		fmt.Fprintf(&b, "shape: none (%s)", err)
	} else {
		fmt.Fprintf(&b, "shape: %s [%s]", m.Shape, m.Shape.Pattern())
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleShapes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var lines []string
	for i, shape := range grammar.Shapes() {
		lines = append(lines, fmt.Sprintf("%d. %s  %s", i+1, shape.Pattern(), shape.Example()))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

// ServeStdio runs the server over stdin/stdout until the client disconnects
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.server)
}
