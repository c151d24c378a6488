// Package mcpserver exposes the scoring engine as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/speech-mastery/orchestrator"
	"github.com/maastricht-university/speech-mastery/patterns"
)

type Server struct {
	engine    *orchestrator.Engine
	mcpServer *sdk.Server
	log       *logrus.Entry
}

func NewServer(name, version string, engine *orchestrator.Engine) *Server {
	s := &Server{
		engine: engine,
		mcpServer: sdk.NewServer(&sdk.Implementation{
			Name:    name,
			Version: version,
		}, nil),
		log: logrus.WithField("component", "mcp"),
	}
	s.registerTools()
	return s
}

// Run serves on stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdk.StdioTransport{})
}

// Connect serves one session on t.
func (s *Server) Connect(ctx context.Context, t sdk.Transport) (*sdk.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "analyze_speech",
		Description: "Score a speech on power dynamics, linguistic authority, vocal command and persuasion, and list its critical moments",
	}, s.handleAnalyze)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "list_dictionaries",
		Description: "List the phrase dictionaries used for pattern detection",
	}, s.handleListDictionaries)
}

type AnalyzeArgs struct {
	Transcript      *string `json:"transcript,omitempty" jsonschema:"transcript text; omit to transcribe audio_path"`
	DurationSeconds float64 `json:"duration_seconds" jsonschema:"length of the speech in seconds"`
	AudioPath       string  `json:"audio_path,omitempty" jsonschema:"recording to transcribe when no transcript is given"`
}

type ListDictionariesArgs struct{}

func (s *Server) handleAnalyze(ctx context.Context, _ *sdk.CallToolRequest, args AnalyzeArgs) (*sdk.CallToolResult, any, error) {
	if args.Transcript == nil && args.AudioPath == "" {
		return nil, nil, errors.New("transcript or audio_path is required")
	}
	in := orchestrator.Input{
		Transcript:      args.Transcript,
		DurationSeconds: args.DurationSeconds,
		AudioPath:       args.AudioPath,
	}
	if args.AudioPath != "" {
		b, err := os.ReadFile(args.AudioPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read audio: %w", err)
		}
		in.Audio = b
	}
	res, err := s.engine.Analyze(ctx, in)
	if err != nil {
		s.log.WithError(err).Warn("analyze_speech failed")
		return nil, nil, err
	}
	b, err := json.Marshal(res)
	if err != nil {
		return nil, nil, err
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{
			&sdk.TextContent{Text: fmt.Sprintf("Overall score: %.1f (power %.1f, linguistic %.1f, vocal %.1f, persuasion %.1f)",
				res.OverallScore, res.PowerDynamicsScore, res.LinguisticAuthorityScore, res.VocalCommandScore, res.PersuasionInfluenceScore)},
			&sdk.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func (s *Server) handleListDictionaries(context.Context, *sdk.CallToolRequest, ListDictionariesArgs) (*sdk.CallToolResult, any, error) {
	all := patterns.All()
	content := make([]sdk.Content, 0, len(all))
	for _, d := range all {
		content = append(content, &sdk.TextContent{Text: fmt.Sprintf("%s (%d): %v", d.Name(), d.Len(), d.Phrases())})
	}
	return &sdk.CallToolResult{Content: content}, nil, nil
}
