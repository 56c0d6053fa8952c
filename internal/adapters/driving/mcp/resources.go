package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for EmotiCare resources.
	uriScheme = "emoticare://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "moods",
		Name:        "moods",
		Description: "Supported moods with their suggested questions",
		MIMEType:    "application/json",
	}, s.handleMoodsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "document",
		Name:        "document",
		Description: "The indexed support document",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "moods/{mood}/tips",
		Name:        "mood-tips",
		Description: "Relaxation tips for a mood",
		MIMEType:    "application/json",
	}, s.handleMoodTipsResource)
}

// handleMoodsResource lists every mood in display order.
func (s *Server) handleMoodsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type moodInfo struct {
		Name               string   `json:"name"`
		SuggestedQuestions []string `json:"suggested_questions"`
	}

	moods := s.ports.Wellness.Moods()
	infos := make([]moodInfo, 0, len(moods))
	for _, m := range moods {
		questions, err := s.ports.Wellness.SuggestedQuestions(m)
		if err != nil {
			return nil, fmt.Errorf("suggested questions for %s: %w", m, err)
		}
		infos = append(infos, moodInfo{Name: m.String(), SuggestedQuestions: questions})
	}

	return jsonResult(req.Params.URI, infos)
}

// handleDocumentResource describes the indexed document.
func (s *Server) handleDocumentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	info := s.ports.Answer.Info()

	return jsonResult(req.Params.URI, map[string]any{
		"id":         info.DocumentID,
		"title":      info.DocumentTitle,
		"path":       info.DocumentPath,
		"sections":   info.Sections,
		"chunks":     info.Chunks,
		"dimensions": info.Dimensions,
		"model":      info.ModelTag,
	})
}

// handleMoodTipsResource returns the tips for one mood.
func (s *Server) handleMoodTipsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractMood(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	mood, err := domain.ParseMood(name)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tips, err := s.ports.Wellness.TipsForMood(ctx, mood)
	if err != nil {
		return nil, fmt.Errorf("loading tips: %w", err)
	}

	return jsonResult(req.Params.URI, tips)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractMood extracts the mood from a URI like emoticare://moods/{mood}/tips.
func extractMood(uri string) string {
	const prefix = uriScheme + "moods/"
	const suffix = "/tips"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
