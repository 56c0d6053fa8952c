package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the support document"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer   string          `json:"answer"`
	Grounded bool            `json:"grounded"`
	Passages []PassageOutput `json:"passages,omitempty"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Question string `json:"question" jsonschema:"the question to find passages for"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Passages []PassageOutput `json:"passages"`
	Count    int             `json:"count"`
}

// PassageOutput is a retrieved document passage.
type PassageOutput struct {
	ChunkID string  `json:"chunk_id"`
	Section string  `json:"section,omitempty"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

// TipsInput is the input schema for the tips_for_mood tool.
type TipsInput struct {
	Mood string `json:"mood" jsonschema:"one of the supported moods, e.g. Sad or Anxious"`
}

// TipsOutput is the output schema for the tips_for_mood tool.
type TipsOutput struct {
	Mood               string   `json:"mood"`
	Tips               []string `json:"tips"`
	SuggestedQuestions []string `json:"suggested_questions"`
}

// QuoteInput is the input schema for the quote_of_the_day tool.
type QuoteInput struct {
	Date string `json:"date,omitempty" jsonschema:"calendar date as YYYY-MM-DD (default today)"`
}

// QuoteOutput is the output schema for the quote_of_the_day tool.
type QuoteOutput struct {
	Date  string `json:"date"`
	Quote string `json:"quote"`
}

// now is replaced in tests.
var now = time.Now

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a wellbeing question in one short line, grounded in the support document",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Return the support document passages most relevant to a question",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "tips_for_mood",
		Description: "Relaxation tips and suggested questions for a mood",
	}, s.handleTipsForMood)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "quote_of_the_day",
		Description: "The motivational quote for a calendar day",
	}, s.handleQuoteOfTheDay)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Answer.Answer(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:   answer.Text,
		Grounded: answer.Grounded(),
		Passages: toPassages(answer.Passages),
	}, nil
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	hits, err := s.ports.Answer.Retrieve(ctx, input.Question)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	return nil, RetrieveOutput{
		Passages: toPassages(hits),
		Count:    len(hits),
	}, nil
}

// handleTipsForMood handles the tips_for_mood tool invocation.
func (s *Server) handleTipsForMood(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TipsInput,
) (*mcp.CallToolResult, TipsOutput, error) {
	mood, err := domain.ParseMood(input.Mood)
	if err != nil {
		return nil, TipsOutput{}, err
	}

	tips, err := s.ports.Wellness.TipsForMood(ctx, mood)
	if err != nil {
		return nil, TipsOutput{}, err
	}
	questions, err := s.ports.Wellness.SuggestedQuestions(mood)
	if err != nil {
		return nil, TipsOutput{}, err
	}

	return nil, TipsOutput{
		Mood:               mood.String(),
		Tips:               tips,
		SuggestedQuestions: questions,
	}, nil
}

// handleQuoteOfTheDay handles the quote_of_the_day tool invocation.
func (s *Server) handleQuoteOfTheDay(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuoteInput,
) (*mcp.CallToolResult, QuoteOutput, error) {
	day := now()
	if input.Date != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, input.Date, time.Local)
		if err != nil {
			return nil, QuoteOutput{}, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		day = parsed
	}

	quote, err := s.ports.Wellness.QuoteOfTheDay(ctx, day)
	if err != nil {
		return nil, QuoteOutput{}, err
	}

	return nil, QuoteOutput{
		Date:  day.Format(time.DateOnly),
		Quote: quote,
	}, nil
}

func toPassages(hits []domain.ScoredChunk) []PassageOutput {
	out := make([]PassageOutput, len(hits))
	for i, h := range hits {
		section, _ := h.Chunk.Metadata["section_title"].(string)
		out[i] = PassageOutput{
			ChunkID: h.Chunk.ID,
			Section: section,
			Score:   h.Score,
			Content: h.Chunk.Content,
		}
	}
	return out
}
