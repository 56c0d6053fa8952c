// Package mcp provides an MCP (Model Context Protocol) server adapter for EmotiCare.
// It lets AI assistants ask the support document questions and read mood content.
package mcp

import "errors"

var (
	// ErrMissingAnswerService is returned when the answer service is not provided.
	ErrMissingAnswerService = errors.New("mcp: answer service is required")

	// ErrMissingWellnessService is returned when the wellness service is not provided.
	ErrMissingWellnessService = errors.New("mcp: wellness service is required")
)
