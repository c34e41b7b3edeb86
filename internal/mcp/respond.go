package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// toolJSON marshals v as the tool's text payload.
func toolJSON(v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}

type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// toolError renders err in the stable {code, message} form. The error
// travels inside the result, never as a protocol failure, so clients
// always see the machine-readable code.
func toolError(err error) (*mcp.CallToolResult, error) {
	raw, mErr := json.Marshal(wireError{Code: apperr.Code(err), Message: err.Error()})
	if mErr != nil {
		return nil, fmt.Errorf("encoding tool error: %w", mErr)
	}
	return mcp.NewToolResultError(string(raw)), nil
}
