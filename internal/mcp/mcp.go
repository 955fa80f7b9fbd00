// Package mcp provides result helpers shared by the tool handlers.
package mcp

import (
	"fmt"
	"sort"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/mark3labs/mcp-go/mcp"
)

// NewToolResultInvalidArgumentError creates a tool result that tells the
// client the arguments were invalid, as opposed to a backend failure.
func NewToolResultInvalidArgumentError(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("[InvalidArgument] %s", message))
}

// NewToolResultZogIssueMap flattens a zog validation issue map into an
// invalid-argument tool result, one "field: message" line per issue.
func NewToolResultZogIssueMap(issueMap z.ZogIssueMap) *mcp.CallToolResult {
	sanitized := z.Issues.SanitizeMap(issueMap)
	delete(sanitized, "$first")

	fields := make([]string, 0, len(sanitized))
	for field := range sanitized {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var messages []string
	for _, field := range fields {
		for _, message := range sanitized[field] {
			messages = append(messages, fmt.Sprintf("%s: %s", field, message))
		}
	}
	return NewToolResultInvalidArgumentError(strings.Join(messages, "\n"))
}
