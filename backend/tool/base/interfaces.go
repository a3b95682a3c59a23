package base

import (
	"context"
)

// BaseTool defines the core interface that all tool implementations must satisfy
type BaseTool[Input any, Output any] interface {
	// Name returns the tool's identifier
	Name() string
	// Description returns the tool's description for documentation
	Description() string
	// Execute runs the tool with the given input and returns the result
	Execute(ctx context.Context, input Input) Output
}

// CommunicationTool is a tool that talks to the human at the keyboard.
type CommunicationTool[Input any, Output any] interface {
	BaseTool[Input, Output]
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
