package base

import (
	"fmt"
	"slices"
	"strings"
)

type ErrorCode int32

const (
	MalformedQuestion ErrorCode = iota + 1
	IncompleteQuestion
	InteractionFailed
	AnomalousResolution
	Internal
	InvalidInput
)

func (e ErrorCode) String() string {
	switch e {
	case MalformedQuestion:
		return "Malformed question document"
	case IncompleteQuestion:
		return "Incomplete question"
	case InteractionFailed:
		return "Question dialog failed"
	case AnomalousResolution:
		return "Question dialog closed without an answer"
	case Internal:
		return "Internal error"
	case InvalidInput:
		return "Invalid argument"
	}
	return ""
}

func (e ErrorCode) Suggestion() []string {
	switch e {
	case MalformedQuestion:
		return []string{
			"The document must have a <question> root with a type attribute of \"qa\" or \"choice\".",
			"Both <title> and <content> are required.",
			"Choice questions need an <options> element with at least one <option value=\"...\">label</option>.",
			"Read the examples://question-formats resource for complete examples.",
		}
	case IncompleteQuestion:
		return []string{
			"Fill in every field listed below and ask again.",
		}
	case InteractionFailed:
		return []string{
			"The user did not see a usable dialog. Retrying once is reasonable; if it fails again, ask the question in your reply instead.",
		}
	case AnomalousResolution:
		return []string{
			"The dialog ended without the user submitting or cancelling. Do not treat this as a refusal; ask again or continue without the answer.",
		}
	case Internal:
		return []string{
			"An internal error occurred. This is a bug with the tool itself. Try to work around it.",
		}
	case InvalidInput:
		return []string{
			"Check the argument names and types against the tool schema.",
		}
	}
	return []string{}
}

const (
	GenericSuggestion = "Check the provided system error for more details"
)

type ToolError struct {
	Message     string
	Suggestions []string
	Details     map[string]any
}

func (e *ToolError) Error() string {
	var result strings.Builder
	result.WriteString(e.Message)

	if len(e.Suggestions) > 0 {
		result.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			result.WriteString("\n- ")
			result.WriteString(suggestion)
		}
	}

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for key := range e.Details {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		result.WriteString("\n\nDetails:")
		for _, key := range keys {
			result.WriteString("\n- ")
			result.WriteString(key)
			result.WriteString(": ")
			result.WriteString(fmt.Sprintf("%v", e.Details[key]))
		}
	}

	return result.String()
}

func NewError(code ErrorCode, args ...any) *ToolError {
	suggestions := append(code.Suggestion(), GenericSuggestion)
	return &ToolError{
		Message:     code.String(),
		Suggestions: suggestions,
		Details:     details(args),
	}
}

func NewCustomError(message string, suggestions []string, args ...any) *ToolError {
	suggestions = append(suggestions, GenericSuggestion)
	return &ToolError{
		Message:     message,
		Suggestions: suggestions,
		Details:     details(args),
	}
}

func details(args []any) map[string]any {
	if len(args)%2 != 0 {
		args = append(args, "MISSING")
	}

	details := make(map[string]any)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("arg%d", i)
		}
		value := args[i+1]
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		details[key] = value
	}

	return details
}
