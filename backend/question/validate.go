package question

import (
	"fmt"
	"strings"
)

// Validate reports whether a parsed question is complete enough to be shown:
// title and content are not blank and, for choice questions, every option has
// a non-blank value and label.
func Validate(q *Question) bool {
	return len(Problems(q)) == 0
}

// Problems lists every reason Validate would reject q.
func Problems(q *Question) []string {
	if q == nil {
		return []string{"question is missing"}
	}

	var problems []string
	if strings.TrimSpace(q.Title) == "" {
		problems = append(problems, "title is blank")
	}
	if strings.TrimSpace(q.Content) == "" {
		problems = append(problems, "content is blank")
	}

	if q.Kind != KindChoice {
		return problems
	}

	if len(q.Options) == 0 {
		problems = append(problems, "choice question has no options")
	}
	for i, option := range q.Options {
		if strings.TrimSpace(option.Value) == "" {
			problems = append(problems, fmt.Sprintf("option %d has a blank value", i+1))
		}
		if strings.TrimSpace(option.Text) == "" {
			problems = append(problems, fmt.Sprintf("option %d has a blank label", i+1))
		}
	}

	return problems
}
