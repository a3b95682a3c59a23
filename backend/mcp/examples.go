package mcp

import (
	"fmt"
	"strings"

	"github.com/furisto/ask/backend/question"
)

const QuestionFormatExamples = `# Question formats

## Free text question (qa)
` + "```xml" + `
<question type="qa">
  <title>Share your thoughts</title>
  <content>Do you have any suggestions for this feature?</content>
</question>
` + "```" + `

## Single choice question (choice)
` + "```xml" + `
<question type="choice">
  <title>Pick a color</title>
  <content>Which color do you prefer?</content>
  <options>
    <option value="red">Red</option>
    <option value="blue">Blue</option>
    <option value="green">Green</option>
  </options>
</question>
` + "```" + `

## Usage notes
1. A qa question lets the user type free text.
2. A choice question offers predefined options. The user can always pick "Other" and type a custom answer instead.
3. The user may attach images (pasted or dropped) to a free text or custom answer.
4. Every question opens a dialog and blocks until the user answers.
5. The user can cancel. The tool then reports the cancellation and how it happened.
`

// CreateQuestion renders a question document from prompt arguments. options
// uses the "value:label,value:label" notation and is only read for choice
// questions.
func CreateQuestion(kind, title, content, options string) (string, error) {
	q := &question.Question{
		Kind:    question.Kind(strings.TrimSpace(kind)),
		Title:   title,
		Content: content,
	}

	switch q.Kind {
	case question.KindQA:
	case question.KindChoice:
		q.Options = question.ParseOptionList(options)
		if len(q.Options) == 0 {
			return "", fmt.Errorf(`choice questions need at least one option as "value:label", got %q`, options)
		}
	default:
		return "", fmt.Errorf("question type must be %q or %q, got %q", question.KindQA, question.KindChoice, kind)
	}

	return question.Format(q), nil
}
