package cmd

import (
	"testing"

	"github.com/furisto/ask/backend/mcp"
	"github.com/furisto/ask/shared/conv"
)

func TestExamples(t *testing.T) {
	setup := &TestSetup{}

	setup.RunTests(t, []TestScenario{
		{
			Name:     "formats",
			Command:  []string{"examples"},
			Expected: TestExpectation{Stdout: conv.Ptr(mcp.QuestionFormatExamples)},
		},
		{
			Name:    "render choice",
			Command: []string{"examples", "render", "--type", "choice", "--title", "Database", "--content", "Which one?", "--options", "pg:PostgreSQL, my:MySQL"},
			Expected: TestExpectation{Stdout: conv.Ptr(`<question type="choice">
  <title>Database</title>
  <content>Which one?</content>
  <options>
    <option value="pg">PostgreSQL</option>
    <option value="my">MySQL</option>
  </options>
</question>
`)},
		},
		{
			Name:    "render escapes markup",
			Command: []string{"examples", "render", "--title", "A & B", "--content", "Is 1 < 2?"},
			Expected: TestExpectation{Stdout: conv.Ptr(`<question type="qa">
  <title>A &amp; B</title>
  <content>Is 1 &lt; 2?</content>
</question>
`)},
		},
		{
			Name:     "render unsupported type",
			Command:  []string{"examples", "render", "--type", "poll"},
			Expected: TestExpectation{Error: `question type must be "qa" or "choice", got "poll"`},
		},
		{
			Name:     "render choice without options",
			Command:  []string{"examples", "render", "--type", "choice", "--title", "T", "--content", "C"},
			Expected: TestExpectation{Error: `choice questions need at least one option as "value:label", got ""`},
		},
	})
}
