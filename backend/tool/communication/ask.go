package communication

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getsentry/sentry-go"

	"github.com/furisto/ask/backend/dialog"
	"github.com/furisto/ask/backend/question"
	"github.com/furisto/ask/backend/tool/base"
)

type AskUserQuestionInput struct {
	QuestionXML string `json:"question_xml" jsonschema:"the question document, see the examples://question-formats resource"`
}

// Validate checks the arguments before the document is parsed. A nil input is
// invalid.
func (in *AskUserQuestionInput) Validate() error {
	if in == nil || strings.TrimSpace(in.QuestionXML) == "" {
		return base.ValidationError{Field: "question_xml", Message: "a question document is required"}
	}
	return nil
}

// Collector blocks until the user has answered, cancelled or the dialog failed.
type Collector interface {
	Collect(ctx context.Context, q *question.Question) dialog.Answer
}

// AskUserTool is the single operation exposed to agents. It never returns an
// error; every failure is encoded in the Response.
type AskUserTool struct {
	collector Collector
	logger    *slog.Logger
}

func NewAskUserTool(collector Collector, logger *slog.Logger) *AskUserTool {
	if logger == nil {
		logger = slog.Default()
	}
	return &AskUserTool{collector: collector, logger: logger}
}

func (t *AskUserTool) Name() string {
	return base.ToolNameAskUserQuestion
}

func (t *AskUserTool) Description() string {
	return `Ask the user a question in a popup dialog and wait for the answer.

Use it when you need a decision, a missing detail or feedback before you can continue. The call blocks until the user submits or cancels.

question_xml is either a free text question:
<question type="qa"><title>Short title</title><content>What you want to know</content></question>

or a single choice question (the user can always type a custom answer and attach images instead):
<question type="choice"><title>Short title</title><content>What you want to know</content><options><option value="a">Label A</option><option value="b">Label B</option></options></question>`
}

func (t *AskUserTool) Execute(ctx context.Context, input *AskUserQuestionInput) (response Response) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			t.logger.Error("ask user question panicked", "panic", r)
			response = Response{
				Text:    base.NewError(base.Internal, "panic", fmt.Sprint(r)).Error(),
				IsError: true,
				Outcome: "failed",
			}
		}
	}()

	if err := input.Validate(); err != nil {
		t.logger.Info("rejected invalid arguments", "error", err)
		return rejection(invalidArgument(err))
	}

	q, err := question.Parse(input.QuestionXML)
	if err != nil {
		var malformed *question.MalformedInputError
		if !errors.As(err, &malformed) {
			return rejection(base.NewError(base.Internal, "error", err))
		}
		t.logger.Info("rejected malformed question", "reason", malformed.Reason)
		return rejection(base.NewError(base.MalformedQuestion,
			"reason", malformed.Error(),
			"input", malformed.Input,
		))
	}

	if problems := question.Problems(q); len(problems) > 0 {
		t.logger.Info("rejected incomplete question", "problems", problems)
		return rejection(base.NewError(base.IncompleteQuestion,
			"problems", strings.Join(problems, "; "),
			"parsed", "\n"+q.Summary(),
		))
	}

	answer := t.collector.Collect(ctx, q)
	return Encode(q, answer)
}

func invalidArgument(err error) *base.ToolError {
	var invalid base.ValidationError
	if !errors.As(err, &invalid) {
		return base.NewError(base.InvalidInput, "error", err)
	}
	return base.NewCustomError(
		fmt.Sprintf("%s: %s", base.InvalidInput, invalid),
		base.InvalidInput.Suggestion(),
		"field", invalid.Field,
	)
}

func rejection(err *base.ToolError) Response {
	return Response{Text: err.Error(), IsError: true, Outcome: "rejected"}
}

var _ base.CommunicationTool[*AskUserQuestionInput, Response] = (*AskUserTool)(nil)
