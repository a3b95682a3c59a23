package communication

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/furisto/ask/backend/dialog"
	"github.com/furisto/ask/backend/question"
)

func qa() *question.Question {
	return &question.Question{Kind: question.KindQA, Title: "Feedback", Content: "What do you think?"}
}

func choice() *question.Question {
	return &question.Question{
		Kind:    question.KindChoice,
		Title:   "Deploy",
		Content: "Where to?",
		Options: []question.Option{
			{Value: "staging", Text: "Staging cluster"},
			{Value: "prod", Text: "Production"},
		},
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	image := dialog.ImageAttachment{MIMEType: "image/png", Data: strings.Repeat("A", 2048)}

	scenarios := []struct {
		Name     string
		Question *question.Question
		Answer   dialog.Answer
		Expected Response
	}{
		{
			Name:     "qa plain text",
			Question: qa(),
			Answer:   dialog.PlainText{Text: "looks fine"},
			Expected: Response{Text: "User answered: looks fine", Outcome: "text"},
		},
		{
			Name:     "choice selected option carries label",
			Question: choice(),
			Answer:   dialog.SelectedOption{Value: "prod"},
			Expected: Response{Text: "User answered: prod\nSelected option: Production", Outcome: "selected"},
		},
		{
			Name:     "choice custom text matching a value carries label",
			Question: choice(),
			Answer:   dialog.PlainText{Text: "staging"},
			Expected: Response{Text: "User answered: staging\nSelected option: Staging cluster", Outcome: "text"},
		},
		{
			Name:     "choice custom text",
			Question: choice(),
			Answer:   dialog.PlainText{Text: "nowhere yet"},
			Expected: Response{Text: "User answered: nowhere yet", Outcome: "text"},
		},
		{
			Name:     "qa rich content",
			Question: qa(),
			Answer:   dialog.RichContent{Text: "hello", Images: []dialog.ImageAttachment{image}},
			Expected: Response{
				Text:    "User answered and attached 1 image(s).\nText: hello\nImage 1: image/png, 2.0 KB base64",
				Images:  []ImageContent{{Type: "image", Data: image.Data, MIMEType: "image/png"}},
				Outcome: "rich",
			},
		},
		{
			Name:     "choice rich content is marked custom",
			Question: choice(),
			Answer:   dialog.RichContent{Images: []dialog.ImageAttachment{image, {MIMEType: "image/jpeg", Data: "AAAA"}}},
			Expected: Response{
				Text: "User answered with a custom option and attached 2 image(s).\nImage 1: image/png, 2.0 KB base64\nImage 2: image/jpeg, 4 B base64",
				Images: []ImageContent{
					{Type: "image", Data: image.Data, MIMEType: "image/png"},
					{Type: "image", Data: "AAAA", MIMEType: "image/jpeg"},
				},
				Outcome: "rich",
			},
		},
		{
			Name:     "cancelled with escape",
			Question: qa(),
			Answer:   dialog.Cancelled{Reason: dialog.ReasonEscapeKey},
			Expected: Response{Text: "User cancelled the question (escape key).", Outcome: "cancelled"},
		},
		{
			Name:     "cancelled with button",
			Question: qa(),
			Answer:   dialog.Cancelled{Reason: dialog.ReasonButtonClick},
			Expected: Response{Text: "User cancelled the question (cancel button).", Outcome: "cancelled"},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			t.Parallel()

			actual := Encode(scenario.Question, scenario.Answer)
			if diff := cmp.Diff(scenario.Expected, actual); diff != "" {
				t.Errorf("%s() mismatch (-want +got):\n%s", scenario.Name, diff)
			}
		})
	}
}

func TestEncodeErrorOutcomes(t *testing.T) {
	t.Parallel()

	failed := Encode(qa(), dialog.Failed{Detail: "no display"})
	if !failed.IsError || failed.Outcome != "failed" || !strings.Contains(failed.Text, "no display") {
		t.Errorf("failed response = %+v", failed)
	}

	anomalous := Encode(qa(), dialog.Cancelled{})
	if !anomalous.IsError || anomalous.Outcome != "anomalous" {
		t.Errorf("anomalous response = %+v", anomalous)
	}
	if strings.Contains(anomalous.Text, "User cancelled") {
		t.Errorf("anomalous resolution reported as a cancellation: %q", anomalous.Text)
	}
}

func TestEncodeRichRoundTrip(t *testing.T) {
	t.Parallel()

	image := dialog.ImageAttachment{MIMEType: "image/webp", Data: "UklGRg=="}
	response := Encode(qa(), dialog.RichContent{Text: "hello", Images: []dialog.ImageAttachment{image}})

	if !strings.Contains(response.Text, "hello") {
		t.Errorf("text %q does not contain the answer", response.Text)
	}

	payload, ok := response.Payload().(RichPayload)
	if !ok {
		t.Fatalf("Payload() = %T, want RichPayload", response.Payload())
	}
	if len(payload.Images) != 1 || payload.Images[0].MIMEType != "image/webp" {
		t.Errorf("images = %+v, want one image/webp", payload.Images)
	}
}

func TestResponsePayloadWithoutImages(t *testing.T) {
	t.Parallel()

	response := Encode(qa(), dialog.PlainText{Text: "ok"})
	if got, ok := response.Payload().(string); !ok || got != "User answered: ok" {
		t.Errorf("Payload() = %#v", response.Payload())
	}
}
