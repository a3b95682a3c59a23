package communication

import (
	"fmt"
	"strings"

	"github.com/furisto/ask/backend/dialog"
	"github.com/furisto/ask/backend/question"
	"github.com/furisto/ask/backend/tool/base"
)

// ImageContent is an image in the attachment format tool callers expect.
type ImageContent struct {
	Type     string `json:"type"`
	Data     string `json:"data"`
	MIMEType string `json:"mimeType"`
}

// RichPayload is the structured answer returned when images are attached.
type RichPayload struct {
	Text   string         `json:"text"`
	Images []ImageContent `json:"images"`
}

// Response is what the caller receives for one question.
type Response struct {
	Text    string
	Images  []ImageContent
	IsError bool
	Outcome string
}

// Payload is the plain string, or a RichPayload when images are attached.
func (r Response) Payload() any {
	if len(r.Images) == 0 {
		return r.Text
	}
	return RichPayload{Text: r.Text, Images: r.Images}
}

// Encode maps a dialog outcome to the caller-facing response.
func Encode(q *question.Question, answer dialog.Answer) Response {
	switch answer := answer.(type) {
	case dialog.PlainText:
		return Response{Text: answeredText(q, answer.Text), Outcome: answer.String()}
	case dialog.SelectedOption:
		return Response{Text: answeredText(q, answer.Value), Outcome: answer.String()}
	case dialog.RichContent:
		return encodeRich(q, answer)
	case dialog.Cancelled:
		if answer.Anomalous() {
			return Response{
				Text:    base.NewError(base.AnomalousResolution).Error(),
				IsError: true,
				Outcome: answer.String(),
			}
		}
		return Response{
			Text:    fmt.Sprintf("User cancelled the question (%s).", answer.Reason),
			Outcome: answer.String(),
		}
	case dialog.Failed:
		return Response{
			Text:    base.NewError(base.InteractionFailed, "detail", answer.Detail).Error(),
			IsError: true,
			Outcome: answer.String(),
		}
	}

	return Response{
		Text:    base.NewError(base.Internal, "answer", fmt.Sprintf("%T", answer)).Error(),
		IsError: true,
		Outcome: "failed",
	}
}

func answeredText(q *question.Question, text string) string {
	result := "User answered: " + text
	if q.IsChoice() {
		if option, ok := q.OptionByValue(text); ok {
			result += "\nSelected option: " + option.Text
		}
	}
	return result
}

func encodeRich(q *question.Question, answer dialog.RichContent) Response {
	var b strings.Builder
	if q.IsChoice() {
		b.WriteString("User answered with a custom option")
	} else {
		b.WriteString("User answered")
	}
	fmt.Fprintf(&b, " and attached %d image(s).", len(answer.Images))

	if answer.Text != "" {
		b.WriteString("\nText: ")
		b.WriteString(answer.Text)
	}

	images := make([]ImageContent, 0, len(answer.Images))
	for i, image := range answer.Images {
		fmt.Fprintf(&b, "\nImage %d: %s, %s base64", i+1, image.MIMEType, encodedSize(len(image.Data)))
		images = append(images, ImageContent{
			Type:     "image",
			Data:     image.Data,
			MIMEType: image.MIMEType,
		})
	}

	return Response{Text: b.String(), Images: images, Outcome: answer.String()}
}

func encodedSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
