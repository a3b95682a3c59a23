package dialog

import "fmt"

type CancelReason int

const (
	ReasonUnspecified CancelReason = iota
	ReasonButtonClick
	ReasonEscapeKey
	ReasonWindowClose
	ReasonTimeout
)

func (r CancelReason) String() string {
	switch r {
	case ReasonButtonClick:
		return "cancel button"
	case ReasonEscapeKey:
		return "escape key"
	case ReasonWindowClose:
		return "window closed"
	case ReasonTimeout:
		return "timed out"
	}
	return "unspecified"
}

// ImageAttachment is an image the user pasted or dropped. Data is base64.
type ImageAttachment struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Answer is the single outcome of one interaction. It is one of PlainText,
// SelectedOption, RichContent, Cancelled or Failed.
type Answer interface {
	isAnswer()
	fmt.Stringer
}

type PlainText struct {
	Text string
}

type SelectedOption struct {
	Value string
}

type RichContent struct {
	Text   string
	Images []ImageAttachment
}

type Cancelled struct {
	Reason CancelReason
}

// Anomalous reports a resolution that happened without a recorded reason.
func (c Cancelled) Anomalous() bool {
	return c.Reason == ReasonUnspecified
}

type Failed struct {
	Detail string
}

func (PlainText) isAnswer()      {}
func (SelectedOption) isAnswer() {}
func (RichContent) isAnswer()    {}
func (Cancelled) isAnswer()      {}
func (Failed) isAnswer()         {}

func (a PlainText) String() string      { return "text" }
func (a SelectedOption) String() string { return "selected" }
func (a RichContent) String() string    { return "rich" }
func (a Failed) String() string         { return "failed" }

func (a Cancelled) String() string {
	if a.Anomalous() {
		return "anomalous"
	}
	return "cancelled"
}

var (
	_ Answer = PlainText{}
	_ Answer = SelectedOption{}
	_ Answer = RichContent{}
	_ Answer = Cancelled{}
	_ Answer = Failed{}
)
