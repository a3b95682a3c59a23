package dialog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/furisto/ask/backend/question"
)

type State int

const (
	StateRendering State = iota
	StateAwaitingInput
	StateSubmitting
	StateCancelling
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateRendering:
		return "rendering"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateSubmitting:
		return "submitting"
	case StateCancelling:
		return "cancelling"
	case StateResolved:
		return "resolved"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const (
	ErrMsgEmptyAnswer = "Please enter an answer or attach an image."
	ErrMsgEmptyCustom = "Please enter your own answer or attach an image."
	ErrMsgNoSelection = "Please select an option."
)

const CustomChoiceLabel = "Other"

// Choice is one entry of the selection list of a choice question. The last
// entry is always the custom one.
type Choice struct {
	Label  string `json:"label"`
	Value  string `json:"value,omitempty"`
	Custom bool   `json:"custom,omitempty"`
}

type ImageSummary struct {
	MIMEType string `json:"mimeType"`
	Size     int    `json:"size"`
}

// View is a snapshot of everything a surface needs to draw the dialog.
type View struct {
	State    State          `json:"-"`
	Kind     question.Kind  `json:"kind"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Choices  []Choice       `json:"choices,omitempty"`
	Selected int            `json:"selected"`
	Text     string         `json:"text"`
	Images   []ImageSummary `json:"images"`
	Error    string         `json:"error,omitempty"`
	Resolved bool           `json:"resolved"`
}

// Dialog is the state machine behind one modal question. Surfaces feed it
// user events; it resolves exactly once to an Answer. All methods are safe
// for concurrent use.
type Dialog struct {
	mu       sync.Mutex
	question *question.Question
	loader   *AttachmentLoader

	state    State
	choices  []Choice
	selected int
	text     string
	images   []ImageAttachment
	errMsg   string

	answer Answer
	done   chan struct{}
}

func New(q *question.Question, loader *AttachmentLoader) *Dialog {
	if loader == nil {
		loader = NewAttachmentLoader(nil, 0)
	}

	return &Dialog{
		question: q,
		loader:   loader,
		state:    StateRendering,
		done:     make(chan struct{}),
	}
}

// Render builds the input model for the question kind and moves the dialog
// to StateAwaitingInput.
func (d *Dialog) Render() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateRendering {
		return fmt.Errorf("dialog already rendered (state %s)", d.state)
	}
	if d.question == nil {
		return errors.New("no question to render")
	}

	switch d.question.Kind {
	case question.KindQA:
	case question.KindChoice:
		d.choices = make([]Choice, 0, len(d.question.Options)+1)
		for _, option := range d.question.Options {
			d.choices = append(d.choices, Choice{Label: option.Text, Value: option.Value})
		}
		d.choices = append(d.choices, Choice{Label: CustomChoiceLabel, Custom: true})
		d.selected = 0
	default:
		return fmt.Errorf("unsupported question kind %q", d.question.Kind)
	}

	d.state = StateAwaitingInput
	return nil
}

func (d *Dialog) Question() *question.Question {
	return d.question
}

func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Done is closed once the dialog is resolved.
func (d *Dialog) Done() <-chan struct{} {
	return d.done
}

func (d *Dialog) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	view := View{
		State:    d.state,
		Selected: d.selected,
		Text:     d.text,
		Error:    d.errMsg,
		Choices:  append([]Choice(nil), d.choices...),
		Images:   make([]ImageSummary, 0, len(d.images)),
		Resolved: d.state == StateResolved,
	}
	if d.question != nil {
		view.Kind = d.question.Kind
		view.Title = d.question.Title
		view.Content = d.question.Content
	}
	for _, image := range d.images {
		view.Images = append(view.Images, ImageSummary{MIMEType: image.MIMEType, Size: len(image.Data)})
	}

	return view
}

// CustomIndex is the index of the custom choice, or -1 for QA questions.
func (d *Dialog) CustomIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.customIndex()
}

func (d *Dialog) customIndex() int {
	if len(d.choices) == 0 {
		return -1
	}
	return len(d.choices) - 1
}

// SetText replaces the free text: the answer of a QA question or the custom
// value of a choice question. Non-blank custom text selects the custom choice.
func (d *Dialog) SetText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateAwaitingInput {
		return
	}

	d.text = text
	if strings.TrimSpace(text) != "" {
		d.selectCustom()
	}
}

// Select activates the choice at index.
func (d *Dialog) Select(index int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateAwaitingInput || index < 0 || index >= len(d.choices) {
		return false
	}

	d.selected = index
	return true
}

// FocusCustom is called when the user moves into the custom text field.
func (d *Dialog) FocusCustom() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateAwaitingInput {
		return
	}
	d.selectCustom()
}

func (d *Dialog) selectCustom() {
	if custom := d.customIndex(); custom >= 0 {
		d.selected = custom
	}
}

// Attach appends images, in order, to the active answer.
func (d *Dialog) Attach(images ...ImageAttachment) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateAwaitingInput || len(images) == 0 {
		return 0
	}

	d.images = append(d.images, images...)
	d.selectCustom()
	return len(images)
}

// AttachFile attaches a dropped local file. Non-image and oversized files are
// ignored.
func (d *Dialog) AttachFile(path string) bool {
	image, ok := d.loader.FromFile(path)
	if !ok {
		return false
	}
	return d.Attach(image) == 1
}

// AttachBytes attaches pasted bitmap data.
func (d *Dialog) AttachBytes(data []byte, mimeType string) bool {
	image, ok := d.loader.FromBytes(data, mimeType)
	if !ok {
		return false
	}
	return d.Attach(image) == 1
}

func (d *Dialog) AttachBase64(data string, mimeType string) bool {
	image, ok := d.loader.FromBase64(data, mimeType)
	if !ok {
		return false
	}
	return d.Attach(image) == 1
}

// AttachPaste handles a text paste. When consumed is false the paste is plain
// text and belongs in the text field.
func (d *Dialog) AttachPaste(payload string) (attached int, consumed bool) {
	images, consumed := d.loader.FromPaste(payload)
	if !consumed {
		return 0, false
	}
	return d.Attach(images...), true
}

func (d *Dialog) RemoveImage(index int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateAwaitingInput || index < 0 || index >= len(d.images) {
		return false
	}

	d.images = append(d.images[:index], d.images[index+1:]...)
	return true
}

func (d *Dialog) ClearError() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errMsg = ""
}

// Submit validates the active answer. An incomplete answer sets an inline
// error and leaves the dialog awaiting input; a complete one resolves it.
func (d *Dialog) Submit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateAwaitingInput {
		return false
	}

	d.state = StateSubmitting
	answer, errMsg := d.buildAnswer()
	if answer == nil {
		d.errMsg = errMsg
		d.state = StateAwaitingInput
		return false
	}

	d.resolve(answer)
	return true
}

func (d *Dialog) buildAnswer() (Answer, string) {
	text := strings.TrimSpace(d.text)
	images := append([]ImageAttachment(nil), d.images...)

	if d.question.Kind == question.KindQA {
		if text == "" && len(images) == 0 {
			return nil, ErrMsgEmptyAnswer
		}
		if len(images) > 0 {
			return RichContent{Text: text, Images: images}, ""
		}
		return PlainText{Text: text}, ""
	}

	if d.selected < 0 || d.selected >= len(d.choices) {
		return nil, ErrMsgNoSelection
	}

	choice := d.choices[d.selected]
	if !choice.Custom {
		return SelectedOption{Value: choice.Value}, ""
	}

	if text == "" && len(images) == 0 {
		return nil, ErrMsgEmptyCustom
	}
	if len(images) > 0 {
		return RichContent{Text: text, Images: images}, ""
	}
	return PlainText{Text: text}, ""
}

// Cancel resolves the dialog as cancelled for the given reason.
func (d *Dialog) Cancel(reason CancelReason) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateAwaitingInput && d.state != StateRendering {
		return false
	}

	d.state = StateCancelling
	d.resolve(Cancelled{Reason: reason})
	return true
}

// Close is the window being closed by the user. It is a no-op once resolved.
func (d *Dialog) Close() bool {
	return d.Cancel(ReasonWindowClose)
}

// Fail resolves the dialog with an internal failure.
func (d *Dialog) Fail(detail string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateResolved {
		return false
	}

	d.resolve(Failed{Detail: detail})
	return true
}

// Answer returns the resolved answer, if any.
func (d *Dialog) Answer() (Answer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.answer, d.state == StateResolved
}

// Resolve returns the final answer. A dialog that was never resolved becomes
// Cancelled with ReasonUnspecified, which callers treat as an anomaly.
func (d *Dialog) Resolve() Answer {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateResolved {
		d.resolve(Cancelled{Reason: ReasonUnspecified})
	}
	return d.answer
}

func (d *Dialog) resolve(answer Answer) {
	d.answer = answer
	d.errMsg = ""
	d.state = StateResolved
	close(d.done)
}
