package web

import (
	"github.com/furisto/ask/backend/dialog"
)

// Client event types.
const (
	EventSelect      = "select"
	EventText        = "text"
	EventFocusCustom = "focus_custom"
	EventAttach      = "attach"
	EventRemove      = "remove"
	EventSubmit      = "submit"
	EventCancel      = "cancel"
	EventPing        = "ping"
)

// Server message types.
const (
	MessageState = "state"
	MessageError = "error"
	MessagePong  = "pong"
)

const (
	CancelButton = "button"
	CancelEscape = "escape"
)

type Inbound struct {
	Type     string `json:"type"`
	Index    int    `json:"index,omitempty"`
	Text     string `json:"text,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type Outbound struct {
	Type    string       `json:"type"`
	State   *dialog.View `json:"state,omitempty"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
}

func stateMessage(view dialog.View) Outbound {
	return Outbound{Type: MessageState, State: &view}
}

func errorMessage(code, message string) Outbound {
	return Outbound{Type: MessageError, Code: code, Message: message}
}
