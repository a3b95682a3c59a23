package question

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const rootElement = "question"

// MalformedInputError reports a question document that is not structurally
// complete. Input holds the raw document as received.
type MalformedInputError struct {
	Reason string
	Input  string
	Cause  error
}

func (e *MalformedInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed question: %s: %v", e.Reason, e.Cause)
	}
	return "malformed question: " + e.Reason
}

func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}

func IsMalformed(err error) bool {
	var target *MalformedInputError
	return errors.As(err, &target)
}

type document struct {
	XMLName xml.Name
	Type    *string       `xml:"type,attr"`
	Title   *textElement  `xml:"title"`
	Content *textElement  `xml:"content"`
	Options *optionsGroup `xml:"options"`
}

type textElement struct {
	Text string `xml:",chardata"`
}

type optionsGroup struct {
	Entries []optionEntry `xml:"option"`
}

type optionEntry struct {
	Value *string `xml:"value,attr"`
	Text  string  `xml:",chardata"`
}

// Parse decodes a question document. It only checks that the required
// elements are present; blank values are left for Validate to reject.
func Parse(raw string) (*Question, error) {
	malformed := func(reason string, cause error) error {
		return &MalformedInputError{Reason: reason, Input: raw, Cause: cause}
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, malformed("document is empty", nil)
	}

	decoder := xml.NewDecoder(strings.NewReader(trimmed))
	var doc document
	if err := decoder.Decode(&doc); err != nil {
		return nil, malformed("invalid XML", err)
	}

	if err := ensureNoTrailingElements(decoder); err != nil {
		return nil, malformed("invalid XML", err)
	}

	if doc.XMLName.Local != rootElement {
		return nil, malformed(fmt.Sprintf("root element must be <%s>, got <%s>", rootElement, doc.XMLName.Local), nil)
	}

	if doc.Type == nil || strings.TrimSpace(*doc.Type) == "" {
		return nil, malformed("missing 'type' attribute", nil)
	}

	kind := Kind(strings.TrimSpace(*doc.Type))
	if !kind.Valid() {
		return nil, malformed(fmt.Sprintf("type must be %q or %q, got %q", KindQA, KindChoice, kind), nil)
	}

	if doc.Title == nil {
		return nil, malformed("missing <title> element", nil)
	}
	if doc.Content == nil {
		return nil, malformed("missing <content> element", nil)
	}

	q := &Question{
		Kind:    kind,
		Title:   strings.TrimSpace(doc.Title.Text),
		Content: strings.TrimSpace(doc.Content.Text),
	}

	if kind != KindChoice {
		return q, nil
	}

	if doc.Options == nil {
		return nil, malformed("choice question requires an <options> element", nil)
	}

	for i, entry := range doc.Options.Entries {
		if entry.Value == nil {
			return nil, malformed(fmt.Sprintf("option %d is missing the 'value' attribute", i+1), nil)
		}
		q.Options = append(q.Options, Option{
			Value: *entry.Value,
			Text:  strings.TrimSpace(entry.Text),
		})
	}

	if len(q.Options) == 0 {
		return nil, malformed("choice question requires at least one <option>", nil)
	}

	return q, nil
}

func ensureNoTrailingElements(decoder *xml.Decoder) error {
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after document root", t.Name.Local)
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return errors.New("unexpected text after document root")
			}
		}
	}
}
