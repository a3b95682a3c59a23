package question

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// Format renders q as a question document that Parse accepts.
func Format(q *Question) string {
	var b strings.Builder
	b.WriteString(`<question type="`)
	b.WriteString(escape(string(q.Kind)))
	b.WriteString("\">\n")
	b.WriteString("  <title>" + escape(q.Title) + "</title>\n")
	b.WriteString("  <content>" + escape(q.Content) + "</content>\n")

	if q.Kind == KindChoice {
		b.WriteString("  <options>\n")
		for _, option := range q.Options {
			b.WriteString(`    <option value="` + escape(option.Value) + `">` + escape(option.Text) + "</option>\n")
		}
		b.WriteString("  </options>\n")
	}

	b.WriteString("</question>")
	return b.String()
}

// ParseOptionList reads the compact "value:label,value:label" notation. Items
// without a colon are skipped.
func ParseOptionList(list string) []Option {
	var options []Option
	for _, item := range strings.Split(list, ",") {
		value, text, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		options = append(options, Option{
			Value: strings.TrimSpace(value),
			Text:  strings.TrimSpace(text),
		})
	}
	return options
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
