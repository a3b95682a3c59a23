package question

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindQA     Kind = "qa"
	KindChoice Kind = "choice"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) Valid() bool {
	return k == KindQA || k == KindChoice
}

// Option is one predefined answer of a choice question. Value is what gets
// reported back to the caller, Text is the label shown to the user.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

type Question struct {
	Kind    Kind     `json:"kind"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Options []Option `json:"options,omitempty"`
}

func (q *Question) IsChoice() bool {
	return q != nil && q.Kind == KindChoice
}

// OptionByValue returns the predefined option whose value equals v.
func (q *Question) OptionByValue(v string) (Option, bool) {
	if q == nil {
		return Option{}, false
	}

	for _, option := range q.Options {
		if option.Value == v {
			return option, true
		}
	}

	return Option{}, false
}

// Summary renders what was parsed, one field per line. It is used to explain
// rejected questions to the caller.
func (q *Question) Summary() string {
	if q == nil {
		return "<nil question>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "type: %s\n", q.Kind)
	fmt.Fprintf(&b, "title: %q\n", q.Title)
	fmt.Fprintf(&b, "content: %q\n", q.Content)
	if q.Kind == KindChoice {
		fmt.Fprintf(&b, "options: %d\n", len(q.Options))
		for i, option := range q.Options {
			fmt.Fprintf(&b, "  %d. value=%q text=%q\n", i+1, option.Value, option.Text)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
