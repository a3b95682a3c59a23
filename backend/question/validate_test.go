package question

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	scenarios := []struct {
		Name     string
		Input    string
		Valid    bool
		Problems []string
	}{
		{
			Name:  "complete qa",
			Input: `<question type="qa"><title>T</title><content>C</content></question>`,
			Valid: true,
		},
		{
			Name:  "complete choice",
			Input: `<question type="choice"><title>T</title><content>C</content><options><option value="a">A</option><option value="b">B</option></options></question>`,
			Valid: true,
		},
		{
			Name:     "blank title and content",
			Input:    `<question type="qa"><title> </title><content></content></question>`,
			Problems: []string{"title is blank", "content is blank"},
		},
		{
			Name:     "empty option value",
			Input:    `<question type="choice"><title>T</title><content>C</content><options><option value="a">A</option><option value="">B</option></options></question>`,
			Problems: []string{"option 2 has a blank value"},
		},
		{
			Name:     "whitespace option value and empty label",
			Input:    `<question type="choice"><title>T</title><content>C</content><options><option value="  "></option></options></question>`,
			Problems: []string{"option 1 has a blank value", "option 1 has a blank label"},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			t.Parallel()

			q, err := Parse(scenario.Input)
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}

			if got := Validate(q); got != scenario.Valid {
				t.Errorf("Validate() = %v, want %v", got, scenario.Valid)
			}
			if diff := cmp.Diff(scenario.Problems, Problems(q)); diff != "" {
				t.Errorf("Problems() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateConstructedQuestions(t *testing.T) {
	t.Parallel()

	if Validate(nil) {
		t.Error("Validate(nil) = true")
	}

	q := &Question{Kind: KindChoice, Title: "T", Content: "C"}
	if Validate(q) {
		t.Error("choice question without options validated")
	}
}

func TestQAValidatesForAnyNonBlankText(t *testing.T) {
	t.Parallel()

	texts := []string{"a", "What?", "multi\nline", "  padded  ", "ünïcødé", "<escaped> & quoted \"text\""}
	for _, title := range texts {
		for _, content := range texts {
			doc := Format(&Question{Kind: KindQA, Title: title, Content: content})
			q, err := Parse(doc)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", doc, err)
			}
			if !Validate(q) {
				t.Errorf("Validate() rejected title=%q content=%q", title, content)
			}
		}
	}
}
