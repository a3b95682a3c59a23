package question

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	t.Parallel()

	type expectation struct {
		Question  *Question
		Malformed bool
	}

	scenarios := []struct {
		Name     string
		Input    string
		Expected expectation
	}{
		{
			Name: "qa question",
			Input: `
			<question type="qa">
				<title>Your thoughts</title>
				<content>Any suggestions for this feature?</content>
			</question>`,
			Expected: expectation{
				Question: &Question{Kind: KindQA, Title: "Your thoughts", Content: "Any suggestions for this feature?"},
			},
		},
		{
			Name: "choice question keeps option order",
			Input: `<question type="choice">
				<title>Pick a color</title>
				<content>Choose one:</content>
				<options>
					<option value="red">Red</option>
					<option value="blue">Blue</option>
					<option value="green">Green</option>
				</options>
			</question>`,
			Expected: expectation{
				Question: &Question{
					Kind:    KindChoice,
					Title:   "Pick a color",
					Content: "Choose one:",
					Options: []Option{
						{Value: "red", Text: "Red"},
						{Value: "blue", Text: "Blue"},
						{Value: "green", Text: "Green"},
					},
				},
			},
		},
		{
			Name:  "single option choice",
			Input: `<question type="choice"><title>T</title><content>C</content><options><option value="a">A</option></options></question>`,
			Expected: expectation{
				Question: &Question{Kind: KindChoice, Title: "T", Content: "C", Options: []Option{{Value: "a", Text: "A"}}},
			},
		},
		{
			Name:  "qa ignores options",
			Input: `<question type="qa"><title>T</title><content>C</content><options><option value="a">A</option></options></question>`,
			Expected: expectation{
				Question: &Question{Kind: KindQA, Title: "T", Content: "C"},
			},
		},
		{
			Name:  "blank title is structurally fine",
			Input: `<question type="qa"><title>  </title><content>C</content></question>`,
			Expected: expectation{
				Question: &Question{Kind: KindQA, Title: "", Content: "C"},
			},
		},
		{
			Name:  "empty option value is structurally fine",
			Input: `<question type="choice"><title>T</title><content>C</content><options><option value="">A</option></options></question>`,
			Expected: expectation{
				Question: &Question{Kind: KindChoice, Title: "T", Content: "C", Options: []Option{{Value: "", Text: "A"}}},
			},
		},
		{
			Name:  "escaped entities",
			Input: `<question type="qa"><title>a &lt; b</title><content>&quot;x&quot; &amp; y</content></question>`,
			Expected: expectation{
				Question: &Question{Kind: KindQA, Title: "a < b", Content: `"x" & y`},
			},
		},
		{
			Name:     "empty document",
			Input:    "   ",
			Expected: expectation{Malformed: true},
		},
		{
			Name:     "not xml",
			Input:    "what is your name?",
			Expected: expectation{Malformed: true},
		},
		{
			Name:     "unclosed element",
			Input:    `<question type="qa"><title>T</title><content>C</content>`,
			Expected: expectation{Malformed: true},
		},
		{
			Name:     "wrong root element",
			Input:    `<ask type="qa"><title>T</title><content>C</content></ask>`,
			Expected: expectation{Malformed: true},
		},
		{
			Name:     "missing type",
			Input:    `<question><title>T</title><content>C</content></question>`,
			Expected: expectation{Malformed: true},
		},
		{
			Name:     "unknown type",
			Input:    `<question type="essay"><title>T</title><content>C</content></question>`,
			Expected: expectation{Malformed: true},
		},
		{
			Name:     "missing title",
			Input:    `<question type="qa"><content>C</content></question>`,
			Expected: expectation{Malformed: true},
		},
		{
			Name:     "missing content",
			Input:    `<question type="choice"><title>T</title><options><option value="a">A</option></options></question>`,
			Expected: expectation{Malformed: true},
		},
		{
			Name:     "choice without options container",
			Input:    `<question type="choice"><title>T</title><content>C</content></question>`,
			Expected: expectation{Malformed: true},
		},
		{
			Name:     "choice with zero options",
			Input:    `<question type="choice"><title>T</title><content>C</content><options></options></question>`,
			Expected: expectation{Malformed: true},
		},
		{
			Name:     "option without value attribute",
			Input:    `<question type="choice"><title>T</title><content>C</content><options><option>A</option></options></question>`,
			Expected: expectation{Malformed: true},
		},
		{
			Name:     "second root element",
			Input:    `<question type="qa"><title>T</title><content>C</content></question><question type="qa"/>`,
			Expected: expectation{Malformed: true},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			t.Parallel()

			var actual expectation
			q, err := Parse(scenario.Input)
			if err != nil {
				actual.Malformed = IsMalformed(err)
				if !actual.Malformed {
					t.Fatalf("Parse() returned unexpected error type %T: %v", err, err)
				}
			}
			actual.Question = q

			if diff := cmp.Diff(scenario.Expected, actual); diff != "" {
				t.Errorf("%s() mismatch (-want +got):\n%s", scenario.Name, diff)
			}
		})
	}
}

func TestMalformedInputErrorEchoesInput(t *testing.T) {
	t.Parallel()

	input := `<question type="qa"><title>T</title></question>`
	_, err := Parse(input)

	malformed, ok := err.(*MalformedInputError)
	if !ok {
		t.Fatalf("expected *MalformedInputError, got %T", err)
	}
	if malformed.Input != input {
		t.Errorf("Input = %q, want %q", malformed.Input, input)
	}
	if malformed.Reason != "missing <content> element" {
		t.Errorf("Reason = %q", malformed.Reason)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	t.Parallel()

	questions := []*Question{
		{Kind: KindQA, Title: "Name?", Content: "Tell me <your> name & more"},
		{
			Kind:    KindChoice,
			Title:   "Language",
			Content: "Pick \"one\"",
			Options: []Option{{Value: "go", Text: "Go"}, {Value: "c&c", Text: "C <plus> C"}},
		},
	}

	for _, want := range questions {
		got, err := Parse(Format(want))
		if err != nil {
			t.Fatalf("Parse(Format()) failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestParseOptionList(t *testing.T) {
	t.Parallel()

	got := ParseOptionList("red:Red, blue : Blue,broken,green:Light:Green")
	want := []Option{
		{Value: "red", Text: "Red"},
		{Value: "blue", Text: "Blue"},
		{Value: "green", Text: "Light:Green"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseOptionList() mismatch (-want +got):\n%s", diff)
	}
}
