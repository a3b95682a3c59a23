package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/furisto/ask/backend/dialog"
	"github.com/furisto/ask/shared/conv"
)

const choiceDocument = `<question type="choice">
  <title>Color</title>
  <content>Pick one</content>
  <options>
    <option value="red">Red</option>
    <option value="blue">Blue</option>
  </options>
</question>`

func answering(act func(d *dialog.Dialog)) dialog.Surface {
	return dialog.SurfaceFunc(func(_ context.Context, d *dialog.Dialog) error {
		act(d)
		return nil
	})
}

func TestTry(t *testing.T) {
	setup := &TestSetup{}

	selectBlue := answering(func(d *dialog.Dialog) {
		d.Select(1)
		d.Submit()
	})

	setup.RunTests(t, []TestScenario{
		{
			Name:    "document from a file",
			Command: []string{"try", "/work/question.xml"},
			SetupFileSystem: func(fs *afero.Afero) {
				_ = fs.WriteFile("/work/question.xml", []byte(choiceDocument), 0600)
			},
			Surface:  selectBlue,
			Expected: TestExpectation{Stdout: conv.Ptr("User answered: blue\nSelected option: Blue\n")},
		},
		{
			Name:     "document from stdin",
			Command:  []string{"try"},
			Stdin:    `<question type="qa"><title>Hi</title><content>Say something</content></question>`,
			Surface:  answering(func(d *dialog.Dialog) { d.SetText("hello"); d.Submit() }),
			Expected: TestExpectation{Stdout: conv.Ptr("User answered: hello\n")},
		},
		{
			Name:     "json output",
			Command:  []string{"try", "--output", "json"},
			Stdin:    choiceDocument,
			Surface:  selectBlue,
			Expected: TestExpectation{Stdout: conv.Ptr("{\n  \"outcome\": \"selected\",\n  \"isError\": false,\n  \"answer\": \"User answered: blue\\nSelected option: Blue\"\n}\n")},
		},
		{
			Name:     "yaml output",
			Command:  []string{"try", "-o", "yaml"},
			Stdin:    choiceDocument,
			Surface:  answering(func(d *dialog.Dialog) { d.Cancel(dialog.ReasonEscapeKey) }),
			Expected: TestExpectation{Stdout: conv.Ptr("answer: User cancelled the question (escape key).\nisError: false\noutcome: cancelled\n")},
		},
		{
			Name:    "malformed document",
			Command: []string{"try", "-o", "json"},
			Stdin:   `<question type="poll"><title>x</title><content>y</content></question>`,
			Surface: answering(func(d *dialog.Dialog) {
				t.Error("surface must not be shown for a malformed document")
			}),
			StdoutContains: []string{`"outcome": "rejected"`, `"isError": true`, "Malformed question document"},
		},
		{
			Name:           "surface failure",
			Command:        []string{"try", "-o", "yaml"},
			Stdin:          choiceDocument,
			Surface:        dialog.SurfaceFunc(func(context.Context, *dialog.Dialog) error { return errors.New("no display") }),
			StdoutContains: []string{"isError: true", "outcome: failed", "question dialog failed: no display"},
		},
		{
			Name:     "missing file",
			Command:  []string{"try", "/work/missing.xml"},
			Surface:  selectBlue,
			Expected: TestExpectation{Error: "failed to read question document /work/missing.xml: open /work/missing.xml: file does not exist"},
		},
		{
			Name:     "empty stdin",
			Command:  []string{"try"},
			Surface:  selectBlue,
			Expected: TestExpectation{Error: "no question document provided - provide a file or pipe it via stdin"},
		},
	})
}
