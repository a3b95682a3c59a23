package base

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToolErrorRendering(t *testing.T) {
	t.Parallel()

	err := NewCustomError("question rejected", []string{"Fix the title"},
		"zeta", 1,
		"alpha", errors.New("boom"),
		"orphan",
	)

	want := `question rejected

Suggestions:
- Fix the title
- Check the provided system error for more details

Details:
- alpha: boom
- orphan: MISSING
- zeta: 1`

	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("Error() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewError(t *testing.T) {
	t.Parallel()

	scenarios := []struct {
		Code    ErrorCode
		Message string
	}{
		{Code: MalformedQuestion, Message: "Malformed question document"},
		{Code: IncompleteQuestion, Message: "Incomplete question"},
		{Code: InteractionFailed, Message: "Question dialog failed"},
		{Code: AnomalousResolution, Message: "Question dialog closed without an answer"},
		{Code: Internal, Message: "Internal error"},
		{Code: InvalidInput, Message: "Invalid argument"},
	}

	for _, scenario := range scenarios {
		err := NewError(scenario.Code)
		if err.Message != scenario.Message {
			t.Errorf("NewError(%d).Message = %q, want %q", scenario.Code, err.Message, scenario.Message)
		}
		if len(err.Suggestions) < 2 {
			t.Errorf("NewError(%d) has %d suggestions, want a code specific one plus the generic one", scenario.Code, len(err.Suggestions))
		}
		if last := err.Suggestions[len(err.Suggestions)-1]; last != GenericSuggestion {
			t.Errorf("NewError(%d) last suggestion = %q", scenario.Code, last)
		}
	}
}
