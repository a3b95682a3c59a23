package fail

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTransformError(t *testing.T) {
	t.Parallel()

	permission := &fs.PathError{Op: "open", Path: "/home/user/.config/ask/config.yaml", Err: fs.ErrPermission}

	scenarios := []struct {
		Name        string
		Err         error
		UserMessage string
		Nil         bool
	}{
		{Name: "nil", Err: nil, Nil: true},
		{Name: "cancelled", Err: fmt.Errorf("serve: %w", context.Canceled), Nil: true},
		{Name: "invalid configuration", Err: errors.New("invalid configuration: surface: bad"), UserMessage: "The configuration contains invalid values"},
		{Name: "permission", Err: fmt.Errorf("flush: %w", permission), UserMessage: "Permission denied accessing /home/user/.config/ask/config.yaml"},
		{Name: "address in use", Err: errors.New("listen tcp 127.0.0.1:8765: bind: address already in use"), UserMessage: "The network address is already in use by another process"},
		{Name: "missing file", Err: errors.New("open q.xml: no such file or directory"), UserMessage: "Required file or directory not found"},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			t.Parallel()

			err := TransformError(scenario.Err)
			if scenario.Nil {
				if err != nil {
					t.Fatalf("TransformError() = %v, want nil", err)
				}
				return
			}

			var userErr *UserFacingError
			if !errors.As(err, &userErr) {
				t.Fatalf("TransformError() = %T, want *UserFacingError", err)
			}
			if diff := cmp.Diff(scenario.UserMessage, userErr.UserMessage); diff != "" {
				t.Errorf("UserMessage mismatch (-want +got):\n%s", diff)
			}
			if !errors.Is(err, scenario.Err) {
				t.Error("transformed error does not wrap the cause")
			}
		})
	}
}

func TestTransformErrorPassesThrough(t *testing.T) {
	t.Parallel()

	plain := errors.New("something else")
	if got := TransformError(plain); got != plain {
		t.Errorf("TransformError() = %v, want the error unchanged", got)
	}
}
