package base

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

type ToolTestSetup[ToolInput any, ToolResult any] struct {
	Call       func(ctx context.Context, services *ToolTestServices, input ToolInput) (ToolResult, error)
	CmpOptions []cmp.Option
}

type ToolTestServices struct {
	FS afero.Fs
}

type ToolTestScenario[ToolInput any, ToolResult any] struct {
	Name            string
	SeedFilesystem  func(ctx context.Context, fs afero.Fs)
	QueryFilesystem func(fs afero.Fs) (any, error)
	TestInput       ToolInput
	Expected        ToolTestExpectation[ToolResult]
}

type ToolTestExpectation[ToolResult any] struct {
	Filesystem any
	Result     ToolResult
	Error      error
}

func (s *ToolTestSetup[ToolInput, ToolResult]) RunToolTests(t *testing.T, scenarios []ToolTestScenario[ToolInput, ToolResult]) {
	if len(scenarios) == 0 {
		t.Fatalf("no scenarios provided")
	}

	if s.Call == nil {
		t.Fatalf("no call function provided")
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if scenario.SeedFilesystem != nil {
				scenario.SeedFilesystem(t.Context(), fs)
			}

			var actual ToolTestExpectation[ToolResult]
			output, err := s.Call(t.Context(), &ToolTestServices{FS: fs}, scenario.TestInput)
			if err != nil {
				actual.Error = err
			} else {
				actual.Result = output
			}

			if scenario.QueryFilesystem != nil {
				filesystem, err := scenario.QueryFilesystem(fs)
				if err != nil {
					t.Fatalf("failed to query filesystem: %v", err)
				}
				actual.Filesystem = filesystem
			}

			if diff := cmp.Diff(scenario.Expected, actual, s.CmpOptions...); diff != "" {
				t.Errorf("%s() mismatch (-want +got):\n%s", scenario.Name, diff)
			}
		})
	}
}
