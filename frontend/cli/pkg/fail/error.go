package fail

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
)

type UserFacingSolutionFormat string

const (
	UserFacingSolutionFormatMultiline  UserFacingSolutionFormat = "multiline"
	UserFacingSolutionFormatSingleline UserFacingSolutionFormat = "singleline"
)

type Troubleshooting struct {
	Format    UserFacingSolutionFormat
	Solutions []string
}

type UserFacingError struct {
	Cause           error
	UserMessage     string
	Troubleshooting Troubleshooting
	TechDetails     string
	HelpURLs        []string
	Time            time.Time
}

func (e *UserFacingError) Error() string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("%s\n\n", lipgloss.NewStyle().Bold(true).Render(e.UserMessage)))

	if len(e.Troubleshooting.Solutions) > 0 {
		msg.WriteString("Troubleshooting steps:\n")
		for i, solution := range e.Troubleshooting.Solutions {
			if e.Troubleshooting.Format == UserFacingSolutionFormatMultiline {
				// Split multi-line solutions and indent continuation lines properly
				lines := strings.Split(solution, "\n")
				msg.WriteString(fmt.Sprintf("  %d. %s\n", i+1, lines[0]))
				for j := 1; j < len(lines); j++ {
					if lines[j] != "" {
						msg.WriteString(fmt.Sprintf("     %s\n", lines[j]))
					} else {
						msg.WriteString("\n")
					}
				}
				msg.WriteString("\n")
			} else {
				msg.WriteString(fmt.Sprintf("  %d. %s\n", i+1, solution))
			}
		}
		msg.WriteString("\n")
	}

	if e.TechDetails != "" {
		msg.WriteString("Technical details:\n")
		msg.WriteString(e.TechDetails)
		msg.WriteString("\n")
	}

	if len(e.HelpURLs) > 0 {
		msg.WriteString("If the problem persists:\n")
		for _, url := range e.HelpURLs {
			msg.WriteString(fmt.Sprintf("%s %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Render(("→")), url))
		}
	}

	return msg.String()
}

func (e *UserFacingError) Unwrap() error {
	return e.Cause
}

func NewUserFacingError(userMessage string, cause error, troubleshooting Troubleshooting, techDetails string, helpURLs []string) *UserFacingError {
	return &UserFacingError{
		Cause:           cause,
		UserMessage:     userMessage,
		Troubleshooting: troubleshooting,
		TechDetails:     techDetails,
		HelpURLs:        helpURLs,
	}
}

const issuesURL = "https://github.com/furisto/ask/issues/new"

func NewPermissionError(path string, err error) *UserFacingError {
	return &UserFacingError{
		Cause:       err,
		UserMessage: fmt.Sprintf("Permission denied accessing %s", path),
		Troubleshooting: Troubleshooting{
			Format: UserFacingSolutionFormatSingleline,
			Solutions: []string{
				"Check file permissions and ownership",
				"Ensure you have write access to the directory",
				"Verify the path exists and is accessible",
			},
		},
		TechDetails: fmt.Sprintf("Failed to access %s: %v", path, err),
		HelpURLs:    []string{issuesURL},
	}
}

func NewInvalidConfigError(err error) *UserFacingError {
	return &UserFacingError{
		Cause:       err,
		UserMessage: "The configuration contains invalid values",
		Troubleshooting: Troubleshooting{
			Format: UserFacingSolutionFormatMultiline,
			Solutions: []string{
				"Show the values in effect and where they come from:\n  ask config list --effective",
				"Fix or remove the offending value:\n  ask config set <key> <value>\n  ask config unset <key>",
				"Check ASK_ environment variables and the .env file in the working directory",
			},
		},
		TechDetails: err.Error(),
	}
}

func HandleError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}

	if cmd != nil {
		cmd.SilenceUsage = true
	}

	sentry.CaptureException(err)
	return TransformError(err)
}

func TransformError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(*UserFacingError); ok {
		return err
	}

	errStr := err.Error()
	if strings.HasPrefix(errStr, "invalid configuration") {
		return NewInvalidConfigError(err)
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && errors.Is(err, fs.ErrPermission) {
		return NewPermissionError(pathErr.Path, err)
	}

	if strings.Contains(errStr, "no such file or directory") {
		return &UserFacingError{
			Cause:       err,
			UserMessage: "Required file or directory not found",
			Troubleshooting: Troubleshooting{
				Format: UserFacingSolutionFormatSingleline,
				Solutions: []string{
					"Verify the path exists and is accessible",
					"Check if the parent directory exists",
				},
			},
			TechDetails: errStr,
			HelpURLs:    []string{issuesURL},
		}
	}

	if strings.Contains(errStr, "address already in use") {
		return &UserFacingError{
			Cause:       err,
			UserMessage: "The network address is already in use by another process",
			Troubleshooting: Troubleshooting{
				Format: UserFacingSolutionFormatSingleline,
				Solutions: []string{
					"Choose a different address: ask serve --address 127.0.0.1:<port>",
					"Stop the process using this port",
					"Let the browser page pick a free port: ask config set web.address 127.0.0.1:0",
				},
			},
			TechDetails: errStr,
			HelpURLs:    []string{issuesURL},
		}
	}

	if strings.Contains(errStr, "operation not permitted") {
		return &UserFacingError{
			Cause:       err,
			UserMessage: "Operation not permitted - insufficient privileges",
			Troubleshooting: Troubleshooting{
				Format: UserFacingSolutionFormatSingleline,
				Solutions: []string{
					"Check if you have the necessary permissions",
					"Check that the config directory is writable",
				},
			},
			TechDetails: errStr,
			HelpURLs:    []string{issuesURL},
		}
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
