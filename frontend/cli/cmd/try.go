package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/furisto/ask/backend/tool/communication"
	"github.com/furisto/ask/frontend/cli/pkg/fail"
)

type tryOutputFormat string

const (
	tryOutputFormatText tryOutputFormat = "text"
	tryOutputFormatJSON tryOutputFormat = "json"
	tryOutputFormatYAML tryOutputFormat = "yaml"
)

func (e *tryOutputFormat) String() string {
	if e == nil || *e == "" {
		return string(tryOutputFormatText)
	}
	return string(*e)
}

func (e *tryOutputFormat) Set(v string) error {
	switch v {
	case "text", "json", "yaml":
		*e = tryOutputFormat(v)
		return nil
	default:
		return errors.New(`must be one of "text", "json", or "yaml"`)
	}
}

func (e *tryOutputFormat) Type() string {
	return "format"
}

type tryOptions struct {
	Surface string
	Format  tryOutputFormat
}

type tryResult struct {
	Outcome string `json:"outcome"`
	IsError bool   `json:"isError"`
	Answer  any    `json:"answer"`
}

func NewTryCmd() *cobra.Command {
	options := tryOptions{
		Format: tryOutputFormatText,
	}

	cmd := &cobra.Command{
		Use:     "try [file]",
		Short:   "Show a question document and print the answer an agent would receive",
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		Example: `  # Show a question from a file
  ask try question.xml

  # Pipe a question document
  ask examples render --type choice --title "Pick one" --content "Which color?" --options "red:Red,blue:Blue" | ask try

  # Force the browser surface and print JSON
  ask try question.xml --surface web --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return fail.HandleError(cmd, try(cmd, options, path))
		},
	}

	cmd.Flags().StringVarP(&options.Surface, "surface", "s", "", "Surface to show the question on: auto, terminal or web (default from surface)")
	cmd.Flags().VarP(&options.Format, "output", "o", "The format to output the answer in")

	return cmd
}

func try(cmd *cobra.Command, options tryOptions, path string) error {
	ctx := cmd.Context()

	document, err := readQuestionDocument(cmd, path)
	if err != nil {
		return err
	}

	settings, err := getConfigStore(ctx).Settings()
	if err != nil {
		return err
	}
	if options.Surface != "" {
		settings.Surface = options.Surface
	}

	logger := slog.Default()
	collector, err := newCollector(ctx, settings, nil, logger)
	if err != nil {
		return err
	}

	tool := communication.NewAskUserTool(collector, logger)
	response := tool.Execute(ctx, &communication.AskUserQuestionInput{QuestionXML: document})

	return printResponse(cmd.OutOrStdout(), options.Format, response)
}

func readQuestionDocument(cmd *cobra.Command, path string) (string, error) {
	if path != "" && path != "-" {
		content, err := getFileSystem(cmd.Context()).ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read question document %s: %w", path, err)
		}
		return string(content), nil
	}

	stdin := cmd.InOrStdin()
	if f, ok := stdin.(*os.File); ok {
		stat, err := f.Stat()
		if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			return "", fmt.Errorf("no question document provided - provide a file or pipe it via stdin")
		}
	}

	content, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read question document from stdin: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return "", fmt.Errorf("no question document provided - provide a file or pipe it via stdin")
	}

	return string(content), nil
}

func printResponse(out io.Writer, format tryOutputFormat, response communication.Response) error {
	switch format {
	case tryOutputFormatText, "":
		fmt.Fprintln(out, response.Text)
		return nil
	case tryOutputFormatJSON, tryOutputFormatYAML:
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	jsonBytes, err := json.Marshal(tryResult{
		Outcome: response.Outcome,
		IsError: response.IsError,
		Answer:  response.Payload(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal to JSON: %w", err)
	}

	if format == tryOutputFormatJSON {
		var buf bytes.Buffer
		if err := json.Indent(&buf, jsonBytes, "", "  "); err != nil {
			return fmt.Errorf("failed to indent JSON: %w", err)
		}
		fmt.Fprintln(out, buf.String())
		return nil
	}

	var jsonData any
	if err := json.Unmarshal(jsonBytes, &jsonData); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if err := yaml.NewEncoder(out).Encode(jsonData); err != nil {
		return fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return nil
}
