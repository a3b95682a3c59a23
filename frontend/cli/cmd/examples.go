package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/furisto/ask/backend/mcp"
	"github.com/furisto/ask/frontend/cli/pkg/fail"
)

func NewExamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "examples",
		Short:   "Show the question document formats",
		Args:    cobra.NoArgs,
		GroupID: "system",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), mcp.QuestionFormatExamples)
		},
	}

	cmd.AddCommand(NewExamplesRenderCmd())

	return cmd
}

type renderOptions struct {
	Type    string
	Title   string
	Content string
	Options string
}

func NewExamplesRenderCmd() *cobra.Command {
	options := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a question document",
		Args:  cobra.NoArgs,
		Example: `  # A free text question
  ask examples render --type qa --title "Feedback" --content "Any thoughts on the plan?"

  # A choice question
  ask examples render --type choice --title "Database" --content "Which one?" --options "pg:PostgreSQL,my:MySQL"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := mcp.CreateQuestion(options.Type, options.Title, options.Content, options.Options)
			if err != nil {
				return fail.HandleError(cmd, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), document)
			return nil
		},
	}

	cmd.Flags().StringVar(&options.Type, "type", "qa", "Question type: qa or choice")
	cmd.Flags().StringVar(&options.Title, "title", "", "Question title")
	cmd.Flags().StringVar(&options.Content, "content", "", "Question content, markdown is supported")
	cmd.Flags().StringVar(&options.Options, "options", "", `Choice options as "value1:label1,value2:label2"`)

	return cmd
}
