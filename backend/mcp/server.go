package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/furisto/ask/backend/tool/base"
	"github.com/furisto/ask/backend/tool/communication"
)

const (
	ImplementationName = "ask"

	instructions = "Interactive question tool. Call ask_user_question whenever you need a decision, " +
		"a missing detail or feedback from the user before continuing. It supports free text (qa) and " +
		"single choice (choice) questions; see the examples://question-formats resource for the format."
)

type ServerOptions struct {
	Version string
}

// NewServer registers the ask_user_question tool, the question format
// examples and the create_question prompt on a new MCP server.
func NewServer(tool *communication.AskUserTool, opts ServerOptions) *sdk.Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}

	server := sdk.NewServer(&sdk.Implementation{
		Name:    ImplementationName,
		Version: opts.Version,
	}, &sdk.ServerOptions{
		Instructions: instructions,
	})

	sdk.AddTool(server, &sdk.Tool{
		Name:        tool.Name(),
		Description: tool.Description(),
	}, askUserQuestionHandler(tool))

	server.AddResource(&sdk.Resource{
		URI:         base.ResourceURIQuestionFormats,
		Name:        "question-formats",
		Description: "Examples of the question document formats accepted by ask_user_question.",
		MIMEType:    "text/markdown",
	}, questionFormatsHandler)

	server.AddPrompt(&sdk.Prompt{
		Name:        base.PromptNameCreateQuestion,
		Description: "Render a question document for ask_user_question.",
		Arguments: []*sdk.PromptArgument{
			{Name: "question_type", Description: "qa or choice", Required: true},
			{Name: "title", Description: "question title", Required: true},
			{Name: "content", Description: "question text", Required: true},
			{Name: "options", Description: `choice options as "value1:label1,value2:label2"`},
		},
	}, createQuestionHandler)

	return server
}

func askUserQuestionHandler(tool *communication.AskUserTool) sdk.ToolHandlerFor[communication.AskUserQuestionInput, any] {
	return func(ctx context.Context, _ *sdk.CallToolRequest, input communication.AskUserQuestionInput) (*sdk.CallToolResult, any, error) {
		return ToolResult(tool.Execute(ctx, &input)), nil, nil
	}
}

// ToolResult converts a tool response into MCP content. The text always comes
// first, followed by the images in the order they were attached.
func ToolResult(response communication.Response) *sdk.CallToolResult {
	content := []sdk.Content{&sdk.TextContent{Text: response.Text}}
	for i, image := range response.Images {
		data, err := base64.StdEncoding.DecodeString(image.Data)
		if err != nil {
			content = append(content, &sdk.TextContent{Text: fmt.Sprintf("Image %d could not be decoded: %v", i+1, err)})
			continue
		}
		content = append(content, &sdk.ImageContent{Data: data, MIMEType: image.MIMEType})
	}

	return &sdk.CallToolResult{
		Content: content,
		IsError: response.IsError,
	}
}

func questionFormatsHandler(_ context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     QuestionFormatExamples,
		}},
	}, nil
}

func createQuestionHandler(_ context.Context, req *sdk.GetPromptRequest) (*sdk.GetPromptResult, error) {
	args := req.Params.Arguments

	text, err := CreateQuestion(args["question_type"], args["title"], args["content"], args["options"])
	if err != nil {
		text = "Error: " + err.Error()
	}

	return &sdk.GetPromptResult{
		Description: "Question document for ask_user_question",
		Messages: []*sdk.PromptMessage{{
			Role:    "user",
			Content: &sdk.TextContent{Text: text},
		}},
	}, nil
}
