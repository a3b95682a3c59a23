package base

const (
	ToolNameAskUserQuestion = "ask_user_question"
)

const (
	ResourceURIQuestionFormats = "examples://question-formats"
	PromptNameCreateQuestion   = "create_question"
)
