package ragiegpt

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

const openAIService = "OpenAI"

type GenerateOptions struct {
	PromptFunc  PromptFunc
	CallOptions []llms.CallOption
}

type GenerateOption func(*GenerateOptions)

func WithPromptFunc(promptFunc PromptFunc) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.PromptFunc = promptFunc
	}
}

func WithCallOptions(callOpts ...llms.CallOption) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.CallOptions = append(opts.CallOptions, callOpts...)
	}
}

// Generate answers query with retrieval-augmented generation: it retrieves
// chunks for the query, embeds their text in the system prompt, and sends
// the system prompt plus the raw query to the model. The content of the
// first choice is returned.
//
// Retrieval always completes before the model is called. Neither step is
// retried.
func Generate(
	ctx context.Context,
	retriever schema.Retriever,
	llm llms.Model,
	query string,
	opts ...GenerateOption,
) (string, error) {
	genOpts := &GenerateOptions{
		PromptFunc: BuildSystemPrompt,
	}

	for _, opt := range opts {
		opt(genOpts)
	}

	if query == "" {
		return "", &ValidationError{Flag: "query"}
	}

	docs, err := retriever.GetRelevantDocuments(ctx, query)
	if err != nil {
		var extErr *ExternalServiceError
		var valErr *ValidationError
		if errors.As(err, &extErr) || errors.As(err, &valErr) {
			return "", err
		}
		return "", &ExternalServiceError{Service: ragieService, Op: "retrieval", Err: err}
	}

	logrus.Debugf("retrieved %d chunks", len(docs))

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.PageContent)
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, genOpts.PromptFunc(texts)),
		llms.TextParts(schema.ChatMessageTypeHuman, query),
	}

	resp, err := llm.GenerateContent(ctx, messages, genOpts.CallOptions...)
	if err != nil {
		return "", &ExternalServiceError{Service: openAIService, Op: "chat completion", Err: err}
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", &ExternalServiceError{
			Service: openAIService,
			Op:      "chat completion",
			Err:     errors.New("response contained no choices"),
		}
	}

	return resp.Choices[0].Content, nil
}
