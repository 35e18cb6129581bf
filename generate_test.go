package ragiegpt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/schema"
)

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("system prompt carries chunks, user message carries query", func(t *testing.T) {
		searcher := &fakeSearcher{raw: twoChunks}
		llm := &stubLLM{answer: "the answer"}

		got, err := Generate(ctx, NewRetriever(searcher, RetrieveRequest{Scope: "docs"}), llm, "hello")
		require.NoError(t, err)
		require.Equal(t, "the answer", got)

		require.Len(t, searcher.requests, 1)
		require.Equal(t, "hello", searcher.requests[0].Query)
		require.Equal(t, "docs", searcher.requests[0].Filter["scope"])

		require.Equal(t, 1, llm.calls)
		require.Len(t, llm.messages, 2)
		require.Equal(t, schema.ChatMessageTypeSystem, llm.messages[0].Role)
		require.Contains(t, messageText(t, llm.messages[0]), "alpha\n\nbeta")
		require.Equal(t, schema.ChatMessageTypeHuman, llm.messages[1].Role)
		require.Equal(t, "hello", messageText(t, llm.messages[1]))
	})

	t.Run("camelCase response shape", func(t *testing.T) {
		searcher := &fakeSearcher{raw: `{"scoredChunks":[{"text":"gamma","score":1}]}`}
		llm := &stubLLM{answer: "ok"}

		_, err := Generate(ctx, NewRetriever(searcher, RetrieveRequest{}), llm, "hello")
		require.NoError(t, err)
		require.Contains(t, messageText(t, llm.messages[0]), "gamma")
	})

	t.Run("zero chunks still tells the model to report no results", func(t *testing.T) {
		searcher := &fakeSearcher{raw: `{"scored_chunks":[]}`}
		llm := &stubLLM{answer: "nothing found"}

		_, err := Generate(ctx, NewRetriever(searcher, RetrieveRequest{}), llm, "hello")
		require.NoError(t, err)
		require.Contains(t, messageText(t, llm.messages[0]), "nothing was found")
	})

	t.Run("custom prompt func", func(t *testing.T) {
		searcher := &fakeSearcher{raw: twoChunks}
		llm := &stubLLM{answer: "ok"}

		prompt := func(texts []string) string { return "CTX:" + strings.Join(texts, "|") }
		_, err := Generate(ctx, NewRetriever(searcher, RetrieveRequest{}), llm, "hello", WithPromptFunc(prompt))
		require.NoError(t, err)
		require.Equal(t, "CTX:alpha|beta", messageText(t, llm.messages[0]))
	})

	t.Run("empty query", func(t *testing.T) {
		searcher := &fakeSearcher{raw: twoChunks}
		llm := &stubLLM{}

		_, err := Generate(ctx, NewRetriever(searcher, RetrieveRequest{}), llm, "")

		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		require.Empty(t, searcher.requests)
		require.Zero(t, llm.calls)
	})

	t.Run("retrieval failure skips completion", func(t *testing.T) {
		searcher := &fakeSearcher{err: errors.New("unauthorized")}
		llm := &stubLLM{}

		_, err := Generate(ctx, NewRetriever(searcher, RetrieveRequest{}), llm, "hello")

		var extErr *ExternalServiceError
		require.ErrorAs(t, err, &extErr)
		require.Equal(t, "Ragie", extErr.Service)
		require.Zero(t, llm.calls)
	})

	t.Run("completion failure names OpenAI", func(t *testing.T) {
		searcher := &fakeSearcher{raw: twoChunks}
		llm := &stubLLM{err: errors.New("rate limited")}

		_, err := Generate(ctx, NewRetriever(searcher, RetrieveRequest{}), llm, "hello")

		var extErr *ExternalServiceError
		require.ErrorAs(t, err, &extErr)
		require.Equal(t, "OpenAI", extErr.Service)
		require.Contains(t, err.Error(), "rate limited")
	})

	t.Run("no choices", func(t *testing.T) {
		searcher := &fakeSearcher{raw: twoChunks}
		llm := &stubLLM{noChoice: true}

		_, err := Generate(ctx, NewRetriever(searcher, RetrieveRequest{}), llm, "hello")

		var extErr *ExternalServiceError
		require.ErrorAs(t, err, &extErr)
		require.Equal(t, "OpenAI", extErr.Service)
	})
}
