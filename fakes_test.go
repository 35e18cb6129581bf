package ragiegpt

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/prestonvasquez/ragie-gpt/internal/ragie"
	"github.com/tmc/langchaingo/llms"
)

type fakeSearcher struct {
	requests []ragie.RetrievalRequest
	raw      string
	err      error
}

var _ ChunkSearcher = &fakeSearcher{}

func (f *fakeSearcher) Retrieve(_ context.Context, req ragie.RetrievalRequest) (*ragie.RetrievalResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}

	return &ragie.RetrievalResponse{Raw: []byte(f.raw)}, nil
}

type fakeDocuments struct {
	id, partition string
	doc           string
	err           error
}

var _ DocumentGetter = &fakeDocuments{}

func (f *fakeDocuments) GetDocument(_ context.Context, id, partition string) (json.RawMessage, error) {
	f.id, f.partition = id, partition
	if f.err != nil {
		return nil, f.err
	}

	return json.RawMessage(f.doc), nil
}

type stubLLM struct {
	messages []llms.MessageContent
	calls    int
	answer   string
	noChoice bool
	err      error
}

var _ llms.Model = &stubLLM{}

func (s *stubLLM) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	s.calls++
	s.messages = messages
	if s.err != nil {
		return nil, s.err
	}

	if s.noChoice {
		return &llms.ContentResponse{}, nil
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: s.answer}, {Content: "ignored"}},
	}, nil
}

func (s *stubLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func messageText(t interface{ Fatalf(string, ...any) }, msg llms.MessageContent) string {
	if len(msg.Parts) != 1 {
		t.Fatalf("expected one part, got %d", len(msg.Parts))
	}

	text, ok := msg.Parts[0].(llms.TextContent)
	if !ok {
		t.Fatalf("expected text part, got %T", msg.Parts[0])
	}

	return text.Text
}
