package ragiegpt

import (
	"context"
	"errors"
	"strconv"

	"github.com/prestonvasquez/ragie-gpt/internal/ragie"
	"github.com/tmc/langchaingo/schema"
)

const ragieService = "Ragie"

// ChunkSearcher runs a retrieval against the hosted index.
type ChunkSearcher interface {
	Retrieve(ctx context.Context, req ragie.RetrievalRequest) (*ragie.RetrievalResponse, error)
}

var _ ChunkSearcher = (*ragie.Client)(nil)

// RetrieveRequest describes a retrieval. Only Query is required.
type RetrieveRequest struct {
	Query string

	// Scope becomes the server-side filter {"scope": Scope}.
	Scope string

	// Partition pins the retrieval to a partition.
	Partition string

	TopK   int
	Rerank *bool
}

// RetrieveRequestFromArgs reads query, scope, partition, topK and rerank
// from parsed flags. defaultPartition applies when --partition is absent.
func RetrieveRequestFromArgs(args Args, defaultPartition string) (RetrieveRequest, error) {
	query, err := args.requireString("query")
	if err != nil {
		return RetrieveRequest{}, err
	}

	req := RetrieveRequest{Query: query, Partition: defaultPartition}

	if scope, ok := args.String("scope"); ok && scope != "" {
		req.Scope = scope
	}

	if p, ok := args.String("partition"); ok && p != "" {
		req.Partition = p
	}

	for _, key := range []string{"topK", "top_k"} {
		if s, ok := args.String(key); ok {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return RetrieveRequest{}, &ValidationError{Flag: key}
			}
			req.TopK = n
		}
	}

	if args.Has("rerank") {
		rerank := args.Bool("rerank")
		req.Rerank = &rerank
	}

	return req, nil
}

func (r RetrieveRequest) ragieRequest() ragie.RetrievalRequest {
	out := ragie.RetrievalRequest{
		Query:     r.Query,
		Partition: r.Partition,
		TopK:      r.TopK,
		Rerank:    r.Rerank,
	}

	if r.Scope != "" {
		out.Filter = ragie.Filter{"scope": r.Scope}
	}

	return out
}

// RetrieveChunks queries the retrieval service and returns its response
// unchanged. Use RetrievalResponse.Texts to read chunk text.
func RetrieveChunks(ctx context.Context, searcher ChunkSearcher, req RetrieveRequest) (*ragie.RetrievalResponse, error) {
	if req.Query == "" {
		return nil, &ValidationError{Flag: "query"}
	}

	resp, err := searcher.Retrieve(ctx, req.ragieRequest())
	if err != nil {
		return nil, &ExternalServiceError{Service: ragieService, Op: "retrieval", Err: err}
	}

	return resp, nil
}

// Retriever exposes retrieval as a langchaingo schema.Retriever. Every call
// uses the configured scope, partition and limits with the given query.
type Retriever struct {
	searcher ChunkSearcher
	opts     RetrieveRequest
}

var _ schema.Retriever = (*Retriever)(nil)

// NewRetriever returns a Retriever bound to opts. opts.Query is ignored.
func NewRetriever(searcher ChunkSearcher, opts RetrieveRequest) *Retriever {
	return &Retriever{searcher: searcher, opts: opts}
}

// GetRelevantDocuments retrieves chunks for query as documents, in the
// order the service ranked them.
func (r *Retriever) GetRelevantDocuments(ctx context.Context, query string) ([]schema.Document, error) {
	if r == nil || r.searcher == nil {
		return nil, errors.New("retriever has no searcher")
	}

	req := r.opts
	req.Query = query

	resp, err := RetrieveChunks(ctx, r.searcher, req)
	if err != nil {
		return nil, err
	}

	chunks := resp.Chunks()
	docs := make([]schema.Document, 0, len(chunks))
	for _, c := range chunks {
		docs = append(docs, schema.Document{
			PageContent: c.Text,
			Score:       float32(c.Score),
			Metadata: mergeMeta(c.Metadata, map[string]any{
				"chunk_id":      c.ID,
				"chunk_index":   c.Index,
				"document_id":   c.DocumentID,
				"document_name": c.DocumentName,
			}),
		})
	}

	return docs, nil
}

// mergeMeta returns a new map combining base and extra keys.
func mergeMeta(base map[string]any, extra map[string]any) map[string]any {
	m := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		m[k] = v
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}
