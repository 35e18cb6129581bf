package ragiegpt

import (
	"context"
	"encoding/json"

	"github.com/prestonvasquez/ragie-gpt/internal/ragie"
)

// DocumentGetter fetches document metadata by id.
type DocumentGetter interface {
	GetDocument(ctx context.Context, id, partition string) (json.RawMessage, error)
}

var _ DocumentGetter = (*ragie.Client)(nil)

// QueryDocument returns the metadata of the document named by the
// documentId flag. partition is sent when non-empty.
func QueryDocument(ctx context.Context, getter DocumentGetter, args Args, partition string) (json.RawMessage, error) {
	id, err := args.requireString("documentId")
	if err != nil {
		return nil, err
	}

	if p, ok := args.String("partition"); ok && p != "" {
		partition = p
	}

	doc, err := getter.GetDocument(ctx, id, partition)
	if err != nil {
		return nil, &ExternalServiceError{Service: ragieService, Op: "document lookup", Err: err}
	}

	return doc, nil
}
