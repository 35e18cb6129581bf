package ragie

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Chunk field names differ between API client versions. Both spellings are
// accepted when reading a retrieval response.
const (
	scoredChunksField       = "scoredChunks"
	scoredChunksLegacyField = "scored_chunks"
)

// RetrievalResponse is a retrieval result kept as raw JSON so
// it can be printed verbatim.
type RetrievalResponse struct {
	Raw []byte
}

// ScoredChunk is the part of a retrieved chunk this program reads.
type ScoredChunk struct {
	Text             string
	Score            float64
	ID               string
	Index            int
	DocumentID       string
	DocumentName     string
	Metadata         map[string]any
	DocumentMetadata map[string]any
}

// Chunks returns the scored chunks in response order, reading
// "scoredChunks" and falling back to "scored_chunks". A response with
// neither yields no chunks.
func (r *RetrievalResponse) Chunks() []ScoredChunk {
	if r == nil {
		return nil
	}

	list := gjson.GetBytes(r.Raw, scoredChunksField)
	if !list.IsArray() {
		list = gjson.GetBytes(r.Raw, scoredChunksLegacyField)
	}

	if !list.IsArray() {
		return nil
	}

	items := list.Array()
	chunks := make([]ScoredChunk, 0, len(items))
	for _, item := range items {
		chunks = append(chunks, ScoredChunk{
			Text:             item.Get("text").String(),
			Score:            item.Get("score").Float(),
			ID:               item.Get("id").String(),
			Index:            int(item.Get("index").Int()),
			DocumentID:       firstOf(item, "document_id", "documentId").String(),
			DocumentName:     firstOf(item, "document_name", "documentName").String(),
			Metadata:         objectOf(item.Get("metadata")),
			DocumentMetadata: objectOf(firstOf(item, "document_metadata", "documentMetadata")),
		})
	}

	return chunks
}

// Texts returns the text of every chunk.
func (r *RetrievalResponse) Texts() []string {
	chunks := r.Chunks()

	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}

	return texts
}

// Pretty returns the raw response indented for display.
func (r *RetrievalResponse) Pretty() []byte {
	if r == nil {
		return nil
	}

	return pretty.Pretty(r.Raw)
}

func firstOf(item gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := item.Get(p); v.Exists() {
			return v
		}
	}

	return gjson.Result{}
}

func objectOf(v gjson.Result) map[string]any {
	if !v.IsObject() {
		return nil
	}

	m, _ := v.Value().(map[string]any)
	return m
}
