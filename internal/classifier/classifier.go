package classifier

import (
	"context"
	"log"

	"docext/internal/domain"
	"docext/internal/port"
)

// Chain classifies by asking the remote classifier first and falling back to
// the heuristic on any failure: transport error, timeout, or an unparseable
// response. It never errors and never retries; the remote call's timeout is
// the only bounding mechanism, since a user is waiting on the request.
type Chain struct {
	remote    port.DocumentClassifier // nil when no remote service is configured
	heuristic *Heuristic
}

// NewChain creates a Chain. remote may be nil.
func NewChain(remote port.DocumentClassifier, heuristic *Heuristic) *Chain {
	if heuristic == nil {
		heuristic = NewHeuristic()
	}
	return &Chain{remote: remote, heuristic: heuristic}
}

// ClassifyDocument returns exactly one of receipt, invoice, or unknown for
// any input text.
func (c *Chain) ClassifyDocument(ctx context.Context, text string) (domain.DocumentType, error) {
	return c.Classify(ctx, text), nil
}

// Classify is the total-function form of ClassifyDocument.
func (c *Chain) Classify(ctx context.Context, text string) domain.DocumentType {
	if c.remote != nil {
		dt, err := c.remote.ClassifyDocument(ctx, text)
		if err == nil {
			return dt
		}
		log.Printf("classifier.Chain: remote classification failed, using heuristic: %v", err)
	}
	return c.heuristic.Classify(text)
}
