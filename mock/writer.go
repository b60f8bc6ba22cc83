package mock

import (
	"context"

	"github.com/fwojciec/hcprofile"
)

var _ hcprofile.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of hcprofile.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, name, content string) (string, error)
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, name, content string) (string, error) {
	return w.WriteDocumentFn(ctx, name, content)
}
