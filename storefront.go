package storefront

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-storefront/pkg/api"
	"github.com/goliatone/go-storefront/pkg/group"
	"github.com/goliatone/go-storefront/pkg/product"
	"github.com/goliatone/go-storefront/pkg/view"
)

// Draft aliases product.Draft so callers can hold the form state from the
// top-level module.
type Draft = product.Draft

// Snapshot is an immutable view of a Draft.
type Snapshot = product.Snapshot

// Client is the marketplace REST client.
type Client = api.Client

// APIError carries the field and form messages of a rejected request.
type APIError = api.Error

// NewDraft opens a product form for vendor.
func NewDraft(vendor string, options ...group.Option) *Draft {
	return product.NewDraft(vendor, options...)
}

// NewClient builds a client rooted at baseURL.
func NewClient(baseURL string, options ...api.Option) (*Client, error) {
	return api.New(baseURL, options...)
}

// SubmitDraft waits for pending image reads, encodes the draft and creates the
// product. Validation errors come back as *APIError with paths in form
// numbering, ready to attach to rows.
func SubmitDraft(ctx context.Context, client *Client, draft *Draft) (api.Product, error) {
	draft.Wait()
	payload, err := draft.Snapshot().Payload()
	if err != nil {
		return api.Product{}, err
	}
	return client.CreateProduct(ctx, payload)
}

// EmbeddedTemplates exposes the built-in view templates so callers can reuse
// or extend them without importing the view package directly.
func EmbeddedTemplates() fs.FS {
	return view.TemplatesFS()
}
