// Package product models the vendor product-creation form: the top-level
// details (with thumbnail) and the four repeated tabs (specifications, colors,
// sizes, gallery), each backed by a group.Store. A Draft is created when the
// form opens and discarded after a successful submission; Snapshot.Payload
// turns it into the multipart body the marketplace API accepts.
package product
