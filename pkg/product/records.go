package product

import (
	"github.com/goliatone/go-storefront/pkg/group"
	"github.com/goliatone/go-storefront/pkg/preview"
)

// Field names shared by the form and the payload builder.
const (
	FieldName           = "name"
	FieldDescription    = "description"
	FieldCategory       = "category"
	FieldPrice          = "price"
	FieldOldPrice       = "old_price"
	FieldShippingAmount = "shipping_amount"
	FieldStockQty       = "stock_qty"
	FieldVendor         = "vendor"
	FieldImage          = "image"
	FieldTitle          = "title"
	FieldContent        = "content"
	FieldColorCode      = "color_code"
)

// Details holds the top-level product fields and the thumbnail.
type Details struct {
	Name           string
	Description    string
	Category       string
	Price          string
	OldPrice       string
	ShippingAmount string
	StockQty       string
	Vendor         string
	Image          *preview.Image
}

var _ group.Shape[Details] = Details{}

func (d Details) Field(name string) string {
	switch name {
	case FieldName:
		return d.Name
	case FieldDescription:
		return d.Description
	case FieldCategory:
		return d.Category
	case FieldPrice:
		return d.Price
	case FieldOldPrice:
		return d.OldPrice
	case FieldShippingAmount:
		return d.ShippingAmount
	case FieldStockQty:
		return d.StockQty
	case FieldVendor:
		return d.Vendor
	}
	return ""
}

func (d Details) WithField(name, value string) Details {
	switch name {
	case FieldName:
		d.Name = value
	case FieldDescription:
		d.Description = value
	case FieldCategory:
		d.Category = value
	case FieldPrice:
		d.Price = value
	case FieldOldPrice:
		d.OldPrice = value
	case FieldShippingAmount:
		d.ShippingAmount = value
	case FieldStockQty:
		d.StockQty = value
	case FieldVendor:
		d.Vendor = value
	}
	return d
}

func (d Details) ImageRef() *preview.Image { return d.Image }

func (d Details) WithImageRef(img *preview.Image) Details {
	d.Image = img
	return d
}

// DetailFields lists the editable top-level fields in form order.
var DetailFields = []string{
	FieldName, FieldDescription, FieldCategory, FieldPrice,
	FieldOldPrice, FieldShippingAmount, FieldStockQty,
}

// Specification is one title/content row of the specifications tab.
type Specification struct {
	Title   string
	Content string
}

var _ group.Shape[Specification] = Specification{}

func (s Specification) Field(name string) string {
	switch name {
	case FieldTitle:
		return s.Title
	case FieldContent:
		return s.Content
	}
	return ""
}

func (s Specification) WithField(name, value string) Specification {
	switch name {
	case FieldTitle:
		s.Title = value
	case FieldContent:
		s.Content = value
	}
	return s
}

// Specifications carry no image; the image methods keep the record as is.
func (s Specification) ImageRef() *preview.Image                  { return nil }
func (s Specification) WithImageRef(*preview.Image) Specification { return s }

// Color is one row of the colors tab.
type Color struct {
	Name      string
	ColorCode string
}

var _ group.Shape[Color] = Color{}

func (c Color) Field(name string) string {
	switch name {
	case FieldName:
		return c.Name
	case FieldColorCode:
		return c.ColorCode
	}
	return ""
}

func (c Color) WithField(name, value string) Color {
	switch name {
	case FieldName:
		c.Name = value
	case FieldColorCode:
		c.ColorCode = value
	}
	return c
}

func (c Color) ImageRef() *preview.Image          { return nil }
func (c Color) WithImageRef(*preview.Image) Color { return c }

// Size is one row of the sizes tab.
type Size struct {
	Name  string
	Price string
}

var _ group.Shape[Size] = Size{}

func (s Size) Field(name string) string {
	switch name {
	case FieldName:
		return s.Name
	case FieldPrice:
		return s.Price
	}
	return ""
}

func (s Size) WithField(name, value string) Size {
	switch name {
	case FieldName:
		s.Name = value
	case FieldPrice:
		s.Price = value
	}
	return s
}

func (s Size) ImageRef() *preview.Image         { return nil }
func (s Size) WithImageRef(*preview.Image) Size { return s }

// GalleryImage is one slot of the gallery tab.
type GalleryImage struct {
	Image *preview.Image
}

var _ group.Shape[GalleryImage] = GalleryImage{}

func (g GalleryImage) Field(string) string                   { return "" }
func (g GalleryImage) WithField(string, string) GalleryImage { return g }
func (g GalleryImage) ImageRef() *preview.Image              { return g.Image }

func (g GalleryImage) WithImageRef(img *preview.Image) GalleryImage {
	g.Image = img
	return g
}
