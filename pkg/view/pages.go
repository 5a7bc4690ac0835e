package view

import (
	"strconv"

	"github.com/goliatone/go-storefront/pkg/api"
	"github.com/goliatone/go-storefront/pkg/formdef"
	"github.com/goliatone/go-storefront/pkg/group"
	"github.com/goliatone/go-storefront/pkg/product"
)

// Template names.
const (
	TemplateWishlist = "wishlist"
	TemplateDraft    = "draft"
)

// WishlistData shapes wishlist items for the wishlist template.
func WishlistData(items []api.WishlistItem) map[string]any {
	cards := make([]map[string]any, 0, len(items))
	for _, item := range items {
		p := item.Product
		category := ""
		if p.Category != nil {
			category = p.Category.Title
		}
		cards = append(cards, map[string]any{
			"id":       p.ID,
			"title":    p.Title,
			"href":     p.DetailPath(),
			"image":    p.Image,
			"category": category,
			"price":    p.Price.String(),
		})
	}
	return map[string]any{"items": cards}
}

// DraftData shapes a product snapshot for the draft template. apiErr may be
// nil; when set, its messages are attached to the matching fields and rows.
func DraftData(snap product.Snapshot, categories []api.Category, apiErr *api.Error) map[string]any {
	categoryTitles := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryTitles[strconv.Itoa(c.ID)] = c.Title
	}

	details := make([]map[string]any, 0, len(product.DetailFields))
	for _, field := range product.DetailFields {
		value := snap.Details.Field(field)
		if field == product.FieldCategory {
			if title, ok := categoryTitles[value]; ok {
				value = title
			}
		}
		if field == product.FieldDescription {
			value = product.SanitizeDescription(value)
		}
		details = append(details, map[string]any{
			"name":   field,
			"label":  formdef.Label(field),
			"value":  value,
			"errors": apiErr.FieldErrors(field),
		})
	}

	thumbnail := ""
	if snap.Details.Image != nil {
		thumbnail = snap.Details.Image.Preview
	}

	var formErrors []string
	if apiErr != nil {
		formErrors = apiErr.Form
	}

	return map[string]any{
		"name":        snap.Details.Name,
		"thumbnail":   thumbnail,
		"details":     details,
		"form_errors": formErrors,
		"groups": []map[string]any{
			groupData(product.GroupGallery, snap.Gallery, apiErr),
			groupData(product.GroupSpecifications, snap.Specifications, apiErr),
			groupData(product.GroupSizes, snap.Sizes, apiErr),
			groupData(product.GroupColors, snap.Colors, apiErr),
		},
	}
}

func groupData[R group.Shape[R]](name string, g group.Group[R], apiErr *api.Error) map[string]any {
	def := product.Definition(name)
	fields := def.FieldNames()
	rows := make([]map[string]any, 0, g.Len())
	for i, record := range g.Records() {
		prefix := name + "." + strconv.Itoa(i)
		cells := make([]map[string]any, 0, len(fields))
		for _, field := range fields {
			cells = append(cells, map[string]any{
				"name":   field,
				"label":  product.FieldLabel(name, field),
				"value":  record.Field(field),
				"errors": apiErr.FieldErrors(prefix + "." + field),
			})
		}
		image := ""
		if img := record.ImageRef(); img != nil {
			image = img.Preview
		}
		rows = append(rows, map[string]any{
			"index": i,
			"image": image,
			"cells": cells,
		})
	}
	return map[string]any{
		"name":  name,
		"label": def.Label,
		"rows":  rows,
	}
}
