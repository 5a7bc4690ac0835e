package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-storefront/pkg/product"
)

// Category is a product category.
type Category struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Image  string `json:"image,omitempty"`
	Slug   string `json:"slug,omitempty"`
	Active bool   `json:"active"`
}

// Product is the read shape of a product.
type Product struct {
	ID       int         `json:"id"`
	Title    string      `json:"title"`
	Slug     string      `json:"slug"`
	Image    string      `json:"image,omitempty"`
	Price    json.Number `json:"price,omitempty"`
	OldPrice json.Number `json:"old_price,omitempty"`
	Category *Category   `json:"category,omitempty"`
}

// DetailPath is the frontend route for the product page.
func (p Product) DetailPath() string {
	return "/detail/" + url.PathEscape(p.Slug) + "/"
}

// WishlistItem is one saved product.
type WishlistItem struct {
	ID      int     `json:"id"`
	Product Product `json:"product"`
}

// Registration is the sign-up form.
type Registration struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Validate checks the fields the API would reject outright.
func (r Registration) Validate() error {
	missing := make(map[string][]string)
	for field, value := range map[string]string{
		"full_name": r.FullName,
		"email":     r.Email,
		"phone":     r.Phone,
		"password":  r.Password,
		"password2": r.Password2,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = []string{"This field may not be blank."}
		}
	}
	if len(missing) > 0 {
		return &Error{Status: http.StatusBadRequest, Fields: missing}
	}
	if r.Password != r.Password2 {
		return ErrPasswordMismatch
	}
	return nil
}

var registrationPaths = []string{"full_name", "email", "phone", "password", "password2"}

// Categories lists product categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.request(ctx, http.MethodGet, "category/", "", nil, &out); err != nil {
		return nil, resolve(err, nil, nil)
	}
	return out, nil
}

// Wishlist returns the saved products of a customer.
func (c *Client) Wishlist(ctx context.Context, userID string) ([]WishlistItem, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("api: wishlist: user id is required")
	}
	var out []WishlistItem
	path := "customer/wishlist/" + url.PathEscape(userID) + "/"
	if err := c.request(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, resolve(err, nil, nil)
	}
	return out, nil
}

// Register creates a customer account.
func (c *Client) Register(ctx context.Context, r Registration) error {
	if err := r.Validate(); err != nil {
		return err
	}
	body, err := jsonBody(r)
	if err != nil {
		return err
	}
	if err := c.request(ctx, http.MethodPost, "user/register/", "application/json", body, nil); err != nil {
		return resolve(err, registrationPaths, nil)
	}
	return nil
}

// CreateProduct submits a product payload. Validation errors come back with
// paths in form numbering (see product.Payload.RemapPath).
func (c *Client) CreateProduct(ctx context.Context, payload *product.Payload) (Product, error) {
	if payload == nil {
		return Product{}, fmt.Errorf("api: create product: payload is required")
	}
	var out Product
	err := c.request(ctx, http.MethodPost, "vendor/product-create/", payload.ContentType, payload.Reader(), &out)
	if err != nil {
		return Product{}, resolve(err, payload.FieldPaths(), payload.RemapPath)
	}
	return out, nil
}
