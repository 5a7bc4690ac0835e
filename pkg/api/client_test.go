package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-storefront/pkg/api"
	"github.com/goliatone/go-storefront/pkg/product"
)

func newClient(t *testing.T, handler http.HandlerFunc, opts ...api.Option) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]api.Option{api.WithRequestIDs(func() string { return "req-1" })}, opts...)
	client, err := api.New(server.URL+"/api/v1", opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewRejectsMissingBaseURL(t *testing.T) {
	for _, raw := range []string{"", "  ", "not a url", "/relative"} {
		if _, err := api.New(raw); !errors.Is(err, api.ErrBaseURL) {
			t.Fatalf("New(%q): expected ErrBaseURL, got %v", raw, err)
		}
	}
}

func TestCategories(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/category/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-Request-ID"); got != "req-1" {
			t.Errorf("expected request id, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected bearer token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"title":"Shirts","slug":"shirts","active":true},{"id":2,"title":"Shoes","active":false}]`)
	}, api.WithToken("secret"))

	got, err := client.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	want := []api.Category{
		{ID: 1, Title: "Shirts", Slug: "shirts", Active: true},
		{ID: 2, Title: "Shoes"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestWishlist(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/customer/wishlist/42/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"id":9,"product":{"id":3,"title":"Linen Shirt","slug":"linen-shirt","price":"25.00","category":{"id":1,"title":"Shirts"}}}]`)
	})

	items, err := client.Wishlist(context.Background(), "42")
	if err != nil {
		t.Fatalf("wishlist: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	p := items[0].Product
	if p.Title != "Linen Shirt" || p.Price.String() != "25.00" || p.Category == nil || p.Category.Title != "Shirts" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.DetailPath() != "/detail/linen-shirt/" {
		t.Fatalf("unexpected detail path %q", p.DetailPath())
	}

	if _, err := client.Wishlist(context.Background(), " "); err == nil {
		t.Fatalf("expected error for blank user id")
	}
}

func TestRegister(t *testing.T) {
	var received map[string]string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/user/register/" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if received["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"email":["user with this email already exists."],"non_field_errors":["Try again"]}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":1}`)
	})

	reg := api.Registration{FullName: "Ada", Email: "ada@example.com", Phone: "555", Password: "pw", Password2: "pw"}
	if err := client.Register(context.Background(), reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if received["full_name"] != "Ada" || received["password2"] != "pw" {
		t.Fatalf("unexpected body: %v", received)
	}

	reg.Email = "taken@example.com"
	err := client.Register(context.Background(), reg)
	apiErr, ok := api.AsError(err)
	if !ok {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", apiErr.Status)
	}
	if diff := cmp.Diff([]string{"user with this email already exists."}, apiErr.FieldErrors("email")); diff != "" {
		t.Fatalf("email errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Try again"}, apiErr.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterValidatesLocally(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request should not be sent")
	})

	err := client.Register(context.Background(), api.Registration{FullName: "Ada", Email: "a@b", Phone: "1", Password: "x", Password2: "y"})
	if !errors.Is(err, api.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	err = client.Register(context.Background(), api.Registration{Email: "a@b"})
	apiErr, ok := api.AsError(err)
	if !ok {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if diff := cmp.Diff([]string{"full_name", "password", "password2", "phone"}, apiErr.Paths()); diff != "" {
		t.Fatalf("missing fields mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateProduct(t *testing.T) {
	draft := product.NewDraft("5")
	draft.SetDetail(product.FieldName, "Linen Shirt")
	draft.Sizes.Append()
	draft.Sizes.Append()
	draft.Sizes.UpdateField(2, product.FieldName, "XL")
	draft.Sizes.UpdateField(2, product.FieldPrice, "abc")
	payload, err := draft.Snapshot().Payload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}

	fail := true
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/vendor/product-create/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("sizes[0][name]"); got != "XL" {
			t.Errorf("expected submitted size, got %q", got)
		}
		if fail {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"title":["Duplicate title."],"sizes":[{"price":["A valid number is required."]}],"detail":"Check the form"}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":11,"title":"Linen Shirt","slug":"linen-shirt"}`)
	})

	_, err = client.CreateProduct(context.Background(), payload)
	apiErr, ok := api.AsError(err)
	if !ok {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	want := map[string][]string{
		"name":          {"Duplicate title."},
		"sizes.2.price": {"A valid number is required."},
	}
	if diff := cmp.Diff(want, apiErr.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Check the form"}, apiErr.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(apiErr.Error(), "sizes.2.price") {
		t.Fatalf("expected path in message, got %q", apiErr.Error())
	}

	fail = false
	created, err := client.CreateProduct(context.Background(), payload)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 11 || created.DetailPath() != "/detail/linen-shirt/" {
		t.Fatalf("unexpected product %+v", created)
	}
}

func TestNonJSONErrorBecomesFormLevel(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	})

	_, err := client.Categories(context.Background())
	apiErr, ok := api.AsError(err)
	if !ok {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.RequestID != "req-1" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
	if diff := cmp.Diff([]string{"upstream unavailable"}, apiErr.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}
