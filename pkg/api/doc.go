// Package api is a small client for the marketplace REST API: categories,
// customer wishlists, registration and vendor product creation. Non-2xx
// responses are returned as *Error with the API's validation messages mapped
// onto the dotted field paths the forms use.
package api
