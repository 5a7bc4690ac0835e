// Package view renders the storefront pages that are pure presentation over
// API data: the customer wishlist and the pre-submission product summary.
// Templates are pongo2 files embedded under templates/.
package view
