// Package formdef describes repeated form groups as data: a group name, a
// label and the text fields each row carries. Definitions come from the
// built-in product tabs, from JSON/YAML files, or from array-of-object
// properties in an OpenAPI request body, and each one can open a
// group.Store[group.Fields] ready for a form to edit.
package formdef
