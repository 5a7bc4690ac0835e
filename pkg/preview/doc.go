// Package preview reads locally selected files into data URLs so forms can
// show an image before it is uploaded. An Image pairs the file handle with its
// generated preview; the handle is kept so the same bytes can be streamed into
// the submission payload later.
package preview
