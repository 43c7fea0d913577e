// Package renderer flattens a structured document into markdown text.
//
// The title member becomes the sole H1 heading, array members become pipe
// tables, and remaining scalar members become H2 sections. Members are
// rendered in document order.
package renderer
