// Package document models the structured JSON value returned by the completion
// backend. Decoding preserves object key order, which the markdown renderer
// depends on: sections are emitted in the order the backend produced them.
package document
