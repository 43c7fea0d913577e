// Package completion talks to an OpenAI-compatible chat completions endpoint
// to turn a commit diff into a structured document. Responses are constrained
// to a caller-supplied JSON schema and decoded with their key order intact.
package completion
