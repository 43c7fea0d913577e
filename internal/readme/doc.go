// Package readme orchestrates README generation: it reads the schema
// template, collects the latest commit diff, asks the completion client for a
// structured document, renders it to markdown, writes the output file, and
// publishes it on a documentation branch. It also hosts the configuration
// surface and the Cobra command for the pipeline.
package readme
