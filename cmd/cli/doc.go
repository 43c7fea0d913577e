// Package cli constructs the generate-readme command-line interface, wiring
// the Cobra command hierarchy, configuration loader, and structured logging
// primitives. Failures bubbling out of any command are reported as a single
// Error: line on standard output.
package cli
