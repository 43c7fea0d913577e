// Package utils hosts shared configuration and logging helpers for the CLI.
package utils
