// Package publish pushes a generated documentation file to a uniquely named
// branch on the origin remote, committing as the github-actions bot.
package publish
