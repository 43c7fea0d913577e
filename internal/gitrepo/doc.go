// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for reading commit diffs and branch state and
// for performing the staged commit-and-push operations used by the branch
// publisher, along with remote URL helpers for authenticated pushes.
package gitrepo
