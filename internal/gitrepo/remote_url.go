package gitrepo

import (
	"errors"
	"fmt"
	"strings"
)

const (
	repositorySlugSeparatorConstant        = "/"
	repositorySlugExpectedSegmentsConstant = 2
	repositorySlugInvalidMessageTemplate   = "repository slug %q must take the form owner/name"
	authenticatedRemoteURLTemplateConstant = "https://%s:%s@github.com/%s/%s"
	authenticatedRemoteUserNameConstant    = "github-actions"
	authenticatedRemoteTokenMissingMessage = "authentication token must not be empty"
)

// ErrAuthenticationTokenMissing indicates an empty token was supplied for the remote URL.
var ErrAuthenticationTokenMissing = errors.New(authenticatedRemoteTokenMissingMessage)

// RepositorySlugError reports a slug that does not follow the owner/name form.
type RepositorySlugError struct {
	Slug string
}

// Error describes the malformed slug.
func (slugError RepositorySlugError) Error() string {
	return fmt.Sprintf(repositorySlugInvalidMessageTemplate, slugError.Slug)
}

// RepositorySlug identifies a GitHub repository by owner and name.
type RepositorySlug struct {
	Owner string
	Name  string
}

// ParseRepositorySlug splits an owner/name slug into its components.
func ParseRepositorySlug(slug string) (RepositorySlug, error) {
	segments := strings.Split(strings.TrimSpace(slug), repositorySlugSeparatorConstant)
	if len(segments) != repositorySlugExpectedSegmentsConstant {
		return RepositorySlug{}, RepositorySlugError{Slug: slug}
	}
	owner := strings.TrimSpace(segments[0])
	name := strings.TrimSpace(segments[1])
	if len(owner) == 0 || len(name) == 0 {
		return RepositorySlug{}, RepositorySlugError{Slug: slug}
	}
	return RepositorySlug{Owner: owner, Name: name}, nil
}

// BuildAuthenticatedRemoteURL renders an HTTPS remote URL that embeds the
// provided token as the password for the github-actions user.
func BuildAuthenticatedRemoteURL(slug RepositorySlug, token string) (string, error) {
	if len(strings.TrimSpace(token)) == 0 {
		return "", ErrAuthenticationTokenMissing
	}
	return fmt.Sprintf(authenticatedRemoteURLTemplateConstant, authenticatedRemoteUserNameConstant, token, slug.Owner, slug.Name), nil
}
