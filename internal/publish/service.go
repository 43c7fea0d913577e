package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fasttemplate"
	"go.uber.org/zap"

	"github.com/YumaMatsumura/generate-readme/internal/gitrepo"
)

const (
	loggerMissingMessageConstant            = "logger not configured"
	repositoryMissingMessageConstant        = "git repository not configured"
	baseBranchMissingMessageConstant        = "base branch name must not be empty"
	publishErrorTemplateConstant            = "failed to publish documentation branch: %s"
	uniqueBranchNameTemplateConstant        = "%s-%d"
	botUserNameConstant                     = "github-actions[bot]"
	botUserEmailConstant                    = "github-actions[bot]@users.noreply.github.com"
	originRemoteNameConstant                = "origin"
	commitMessageTemplateConstant           = "Update {file_path} with latest documentation"
	commitMessagePlaceholderOpenConstant    = "{"
	commitMessagePlaceholderCloseConstant   = "}"
	filePathPlaceholderNameConstant         = "file_path"
	branchSelectedLogMessageConstant        = "Selected documentation branch"
	branchPublishedLogMessageConstant       = "Published documentation branch"
	branchNameLogFieldNameConstant          = "branch_name"
	publishedFilePathLogFieldNameConstant   = "file_path"
	publishedRepositoryLogFieldNameConstant = "repository"
)

var (
	// ErrLoggerNotConfigured indicates the service was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)
	// ErrRepositoryNotConfigured indicates the service was constructed without a git repository.
	ErrRepositoryNotConfigured = errors.New(repositoryMissingMessageConstant)
	// ErrBaseBranchNameMissing indicates an empty base branch name was supplied.
	ErrBaseBranchNameMissing = errors.New(baseBranchMissingMessageConstant)
)

// PublishError reports a failure at any stage of the publication sequence.
type PublishError struct {
	Cause error
}

// Error describes the publication failure.
func (publicationError PublishError) Error() string {
	return fmt.Sprintf(publishErrorTemplateConstant, publicationError.Cause)
}

// Unwrap exposes the underlying git failure.
func (publicationError PublishError) Unwrap() error {
	return publicationError.Cause
}

// GitRepository enumerates the git operations the publisher depends on.
type GitRepository interface {
	BranchExists(executionContext context.Context, repositoryPath string, branchName string) (bool, error)
	SetUserIdentity(executionContext context.Context, repositoryPath string, userName string, userEmail string) error
	SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	CreateAndCheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
	StageFile(executionContext context.Context, repositoryPath string, filePath string) error
	CommitChanges(executionContext context.Context, repositoryPath string, commitMessage string) error
	PushBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
}

// Dependencies enumerates the collaborators required by the publisher.
type Dependencies struct {
	Logger     *zap.Logger
	Repository GitRepository
}

// Options carries the inputs for a single publication.
type Options struct {
	RepositoryPath      string
	BaseBranchName      string
	FilePath            string
	RepositorySlug      string
	AuthenticationToken string
}

// Result reports the branch the documentation was pushed to.
type Result struct {
	BranchName string
}

// Service publishes a documentation file on a fresh branch.
type Service struct {
	logger     *zap.Logger
	repository GitRepository
}

// NewService validates the supplied collaborators and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.Repository == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return &Service{logger: dependencies.Logger, repository: dependencies.Repository}, nil
}

// Publish commits the documentation file as the github-actions bot on a branch
// whose name is derived from the base name, suffixing a counter until an unused
// name is found, and pushes that branch to origin. Work completed before a
// failure is not rolled back.
func (service *Service) Publish(executionContext context.Context, options Options) (Result, error) {
	if len(strings.TrimSpace(options.BaseBranchName)) == 0 {
		return Result{}, PublishError{Cause: ErrBaseBranchNameMissing}
	}

	branchName, selectionError := service.selectUniqueBranchName(executionContext, options.RepositoryPath, options.BaseBranchName)
	if selectionError != nil {
		return Result{}, PublishError{Cause: selectionError}
	}
	service.logger.Info(branchSelectedLogMessageConstant, zap.String(branchNameLogFieldNameConstant, branchName))

	if identityError := service.repository.SetUserIdentity(executionContext, options.RepositoryPath, botUserNameConstant, botUserEmailConstant); identityError != nil {
		return Result{}, PublishError{Cause: identityError}
	}

	repositorySlug, slugError := gitrepo.ParseRepositorySlug(options.RepositorySlug)
	if slugError != nil {
		return Result{}, PublishError{Cause: slugError}
	}
	remoteURL, remoteURLError := gitrepo.BuildAuthenticatedRemoteURL(repositorySlug, options.AuthenticationToken)
	if remoteURLError != nil {
		return Result{}, PublishError{Cause: remoteURLError}
	}
	if remoteError := service.repository.SetRemoteURL(executionContext, options.RepositoryPath, originRemoteNameConstant, remoteURL); remoteError != nil {
		return Result{}, PublishError{Cause: remoteError}
	}

	if checkoutError := service.repository.CreateAndCheckoutBranch(executionContext, options.RepositoryPath, branchName); checkoutError != nil {
		return Result{}, PublishError{Cause: checkoutError}
	}
	if stagingError := service.repository.StageFile(executionContext, options.RepositoryPath, options.FilePath); stagingError != nil {
		return Result{}, PublishError{Cause: stagingError}
	}

	commitMessage := fasttemplate.ExecuteStringStd(commitMessageTemplateConstant, commitMessagePlaceholderOpenConstant, commitMessagePlaceholderCloseConstant, map[string]any{
		filePathPlaceholderNameConstant: options.FilePath,
	})
	if commitError := service.repository.CommitChanges(executionContext, options.RepositoryPath, commitMessage); commitError != nil {
		return Result{}, PublishError{Cause: commitError}
	}

	if pushError := service.repository.PushBranch(executionContext, options.RepositoryPath, originRemoteNameConstant, branchName); pushError != nil {
		return Result{}, PublishError{Cause: pushError}
	}

	service.logger.Info(branchPublishedLogMessageConstant,
		zap.String(branchNameLogFieldNameConstant, branchName),
		zap.String(publishedFilePathLogFieldNameConstant, options.FilePath),
		zap.String(publishedRepositoryLogFieldNameConstant, options.RepositorySlug),
	)
	return Result{BranchName: branchName}, nil
}

func (service *Service) selectUniqueBranchName(executionContext context.Context, repositoryPath string, baseBranchName string) (string, error) {
	candidateName := baseBranchName
	suffixCounter := 1
	for {
		branchExists, existenceError := service.repository.BranchExists(executionContext, repositoryPath, candidateName)
		if existenceError != nil {
			return "", existenceError
		}
		if !branchExists {
			return candidateName, nil
		}
		candidateName = fmt.Sprintf(uniqueBranchNameTemplateConstant, baseBranchName, suffixCounter)
		suffixCounter++
	}
}
