package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/YumaMatsumura/generate-readme/internal/execshell"
)

const (
	executorMissingMessageConstant              = "git executor not configured"
	diffRetrievalErrorTemplateConstant          = "failed to get commit diff: %s"
	gitDiffSubcommandConstant                   = "diff"
	gitDiffBaseReferenceConstant                = "HEAD~1"
	gitDiffTargetReferenceConstant              = "HEAD"
	gitBranchSubcommandConstant                 = "branch"
	gitBranchListFlagConstant                   = "--list"
	gitConfigSubcommandConstant                 = "config"
	gitConfigLocalFlagConstant                  = "--local"
	gitUserNameConfigurationKeyConstant         = "user.name"
	gitUserEmailConfigurationKeyConstant        = "user.email"
	gitRemoteSubcommandConstant                 = "remote"
	gitRemoteSetURLSubcommandConstant           = "set-url"
	gitCheckoutSubcommandConstant               = "checkout"
	gitCheckoutNewBranchFlagConstant            = "-b"
	gitAddSubcommandConstant                    = "add"
	gitCommitSubcommandConstant                 = "commit"
	gitCommitMessageFlagConstant                = "-m"
	gitPushSubcommandConstant                   = "push"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrExecutorNotConfigured indicates the repository manager was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// GitExecutor exposes the subset of shell execution required by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// DiffRetrievalError reports a failure to read the diff between the two most recent commits.
type DiffRetrievalError struct {
	Cause error
}

// Error describes the diff retrieval failure.
func (retrievalError DiffRetrievalError) Error() string {
	return fmt.Sprintf(diffRetrievalErrorTemplateConstant, retrievalError.Cause)
}

// Unwrap exposes the underlying git failure.
func (retrievalError DiffRetrievalError) Unwrap() error {
	return retrievalError.Cause
}

// RepositoryManager performs git operations against a working repository.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// GetCommitDiff returns the textual diff between the checked-out commit and its
// immediate parent. The diff is passed through unchanged; truncation of
// pathologically large diffs is the caller's responsibility.
func (manager *RepositoryManager) GetCommitDiff(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath, []string{
		gitDiffSubcommandConstant,
		gitDiffBaseReferenceConstant,
		gitDiffTargetReferenceConstant,
	})
	if executionError != nil {
		return "", DiffRetrievalError{Cause: executionError}
	}
	return executionResult.StandardOutput, nil
}

// BranchExists reports whether the named branch exists in the local branch list.
func (manager *RepositoryManager) BranchExists(executionContext context.Context, repositoryPath string, branchName string) (bool, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath, []string{
		gitBranchSubcommandConstant,
		gitBranchListFlagConstant,
		branchName,
	})
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

// SetUserIdentity configures the local commit author name and email.
func (manager *RepositoryManager) SetUserIdentity(executionContext context.Context, repositoryPath string, userName string, userEmail string) error {
	if _, nameError := manager.executeGit(executionContext, repositoryPath, []string{
		gitConfigSubcommandConstant,
		gitConfigLocalFlagConstant,
		gitUserNameConfigurationKeyConstant,
		userName,
	}); nameError != nil {
		return nameError
	}

	_, emailError := manager.executeGit(executionContext, repositoryPath, []string{
		gitConfigSubcommandConstant,
		gitConfigLocalFlagConstant,
		gitUserEmailConfigurationKeyConstant,
		userEmail,
	})
	return emailError
}

// SetRemoteURL rewrites the URL associated with the named remote.
func (manager *RepositoryManager) SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	_, executionError := manager.executeGit(executionContext, repositoryPath, []string{
		gitRemoteSubcommandConstant,
		gitRemoteSetURLSubcommandConstant,
		remoteName,
		remoteURL,
	})
	return executionError
}

// CreateAndCheckoutBranch creates the named branch and switches the worktree to it.
func (manager *RepositoryManager) CreateAndCheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := manager.executeGit(executionContext, repositoryPath, []string{
		gitCheckoutSubcommandConstant,
		gitCheckoutNewBranchFlagConstant,
		branchName,
	})
	return executionError
}

// StageFile stages the named file for the next commit.
func (manager *RepositoryManager) StageFile(executionContext context.Context, repositoryPath string, filePath string) error {
	_, executionError := manager.executeGit(executionContext, repositoryPath, []string{
		gitAddSubcommandConstant,
		filePath,
	})
	return executionError
}

// CommitChanges records the staged changes with the supplied message.
func (manager *RepositoryManager) CommitChanges(executionContext context.Context, repositoryPath string, commitMessage string) error {
	_, executionError := manager.executeGit(executionContext, repositoryPath, []string{
		gitCommitSubcommandConstant,
		gitCommitMessageFlagConstant,
		commitMessage,
	})
	return executionError
}

// PushBranch pushes the named branch to the named remote.
func (manager *RepositoryManager) PushBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	_, executionError := manager.executeGit(executionContext, repositoryPath, []string{
		gitPushSubcommandConstant,
		remoteName,
		branchName,
	})
	return executionError
}

func (manager *RepositoryManager) executeGit(executionContext context.Context, repositoryPath string, arguments []string) (execshell.ExecutionResult, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
		},
	}
	return manager.executor.ExecuteGit(executionContext, commandDetails)
}
