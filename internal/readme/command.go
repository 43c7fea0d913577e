package readme

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/YumaMatsumura/generate-readme/internal/completion"
	"github.com/YumaMatsumura/generate-readme/internal/execshell"
	"github.com/YumaMatsumura/generate-readme/internal/gitrepo"
	"github.com/YumaMatsumura/generate-readme/internal/publish"
	"github.com/YumaMatsumura/generate-readme/internal/renderer"
)

const (
	commandUseConstant                    = "generate"
	commandShortDescriptionConstant       = "Generate a README from the latest commit diff and push it on a new branch"
	commandLongDescriptionConstant        = "generate reads the diff between the two most recent commits, asks an OpenAI-compatible model to describe it using a JSON schema template, renders the structured response as markdown, and pushes the result to a uniquely named branch."
	commandExecutionErrorTemplateConstant = "readme generation failed: %w"
	unexpectedArgumentsMessageConstant    = "generate does not accept positional arguments"
	skipMessageTemplateConstant           = "%s already exists. Skipping generation.\n"
	flagTemplatePathNameConstant          = "template"
	flagTemplatePathDescriptionConstant   = "Path to the JSON schema template"
	flagOutputPathNameConstant            = "output"
	flagOutputPathDescriptionConstant     = "Path the generated markdown is written to"
	flagBranchNameConstant                = "branch"
	flagBranchDescriptionConstant         = "Base name for the documentation branch"
	flagLanguageNameConstant              = "language"
	flagLanguageDescriptionConstant       = "Language the documentation is written in"
	completionRequestTimeoutConstant      = 90 * time.Second
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the resolved pipeline configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the Cobra command for README generation.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	GitExecutor           gitrepo.GitExecutor
	HTTPClient            completion.HTTPDoer
	FileSystem            FileSystem
	WorkingDirectory      string
}

// Build constructs the generate command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagTemplatePathNameConstant, "", flagTemplatePathDescriptionConstant)
	command.Flags().String(flagOutputPathNameConstant, "", flagOutputPathDescriptionConstant)
	command.Flags().String(flagBranchNameConstant, "", flagBranchDescriptionConstant)
	command.Flags().String(flagLanguageNameConstant, "", flagLanguageDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	configuration := builder.resolveConfiguration(command)
	if validationError := configuration.Validate(); validationError != nil {
		return validationError
	}

	logger := builder.resolveLogger()
	service, serviceError := builder.buildService(logger, configuration)
	if serviceError != nil {
		return serviceError
	}

	generationResult, generationError := service.Generate(command.Context(), Options{
		RepositoryPath:      builder.WorkingDirectory,
		TemplatePath:        configuration.TemplatePath,
		OutputPath:          configuration.OutputPath,
		BranchName:          configuration.BranchName,
		RepositorySlug:      configuration.GitHubRepository,
		AuthenticationToken: configuration.GitHubToken,
	})
	if generationError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, generationError)
	}

	if generationResult.Skipped {
		fmt.Fprintf(command.OutOrStdout(), skipMessageTemplateConstant, generationResult.OutputPath)
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) Configuration {
	var configuration Configuration
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	flagOverrides := []struct {
		flagName string
		target   *string
	}{
		{flagName: flagTemplatePathNameConstant, target: &configuration.TemplatePath},
		{flagName: flagOutputPathNameConstant, target: &configuration.OutputPath},
		{flagName: flagBranchNameConstant, target: &configuration.BranchName},
		{flagName: flagLanguageNameConstant, target: &configuration.Language},
	}
	for _, flagOverride := range flagOverrides {
		flagValue, _ := command.Flags().GetString(flagOverride.flagName)
		trimmedFlagValue := strings.TrimSpace(flagValue)
		if len(trimmedFlagValue) > 0 {
			*flagOverride.target = trimmedFlagValue
		}
	}

	return configuration
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger) (gitrepo.GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner)
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveHTTPClient() completion.HTTPDoer {
	if builder.HTTPClient != nil {
		return builder.HTTPClient
	}
	return &http.Client{Timeout: completionRequestTimeoutConstant}
}

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return NewOSFileSystem()
}

func (builder *CommandBuilder) buildService(logger *zap.Logger, configuration Configuration) (*Service, error) {
	gitExecutor, executorError := builder.resolveGitExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}

	repositoryManager, repositoryError := gitrepo.NewRepositoryManager(gitExecutor)
	if repositoryError != nil {
		return nil, repositoryError
	}

	completionClient, completionError := completion.NewClient(
		completion.Dependencies{Logger: logger, HTTPClient: builder.resolveHTTPClient()},
		completion.Options{
			BaseURL:  configuration.OpenAIBaseURL,
			APIKey:   configuration.OpenAIAPIKey,
			Model:    configuration.OpenAIModel,
			Language: configuration.Language,
		},
	)
	if completionError != nil {
		return nil, completionError
	}

	publisher, publisherError := publish.NewService(publish.Dependencies{Logger: logger, Repository: repositoryManager})
	if publisherError != nil {
		return nil, publisherError
	}

	return NewService(Dependencies{
		Logger:           logger,
		FileSystem:       builder.resolveFileSystem(),
		DiffSource:       repositoryManager,
		CompletionClient: completionClient,
		Renderer:         renderer.NewRenderer(),
		Publisher:        publisher,
	})
}
