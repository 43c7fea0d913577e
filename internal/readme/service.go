package readme

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	gojson "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/YumaMatsumura/generate-readme/internal/document"
	"github.com/YumaMatsumura/generate-readme/internal/publish"
)

const (
	serviceLoggerMissingMessageConstant     = "logger not configured"
	fileSystemMissingMessageConstant        = "file system not configured"
	diffSourceMissingMessageConstant        = "diff source not configured"
	completionClientMissingMessageConstant  = "completion client not configured"
	rendererMissingMessageConstant          = "renderer not configured"
	publisherMissingMessageConstant         = "publisher not configured"
	outputExistenceErrorTemplateConstant    = "failed to inspect output path %s: %w"
	templateReadErrorTemplateConstant       = "failed to read template %s: %w"
	outputWriteErrorTemplateConstant        = "failed to write %s: %w"
	generationSkippedLogMessageConstant     = "Output already exists, skipping generation"
	generationCompletedLogMessageConstant   = "Documentation generated and published"
	generationOutputPathLogFieldConstant    = "output_path"
	generationBranchNameLogFieldConstant    = "branch_name"
	generationTemplatePathLogFieldConstant  = "template_path"
	outputFilePermissionsConstant           = fs.FileMode(0o644)
)

var (
	// ErrFileSystemNotConfigured indicates the service was constructed without a file system.
	ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)
	// ErrDiffSourceNotConfigured indicates the service was constructed without a diff source.
	ErrDiffSourceNotConfigured = errors.New(diffSourceMissingMessageConstant)
	// ErrCompletionClientNotConfigured indicates the service was constructed without a completion client.
	ErrCompletionClientNotConfigured = errors.New(completionClientMissingMessageConstant)
	// ErrRendererNotConfigured indicates the service was constructed without a renderer.
	ErrRendererNotConfigured = errors.New(rendererMissingMessageConstant)
	// ErrPublisherNotConfigured indicates the service was constructed without a publisher.
	ErrPublisherNotConfigured = errors.New(publisherMissingMessageConstant)
	// ErrServiceLoggerNotConfigured indicates the service was constructed without a logger.
	ErrServiceLoggerNotConfigured = errors.New(serviceLoggerMissingMessageConstant)
)

// DiffSource supplies the diff between the two most recent commits.
type DiffSource interface {
	GetCommitDiff(executionContext context.Context, repositoryPath string) (string, error)
}

// CompletionClient turns a commit diff into a structured document.
type CompletionClient interface {
	GenerateDocument(executionContext context.Context, schemaTemplate gojson.RawMessage, commitDiff string) (document.Object, error)
}

// DocumentRenderer flattens a structured document into markdown.
type DocumentRenderer interface {
	Render(documentObject document.Object) string
}

// BranchPublisher pushes the generated file to a documentation branch.
type BranchPublisher interface {
	Publish(executionContext context.Context, options publish.Options) (publish.Result, error)
}

// Dependencies enumerates the collaborators required by the generation service.
type Dependencies struct {
	Logger           *zap.Logger
	FileSystem       FileSystem
	DiffSource       DiffSource
	CompletionClient CompletionClient
	Renderer         DocumentRenderer
	Publisher        BranchPublisher
}

// Options carries the inputs for a single generation run.
type Options struct {
	RepositoryPath      string
	TemplatePath        string
	OutputPath          string
	BranchName          string
	RepositorySlug      string
	AuthenticationToken string
}

// Result reports what a generation run produced.
type Result struct {
	Skipped    bool
	OutputPath string
	BranchName string
}

// Service runs the full generation pipeline.
type Service struct {
	logger           *zap.Logger
	fileSystem       FileSystem
	diffSource       DiffSource
	completionClient CompletionClient
	renderer         DocumentRenderer
	publisher        BranchPublisher
}

// NewService validates the supplied collaborators and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Logger == nil {
		return nil, ErrServiceLoggerNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if dependencies.DiffSource == nil {
		return nil, ErrDiffSourceNotConfigured
	}
	if dependencies.CompletionClient == nil {
		return nil, ErrCompletionClientNotConfigured
	}
	if dependencies.Renderer == nil {
		return nil, ErrRendererNotConfigured
	}
	if dependencies.Publisher == nil {
		return nil, ErrPublisherNotConfigured
	}

	return &Service{
		logger:           dependencies.Logger,
		fileSystem:       dependencies.FileSystem,
		diffSource:       dependencies.DiffSource,
		completionClient: dependencies.CompletionClient,
		renderer:         dependencies.Renderer,
		publisher:        dependencies.Publisher,
	}, nil
}

// Generate runs the pipeline end to end. When the output file already exists
// the run is reported as skipped and nothing else is touched. Any stage
// failure aborts the remainder of the pipeline; completed git work is not
// rolled back.
func (service *Service) Generate(executionContext context.Context, options Options) (Result, error) {
	outputExists, existenceError := service.fileSystem.FileExists(options.OutputPath)
	if existenceError != nil {
		return Result{}, fmt.Errorf(outputExistenceErrorTemplateConstant, options.OutputPath, existenceError)
	}
	if outputExists {
		service.logger.Info(generationSkippedLogMessageConstant,
			zap.String(generationOutputPathLogFieldConstant, options.OutputPath),
		)
		return Result{Skipped: true, OutputPath: options.OutputPath}, nil
	}

	schemaTemplate, templateError := service.fileSystem.ReadFile(options.TemplatePath)
	if templateError != nil {
		return Result{}, fmt.Errorf(templateReadErrorTemplateConstant, options.TemplatePath, templateError)
	}

	commitDiff, diffError := service.diffSource.GetCommitDiff(executionContext, options.RepositoryPath)
	if diffError != nil {
		return Result{}, diffError
	}

	generatedDocument, completionError := service.completionClient.GenerateDocument(executionContext, schemaTemplate, commitDiff)
	if completionError != nil {
		return Result{}, completionError
	}

	renderedMarkdown := service.renderer.Render(generatedDocument)
	if writeError := service.fileSystem.WriteFile(options.OutputPath, []byte(renderedMarkdown), outputFilePermissionsConstant); writeError != nil {
		return Result{}, fmt.Errorf(outputWriteErrorTemplateConstant, options.OutputPath, writeError)
	}

	publishResult, publishError := service.publisher.Publish(executionContext, publish.Options{
		RepositoryPath:      options.RepositoryPath,
		BaseBranchName:      options.BranchName,
		FilePath:            options.OutputPath,
		RepositorySlug:      options.RepositorySlug,
		AuthenticationToken: options.AuthenticationToken,
	})
	if publishError != nil {
		return Result{}, publishError
	}

	service.logger.Info(generationCompletedLogMessageConstant,
		zap.String(generationOutputPathLogFieldConstant, options.OutputPath),
		zap.String(generationBranchNameLogFieldConstant, publishResult.BranchName),
		zap.String(generationTemplatePathLogFieldConstant, options.TemplatePath),
	)
	return Result{OutputPath: options.OutputPath, BranchName: publishResult.BranchName}, nil
}
