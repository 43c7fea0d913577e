package completion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/valyala/fasttemplate"
	"go.uber.org/zap"

	"github.com/YumaMatsumura/generate-readme/internal/document"
)

const (
	loggerMissingMessageConstant           = "logger not configured"
	httpClientMissingMessageConstant       = "http client not configured"
	apiKeyMissingMessageConstant           = "api key must not be empty"
	modelMissingMessageConstant            = "model must not be empty"
	requestErrorTemplateConstant           = "completion request failed: %s"
	requestStatusErrorTemplateConstant     = "completion request failed with status %d: %s"
	malformedResponseTemplateConstant      = "completion response malformed: %s"
	emptyChoicesMessageConstant            = "response contained no choices"
	chatCompletionsPathConstant            = "/chat/completions"
	authorizationHeaderNameConstant        = "Authorization"
	authorizationHeaderTemplateConstant    = "Bearer %s"
	contentTypeHeaderNameConstant          = "Content-Type"
	contentTypeJSONValueConstant           = "application/json"
	systemRoleNameConstant                 = "system"
	userRoleNameConstant                   = "user"
	responseFormatTypeConstant             = "json_schema"
	responseSchemaNameConstant             = "subject_response"
	templatePlaceholderOpenConstant        = "{"
	templatePlaceholderCloseConstant       = "}"
	languagePlaceholderNameConstant        = "language"
	systemPromptTemplateConstant           = "You are an assistant that extracts information from code and formats it into documentation. Extract the required information from the user's input code following the provided format.Please write in {language}."
	completionRequestedLogMessageConstant  = "Requesting documentation completion"
	completionSucceededLogMessageConstant  = "Documentation completion succeeded"
	completionModelLogFieldNameConstant    = "model"
	completionEndpointLogFieldNameConstant = "endpoint"
)

var (
	// ErrLoggerNotConfigured indicates the client was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)
	// ErrHTTPClientNotConfigured indicates the client was constructed without an HTTP client.
	ErrHTTPClientNotConfigured = errors.New(httpClientMissingMessageConstant)
	// ErrAPIKeyMissing indicates an empty API key was supplied.
	ErrAPIKeyMissing = errors.New(apiKeyMissingMessageConstant)
	// ErrModelMissing indicates an empty model identifier was supplied.
	ErrModelMissing = errors.New(modelMissingMessageConstant)
)

// RequestError reports a completion request that never produced a usable response.
type RequestError struct {
	Cause      error
	StatusCode int
	Body       string
}

// Error describes the request failure.
func (requestError RequestError) Error() string {
	if requestError.Cause != nil {
		return fmt.Sprintf(requestErrorTemplateConstant, requestError.Cause)
	}
	return fmt.Sprintf(requestStatusErrorTemplateConstant, requestError.StatusCode, requestError.Body)
}

// Unwrap exposes the underlying transport failure when one exists.
func (requestError RequestError) Unwrap() error {
	return requestError.Cause
}

// MalformedResponseError reports a completion response whose content could not be decoded.
type MalformedResponseError struct {
	Cause error
}

// Error describes the decoding failure.
func (responseError MalformedResponseError) Error() string {
	return fmt.Sprintf(malformedResponseTemplateConstant, responseError.Cause)
}

// Unwrap exposes the underlying decoding failure.
func (responseError MalformedResponseError) Unwrap() error {
	return responseError.Cause
}

// HTTPDoer executes a single HTTP request.
type HTTPDoer interface {
	Do(request *http.Request) (*http.Response, error)
}

// Dependencies enumerates the collaborators required by the client.
type Dependencies struct {
	Logger     *zap.Logger
	HTTPClient HTTPDoer
}

// Options carries the endpoint and request parameters for the client.
type Options struct {
	BaseURL  string
	APIKey   string
	Model    string
	Language string
}

// Client generates schema-constrained documents from commit diffs.
type Client struct {
	logger         *zap.Logger
	httpClient     HTTPDoer
	endpoint     string
	apiKey       string
	model        string
	systemPrompt string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type jsonSchemaFormat struct {
	Name   string            `json:"name"`
	Strict bool              `json:"strict"`
	Schema gojson.RawMessage `json:"schema"`
}

type responseFormat struct {
	Type       string           `json:"type"`
	JSONSchema jsonSchemaFormat `json:"json_schema"`
}

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewClient validates the supplied collaborators and options and constructs a Client.
func NewClient(dependencies Dependencies, options Options) (*Client, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.HTTPClient == nil {
		return nil, ErrHTTPClientNotConfigured
	}
	if len(strings.TrimSpace(options.APIKey)) == 0 {
		return nil, ErrAPIKeyMissing
	}
	if len(strings.TrimSpace(options.Model)) == 0 {
		return nil, ErrModelMissing
	}

	promptTemplate := fasttemplate.New(systemPromptTemplateConstant, templatePlaceholderOpenConstant, templatePlaceholderCloseConstant)
	systemPrompt := promptTemplate.ExecuteString(map[string]any{
		languagePlaceholderNameConstant: options.Language,
	})

	return &Client{
		logger:       dependencies.Logger,
		httpClient:   dependencies.HTTPClient,
		endpoint:     strings.TrimRight(options.BaseURL, "/") + chatCompletionsPathConstant,
		apiKey:       options.APIKey,
		model:        options.Model,
		systemPrompt: systemPrompt,
	}, nil
}

// GenerateDocument asks the completion endpoint to describe the supplied
// commit diff as a document constrained to the schema template. The decoded
// document preserves the key order of the response payload.
func (client *Client) GenerateDocument(executionContext context.Context, schemaTemplate gojson.RawMessage, commitDiff string) (document.Object, error) {
	requestPayload := chatCompletionRequest{
		Model: client.model,
		Messages: []chatMessage{
			{Role: systemRoleNameConstant, Content: client.systemPrompt},
			{Role: userRoleNameConstant, Content: commitDiff},
		},
		ResponseFormat: responseFormat{
			Type: responseFormatTypeConstant,
			JSONSchema: jsonSchemaFormat{
				Name:   responseSchemaNameConstant,
				Strict: true,
				Schema: schemaTemplate,
			},
		},
	}

	encodedPayload, encodingError := gojson.Marshal(requestPayload)
	if encodingError != nil {
		return nil, RequestError{Cause: encodingError}
	}

	httpRequest, requestError := http.NewRequestWithContext(executionContext, http.MethodPost, client.endpoint, bytes.NewReader(encodedPayload))
	if requestError != nil {
		return nil, RequestError{Cause: requestError}
	}
	httpRequest.Header.Set(authorizationHeaderNameConstant, fmt.Sprintf(authorizationHeaderTemplateConstant, client.apiKey))
	httpRequest.Header.Set(contentTypeHeaderNameConstant, contentTypeJSONValueConstant)

	client.logger.Info(completionRequestedLogMessageConstant,
		zap.String(completionModelLogFieldNameConstant, client.model),
		zap.String(completionEndpointLogFieldNameConstant, client.endpoint),
	)

	httpResponse, transportError := client.httpClient.Do(httpRequest)
	if transportError != nil {
		return nil, RequestError{Cause: transportError}
	}
	defer func() {
		_ = httpResponse.Body.Close()
	}()

	responseBytes, readError := io.ReadAll(httpResponse.Body)
	if readError != nil {
		return nil, RequestError{Cause: readError}
	}
	if httpResponse.StatusCode < http.StatusOK || httpResponse.StatusCode >= http.StatusMultipleChoices {
		return nil, RequestError{StatusCode: httpResponse.StatusCode, Body: strings.TrimSpace(string(responseBytes))}
	}

	var decodedResponse chatCompletionResponse
	if unmarshalError := gojson.Unmarshal(responseBytes, &decodedResponse); unmarshalError != nil {
		return nil, MalformedResponseError{Cause: unmarshalError}
	}
	if len(decodedResponse.Choices) == 0 {
		return nil, MalformedResponseError{Cause: errors.New(emptyChoicesMessageConstant)}
	}

	generatedDocument, decodeError := document.Decode([]byte(decodedResponse.Choices[0].Message.Content))
	if decodeError != nil {
		return nil, MalformedResponseError{Cause: decodeError}
	}

	client.logger.Info(completionSucceededLogMessageConstant,
		zap.String(completionModelLogFieldNameConstant, client.model),
	)
	return generatedDocument, nil
}
