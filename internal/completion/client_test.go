package completion_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/YumaMatsumura/generate-readme/internal/completion"
	"github.com/YumaMatsumura/generate-readme/internal/document"
)

const (
	testAPIKeyConstant   = "sk-test"
	testModelConstant    = "gpt-4o-mini"
	testLanguageConstant = "japanese"
	testDiffConstant     = "diff --git a/main.go b/main.go"
)

var testSchemaTemplate = gojson.RawMessage(`{"type":"object","properties":{"title":{"type":"string"}}}`)

func newTestClient(testInstance *testing.T, baseURL string) *completion.Client {
	testInstance.Helper()
	client, constructionError := completion.NewClient(
		completion.Dependencies{Logger: zap.NewNop(), HTTPClient: http.DefaultClient},
		completion.Options{BaseURL: baseURL, APIKey: testAPIKeyConstant, Model: testModelConstant, Language: testLanguageConstant},
	)
	require.NoError(testInstance, constructionError)
	return client
}

func TestNewClientValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		dependencies  completion.Dependencies
		options       completion.Options
		expectedError error
	}{
		{
			name:          "missing_logger",
			dependencies:  completion.Dependencies{HTTPClient: http.DefaultClient},
			options:       completion.Options{APIKey: testAPIKeyConstant, Model: testModelConstant},
			expectedError: completion.ErrLoggerNotConfigured,
		},
		{
			name:          "missing_http_client",
			dependencies:  completion.Dependencies{Logger: zap.NewNop()},
			options:       completion.Options{APIKey: testAPIKeyConstant, Model: testModelConstant},
			expectedError: completion.ErrHTTPClientNotConfigured,
		},
		{
			name:          "missing_api_key",
			dependencies:  completion.Dependencies{Logger: zap.NewNop(), HTTPClient: http.DefaultClient},
			options:       completion.Options{Model: testModelConstant},
			expectedError: completion.ErrAPIKeyMissing,
		},
		{
			name:          "missing_model",
			dependencies:  completion.Dependencies{Logger: zap.NewNop(), HTTPClient: http.DefaultClient},
			options:       completion.Options{APIKey: testAPIKeyConstant},
			expectedError: completion.ErrModelMissing,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			client, constructionError := completion.NewClient(testCase.dependencies, testCase.options)
			require.ErrorIs(subtestInstance, constructionError, testCase.expectedError)
			require.Nil(subtestInstance, client)
		})
	}
}

func TestGenerateDocumentSendsStructuredRequest(testInstance *testing.T) {
	var capturedRequestBody []byte
	var capturedAuthorization string
	var capturedPath string

	testServer := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		capturedPath = request.URL.Path
		capturedAuthorization = request.Header.Get("Authorization")
		capturedRequestBody, _ = io.ReadAll(request.Body)
		responseWriter.Header().Set("Content-Type", "application/json")
		_, _ = responseWriter.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"title\":\"Demo\",\"Overview\":\"A sample project.\"}"}}]}`))
	}))
	defer testServer.Close()

	client := newTestClient(testInstance, testServer.URL)
	generatedDocument, generationError := client.GenerateDocument(context.Background(), testSchemaTemplate, testDiffConstant)
	require.NoError(testInstance, generationError)

	require.Equal(testInstance, "/chat/completions", capturedPath)
	require.Equal(testInstance, "Bearer "+testAPIKeyConstant, capturedAuthorization)

	var capturedPayload map[string]any
	require.NoError(testInstance, gojson.Unmarshal(capturedRequestBody, &capturedPayload))
	require.Equal(testInstance, testModelConstant, capturedPayload["model"])

	messages, messagesPresent := capturedPayload["messages"].([]any)
	require.True(testInstance, messagesPresent)
	require.Len(testInstance, messages, 2)
	systemMessage := messages[0].(map[string]any)
	require.Equal(testInstance, "system", systemMessage["role"])
	require.Contains(testInstance, systemMessage["content"], "Please write in "+testLanguageConstant)
	userMessage := messages[1].(map[string]any)
	require.Equal(testInstance, "user", userMessage["role"])
	require.Equal(testInstance, testDiffConstant, userMessage["content"])

	formatSection := capturedPayload["response_format"].(map[string]any)
	require.Equal(testInstance, "json_schema", formatSection["type"])
	schemaSection := formatSection["json_schema"].(map[string]any)
	require.Equal(testInstance, "subject_response", schemaSection["name"])
	require.Equal(testInstance, true, schemaSection["strict"])

	require.Equal(testInstance, []document.Member{
		{Key: "title", Value: document.Value{Kind: document.KindString, Scalar: "Demo"}},
		{Key: "Overview", Value: document.Value{Kind: document.KindString, Scalar: "A sample project."}},
	}, []document.Member(generatedDocument))
}

func TestGenerateDocumentFailures(testInstance *testing.T) {
	testCases := []struct {
		name            string
		handler         http.HandlerFunc
		expectRequest   bool
		expectMalformed bool
	}{
		{
			name: "non_success_status",
			handler: func(responseWriter http.ResponseWriter, _ *http.Request) {
				responseWriter.WriteHeader(http.StatusUnauthorized)
				_, _ = responseWriter.Write([]byte(`{"error":{"message":"invalid api key"}}`))
			},
			expectRequest: true,
		},
		{
			name: "empty_choices",
			handler: func(responseWriter http.ResponseWriter, _ *http.Request) {
				_, _ = responseWriter.Write([]byte(`{"choices":[]}`))
			},
			expectMalformed: true,
		},
		{
			name: "unparseable_content",
			handler: func(responseWriter http.ResponseWriter, _ *http.Request) {
				_, _ = responseWriter.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"not json"}}]}`))
			},
			expectMalformed: true,
		},
		{
			name: "array_content",
			handler: func(responseWriter http.ResponseWriter, _ *http.Request) {
				_, _ = responseWriter.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"[1,2]"}}]}`))
			},
			expectMalformed: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			testServer := httptest.NewServer(testCase.handler)
			defer testServer.Close()

			client := newTestClient(subtestInstance, testServer.URL)
			generatedDocument, generationError := client.GenerateDocument(context.Background(), testSchemaTemplate, testDiffConstant)
			require.Nil(subtestInstance, generatedDocument)
			if testCase.expectRequest {
				var requestFailure completion.RequestError
				require.ErrorAs(subtestInstance, generationError, &requestFailure)
				require.Equal(subtestInstance, http.StatusUnauthorized, requestFailure.StatusCode)
				require.Contains(subtestInstance, requestFailure.Error(), "completion request failed with status 401")
			}
			if testCase.expectMalformed {
				var malformedFailure completion.MalformedResponseError
				require.ErrorAs(subtestInstance, generationError, &malformedFailure)
			}
		})
	}
}

func TestGenerateDocumentTransportFailure(testInstance *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	serverURL := testServer.URL
	testServer.Close()

	client := newTestClient(testInstance, serverURL)
	generatedDocument, generationError := client.GenerateDocument(context.Background(), testSchemaTemplate, testDiffConstant)
	require.Nil(testInstance, generatedDocument)

	var requestFailure completion.RequestError
	require.ErrorAs(testInstance, generationError, &requestFailure)
	require.NotNil(testInstance, requestFailure.Cause)
}
