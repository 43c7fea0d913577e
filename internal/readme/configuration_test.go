package readme_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YumaMatsumura/generate-readme/internal/readme"
)

func TestDefaultConfigurationValues(testInstance *testing.T) {
	defaultValues := readme.DefaultConfigurationValues()
	require.Equal(testInstance, "english", defaultValues["language"])
	require.Equal(testInstance, "https://api.openai.com/v1", defaultValues["openai_base_url"])
	require.Equal(testInstance, "README.md", defaultValues["output_path"])
	require.Equal(testInstance, "doc-update", defaultValues["branch_name"])
}

func TestEnvironmentBindingsCoverOriginalContract(testInstance *testing.T) {
	boundEnvironmentVariables := map[string]string{}
	for _, binding := range readme.EnvironmentBindings() {
		require.Len(testInstance, binding.EnvironmentVariables, 1)
		boundEnvironmentVariables[binding.ConfigurationKey] = binding.EnvironmentVariables[0]
	}

	require.Equal(testInstance, map[string]string{
		"language":          "LANGUAGE",
		"github_token":      "GITHUB_TOKEN",
		"github_repository": "GITHUB_REPOSITORY",
		"openai_api_key":    "OPENAI_API_KEY",
		"openai_model":      "OPENAI_MODEL",
		"openai_base_url":   "OPENAI_BASE_URL",
		"template_path":     "TEMPLATE_PATH",
		"output_path":       "OUTPUT_PATH",
		"branch_name":       "BRANCH_NAME",
	}, boundEnvironmentVariables)
}

func TestConfigurationValidate(testInstance *testing.T) {
	testCases := []struct {
		name       string
		mutate     func(*readme.Configuration)
		missingKey string
	}{
		{name: "complete", mutate: func(*readme.Configuration) {}},
		{name: "missing_github_token", mutate: func(configuration *readme.Configuration) { configuration.GitHubToken = "" }, missingKey: "github_token"},
		{name: "missing_repository", mutate: func(configuration *readme.Configuration) { configuration.GitHubRepository = " " }, missingKey: "github_repository"},
		{name: "missing_api_key", mutate: func(configuration *readme.Configuration) { configuration.OpenAIAPIKey = "" }, missingKey: "openai_api_key"},
		{name: "missing_model", mutate: func(configuration *readme.Configuration) { configuration.OpenAIModel = "" }, missingKey: "openai_model"},
		{name: "missing_template_path", mutate: func(configuration *readme.Configuration) { configuration.TemplatePath = "" }, missingKey: "template_path"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			configuration := completeConfiguration()
			testCase.mutate(&configuration)

			validationError := configuration.Validate()
			if len(testCase.missingKey) == 0 {
				require.NoError(subtestInstance, validationError)
				return
			}
			require.ErrorIs(subtestInstance, validationError, readme.ErrConfigurationIncomplete)
			require.ErrorContains(subtestInstance, validationError, testCase.missingKey)
		})
	}
}
