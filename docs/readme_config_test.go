package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

type readmeCommonConfiguration struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type readmeApplicationConfiguration struct {
	Common           readmeCommonConfiguration `yaml:"common"`
	Language         string                    `yaml:"language"`
	GitHubToken      string                    `yaml:"github_token"`
	GitHubRepository string                    `yaml:"github_repository"`
	OpenAIAPIKey     string                    `yaml:"openai_api_key"`
	OpenAIModel      string                    `yaml:"openai_model"`
	OpenAIBaseURL    string                    `yaml:"openai_base_url"`
	TemplatePath     string                    `yaml:"template_path"`
	OutputPath       string                    `yaml:"output_path"`
	BranchName       string                    `yaml:"branch_name"`
}

func TestReadmeConfigurationExampleParses(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	var applicationConfiguration readmeApplicationConfiguration
	require.NoError(testInstance, yaml.Unmarshal([]byte(snippetContent), &applicationConfiguration))

	require.Equal(testInstance, "info", applicationConfiguration.Common.LogLevel)
	require.Equal(testInstance, "structured", applicationConfiguration.Common.LogFormat)
	require.Equal(testInstance, "english", applicationConfiguration.Language)
	require.Equal(testInstance, "octo-org/octo-repo", applicationConfiguration.GitHubRepository)
	require.Equal(testInstance, "https://api.openai.com/v1", applicationConfiguration.OpenAIBaseURL)
	require.Equal(testInstance, "template.json", applicationConfiguration.TemplatePath)
	require.Equal(testInstance, "README.md", applicationConfiguration.OutputPath)
	require.Equal(testInstance, "doc-update", applicationConfiguration.BranchName)
}
