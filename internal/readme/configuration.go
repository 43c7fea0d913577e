package readme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/YumaMatsumura/generate-readme/internal/utils"
)

const (
	languageConfigurationKeyConstant         = "language"
	githubTokenConfigurationKeyConstant      = "github_token"
	githubRepositoryConfigurationKeyConstant = "github_repository"
	openAIAPIKeyConfigurationKeyConstant     = "openai_api_key"
	openAIModelConfigurationKeyConstant      = "openai_model"
	openAIBaseURLConfigurationKeyConstant    = "openai_base_url"
	templatePathConfigurationKeyConstant     = "template_path"
	outputPathConfigurationKeyConstant       = "output_path"
	branchNameConfigurationKeyConstant       = "branch_name"

	languageEnvironmentNameConstant         = "LANGUAGE"
	githubTokenEnvironmentNameConstant      = "GITHUB_TOKEN"
	githubRepositoryEnvironmentNameConstant = "GITHUB_REPOSITORY"
	openAIAPIKeyEnvironmentNameConstant     = "OPENAI_API_KEY"
	openAIModelEnvironmentNameConstant      = "OPENAI_MODEL"
	openAIBaseURLEnvironmentNameConstant    = "OPENAI_BASE_URL"
	templatePathEnvironmentNameConstant     = "TEMPLATE_PATH"
	outputPathEnvironmentNameConstant       = "OUTPUT_PATH"
	branchNameEnvironmentNameConstant       = "BRANCH_NAME"

	defaultLanguageConstant      = "english"
	defaultOpenAIBaseURLConstant = "https://api.openai.com/v1"
	defaultOutputPathConstant    = "README.md"
	defaultBranchNameConstant    = "doc-update"

	missingConfigurationTemplateConstant = "configuration value %s is required"
)

// ErrConfigurationIncomplete indicates one or more required configuration values are missing.
var ErrConfigurationIncomplete = errors.New("configuration incomplete")

// Configuration carries the settings the generation pipeline needs.
type Configuration struct {
	Language         string `mapstructure:"language"`
	GitHubToken      string `mapstructure:"github_token"`
	GitHubRepository string `mapstructure:"github_repository"`
	OpenAIAPIKey     string `mapstructure:"openai_api_key"`
	OpenAIModel      string `mapstructure:"openai_model"`
	OpenAIBaseURL    string `mapstructure:"openai_base_url"`
	TemplatePath     string `mapstructure:"template_path"`
	OutputPath       string `mapstructure:"output_path"`
	BranchName       string `mapstructure:"branch_name"`
}

// DefaultConfigurationValues returns the defaults applied before file and environment overrides.
func DefaultConfigurationValues() map[string]any {
	return map[string]any{
		languageConfigurationKeyConstant:      defaultLanguageConstant,
		openAIBaseURLConfigurationKeyConstant: defaultOpenAIBaseURLConstant,
		outputPathConfigurationKeyConstant:    defaultOutputPathConstant,
		branchNameConfigurationKeyConstant:    defaultBranchNameConstant,
	}
}

// EnvironmentBindings lists the bare environment variable names consulted for each configuration key.
func EnvironmentBindings() []utils.EnvironmentBinding {
	return []utils.EnvironmentBinding{
		{ConfigurationKey: languageConfigurationKeyConstant, EnvironmentVariables: []string{languageEnvironmentNameConstant}},
		{ConfigurationKey: githubTokenConfigurationKeyConstant, EnvironmentVariables: []string{githubTokenEnvironmentNameConstant}},
		{ConfigurationKey: githubRepositoryConfigurationKeyConstant, EnvironmentVariables: []string{githubRepositoryEnvironmentNameConstant}},
		{ConfigurationKey: openAIAPIKeyConfigurationKeyConstant, EnvironmentVariables: []string{openAIAPIKeyEnvironmentNameConstant}},
		{ConfigurationKey: openAIModelConfigurationKeyConstant, EnvironmentVariables: []string{openAIModelEnvironmentNameConstant}},
		{ConfigurationKey: openAIBaseURLConfigurationKeyConstant, EnvironmentVariables: []string{openAIBaseURLEnvironmentNameConstant}},
		{ConfigurationKey: templatePathConfigurationKeyConstant, EnvironmentVariables: []string{templatePathEnvironmentNameConstant}},
		{ConfigurationKey: outputPathConfigurationKeyConstant, EnvironmentVariables: []string{outputPathEnvironmentNameConstant}},
		{ConfigurationKey: branchNameConfigurationKeyConstant, EnvironmentVariables: []string{branchNameEnvironmentNameConstant}},
	}
}

// Validate confirms every required value is present.
func (configuration Configuration) Validate() error {
	requiredValues := []struct {
		key   string
		value string
	}{
		{key: githubTokenConfigurationKeyConstant, value: configuration.GitHubToken},
		{key: githubRepositoryConfigurationKeyConstant, value: configuration.GitHubRepository},
		{key: openAIAPIKeyConfigurationKeyConstant, value: configuration.OpenAIAPIKey},
		{key: openAIModelConfigurationKeyConstant, value: configuration.OpenAIModel},
		{key: templatePathConfigurationKeyConstant, value: configuration.TemplatePath},
		{key: outputPathConfigurationKeyConstant, value: configuration.OutputPath},
		{key: branchNameConfigurationKeyConstant, value: configuration.BranchName},
	}

	for _, requiredValue := range requiredValues {
		if len(strings.TrimSpace(requiredValue.value)) == 0 {
			return fmt.Errorf(missingConfigurationTemplateConstant+": %w", requiredValue.key, ErrConfigurationIncomplete)
		}
	}
	return nil
}
