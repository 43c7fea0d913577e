package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YumaMatsumura/generate-readme/cmd/cli"
)

func TestApplicationCollapsesFailuresIntoErrorLine(testInstance *testing.T) {
	application := cli.NewApplication()
	var collapsedOutput bytes.Buffer
	application.SetErrorOutput(&collapsedOutput)

	rootCommand := application.RootCommand()
	rootCommand.SetArgs([]string{"generate"})
	var commandOutput bytes.Buffer
	rootCommand.SetOut(&commandOutput)
	rootCommand.SetErr(&commandOutput)

	testInstance.Setenv("GITHUB_TOKEN", "")
	testInstance.Setenv("GITHUB_REPOSITORY", "")
	testInstance.Setenv("OPENAI_API_KEY", "")
	testInstance.Setenv("OPENAI_MODEL", "")
	testInstance.Setenv("TEMPLATE_PATH", "")

	executionError := application.Execute()
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, collapsedOutput.String(), "Error: ")
	require.Contains(testInstance, collapsedOutput.String(), "is required")
}

func TestApplicationBindsBareEnvironmentNames(testInstance *testing.T) {
	templateFile := testInstance.TempDir() + "/template.json"
	outputFile := testInstance.TempDir() + "/README.md"

	testInstance.Setenv("GITHUB_TOKEN", "ghp_example")
	testInstance.Setenv("GITHUB_REPOSITORY", "octo-org/octo-repo")
	testInstance.Setenv("OPENAI_API_KEY", "sk-test")
	testInstance.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	testInstance.Setenv("TEMPLATE_PATH", templateFile)
	testInstance.Setenv("OUTPUT_PATH", outputFile)

	application := cli.NewApplication()
	var collapsedOutput bytes.Buffer
	application.SetErrorOutput(&collapsedOutput)

	rootCommand := application.RootCommand()
	rootCommand.SetArgs([]string{"generate"})
	var commandOutput bytes.Buffer
	rootCommand.SetOut(&commandOutput)
	rootCommand.SetErr(&commandOutput)

	executionError := application.Execute()
	require.NoError(testInstance, executionError)
	// Configuration validation passes; the pipeline then fails on the missing
	// template file rather than on a missing configuration value.
	require.NotContains(testInstance, collapsedOutput.String(), "is required")
	require.Contains(testInstance, collapsedOutput.String(), "failed to read template")
}

func TestApplicationRootCommandShowsHelp(testInstance *testing.T) {
	application := cli.NewApplication()
	var collapsedOutput bytes.Buffer
	application.SetErrorOutput(&collapsedOutput)

	rootCommand := application.RootCommand()
	rootCommand.SetArgs([]string{})
	var commandOutput bytes.Buffer
	rootCommand.SetOut(&commandOutput)
	rootCommand.SetErr(&commandOutput)

	executionError := application.Execute()
	require.NoError(testInstance, executionError)
	require.Empty(testInstance, collapsedOutput.String())
	require.Contains(testInstance, commandOutput.String(), "generate-readme")
}
