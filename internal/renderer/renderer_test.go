package renderer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YumaMatsumura/generate-readme/internal/document"
	"github.com/YumaMatsumura/generate-readme/internal/renderer"
)

func decodeObject(testInstance *testing.T, content string) document.Object {
	testInstance.Helper()
	decodedObject, decodeError := document.Decode([]byte(content))
	require.NoError(testInstance, decodeError)
	return decodedObject
}

func TestRenderEmitsTitleAsFirstLine(testInstance *testing.T) {
	markdownRenderer := renderer.NewRenderer()
	documentObject := decodeObject(testInstance, `{"title": "Foo"}`)

	markdownText := markdownRenderer.Render(documentObject)
	outputLines := strings.Split(markdownText, "\n")
	require.Equal(testInstance, "# Foo", outputLines[0])
}

func TestRenderScalarSections(testInstance *testing.T) {
	markdownRenderer := renderer.NewRenderer()
	documentObject := decodeObject(testInstance, `{"Overview": "A tool.", "License": "Apache-2.0"}`)

	markdownText := markdownRenderer.Render(documentObject)
	expectedMarkdown := "## Overview\n" +
		"\n" +
		" A tool.\n" +
		"\n" +
		"## License\n" +
		"\n" +
		" Apache-2.0\n" +
		"\n"
	require.Equal(testInstance, expectedMarkdown, markdownText)
}

func TestRenderSequenceAsTable(testInstance *testing.T) {
	markdownRenderer := renderer.NewRenderer()
	documentObject := decodeObject(testInstance, `{"Items": [{"a": 1, "b": 2}, {"a": 3, "b": 4}]}`)

	markdownText := markdownRenderer.Render(documentObject)
	expectedMarkdown := "## Items\n" +
		"\n" +
		"| a | b |\n" +
		"| --- | --- |\n" +
		"| 1 | 2 |\n" +
		"| 3 | 4 |\n" +
		"\n"
	require.Equal(testInstance, expectedMarkdown, markdownText)
}

func TestRenderTableCollapsesNestedCellValues(testInstance *testing.T) {
	markdownRenderer := renderer.NewRenderer()
	documentObject := decodeObject(testInstance, `{"Items": [{"name": "x", "meta": {"k": "v"}, "tags": ["a", "b"]}]}`)

	markdownText := markdownRenderer.Render(documentObject)
	require.Contains(testInstance, markdownText, "| x | ... | ... |")
	require.NotContains(testInstance, markdownText, "\"k\"")
}

func TestRenderEmptySequenceEmitsHeadingOnly(testInstance *testing.T) {
	markdownRenderer := renderer.NewRenderer()
	documentObject := decodeObject(testInstance, `{"Items": []}`)

	markdownText := markdownRenderer.Render(documentObject)
	require.Equal(testInstance, "## Items\n\n\n", markdownText)
	require.NotContains(testInstance, markdownText, "|")
}

func TestRenderDiscardsNestedMappingSections(testInstance *testing.T) {
	markdownRenderer := renderer.NewRenderer()
	documentObject := decodeObject(testInstance, `{"Details": {"hidden": "value"}, "Visible": "shown"}`)

	markdownText := markdownRenderer.Render(documentObject)
	require.NotContains(testInstance, markdownText, "hidden")
	require.NotContains(testInstance, markdownText, "## Details")
	require.Contains(testInstance, markdownText, "## Visible")
	require.True(testInstance, strings.HasPrefix(markdownText, "\n"))
}

func TestRenderProcessesKeysInDocumentOrder(testInstance *testing.T) {
	markdownRenderer := renderer.NewRenderer()
	documentObject := decodeObject(testInstance, `{"Zeta": "z", "Alpha": "a", "Beta": "b"}`)

	markdownText := markdownRenderer.Render(documentObject)
	zetaIndex := strings.Index(markdownText, "## Zeta")
	alphaIndex := strings.Index(markdownText, "## Alpha")
	betaIndex := strings.Index(markdownText, "## Beta")
	require.True(testInstance, zetaIndex >= 0 && zetaIndex < alphaIndex && alphaIndex < betaIndex)
}

func TestRenderTitleWithSectionsKeepsTitleUnnumbered(testInstance *testing.T) {
	markdownRenderer := renderer.NewRenderer()
	documentObject := decodeObject(testInstance, `{"title": "Project", "Overview": "Things."}`)

	markdownText := markdownRenderer.Render(documentObject)
	expectedMarkdown := "# Project\n" +
		"\n" +
		"## Overview\n" +
		"\n" +
		" Things.\n" +
		"\n"
	require.Equal(testInstance, expectedMarkdown, markdownText)
	require.Equal(testInstance, 1, strings.Count(markdownText, "# Project"))
}
