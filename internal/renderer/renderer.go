package renderer

import (
	"fmt"
	"strings"

	"github.com/YumaMatsumura/generate-readme/internal/document"
)

const (
	titleKeyConstant                 = "title"
	titleTemplateConstant            = "# %s\n"
	sectionHeadingTemplateConstant   = "## %s\n"
	scalarLineTemplateConstant       = " %s\n"
	blankLineConstant                = "\n"
	tableCellSeparatorConstant       = " | "
	tableRowPrefixConstant           = "| "
	tableRowSuffixConstant           = " |\n"
	tableHeaderDividerCellConstant   = "---"
	nestedValuePlaceholderConstant   = "..."
	emptyTableCellConstant           = ""
)

// Renderer converts structured documents into markdown text.
type Renderer struct{}

// NewRenderer constructs a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the markdown form of the supplied document object. Members
// are processed in document order and every top-level member is followed by a
// blank line separator.
func (renderer *Renderer) Render(documentObject document.Object) string {
	var markdownBuilder strings.Builder

	for _, objectMember := range documentObject {
		switch {
		case objectMember.Key == titleKeyConstant:
			markdownBuilder.WriteString(fmt.Sprintf(titleTemplateConstant, objectMember.Value.ScalarString()))
		case objectMember.Value.Kind == document.KindObject:
			// Nested objects contribute only their separator line to the output.
			renderer.Render(objectMember.Value.Object)
		case objectMember.Value.Kind == document.KindArray:
			markdownBuilder.WriteString(fmt.Sprintf(sectionHeadingTemplateConstant, objectMember.Key))
			markdownBuilder.WriteString(blankLineConstant)
			markdownBuilder.WriteString(renderer.renderTable(objectMember.Value.Array))
		default:
			markdownBuilder.WriteString(fmt.Sprintf(sectionHeadingTemplateConstant, objectMember.Key))
			markdownBuilder.WriteString(blankLineConstant)
			markdownBuilder.WriteString(fmt.Sprintf(scalarLineTemplateConstant, objectMember.Value.ScalarString()))
		}
		markdownBuilder.WriteString(blankLineConstant)
	}

	return markdownBuilder.String()
}

// renderTable formats array elements as a markdown table. The header row comes
// from the first element's keys in document order; an empty array yields no
// table at all, leaving the section heading on its own.
func (renderer *Renderer) renderTable(arrayElements []document.Value) string {
	if len(arrayElements) == 0 {
		return emptyTableCellConstant
	}

	headerKeys := renderer.resolveHeaderKeys(arrayElements[0])

	var tableBuilder strings.Builder
	if len(headerKeys) > 0 {
		tableBuilder.WriteString(renderer.renderRow(headerKeys))
		dividerCells := make([]string, len(headerKeys))
		for dividerIndex := range dividerCells {
			dividerCells[dividerIndex] = tableHeaderDividerCellConstant
		}
		tableBuilder.WriteString(renderer.renderRow(dividerCells))
	}

	for _, arrayElement := range arrayElements {
		tableBuilder.WriteString(renderer.renderRow(renderer.renderElementCells(arrayElement, headerKeys)))
	}

	return tableBuilder.String()
}

func (renderer *Renderer) resolveHeaderKeys(firstElement document.Value) []string {
	if firstElement.Kind != document.KindObject {
		return nil
	}

	headerKeys := make([]string, 0, len(firstElement.Object))
	for _, objectMember := range firstElement.Object {
		headerKeys = append(headerKeys, objectMember.Key)
	}
	return headerKeys
}

func (renderer *Renderer) renderElementCells(arrayElement document.Value, headerKeys []string) []string {
	if arrayElement.Kind != document.KindObject {
		return []string{renderer.renderCell(arrayElement)}
	}

	memberValues := make(map[string]document.Value, len(arrayElement.Object))
	for _, objectMember := range arrayElement.Object {
		memberValues[objectMember.Key] = objectMember.Value
	}

	rowCells := make([]string, 0, len(headerKeys))
	for _, headerKey := range headerKeys {
		memberValue, memberExists := memberValues[headerKey]
		if !memberExists {
			rowCells = append(rowCells, emptyTableCellConstant)
			continue
		}
		rowCells = append(rowCells, renderer.renderCell(memberValue))
	}
	return rowCells
}

// renderCell stringifies a table cell. Nested objects and arrays collapse to a
// placeholder instead of expanding inside the cell.
func (renderer *Renderer) renderCell(cellValue document.Value) string {
	if cellValue.IsScalar() {
		return cellValue.ScalarString()
	}
	return nestedValuePlaceholderConstant
}

func (renderer *Renderer) renderRow(rowCells []string) string {
	return tableRowPrefixConstant + strings.Join(rowCells, tableCellSeparatorConstant) + tableRowSuffixConstant
}
