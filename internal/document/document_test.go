package document_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YumaMatsumura/generate-readme/internal/document"
)

func TestDecodePreservesKeyOrder(testInstance *testing.T) {
	content := []byte(`{"zeta": "last?", "alpha": "no", "title": "Example", "beta": 3}`)

	decodedObject, decodeError := document.Decode(content)
	require.NoError(testInstance, decodeError)

	decodedKeys := make([]string, 0, len(decodedObject))
	for _, objectMember := range decodedObject {
		decodedKeys = append(decodedKeys, objectMember.Key)
	}
	require.Equal(testInstance, []string{"zeta", "alpha", "title", "beta"}, decodedKeys)
}

func TestDecodeScalarForms(testInstance *testing.T) {
	content := []byte(`{"text": "hello", "integer": 7, "fraction": 1.50, "flag": true, "missing": null}`)

	decodedObject, decodeError := document.Decode(content)
	require.NoError(testInstance, decodeError)
	require.Len(testInstance, decodedObject, 5)

	testCases := []struct {
		index          int
		expectedKind   document.Kind
		expectedScalar string
	}{
		{index: 0, expectedKind: document.KindString, expectedScalar: "hello"},
		{index: 1, expectedKind: document.KindNumber, expectedScalar: "7"},
		{index: 2, expectedKind: document.KindNumber, expectedScalar: "1.50"},
		{index: 3, expectedKind: document.KindBool, expectedScalar: "true"},
		{index: 4, expectedKind: document.KindNull, expectedScalar: "null"},
	}

	for _, testCase := range testCases {
		objectMember := decodedObject[testCase.index]
		require.Equal(testInstance, testCase.expectedKind, objectMember.Value.Kind)
		require.Equal(testInstance, testCase.expectedScalar, objectMember.Value.ScalarString())
		require.True(testInstance, objectMember.Value.IsScalar())
	}
}

func TestDecodeNestedStructures(testInstance *testing.T) {
	content := []byte(`{"details": {"inner": "value"}, "rows": [{"a": 1}, {"a": 2}]}`)

	decodedObject, decodeError := document.Decode(content)
	require.NoError(testInstance, decodeError)
	require.Len(testInstance, decodedObject, 2)

	detailsValue := decodedObject[0].Value
	require.Equal(testInstance, document.KindObject, detailsValue.Kind)
	require.False(testInstance, detailsValue.IsScalar())
	require.Len(testInstance, detailsValue.Object, 1)
	require.Equal(testInstance, "inner", detailsValue.Object[0].Key)

	rowsValue := decodedObject[1].Value
	require.Equal(testInstance, document.KindArray, rowsValue.Kind)
	require.Len(testInstance, rowsValue.Array, 2)
	require.Equal(testInstance, document.KindObject, rowsValue.Array[0].Kind)
}

func TestDecodeRejectsInvalidDocuments(testInstance *testing.T) {
	testCases := []struct {
		name        string
		content     []byte
		expectedErr error
	}{
		{name: "empty", content: []byte(""), expectedErr: document.ErrEmptyDocument},
		{name: "array_root", content: []byte(`[1, 2]`), expectedErr: document.ErrTopLevelNotObject},
		{name: "scalar_root", content: []byte(`"text"`), expectedErr: document.ErrTopLevelNotObject},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, decodeError := document.Decode(testCase.content)
			require.ErrorIs(testInstance, decodeError, testCase.expectedErr)
		})
	}
}

func TestDecodeRejectsMalformedJSON(testInstance *testing.T) {
	_, decodeError := document.Decode([]byte(`{"title": "broken`))
	require.Error(testInstance, decodeError)
}
