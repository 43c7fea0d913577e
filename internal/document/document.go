package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

const (
	trueLiteralConstant                 = "true"
	falseLiteralConstant                = "false"
	nullLiteralConstant                 = "null"
	emptyDocumentMessageConstant        = "document is empty"
	topLevelNotObjectMessageConstant    = "top-level JSON value is not an object"
	unexpectedTokenTemplateConstant     = "unexpected JSON token %v"
	unexpectedDelimiterTemplateConstant = "unexpected JSON delimiter %q"
	objectKeyNotStringMessageConstant   = "object key is not a string"
)

// ErrEmptyDocument indicates the decoder received no JSON content.
var ErrEmptyDocument = errors.New(emptyDocumentMessageConstant)

// ErrTopLevelNotObject indicates the decoded document root was not a JSON object.
var ErrTopLevelNotObject = errors.New(topLevelNotObjectMessageConstant)

// Kind enumerates the JSON value categories a document member can hold.
type Kind int

// Supported value kinds.
const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindObject
	KindArray
)

// Value represents a single decoded JSON value.
type Value struct {
	Kind   Kind
	Scalar string
	Object Object
	Array  []Value
}

// Member pairs an object key with its decoded value.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object with members kept in their original order.
type Object []Member

// IsScalar reports whether the value is a string, number, boolean, or null.
func (value Value) IsScalar() bool {
	switch value.Kind {
	case KindString, KindNumber, KindBool, KindNull:
		return true
	default:
		return false
	}
}

// ScalarString returns the textual form of a scalar value. Numbers keep the
// literal the backend produced, booleans render as true/false, null as null.
func (value Value) ScalarString() string {
	return value.Scalar
}

// Decode parses JSON content into an order-preserving Object. The top-level
// value must be a JSON object.
func Decode(content []byte) (Object, error) {
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()

	openingToken, tokenError := decoder.Token()
	if tokenError == io.EOF {
		return nil, ErrEmptyDocument
	}
	if tokenError != nil {
		return nil, tokenError
	}

	openingDelimiter, isDelimiter := openingToken.(json.Delim)
	if !isDelimiter || openingDelimiter != json.Delim('{') {
		return nil, ErrTopLevelNotObject
	}

	decodedObject, decodeError := decodeObjectMembers(decoder)
	if decodeError != nil {
		return nil, decodeError
	}

	return decodedObject, nil
}

func decodeObjectMembers(decoder *json.Decoder) (Object, error) {
	decodedObject := Object{}
	for decoder.More() {
		keyToken, keyError := decoder.Token()
		if keyError != nil {
			return nil, keyError
		}
		memberKey, keyIsString := keyToken.(string)
		if !keyIsString {
			return nil, errors.New(objectKeyNotStringMessageConstant)
		}

		memberValue, valueError := decodeValue(decoder)
		if valueError != nil {
			return nil, valueError
		}

		decodedObject = append(decodedObject, Member{Key: memberKey, Value: memberValue})
	}

	if _, closingError := decoder.Token(); closingError != nil {
		return nil, closingError
	}

	return decodedObject, nil
}

func decodeValue(decoder *json.Decoder) (Value, error) {
	valueToken, tokenError := decoder.Token()
	if tokenError != nil {
		return Value{}, tokenError
	}

	switch typedToken := valueToken.(type) {
	case json.Delim:
		switch typedToken {
		case json.Delim('{'):
			nestedObject, objectError := decodeObjectMembers(decoder)
			if objectError != nil {
				return Value{}, objectError
			}
			return Value{Kind: KindObject, Object: nestedObject}, nil
		case json.Delim('['):
			nestedArray, arrayError := decodeArrayElements(decoder)
			if arrayError != nil {
				return Value{}, arrayError
			}
			return Value{Kind: KindArray, Array: nestedArray}, nil
		default:
			return Value{}, fmt.Errorf(unexpectedDelimiterTemplateConstant, typedToken.String())
		}
	case string:
		return Value{Kind: KindString, Scalar: typedToken}, nil
	case json.Number:
		return Value{Kind: KindNumber, Scalar: typedToken.String()}, nil
	case bool:
		if typedToken {
			return Value{Kind: KindBool, Scalar: trueLiteralConstant}, nil
		}
		return Value{Kind: KindBool, Scalar: falseLiteralConstant}, nil
	case nil:
		return Value{Kind: KindNull, Scalar: nullLiteralConstant}, nil
	default:
		return Value{}, fmt.Errorf(unexpectedTokenTemplateConstant, valueToken)
	}
}

func decodeArrayElements(decoder *json.Decoder) ([]Value, error) {
	decodedElements := []Value{}
	for decoder.More() {
		elementValue, elementError := decodeValue(decoder)
		if elementError != nil {
			return nil, elementError
		}
		decodedElements = append(decodedElements, elementValue)
	}

	if _, closingError := decoder.Token(); closingError != nil {
		return nil, closingError
	}

	return decodedElements, nil
}
