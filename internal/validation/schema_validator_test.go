package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["version", "entries"],
	"properties": {
		"version": {"type": "string"},
		"entries": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "amount"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"amount": {"type": "integer", "minimum": 1}
				}
			}
		}
	}
}`

func newTestValidator(t *testing.T) SchemaValidator {
	t.Helper()
	v, err := NewSchemaValidator(map[string][]byte{
		"test.schema.json": []byte(testSchema),
	})
	require.NoError(t, err)
	return v
}

func TestValidateBytes_ValidDocument(t *testing.T) {
	v := newTestValidator(t)

	doc := `{"version": "1.0", "entries": [{"id": "wood_plank", "amount": 3}]}`
	assert.NoError(t, v.ValidateBytes([]byte(doc), "test.schema.json"))
}

func TestValidateBytes_MissingRequiredField(t *testing.T) {
	v := newTestValidator(t)

	doc := `{"entries": []}`
	err := v.ValidateBytes([]byte(doc), "test.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestValidateBytes_WrongType(t *testing.T) {
	v := newTestValidator(t)

	doc := `{"version": "1.0", "entries": [{"id": "wood_plank", "amount": "three"}]}`
	assert.Error(t, v.ValidateBytes([]byte(doc), "test.schema.json"))
}

func TestValidateBytes_MalformedJSON(t *testing.T) {
	v := newTestValidator(t)

	err := v.ValidateBytes([]byte(`{"version":`), "test.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON data")
}

func TestValidateBytes_UnknownSchema(t *testing.T) {
	v := newTestValidator(t)

	err := v.ValidateBytes([]byte(`{}`), "nope.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestNewSchemaValidator_BadSchema(t *testing.T) {
	_, err := NewSchemaValidator(map[string][]byte{
		"broken.schema.json": []byte(`{"type": 42`),
	})
	assert.Error(t, err)
}
