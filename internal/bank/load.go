package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema is the JSON Schema the question file must satisfy before
// decoding. Index-range and multi/correct cardinality invariants are
// checked afterwards in Go, since they relate fields to each other.
const bankSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "oneOf": [
    {"$ref": "#/$defs/questionList"},
    {
      "type": "object",
      "properties": {"questions": {"$ref": "#/$defs/questionList"}},
      "required": ["questions"]
    }
  ],
  "$defs": {
    "questionList": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "integer"},
          "question": {"type": "string", "minLength": 1},
          "choices": {
            "type": "array",
            "items": {"type": "string"},
            "minItems": 2
          },
          "correct": {
            "type": "array",
            "items": {"type": "integer", "minimum": 0},
            "minItems": 1
          },
          "multi": {"type": "boolean"},
          "explanation": {"type": "string"}
        },
        "required": ["id", "question", "choices", "correct"],
        "additionalProperties": false
      }
    }
  }
}`

// bankFile mirrors the two accepted file shapes: a bare array of
// questions, or an object wrapping them under "questions".
type bankFile struct {
	Questions []Question `json:"questions"`
}

// Load reads and validates the question bank at path. Any failure is
// fatal to startup: the application cannot run without a valid bank.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("question bank %s: %w", path, err)
	}
	return b, nil
}

// Parse validates raw JSON against the bank schema, decodes it, and
// checks per-question invariants plus id uniqueness.
func Parse(data []byte) (*Bank, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var questions []Question
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(data, &questions); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
	} else {
		var f bankFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		questions = f.Questions
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions")
	}

	seen := make(map[int]bool, len(questions))
	for i := range questions {
		q := &questions[i]
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("entry %d: duplicate question id %d", i, q.ID)
		}
		seen[q.ID] = true
	}

	return New(questions), nil
}

func validateSchema(data []byte) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(bankSchema))
	if err != nil {
		return fmt.Errorf("parse bank schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("bank.schema.json", schemaDoc); err != nil {
		return fmt.Errorf("register bank schema: %w", err)
	}
	schema, err := compiler.Compile("bank.schema.json")
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
