package validation

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemas embed.FS

// ErrInvalidDocument is matched by every *Error.
var ErrInvalidDocument = errors.New("invalid document")

// Error lists every schema violation of a document.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidDocument, strings.Join(e.Problems, "; "))
}

func (e *Error) Unwrap() error { return ErrInvalidDocument }

// SchemaValidator checks raw JSON documents against a compiled schema.
type SchemaValidator struct {
	name   string
	schema *gojsonschema.Schema
}

func newSchemaValidator(name string) (*SchemaValidator, error) {
	raw, err := schemas.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &SchemaValidator{name: name, schema: schema}, nil
}

// NewQuoteRequestValidator validates bodies of POST /api/v1/quotes.
func NewQuoteRequestValidator() (*SchemaValidator, error) {
	return newSchemaValidator("quote_request")
}

// Validate returns an *Error describing every violation. Malformed JSON is
// reported the same way.
func (v *SchemaValidator) Validate(document []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &Error{Problems: []string{"malformed JSON: " + err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &Error{Problems: problems}
}
