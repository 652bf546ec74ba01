package viron

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ContentType selects the widget a binding renders as.
type ContentType string

const (
	ContentNumber ContentType = "number"
	ContentTable  ContentType = "table"
)

// Content binds one dashboard widget to the endpoint that feeds it.
type Content struct {
	Type       ContentType `json:"type" yaml:"type" validate:"required,oneof=number table"`
	Title      string      `json:"title" yaml:"title" validate:"required"`
	ResourceID string      `json:"resourceId" yaml:"resourceId" validate:"required"`
	Endpoint   Identifier  `json:"endpoint" yaml:"endpoint"`
}

// NumberContent declares a number widget fed by endpoint.
func NumberContent(title, resourceID string, endpoint Identifier) Content {
	return Content{Type: ContentNumber, Title: title, ResourceID: resourceID, Endpoint: endpoint}
}

// TableContent declares a table widget fed by endpoint.
func TableContent(title, resourceID string, endpoint Identifier) Content {
	return Content{Type: ContentTable, Title: title, ResourceID: resourceID, Endpoint: endpoint}
}

// Validate checks the binding's own fields. It does not resolve the endpoint.
func (c Content) Validate() error {
	if err := validate.Struct(c); err != nil {
		return ValidationError(CodeInvalidPage, "content "+c.Title, err)
	}
	if c.Endpoint.IsZero() {
		return Errorf(CodeMalformedIdentifier, "content %s: endpoint is required", c.Title)
	}
	return nil
}

// CheckEnvelope verifies that a success schema is the envelope required by typ.
// Number needs an object whose only property is a numeric "number";
// table needs an object whose only property is an array "list".
func CheckEnvelope(typ ContentType, success *openapi3.SchemaRef) error {
	var key, want string
	switch typ {
	case ContentNumber:
		key, want = NumberValueKey, "numeric"
	case ContentTable:
		key, want = TableListKey, "array"
	default:
		return Errorf(CodeEnvelopeMismatch, "unknown content type %q", typ)
	}

	if success == nil || success.Value == nil {
		return Errorf(CodeEnvelopeMismatch, "%s content needs a success response {%q: %s}, endpoint declares none", typ, key, want)
	}
	s := success.Value
	if s.Type != nil && !s.Type.Is(openapi3.TypeObject) {
		return Errorf(CodeEnvelopeMismatch, "%s content needs an object envelope, got %v", typ, s.Type.Slice())
	}
	if len(s.Properties) != 1 {
		return Errorf(CodeEnvelopeMismatch, "%s content needs exactly one property %q, got %d properties", typ, key, len(s.Properties))
	}
	prop, ok := s.Properties[key]
	if !ok || prop == nil || prop.Value == nil {
		return Errorf(CodeEnvelopeMismatch, "%s content needs property %q", typ, key)
	}

	t := prop.Value.Type
	switch typ {
	case ContentNumber:
		if !t.Includes(openapi3.TypeNumber) && !t.Includes(openapi3.TypeInteger) {
			return Errorf(CodeEnvelopeMismatch, "property %q must be numeric, got %v", key, t.Slice())
		}
	case ContentTable:
		if !t.Includes(openapi3.TypeArray) {
			return Errorf(CodeEnvelopeMismatch, "property %q must be an array, got %v", key, t.Slice())
		}
	}
	return nil
}
