package webext

import (
	"strings"
	"unicode"
)

// OpaqueType is the type name unions and enumerations collapse to.
const OpaqueType = "object"

// CallbackType is the raw type text that marks a callback argument.
const CallbackType = "function"

// ClassifyType parses a free-text type description such as "integer",
// "array of Tab", "enum of X" or "string or number".
//
// Only the patterns observed in the documentation are recognised. Anything
// else returns EUNSUPPORTED rather than a guess.
func ClassifyType(text string) (TypeRef, error) {
	words := strings.Split(text, " ")
	switch {
	case len(words) == 1 && words[0] != "":
		return TypeRef{Name: words[0]}, nil
	case len(words) == 3 && words[0] == "array" && words[1] == "of":
		return TypeRef{Name: words[2], Array: true}, nil
	case len(words) == 3 && words[0] == "enum" && words[1] == "of":
		return TypeRef{Name: OpaqueType}, nil
	}
	for _, w := range words[1:] {
		if w == "or" {
			return TypeRef{Name: OpaqueType}, nil
		}
	}
	return TypeRef{}, Errorf(EUNSUPPORTED, "unsupported type description %q", text)
}

// ValidateName returns EINVALID if name is empty or contains whitespace.
func ValidateName(name string) error {
	if name == "" {
		return Errorf(EINVALID, "empty value name")
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return Errorf(EINVALID, "value name %q contains whitespace", name)
	}
	return nil
}

// NewField classifies typeText and validates name.
func NewField(typeText, name string) (Field, error) {
	if err := ValidateName(name); err != nil {
		return Field{}, err
	}
	ref, err := ClassifyType(typeText)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: name, Type: ref}, nil
}

// Primitive identifies the host-language primitive a type name maps to.
type Primitive int

// Primitive kinds. PrimitiveNamed means the name references a declared type.
const (
	PrimitiveNamed Primitive = iota
	PrimitiveInteger
	PrimitiveBoolean
	PrimitiveText
	PrimitiveFloat
)

// PrimitiveOf maps a documentation scalar name to its primitive kind:
// integer is a signed integer, number a floating point value and string
// text. Other names pass through as PrimitiveNamed.
func PrimitiveOf(name string) Primitive {
	switch name {
	case "integer":
		return PrimitiveInteger
	case "boolean":
		return PrimitiveBoolean
	case "string":
		return PrimitiveText
	case "number":
		return PrimitiveFloat
	}
	return PrimitiveNamed
}

// String returns a readable name for the primitive.
func (p Primitive) String() string {
	switch p {
	case PrimitiveInteger:
		return "signed integer"
	case PrimitiveBoolean:
		return "boolean"
	case PrimitiveText:
		return "text"
	case PrimitiveFloat:
		return "floating point"
	}
	return "named"
}
