package webext

// Namespace is the schema of one API reference page. Events found on the
// page are folded into Properties as Object properties whose only method
// registers a listener.
type Namespace struct {
	Name       string     `json:"name" yaml:"name"`
	Types      []Type     `json:"types" yaml:"types"`
	Properties []Property `json:"properties" yaml:"properties"`
	Methods    []Method   `json:"methods" yaml:"methods"`
}

// Type is a named type declared by a namespace.
type Type struct {
	Name  string
	Shape TypeShape
}

// TypeShape is one of Enum, Data or Struct.
type TypeShape interface {
	typeShape()
}

// Enum marks an enumerated type. Members are not retained.
type Enum struct{}

// Data marks a type the documentation describes without structure.
type Data struct{}

// Struct is a record type. Events declared on the type are folded into
// Methods under the name "<event>.<listener method>".
type Struct struct {
	Required []Field
	Optional []Field
	Methods  []Method
}

func (Enum) typeShape()   {}
func (Data) typeShape()   {}
func (Struct) typeShape() {}

// TypeRef is a classified type descriptor. Array is set when the
// documentation said "array of <Name>".
type TypeRef struct {
	Name  string `json:"name" yaml:"name"`
	Array bool   `json:"array,omitempty" yaml:"array,omitempty"`
}

// Field is a named, typed value.
type Field struct {
	Name string  `json:"name" yaml:"name"`
	Type TypeRef `json:"type" yaml:"type"`

	// Description is the Markdown rendering of the documentation cell,
	// if a Converter was configured.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Argument is one positional argument of a Method.
type Argument struct {
	Value    ArgumentValue
	Optional bool
}

// Name returns the declared name of the argument.
func (a Argument) Name() string {
	switch v := a.Value.(type) {
	case Field:
		return v.Name
	case Callback:
		return v.Name
	}
	return ""
}

// ArgumentValue is either a Field or a Callback.
type ArgumentValue interface {
	argumentValue()
}

// Callback is a function-typed argument carrying its own argument list.
type Callback struct {
	Method
}

func (Field) argumentValue()    {}
func (Callback) argumentValue() {}

// Method is a named function with ordered arguments. Return types are not
// modeled.
type Method struct {
	Name      string     `json:"name" yaml:"name"`
	Arguments []Argument `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// Event is a named event and the signature of its listener registration
// call. Events only exist during extraction; see Namespace.
type Event struct {
	Name     string
	Listener Method
}

// Property folds the event into an Object property exposing its listener.
func (e Event) Property() Property {
	return Property{
		Name:  e.Name,
		Value: Object{Methods: []Method{e.Listener}},
	}
}

// QualifiedMethod returns the listener method renamed "<event>.<listener>",
// the form used when an event is declared on a Struct type.
func (e Event) QualifiedMethod() Method {
	return Method{
		Name:      e.Name + "." + e.Listener.Name,
		Arguments: e.Listener.Arguments,
	}
}

// Property is a named top-level value of a namespace.
type Property struct {
	Name  string
	Value PropertyValue
}

// PropertyValue is either Immediate or Object.
type PropertyValue interface {
	propertyValue()
}

// Immediate is a property holding a scalar, array or named-type value.
type Immediate struct {
	Type TypeRef
}

// Object is a property that exposes its own methods.
type Object struct {
	Methods []Method
}

func (Immediate) propertyValue() {}
func (Object) propertyValue()    {}
