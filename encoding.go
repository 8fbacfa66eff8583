package webext

import "encoding/json"

// Sum types are encoded with a "kind" discriminator so a Namespace can be
// stored and reloaded without losing shape information.

const (
	kindEnum      = "enum"
	kindData      = "data"
	kindStruct    = "struct"
	kindField     = "field"
	kindCallback  = "callback"
	kindImmediate = "immediate"
	kindObject    = "object"
)

type typeWire struct {
	Name     string   `json:"name" yaml:"name"`
	Kind     string   `json:"kind" yaml:"kind"`
	Required []Field  `json:"required,omitempty" yaml:"required,omitempty"`
	Optional []Field  `json:"optional,omitempty" yaml:"optional,omitempty"`
	Methods  []Method `json:"methods,omitempty" yaml:"methods,omitempty"`
}

func (t Type) wire() (typeWire, error) {
	w := typeWire{Name: t.Name}
	switch s := t.Shape.(type) {
	case Enum:
		w.Kind = kindEnum
	case Data:
		w.Kind = kindData
	case Struct:
		w.Kind = kindStruct
		w.Required, w.Optional, w.Methods = s.Required, s.Optional, s.Methods
	default:
		return w, Errorf(EINVALID, "type %q has no shape", t.Name)
	}
	return w, nil
}

// MarshalJSON implements json.Marshaler.
func (t Type) MarshalJSON() ([]byte, error) {
	w, err := t.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// MarshalYAML implements yaml.Marshaler.
func (t Type) MarshalYAML() (any, error) {
	return t.wire()
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Type) UnmarshalJSON(data []byte) error {
	var w typeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.Name = w.Name
	switch w.Kind {
	case kindEnum:
		t.Shape = Enum{}
	case kindData:
		t.Shape = Data{}
	case kindStruct:
		t.Shape = Struct{Required: w.Required, Optional: w.Optional, Methods: w.Methods}
	default:
		return Errorf(EINVALID, "unknown type kind %q", w.Kind)
	}
	return nil
}

type argumentWire struct {
	Kind        string     `json:"kind" yaml:"kind"`
	Name        string     `json:"name" yaml:"name"`
	Optional    bool       `json:"optional,omitempty" yaml:"optional,omitempty"`
	Type        *TypeRef   `json:"type,omitempty" yaml:"type,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Arguments   []Argument `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

func (a Argument) wire() (argumentWire, error) {
	w := argumentWire{Optional: a.Optional}
	switch v := a.Value.(type) {
	case Field:
		ref := v.Type
		w.Kind, w.Name, w.Type, w.Description = kindField, v.Name, &ref, v.Description
	case Callback:
		w.Kind, w.Name, w.Arguments = kindCallback, v.Name, v.Arguments
	default:
		return w, Errorf(EINVALID, "argument has no value")
	}
	return w, nil
}

// MarshalJSON implements json.Marshaler.
func (a Argument) MarshalJSON() ([]byte, error) {
	w, err := a.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// MarshalYAML implements yaml.Marshaler.
func (a Argument) MarshalYAML() (any, error) {
	return a.wire()
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Argument) UnmarshalJSON(data []byte) error {
	var w argumentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	a.Optional = w.Optional
	switch w.Kind {
	case kindField:
		if w.Type == nil {
			return Errorf(EINVALID, "field argument %q has no type", w.Name)
		}
		a.Value = Field{Name: w.Name, Type: *w.Type, Description: w.Description}
	case kindCallback:
		a.Value = Callback{Method: Method{Name: w.Name, Arguments: w.Arguments}}
	default:
		return Errorf(EINVALID, "unknown argument kind %q", w.Kind)
	}
	return nil
}

type propertyWire struct {
	Name    string   `json:"name" yaml:"name"`
	Kind    string   `json:"kind" yaml:"kind"`
	Type    *TypeRef `json:"type,omitempty" yaml:"type,omitempty"`
	Methods []Method `json:"methods,omitempty" yaml:"methods,omitempty"`
}

func (p Property) wire() (propertyWire, error) {
	w := propertyWire{Name: p.Name}
	switch v := p.Value.(type) {
	case Immediate:
		ref := v.Type
		w.Kind, w.Type = kindImmediate, &ref
	case Object:
		w.Kind, w.Methods = kindObject, v.Methods
	default:
		return w, Errorf(EINVALID, "property %q has no value", p.Name)
	}
	return w, nil
}

// MarshalJSON implements json.Marshaler.
func (p Property) MarshalJSON() ([]byte, error) {
	w, err := p.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// MarshalYAML implements yaml.Marshaler.
func (p Property) MarshalYAML() (any, error) {
	return p.wire()
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Property) UnmarshalJSON(data []byte) error {
	var w propertyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.Name = w.Name
	switch w.Kind {
	case kindImmediate:
		if w.Type == nil {
			return Errorf(EINVALID, "immediate property %q has no type", w.Name)
		}
		p.Value = Immediate{Type: *w.Type}
	case kindObject:
		p.Value = Object{Methods: w.Methods}
	default:
		return Errorf(EINVALID, "unknown property kind %q", w.Kind)
	}
	return nil
}
