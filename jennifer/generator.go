// Package jennifer renders an extracted namespace as Go bindings using
// github.com/dave/jennifer.
//
// Every Struct type becomes a struct, Enum types become named strings and
// Data types raw JSON. The namespace itself becomes an interface whose
// methods take callbacks as func values. Object properties get their own
// interface and an accessor on the namespace interface.
package jennifer

import (
	"go/token"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"
	"github.com/fwojciec/webext"
)

// Compile-time interface verification.
var _ webext.BindingGenerator = (*Generator)(nil)

// DefaultPackageName is used when no package name is configured and the
// namespace name does not make a valid one.
const DefaultPackageName = "bindings"

const jsonPkg = "encoding/json"

// Generator implements webext.BindingGenerator.
type Generator struct {
	// PackageName overrides the package clause. When empty the lowercased
	// namespace name is used.
	PackageName string
}

// NewGenerator creates a Generator emitting the given package.
func NewGenerator(packageName string) *Generator {
	return &Generator{PackageName: packageName}
}

// Generate writes gofmt-formatted Go source for ns to w. Two schema names
// that map to the same Go identifier are EINVALID.
func (gen *Generator) Generate(w io.Writer, ns *webext.Namespace) error {
	if ns == nil {
		return webext.Errorf(webext.EINVALID, "namespace required")
	}

	pkg := gen.PackageName
	if pkg == "" {
		pkg = packageName(ns.Name)
	}

	b := &builder{
		f:      jen.NewFile(pkg),
		shapes: make(map[string]webext.TypeShape, len(ns.Types)),
		idents: make(map[string]string),
	}
	b.f.HeaderComment("Code generated by webext. DO NOT EDIT.")

	for _, t := range ns.Types {
		b.shapes[t.Name] = t.Shape
	}
	for _, t := range ns.Types {
		if err := b.typeDecl(t); err != nil {
			return err
		}
	}
	for _, p := range ns.Properties {
		if obj, ok := p.Value.(webext.Object); ok {
			if err := b.objectDecl(p.Name, obj); err != nil {
				return err
			}
		}
	}
	if err := b.namespaceDecl(ns); err != nil {
		return err
	}

	if err := b.f.Render(w); err != nil {
		return webext.Errorf(webext.EINTERNAL, "render %s bindings: %v", ns.Name, err)
	}
	return nil
}

type builder struct {
	f      *jen.File
	shapes map[string]webext.TypeShape

	// idents maps generated top-level identifiers to the schema name that
	// produced them.
	idents map[string]string
}

func (b *builder) declare(ident, source string) error {
	if prev, ok := b.idents[ident]; ok {
		return webext.Errorf(webext.EINVALID, "%q and %q both generate identifier %s", prev, source, ident)
	}
	b.idents[ident] = source
	return nil
}

func (b *builder) typeDecl(t webext.Type) error {
	name := exportName(t.Name)
	if err := b.declare(name, t.Name); err != nil {
		return err
	}

	switch s := t.Shape.(type) {
	case webext.Enum:
		b.f.Commentf("%s is an enumerated string.", name)
		b.f.Type().Id(name).String()
	case webext.Data:
		b.f.Commentf("%s is carried as raw JSON.", name)
		b.f.Type().Id(name).Qual(jsonPkg, "RawMessage")
	case webext.Struct:
		fields, err := b.fields(t.Name, s)
		if err != nil {
			return err
		}
		b.f.Type().Id(name).Struct(fields...)
		if len(s.Methods) == 0 {
			return nil
		}
		iface := name + "Methods"
		if err := b.declare(iface, t.Name+" methods"); err != nil {
			return err
		}
		b.f.Commentf("%s lists the methods and event listeners of %s.", iface, name)
		return b.interfaceDecl(iface, s.Methods, nil)
	default:
		return webext.Errorf(webext.EINTERNAL, "type %q has unknown shape %T", t.Name, t.Shape)
	}
	return nil
}

// fields renders the struct body of typeName. Required fields are values
// unless the field type leads back to typeName, which would make the struct
// contain itself; those become pointers.
func (b *builder) fields(typeName string, s webext.Struct) ([]jen.Code, error) {
	seen := make(map[string]string, len(s.Required)+len(s.Optional))
	var codes []jen.Code
	add := func(fld webext.Field, typ *jen.Statement, tag string) error {
		id := exportName(fld.Name)
		if prev, ok := seen[id]; ok {
			return webext.Errorf(webext.EINVALID, "%s fields %q and %q both generate %s", typeName, prev, fld.Name, id)
		}
		seen[id] = fld.Name
		if desc := strings.Join(strings.Fields(fld.Description), " "); desc != "" {
			codes = append(codes, jen.Comment(desc))
		}
		codes = append(codes, jen.Id(id).Add(typ).Tag(map[string]string{"json": tag}))
		return nil
	}

	for _, fld := range s.Required {
		typ := b.goType(fld.Type)
		if b.embeds(fld.Type, typeName, map[string]bool{}) {
			typ = jen.Op("*").Add(typ)
		}
		if err := add(fld, typ, fld.Name); err != nil {
			return nil, err
		}
	}
	for _, fld := range s.Optional {
		if err := add(fld, b.optionalType(fld.Type), fld.Name+",omitempty"); err != nil {
			return nil, err
		}
	}
	return codes, nil
}

// embeds reports whether a value of ref holds a target struct directly or
// through required by-value struct fields.
func (b *builder) embeds(ref webext.TypeRef, target string, visited map[string]bool) bool {
	if ref.Array || visited[ref.Name] {
		return false
	}
	s, ok := b.shapes[ref.Name].(webext.Struct)
	if !ok {
		return false
	}
	if ref.Name == target {
		return true
	}
	visited[ref.Name] = true
	for _, fld := range s.Required {
		if b.embeds(fld.Type, target, visited) {
			return true
		}
	}
	return false
}

func (b *builder) objectDecl(name string, obj webext.Object) error {
	iface := objectName(name)
	if err := b.declare(iface, name); err != nil {
		return err
	}
	return b.interfaceDecl(iface, obj.Methods, nil)
}

func (b *builder) namespaceDecl(ns *webext.Namespace) error {
	iface := exportName(ns.Name) + "API"
	if err := b.declare(iface, ns.Name); err != nil {
		return err
	}

	var accessors []member
	for _, p := range ns.Properties {
		name := exportName(p.Name)
		switch v := p.Value.(type) {
		case webext.Immediate:
			accessors = append(accessors, member{name, jen.Id(name).Params().Add(b.goType(v.Type))})
		case webext.Object:
			accessors = append(accessors, member{name, jen.Id(name).Params().Id(objectName(p.Name))})
		default:
			return webext.Errorf(webext.EINTERNAL, "property %q has unknown value %T", p.Name, p.Value)
		}
	}

	b.f.Commentf("%s is the %s namespace.", iface, ns.Name)
	return b.interfaceDecl(iface, ns.Methods, accessors)
}

// member is one entry of a generated interface.
type member struct {
	name string
	code *jen.Statement
}

// interfaceDecl emits an interface holding the given accessors followed by
// one member per method.
func (b *builder) interfaceDecl(name string, methods []webext.Method, accessors []member) error {
	members := accessors
	for _, m := range methods {
		id := exportName(m.Name)
		params, err := b.params(m.Name, m.Arguments)
		if err != nil {
			return err
		}
		members = append(members, member{id, jen.Id(id).Params(params...)})
	}

	seen := make(map[string]bool, len(members))
	codes := make([]jen.Code, 0, len(members))
	for _, m := range members {
		if seen[m.name] {
			return webext.Errorf(webext.EINVALID, "%s has duplicate member %s", name, m.name)
		}
		seen[m.name] = true
		codes = append(codes, m.code)
	}

	b.f.Type().Id(name).Interface(codes...)
	return nil
}

// params renders the argument list of method. Callbacks become func types
// carrying their own arguments. Two arguments mapping to one parameter name
// are EINVALID.
func (b *builder) params(method string, args []webext.Argument) ([]jen.Code, error) {
	seen := make(map[string]string, len(args))
	codes := make([]jen.Code, 0, len(args))
	for _, a := range args {
		name := paramName(a.Name())
		if prev, ok := seen[name]; ok {
			return nil, webext.Errorf(webext.EINVALID, "%s arguments %q and %q both generate parameter %s", method, prev, a.Name(), name)
		}
		seen[name] = a.Name()

		switch v := a.Value.(type) {
		case webext.Field:
			if a.Optional {
				codes = append(codes, jen.Id(name).Add(b.optionalType(v.Type)))
			} else {
				codes = append(codes, jen.Id(name).Add(b.goType(v.Type)))
			}
		case webext.Callback:
			inner, err := b.params(method+"."+v.Name, v.Arguments)
			if err != nil {
				return nil, err
			}
			codes = append(codes, jen.Id(name).Func().Params(inner...))
		}
	}
	return codes, nil
}

func (b *builder) goType(ref webext.TypeRef) *jen.Statement {
	elem := b.scalar(ref.Name)
	if ref.Array {
		return jen.Index().Add(elem)
	}
	return elem
}

// optionalType is goType made nilable: slices and raw values already are,
// everything else becomes a pointer.
func (b *builder) optionalType(ref webext.TypeRef) *jen.Statement {
	if b.nilable(ref) {
		return b.goType(ref)
	}
	return jen.Op("*").Add(b.goType(ref))
}

func (b *builder) scalar(name string) *jen.Statement {
	switch webext.PrimitiveOf(name) {
	case webext.PrimitiveInteger:
		return jen.Int64()
	case webext.PrimitiveBoolean:
		return jen.Bool()
	case webext.PrimitiveText:
		return jen.String()
	case webext.PrimitiveFloat:
		return jen.Float64()
	}
	if _, ok := b.shapes[name]; ok {
		return jen.Id(exportName(name))
	}
	if isOpaque(name) {
		return jen.Id("any")
	}
	// Types declared by other namespaces.
	return jen.Qual(jsonPkg, "RawMessage")
}

func (b *builder) nilable(ref webext.TypeRef) bool {
	if ref.Array || isOpaque(ref.Name) {
		return true
	}
	if webext.PrimitiveOf(ref.Name) != webext.PrimitiveNamed {
		return false
	}
	shape, ok := b.shapes[ref.Name]
	if !ok {
		return true
	}
	_, isData := shape.(webext.Data)
	return isData
}

func isOpaque(name string) bool {
	switch name {
	case webext.OpaqueType, webext.CallbackType, "any":
		return true
	}
	return false
}

func objectName(property string) string {
	return exportName(property) + "Object"
}

// exportName turns a schema name such as "onMessage.addListener" or
// "tab-id" into an exported Go identifier.
func exportName(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	s := sb.String()
	if s == "" || unicode.IsDigit(rune(s[0])) {
		s = "X" + s
	}
	return s
}

func paramName(name string) string {
	s := exportName(name)
	r, n := utf8.DecodeRuneInString(s)
	s = string(unicode.ToLower(r)) + s[n:]
	if token.IsKeyword(s) {
		s += "_"
	}
	return s
}

func packageName(namespace string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(namespace) {
		if 'a' <= r && r <= 'z' || '0' <= r && r <= '9' {
			sb.WriteRune(r)
		}
	}
	s := sb.String()
	if s == "" || unicode.IsDigit(rune(s[0])) || token.IsKeyword(s) {
		return DefaultPackageName
	}
	return s
}
