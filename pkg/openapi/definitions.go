package openapi

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-presenter/pkg/record"
)

// Vendor extensions recognised on component schemas.
const (
	hiddenExtensionKey = "x-presenter-hidden"
	caseExtensionKey   = "x-presenter-case"
)

// Definitions is the set of record definitions extracted from a document's
// component schemas, keyed by schema name.
type Definitions struct {
	defs  map[string]*record.Definition
	names []string
}

// ParseDefinitions reads the document with kin-openapi and converts every
// object component schema into a record definition. Schemas without
// properties are skipped.
func ParseDefinitions(ctx context.Context, doc Document) (*Definitions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, errors.Wrap(err, "openapi: load document")
	}

	result := &Definitions{defs: make(map[string]*record.Definition)}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return result, nil
	}

	schemaNames := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		schemaNames = append(schemaNames, name)
	}
	sort.Strings(schemaNames)

	for _, name := range schemaNames {
		ref := spec.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		def, ok, err := convertSchema(name, ref.Value)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		result.defs[name] = def
		result.names = append(result.names, name)
	}
	return result, nil
}

func convertSchema(name string, schema *openapi3.Schema) (*record.Definition, bool, error) {
	if len(schema.Properties) == 0 {
		return nil, false, nil
	}

	propNames := make([]string, 0, len(schema.Properties))
	for propName := range schema.Properties {
		propNames = append(propNames, propName)
	}
	sort.Strings(propNames)

	def := &record.Definition{
		Name:   name,
		Fields: make([]record.Field, 0, len(propNames)),
	}
	for _, propName := range propNames {
		propRef := schema.Properties[propName]
		field := record.Field{Name: propName}
		if propRef != nil && propRef.Value != nil {
			field.Type = schemaType(propRef.Value.Type)
			field.Format = propRef.Value.Format
			field.Default = propRef.Value.Default
		}
		def.Fields = append(def.Fields, field)
	}

	hidden, err := stringListExtension(schema.Extensions, hiddenExtensionKey)
	if err != nil {
		return nil, false, errors.Wrapf(err, "openapi: schema %q", name)
	}
	def.Hidden = hidden

	caseHint, err := stringExtension(schema.Extensions, caseExtensionKey)
	if err != nil {
		return nil, false, errors.Wrapf(err, "openapi: schema %q", name)
	}
	def.Case = caseHint

	return def, true, nil
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

func stringExtension(ext map[string]any, key string) (string, error) {
	raw, ok := ext[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", errors.Newf("extension %s must be a string, got %T", key, raw)
	}
	return value, nil
}

func stringListExtension(ext map[string]any, key string) ([]string, error) {
	raw, ok := ext[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch value := raw.(type) {
	case []string:
		return append([]string(nil), value...), nil
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Newf("extension %s must list strings, got %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.Newf("extension %s must be a list of strings, got %T", key, raw)
	}
}

// Definition returns the named definition.
func (d *Definitions) Definition(name string) (*record.Definition, bool) {
	if d == nil {
		return nil, false
	}
	def, ok := d.defs[name]
	return def, ok
}

// Names returns the definition names, sorted.
func (d *Definitions) Names() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.names...)
}

// Empty reports whether the document contributed any definitions.
func (d *Definitions) Empty() bool {
	return d == nil || len(d.defs) == 0
}
