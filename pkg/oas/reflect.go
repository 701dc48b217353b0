package oas

import (
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

func parseDeep(t reflect.Type, name, tag string, out map[string]*Schema) map[string]*Schema {
	switch t.Kind() {
	case reflect.Ptr:
		return parseDeep(t.Elem(), name, tag, out)
	case reflect.String:
		out[name] = &Schema{Type: TypeString}
	case reflect.Bool:
		out[name] = &Schema{Type: TypeBoolean}
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Uint, reflect.Uint8, reflect.Uint16:
		out[name] = &Schema{Type: TypeInteger}
	case reflect.Int32, reflect.Uint32:
		out[name] = &Schema{Type: TypeInteger, Format: FormatInt32}
	case reflect.Int64, reflect.Uint64:
		out[name] = &Schema{Type: TypeInteger, Format: FormatInt64}
	case reflect.Float32:
		out[name] = &Schema{Type: TypeNumber, Format: FormatFloat}
	case reflect.Float64:
		out[name] = &Schema{Type: TypeNumber, Format: FormatDouble}
	case reflect.Struct:
		// RFC3339
		if t == timeType {
			out[name] = &Schema{Type: TypeString, Format: FormatDateTime}
			return out
		}
		p := &Schema{Type: TypeObject, Properties: map[string]*Schema{}}
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.Anonymous {
				embedded := parseDeep(field.Type, "_anonymous", tag, map[string]*Schema{})
				if x, ok := embedded["_anonymous"]; ok {
					for k, v := range x.Properties {
						p.Properties[k] = v
					}
					p.Required = append(p.Required, x.Required...)
				}
				continue
			}
			if !field.IsExported() {
				continue
			}
			x, ok := field.Tag.Lookup(tag)
			if !ok {
				continue
			}
			x = strings.TrimSpace(strings.Split(x, ",")[0])
			if x == "-" || x == "" {
				continue
			}
			parseDeep(field.Type, x, tag, p.Properties)
			if comment := field.Tag.Get("comment"); comment != "" {
				if pp, ok := p.Properties[x]; ok {
					pp.Description = comment
				}
			}
			if xc := strings.Split(field.Tag.Get("binding"), ","); xc[0] == "required" {
				p.Required = append(p.Required, x)
			}
		}
		out[name] = p
	case reflect.Slice, reflect.Array:
		items := parseDeep(t.Elem(), "items", tag, map[string]*Schema{})
		out[name] = &Schema{Type: TypeArray, Items: items["items"]}
	case reflect.Map:
		values := parseDeep(t.Elem(), "values", tag, map[string]*Schema{})
		p := &Schema{Type: TypeObject, AdditionalProperties: true}
		if v, ok := values["values"]; ok {
			p.AdditionalProperties = v
		}
		out[name] = p
	case reflect.Interface:
		out[name] = &Schema{Type: TypeObject}
	}
	return out
}

// SchemaOf derives a schema from the Go type of v, naming properties after the
// given struct tag. Fields tagged `binding:"required"` are listed as required and a
// `comment` tag becomes the property description.
func SchemaOf(v any, tag string) *Schema {
	if v == nil {
		return nil
	}
	return parseDeep(reflect.TypeOf(v), "schema", tag, map[string]*Schema{})["schema"]
}
