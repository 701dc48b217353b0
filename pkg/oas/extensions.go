package oas

import "encoding/json"

// Extensions holds the keys of an object that the model does not declare,
// typically x-* specification extensions. They are decoded from the inline
// YAML mapping and written back next to the declared fields.
type Extensions map[string]any

func (e Extensions) clone() Extensions {
	if len(e) == 0 {
		return nil
	}
	out := make(Extensions, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// marshalInline encodes v and appends ext to the resulting JSON object.
func marshalInline(v any, ext Extensions) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(ext) == 0 {
		return data, err
	}
	extra, err := json.Marshal(map[string]any(ext))
	if err != nil {
		return nil, err
	}
	if len(data) <= 2 {
		return extra, nil
	}
	out := make([]byte, 0, len(data)+len(extra))
	out = append(out, data[:len(data)-1]...)
	out = append(out, ',')
	return append(out, extra[1:]...), nil
}

func (v Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return marshalInline(plain(v), v.Extensions)
}

func (v Info) MarshalJSON() ([]byte, error) {
	type plain Info
	return marshalInline(plain(v), v.Extensions)
}

func (v Contact) MarshalJSON() ([]byte, error) {
	type plain Contact
	return marshalInline(plain(v), v.Extensions)
}

func (v License) MarshalJSON() ([]byte, error) {
	type plain License
	return marshalInline(plain(v), v.Extensions)
}

func (v Server) MarshalJSON() ([]byte, error) {
	type plain Server
	return marshalInline(plain(v), v.Extensions)
}

func (v ServerVariable) MarshalJSON() ([]byte, error) {
	type plain ServerVariable
	return marshalInline(plain(v), v.Extensions)
}

func (v PathItem) MarshalJSON() ([]byte, error) {
	type plain PathItem
	return marshalInline(plain(v), v.Extensions)
}

func (v Operation) MarshalJSON() ([]byte, error) {
	type plain Operation
	return marshalInline(plain(v), v.Extensions)
}

func (v Parameter) MarshalJSON() ([]byte, error) {
	type plain Parameter
	return marshalInline(plain(v), v.Extensions)
}

func (v RequestBody) MarshalJSON() ([]byte, error) {
	type plain RequestBody
	return marshalInline(plain(v), v.Extensions)
}

func (v MediaType) MarshalJSON() ([]byte, error) {
	type plain MediaType
	return marshalInline(plain(v), v.Extensions)
}

func (v Encoding) MarshalJSON() ([]byte, error) {
	type plain Encoding
	return marshalInline(plain(v), v.Extensions)
}

func (v Example) MarshalJSON() ([]byte, error) {
	type plain Example
	return marshalInline(plain(v), v.Extensions)
}

func (v Response) MarshalJSON() ([]byte, error) {
	type plain Response
	return marshalInline(plain(v), v.Extensions)
}

func (v Link) MarshalJSON() ([]byte, error) {
	type plain Link
	return marshalInline(plain(v), v.Extensions)
}

func (v Header) MarshalJSON() ([]byte, error) {
	type plain Header
	return marshalInline(plain(v), v.Extensions)
}

func (v Schema) MarshalJSON() ([]byte, error) {
	type plain Schema
	return marshalInline(plain(v), v.Extensions)
}

func (v XML) MarshalJSON() ([]byte, error) {
	type plain XML
	return marshalInline(plain(v), v.Extensions)
}

func (v Components) MarshalJSON() ([]byte, error) {
	type plain Components
	return marshalInline(plain(v), v.Extensions)
}

func (v SecurityScheme) MarshalJSON() ([]byte, error) {
	type plain SecurityScheme
	return marshalInline(plain(v), v.Extensions)
}

func (v OAuthFlows) MarshalJSON() ([]byte, error) {
	type plain OAuthFlows
	return marshalInline(plain(v), v.Extensions)
}

func (v OAuthFlow) MarshalJSON() ([]byte, error) {
	type plain OAuthFlow
	return marshalInline(plain(v), v.Extensions)
}

func (v Tag) MarshalJSON() ([]byte, error) {
	type plain Tag
	return marshalInline(plain(v), v.Extensions)
}

func (v ExternalDocs) MarshalJSON() ([]byte, error) {
	type plain ExternalDocs
	return marshalInline(plain(v), v.Extensions)
}
