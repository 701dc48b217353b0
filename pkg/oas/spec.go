package oas

// Version is the OpenAPI version emitted when the configuration does not name one.
const Version = "3.0.2"

// Document represents an OpenAPI 3.0 Object
//
// https://github.com/OAI/OpenAPI-Specification/blob/master/versions/3.0.2.md#oasObject
type Document struct {
	OpenAPI      string                `json:"openapi" yaml:"openapi" validate:"required,oasversion"`
	Info         Info                  `json:"info" yaml:"info"`
	Servers      []Server              `json:"servers,omitempty" yaml:"servers,omitempty" validate:"omitempty,dive"`
	Paths        Paths                 `json:"paths" yaml:"paths" validate:"dive,keys,pathkey,endkeys,required"`
	Components   *Components           `json:"components,omitempty" yaml:"components,omitempty"`
	Security     []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
	Tags         []Tag                 `json:"tags,omitempty" yaml:"tags,omitempty" validate:"omitempty,dive"`
	ExternalDocs *ExternalDocs         `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
	Extensions   Extensions            `json:"-" yaml:",inline"`
}

type Info struct {
	Title          string     `json:"title" yaml:"title" validate:"required"`
	Description    string     `json:"description,omitempty" yaml:"description,omitempty"`
	TermsOfService string     `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty" validate:"omitempty,url"`
	Contact        *Contact   `json:"contact,omitempty" yaml:"contact,omitempty"`
	License        *License   `json:"license,omitempty" yaml:"license,omitempty"`
	Version        string     `json:"version" yaml:"version" validate:"required"`
	Extensions     Extensions `json:"-" yaml:",inline"`
}

type Contact struct {
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	URL        string     `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	Email      string     `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Extensions Extensions `json:"-" yaml:",inline"`
}

type License struct {
	Name       string     `json:"name" yaml:"name" validate:"required"`
	URL        string     `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	Extensions Extensions `json:"-" yaml:",inline"`
}

type Server struct {
	URL         string                     `json:"url" yaml:"url" validate:"required"`
	Description string                     `json:"description,omitempty" yaml:"description,omitempty"`
	Variables   map[string]*ServerVariable `json:"variables,omitempty" yaml:"variables,omitempty" validate:"omitempty,dive,required"`
	Extensions  Extensions                 `json:"-" yaml:",inline"`
}

type ServerVariable struct {
	Enum        []string   `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default     string     `json:"default" yaml:"default" validate:"required"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Extensions  Extensions `json:"-" yaml:",inline"`
}

// Paths holds the relative paths to the individual endpoints.
type Paths map[string]*PathItem

type PathItem struct {
	Ref         string       `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Summary     string       `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Get         *Operation   `json:"get,omitempty" yaml:"get,omitempty"`
	Put         *Operation   `json:"put,omitempty" yaml:"put,omitempty"`
	Post        *Operation   `json:"post,omitempty" yaml:"post,omitempty"`
	Delete      *Operation   `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options     *Operation   `json:"options,omitempty" yaml:"options,omitempty"`
	Head        *Operation   `json:"head,omitempty" yaml:"head,omitempty"`
	Patch       *Operation   `json:"patch,omitempty" yaml:"patch,omitempty"`
	Trace       *Operation   `json:"trace,omitempty" yaml:"trace,omitempty"`
	Servers     []Server     `json:"servers,omitempty" yaml:"servers,omitempty" validate:"omitempty,dive"`
	Parameters  []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty" validate:"omitempty,dive,required"`
	Extensions  Extensions   `json:"-" yaml:",inline"`
}

// Operations returns the operations of the path item keyed by lower-case method.
func (p *PathItem) Operations() map[string]*Operation {
	ops := make(map[string]*Operation)
	for method, op := range map[string]*Operation{
		"get":     p.Get,
		"put":     p.Put,
		"post":    p.Post,
		"delete":  p.Delete,
		"options": p.Options,
		"head":    p.Head,
		"patch":   p.Patch,
		"trace":   p.Trace,
	} {
		if op != nil {
			ops[method] = op
		}
	}
	return ops
}

type Operation struct {
	Tags         []string              `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary      string                `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description  string                `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs         `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
	OperationID  string                `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters   []*Parameter          `json:"parameters,omitempty" yaml:"parameters,omitempty" validate:"omitempty,dive,required"`
	RequestBody  *RequestBody          `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses    map[string]*Response  `json:"responses" yaml:"responses" validate:"required,min=1,dive,keys,responsekey,endkeys,required"`
	Callbacks    map[string]*Callback  `json:"callbacks,omitempty" yaml:"callbacks,omitempty"`
	Deprecated   bool                  `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Security     []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
	Servers      []Server              `json:"servers,omitempty" yaml:"servers,omitempty" validate:"omitempty,dive"`
	Extensions   Extensions            `json:"-" yaml:",inline"`
}

// Callback maps runtime expressions to the path items describing the
// out-of-band requests.
type Callback map[string]*PathItem

type Parameter struct {
	Ref             string                `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Name            string                `json:"name,omitempty" yaml:"name,omitempty" validate:"required_without=Ref"`
	In              string                `json:"in,omitempty" yaml:"in,omitempty" validate:"required_without=Ref,omitempty,oneof=query header path cookie"`
	Description     string                `json:"description,omitempty" yaml:"description,omitempty"`
	Required        bool                  `json:"required,omitempty" yaml:"required,omitempty"`
	Deprecated      bool                  `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	AllowEmptyValue bool                  `json:"allowEmptyValue,omitempty" yaml:"allowEmptyValue,omitempty"`
	Style           string                `json:"style,omitempty" yaml:"style,omitempty"`
	Explode         *bool                 `json:"explode,omitempty" yaml:"explode,omitempty"`
	AllowReserved   bool                  `json:"allowReserved,omitempty" yaml:"allowReserved,omitempty"`
	Schema          *Schema               `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example         any                   `json:"example,omitempty" yaml:"example,omitempty"`
	Examples        map[string]*Example   `json:"examples,omitempty" yaml:"examples,omitempty"`
	Content         map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`
	Extensions      Extensions            `json:"-" yaml:",inline"`
}

type RequestBody struct {
	Ref         string                `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool                  `json:"required,omitempty" yaml:"required,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty" validate:"required_without=Ref"`
	Extensions  Extensions            `json:"-" yaml:",inline"`
}

type MediaType struct {
	Schema     *Schema              `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example    any                  `json:"example,omitempty" yaml:"example,omitempty"`
	Examples   map[string]*Example  `json:"examples,omitempty" yaml:"examples,omitempty"`
	Encoding   map[string]*Encoding `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Extensions Extensions           `json:"-" yaml:",inline"`
}

type Encoding struct {
	ContentType   string             `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Headers       map[string]*Header `json:"headers,omitempty" yaml:"headers,omitempty"`
	Style         string             `json:"style,omitempty" yaml:"style,omitempty"`
	Explode       *bool              `json:"explode,omitempty" yaml:"explode,omitempty"`
	AllowReserved bool               `json:"allowReserved,omitempty" yaml:"allowReserved,omitempty"`
	Extensions    Extensions         `json:"-" yaml:",inline"`
}

type Example struct {
	Ref           string     `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Summary       string     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Value         any        `json:"value,omitempty" yaml:"value,omitempty"`
	ExternalValue string     `json:"externalValue,omitempty" yaml:"externalValue,omitempty"`
	Extensions    Extensions `json:"-" yaml:",inline"`
}

type Response struct {
	Ref         string                `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty" validate:"required_without=Ref"`
	Headers     map[string]*Header    `json:"headers,omitempty" yaml:"headers,omitempty" validate:"omitempty,dive,required"`
	Content     map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`
	Links       map[string]*Link      `json:"links,omitempty" yaml:"links,omitempty" validate:"omitempty,dive,required"`
	Extensions  Extensions            `json:"-" yaml:",inline"`
}

// Link represents a design-time link from a response to an operation.
type Link struct {
	Ref          string         `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	OperationRef string         `json:"operationRef,omitempty" yaml:"operationRef,omitempty"`
	OperationID  string         `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters   map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody  any            `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	Server       *Server        `json:"server,omitempty" yaml:"server,omitempty"`
	Extensions   Extensions     `json:"-" yaml:",inline"`
}

type Header struct {
	Ref             string                `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Description     string                `json:"description,omitempty" yaml:"description,omitempty"`
	Required        bool                  `json:"required,omitempty" yaml:"required,omitempty"`
	Deprecated      bool                  `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	AllowEmptyValue bool                  `json:"allowEmptyValue,omitempty" yaml:"allowEmptyValue,omitempty"`
	Style           string                `json:"style,omitempty" yaml:"style,omitempty"`
	Explode         *bool                 `json:"explode,omitempty" yaml:"explode,omitempty"`
	Schema          *Schema               `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example         any                   `json:"example,omitempty" yaml:"example,omitempty"`
	Examples        map[string]*Example   `json:"examples,omitempty" yaml:"examples,omitempty"`
	Content         map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`
	Extensions      Extensions            `json:"-" yaml:",inline"`
}

// Schema represents an OpenAPI Schema Object
//
// https://github.com/OAI/OpenAPI-Specification/blob/master/versions/3.0.2.md#schemaObject
type Schema struct {
	Ref                  string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Title                string             `json:"title,omitempty" yaml:"title,omitempty"`
	Description          string             `json:"description,omitempty" yaml:"description,omitempty"`
	Type                 string             `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=string number integer boolean array object"`
	Format               string             `json:"format,omitempty" yaml:"format,omitempty"`
	Nullable             *bool              `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Default              any                `json:"default,omitempty" yaml:"default,omitempty"`
	Example              any                `json:"example,omitempty" yaml:"example,omitempty"`
	Enum                 []any              `json:"enum,omitempty" yaml:"enum,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty" validate:"omitempty,dive,required"`
	Items                *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	AllOf                []*Schema          `json:"allOf,omitempty" yaml:"allOf,omitempty" validate:"omitempty,dive,required"`
	OneOf                []*Schema          `json:"oneOf,omitempty" yaml:"oneOf,omitempty" validate:"omitempty,dive,required"`
	AnyOf                []*Schema          `json:"anyOf,omitempty" yaml:"anyOf,omitempty" validate:"omitempty,dive,required"`
	Not                  *Schema            `json:"not,omitempty" yaml:"not,omitempty"`
	Discriminator        *Discriminator     `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	ReadOnly             bool               `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	WriteOnly            bool               `json:"writeOnly,omitempty" yaml:"writeOnly,omitempty"`
	Deprecated           bool               `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	MultipleOf           *float64           `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`
	Minimum              *float64           `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	ExclusiveMinimum     bool               `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	Maximum              *float64           `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMaximum     bool               `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MinLength            *int               `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength            *int               `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern              string             `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinItems             *int               `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems             *int               `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	UniqueItems          bool               `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`
	MinProperties        *int               `json:"minProperties,omitempty" yaml:"minProperties,omitempty"`
	MaxProperties        *int               `json:"maxProperties,omitempty" yaml:"maxProperties,omitempty"`
	XML                  *XML               `json:"xml,omitempty" yaml:"xml,omitempty"`
	ExternalDocs         *ExternalDocs      `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
	Extensions           Extensions         `json:"-" yaml:",inline"`
}

type Discriminator struct {
	PropertyName string            `json:"propertyName" yaml:"propertyName" validate:"required"`
	Mapping      map[string]string `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

type XML struct {
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Namespace  string     `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Prefix     string     `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Attribute  bool       `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Wrapped    bool       `json:"wrapped,omitempty" yaml:"wrapped,omitempty"`
	Extensions Extensions `json:"-" yaml:",inline"`
}

type Components struct {
	Schemas         map[string]*Schema         `json:"schemas,omitempty" yaml:"schemas,omitempty" validate:"omitempty,dive,keys,componentkey,endkeys,required"`
	Responses       map[string]*Response       `json:"responses,omitempty" yaml:"responses,omitempty" validate:"omitempty,dive,keys,componentkey,endkeys,required"`
	Parameters      map[string]*Parameter      `json:"parameters,omitempty" yaml:"parameters,omitempty" validate:"omitempty,dive,keys,componentkey,endkeys,required"`
	Examples        map[string]*Example        `json:"examples,omitempty" yaml:"examples,omitempty" validate:"omitempty,dive,keys,componentkey,endkeys,required"`
	RequestBodies   map[string]*RequestBody    `json:"requestBodies,omitempty" yaml:"requestBodies,omitempty" validate:"omitempty,dive,keys,componentkey,endkeys,required"`
	Headers         map[string]*Header         `json:"headers,omitempty" yaml:"headers,omitempty" validate:"omitempty,dive,keys,componentkey,endkeys,required"`
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty" validate:"omitempty,dive,keys,componentkey,endkeys,required"`
	Links           map[string]*Link           `json:"links,omitempty" yaml:"links,omitempty" validate:"omitempty,dive,keys,componentkey,endkeys,required"`
	Callbacks       map[string]*Callback       `json:"callbacks,omitempty" yaml:"callbacks,omitempty" validate:"omitempty,dive,keys,componentkey,endkeys,required"`
	Extensions      Extensions                 `json:"-" yaml:",inline"`
}

// SecurityScheme represents an OpenAPI Security Scheme Object
//
// https://github.com/OAI/OpenAPI-Specification/blob/master/versions/3.0.2.md#securitySchemeObject
type SecurityScheme struct {
	Ref              string      `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type             string      `json:"type,omitempty" yaml:"type,omitempty" validate:"required_without=Ref,omitempty,oneof=apiKey http oauth2 openIdConnect"`
	Description      string      `json:"description,omitempty" yaml:"description,omitempty"`
	Name             string      `json:"name,omitempty" yaml:"name,omitempty" validate:"required_if=Type apiKey"`
	In               string      `json:"in,omitempty" yaml:"in,omitempty" validate:"required_if=Type apiKey,omitempty,oneof=query header cookie"`
	Scheme           string      `json:"scheme,omitempty" yaml:"scheme,omitempty" validate:"required_if=Type http"`
	BearerFormat     string      `json:"bearerFormat,omitempty" yaml:"bearerFormat,omitempty"`
	Flows            *OAuthFlows `json:"flows,omitempty" yaml:"flows,omitempty" validate:"required_if=Type oauth2"`
	OpenIDConnectURL string      `json:"openIdConnectUrl,omitempty" yaml:"openIdConnectUrl,omitempty" validate:"required_if=Type openIdConnect,omitempty,url"`
	Extensions       Extensions  `json:"-" yaml:",inline"`
}

type OAuthFlows struct {
	Implicit          *OAuthFlow `json:"implicit,omitempty" yaml:"implicit,omitempty"`
	Password          *OAuthFlow `json:"password,omitempty" yaml:"password,omitempty"`
	ClientCredentials *OAuthFlow `json:"clientCredentials,omitempty" yaml:"clientCredentials,omitempty"`
	AuthorizationCode *OAuthFlow `json:"authorizationCode,omitempty" yaml:"authorizationCode,omitempty"`
	Extensions        Extensions `json:"-" yaml:",inline"`
}

type OAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl,omitempty" yaml:"authorizationUrl,omitempty" validate:"omitempty,url"`
	TokenURL         string            `json:"tokenUrl,omitempty" yaml:"tokenUrl,omitempty" validate:"omitempty,url"`
	RefreshURL       string            `json:"refreshUrl,omitempty" yaml:"refreshUrl,omitempty" validate:"omitempty,url"`
	Scopes           map[string]string `json:"scopes" yaml:"scopes"`
	Extensions       Extensions        `json:"-" yaml:",inline"`
}

// SecurityRequirement maps a security scheme name to the scopes it requires.
type SecurityRequirement map[string][]string

type Tag struct {
	Name         string        `json:"name" yaml:"name" validate:"required"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
	Extensions   Extensions    `json:"-" yaml:",inline"`
}

type ExternalDocs struct {
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string     `json:"url" yaml:"url" validate:"required,url"`
	Extensions  Extensions `json:"-" yaml:",inline"`
}
