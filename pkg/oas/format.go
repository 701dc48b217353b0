package oas

import "strings"

const (
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeObject  = "object"
	TypeArray   = "array"
)

const (
	FormatInt32    = "int32"
	FormatInt64    = "int64"
	FormatFloat    = "float"
	FormatDouble   = "double"
	FormatByte     = "byte"
	FormatBinary   = "binary"
	FormatDate     = "date"
	FormatDateTime = "date-time"
	FormatPassword = "password"
)

// TypeFormat is the OpenAPI type and optional format of a column.
type TypeFormat struct {
	Type   string
	Format string
}

var columnTypes = map[string]TypeFormat{
	"bigint":    {TypeInteger, FormatInt64},
	"mediumint": {TypeInteger, FormatInt64},

	"int":        {TypeInteger, FormatInt32},
	"integer":    {TypeInteger, FormatInt32},
	"rowid":      {TypeInteger, FormatInt32},
	"smallint":   {TypeInteger, FormatInt32},
	"tinyint":    {TypeInteger, FormatInt32},
	"tinyint(1)": {TypeInteger, FormatInt32},

	"float": {TypeNumber, FormatFloat},

	"decimal":          {TypeNumber, FormatDouble},
	"double":           {TypeNumber, FormatDouble},
	"double precision": {TypeNumber, FormatDouble},
	"number":           {TypeNumber, FormatDouble},
	"numeric":          {TypeNumber, FormatDouble},

	"bool":    {TypeBoolean, ""},
	"boolean": {TypeBoolean, ""},

	"date": {TypeString, FormatDate},

	"datetime":               {TypeString, FormatDateTime},
	"timestamp":              {TypeString, FormatDateTime},
	"time with time zone":    {TypeString, FormatDateTime},
	"time without time zone": {TypeString, FormatDateTime},

	"blob":     {TypeString, FormatBinary},
	"bytea":    {TypeString, FormatBinary},
	"clob":     {TypeString, FormatBinary},
	"nclob":    {TypeString, FormatBinary},
	"raw":      {TypeString, FormatBinary},
	"long raw": {TypeString, FormatBinary},
	"bfile":    {TypeString, FormatBinary},
}

// MapType converts a database column type to an OpenAPI type and format.
// Unknown types are plain strings.
func MapType(dataType string) TypeFormat {
	if tf, ok := columnTypes[strings.ToLower(dataType)]; ok {
		return tf
	}
	return TypeFormat{Type: TypeString}
}
