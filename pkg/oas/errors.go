package oas

import (
	"fmt"
	"strings"
)

// ModelNotFoundError is returned when a configured model identifier is not
// registered.
type ModelNotFoundError struct {
	Model string
}

func (e *ModelNotFoundError) Error() string {
	return "oas: could not find model: " + e.Model
}

// UnknownStatusCodeError is returned for a common response code without a
// known reason phrase.
type UnknownStatusCodeError struct {
	Code int
}

func (e *UnknownStatusCodeError) Error() string {
	return fmt.Sprintf("oas: unknown http status code %d", e.Code)
}

// Issue is a single structural problem of a document.
type Issue struct {
	// Path is the location in the document, e.g. "components.schemas[User].type".
	Path    string
	Message string
}

func (i Issue) String() string {
	return i.Path + " " + i.Message
}

// ValidationError is returned when an assembled document is not a valid
// OpenAPI document.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return "oas: invalid document: " + strings.Join(msgs, "; ")
}

// Messages groups the issue messages by their first whitespace delimited token.
func (e *ValidationError) Messages() map[string][]string {
	out := make(map[string][]string)
	for _, issue := range e.Issues {
		msg := issue.String()
		key := msg
		if fields := strings.Fields(msg); len(fields) > 0 {
			key = fields[0]
		}
		out[key] = append(out[key], msg)
	}
	return out
}
