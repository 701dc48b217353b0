package oas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/erraggy/oastools/parser"
	oasvalidator "github.com/erraggy/oastools/validator"
	"github.com/go-playground/validator/v10"
)

var (
	versionRe      = regexp.MustCompile(`^3\.0\.\d+$`)
	componentKeyRe = regexp.MustCompile(`^[a-zA-Z0-9.\-_]+$`)
	statusRangeRe  = regexp.MustCompile(`^[1-5]XX$`)
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func documentValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("oasversion", func(fl validator.FieldLevel) bool {
			return versionRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("pathkey", func(fl validator.FieldLevel) bool {
			return strings.HasPrefix(fl.Field().String(), "/")
		})
		_ = v.RegisterValidation("responsekey", func(fl validator.FieldLevel) bool {
			return isResponseKey(fl.Field().String())
		})
		_ = v.RegisterValidation("componentkey", func(fl validator.FieldLevel) bool {
			return componentKeyRe.MatchString(fl.Field().String())
		})
		v.RegisterStructValidation(documentSecurity, Document{})
		v.RegisterStructValidation(operationSecurity, Operation{})
		v.RegisterStructValidation(pathParameter, Parameter{})
		validate = v
	})
	return validate
}

func isResponseKey(key string) bool {
	if key == "default" || statusRangeRe.MatchString(key) {
		return true
	}
	code, err := strconv.Atoi(key)
	return err == nil && len(key) == 3 && code >= 100 && code <= 599
}

func topDocument(sl validator.StructLevel) *Document {
	switch d := sl.Top().Interface().(type) {
	case *Document:
		return d
	case Document:
		return &d
	}
	return nil
}

func reportUndefinedSchemes(sl validator.StructLevel, doc *Document, reqs []SecurityRequirement) {
	for _, req := range reqs {
		names := make([]string, 0, len(req))
		for name := range req {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if doc != nil && doc.Components != nil {
				if _, ok := doc.Components.SecuritySchemes[name]; ok {
					continue
				}
			}
			sl.ReportError(reqs, "security", "Security", "securityscheme", name)
		}
	}
}

func documentSecurity(sl validator.StructLevel) {
	doc := sl.Current().Interface().(Document)
	reportUndefinedSchemes(sl, &doc, doc.Security)
}

func operationSecurity(sl validator.StructLevel) {
	op := sl.Current().Interface().(Operation)
	reportUndefinedSchemes(sl, topDocument(sl), op.Security)
}

func pathParameter(sl validator.StructLevel) {
	p := sl.Current().Interface().(Parameter)
	if p.Ref == "" && p.In == "path" && !p.Required {
		sl.ReportError(p.Required, "required", "Required", "pathrequired", "")
	}
}

// Validate checks doc in two passes and returns a *ValidationError listing
// every violation. The first pass applies the field rules declared on the
// model. When it is clean the encoded document goes through the oastools
// validator. Local references are inlined first so that a parameter declared
// through $ref counts for its path template; a reference that cannot be
// resolved stays in place and is reported.
func Validate(ctx context.Context, doc *Document) error {
	issues, err := fieldIssues(ctx, doc)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		if issues, err = documentIssues(doc); err != nil {
			return err
		}
	}
	if len(issues) == 0 {
		return nil
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return &ValidationError{Issues: issues}
}

func fieldIssues(ctx context.Context, doc *Document) ([]Issue, error) {
	err := documentValidator().StructCtx(ctx, doc)
	if err == nil {
		return nil, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{
			Path:    strings.TrimPrefix(fe.Namespace(), "Document."),
			Message: issueMessage(fe),
		})
	}
	return issues, nil
}

func documentIssues(doc *Document) ([]Issue, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("oas: encode for validation: %w", err)
	}
	parsed, err := parser.ParseWithOptions(
		parser.WithBytes(data),
		parser.WithResolveRefs(true),
		parser.WithValidateStructure(true),
	)
	if err != nil {
		return nil, fmt.Errorf("oas: parse for validation: %w", err)
	}
	v := oasvalidator.New()
	v.IncludeWarnings = false
	res, err := v.ValidateParsed(*parsed)
	if err != nil {
		return nil, fmt.Errorf("oas: validate: %w", err)
	}
	issues := make([]Issue, 0, len(res.Errors))
	for _, e := range res.Errors {
		issues = append(issues, Issue{Path: e.Path, Message: e.Message})
	}
	return issues, nil
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without", "required_if":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "url":
		return fmt.Sprintf("must be a valid URL, got %q", fmt.Sprint(fe.Value()))
	case "email":
		return fmt.Sprintf("must be a valid email address, got %q", fmt.Sprint(fe.Value()))
	case "min":
		return fmt.Sprintf("must contain at least %s entries", fe.Param())
	case "oasversion":
		return fmt.Sprintf("must be a 3.0.x version, got %q", fmt.Sprint(fe.Value()))
	case "pathkey":
		return "must begin with a slash"
	case "responsekey":
		return "must be an HTTP status code, a status range or default"
	case "componentkey":
		return "must match " + componentKeyRe.String()
	case "securityscheme":
		return fmt.Sprintf("references undefined security scheme %q", fe.Param())
	case "pathrequired":
		return "must be true for path parameters"
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}
