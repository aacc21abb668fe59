package student

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Form messages.
const (
	MsgFirstNameRequired  = "First name is required"
	MsgLastNameRequired   = "Last name is required"
	MsgEmailRequired      = "Email is required"
	MsgEmailInvalid       = "Invalid email address"
	MsgDepartmentRequired = "Department is required"
	MsgGPARequired        = "GPA is required"
	MsgGPARange           = "GPA must be between 0 and 100"
	MsgGPANotNumber       = "GPA must be a number"
)

// formFields is the display order of the form.
var formFields = []string{FieldFirstName, FieldLastName, FieldEmail, FieldDepartment, FieldGPA}

const formSchema = `{
  "type": "object",
  "properties": {
    "firstName":  {"type": "string", "minLength": 1},
    "lastName":   {"type": "string", "minLength": 1},
    "email":      {"type": "string", "minLength": 1, "pattern": "^\\S+@\\S+$"},
    "department": {"type": "string", "minLength": 1},
    "gpa":        {"type": "number", "minimum": 0, "maximum": 100}
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("student-form.json", strings.NewReader(formSchema)); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("student-form.json")
	})
	return schema, schemaErr
}

// Form is the raw text of the add/edit form.
type Form struct {
	FirstName  string
	LastName   string
	Email      string
	Department string
	GPA        string
}

// FormFrom pre-fills a form from an existing record.
func FormFrom(s NewStudent) Form {
	return Form{
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		Email:      s.Email,
		Department: s.Department,
		GPA:        FormatGPA(s.GPA),
	}
}

// Value returns the raw text of field.
func (f Form) Value(field string) string {
	switch field {
	case FieldFirstName:
		return f.FirstName
	case FieldLastName:
		return f.LastName
	case FieldEmail:
		return f.Email
	case FieldDepartment:
		return f.Department
	case FieldGPA:
		return f.GPA
	}
	return ""
}

// With returns f with field set to value.
func (f Form) With(field, value string) Form {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldEmail:
		f.Email = value
	case FieldDepartment:
		f.Department = value
	case FieldGPA:
		f.GPA = value
	}
	return f
}

// document is the JSON instance the schema sees. Blank GPA becomes null and
// non-numeric GPA stays a string so both fail the number type check. NaN and
// the infinities parse but are not JSON numbers, so they stay strings too.
func (f Form) document() map[string]any {
	doc := map[string]any{
		FieldFirstName:  strings.TrimSpace(f.FirstName),
		FieldLastName:   strings.TrimSpace(f.LastName),
		FieldEmail:      strings.TrimSpace(f.Email),
		FieldDepartment: strings.TrimSpace(f.Department),
		FieldGPA:        nil,
	}
	if raw := strings.TrimSpace(f.GPA); raw != "" {
		if gpa, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(gpa) && !math.IsInf(gpa, 0) {
			doc[FieldGPA] = gpa
		} else {
			doc[FieldGPA] = raw
		}
	}
	return doc
}

// Validate checks every field and returns one error per failing field in
// form order. It returns nil when the form can be submitted.
func (f Form) Validate() FieldErrors {
	s, err := compiledSchema()
	if err != nil {
		return FieldErrors{{Message: fmt.Sprintf("schema compilation error: %v", err)}}
	}

	err = s.Validate(f.document())
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return FieldErrors{{Message: err.Error()}}
	}

	byField := map[string]string{}
	collect(verr, f, byField)

	var out FieldErrors
	for _, field := range formFields {
		if msg, ok := byField[field]; ok {
			out = append(out, FieldError{Field: field, Message: msg})
		}
	}
	return out
}

// ValidateField checks a single field and returns its error, if any.
func (f Form) ValidateField(field string) error {
	for _, fe := range f.Validate() {
		if fe.Field == field {
			return errors.New(fe.Message)
		}
	}
	return nil
}

// Student validates the form and converts it to a record.
func (f Form) Student() (NewStudent, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return NewStudent{}, errs
	}
	gpa, _ := strconv.ParseFloat(strings.TrimSpace(f.GPA), 64)
	return NewStudent{
		FirstName:  strings.TrimSpace(f.FirstName),
		LastName:   strings.TrimSpace(f.LastName),
		Email:      strings.TrimSpace(f.Email),
		Department: strings.TrimSpace(f.Department),
		GPA:        gpa,
	}, nil
}

// collect walks the leaf causes of err. A "required" style message replaces
// any other message already recorded for the same field.
func collect(err *jsonschema.ValidationError, f Form, byField map[string]string) {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			collect(cause, f, byField)
		}
		return
	}

	field := strings.TrimPrefix(err.InstanceLocation, "/")
	keyword := err.KeywordLocation[strings.LastIndex(err.KeywordLocation, "/")+1:]
	msg, required := message(field, keyword, f)
	if msg == "" {
		return
	}
	if _, seen := byField[field]; seen && !required {
		return
	}
	byField[field] = msg
}

func message(field, keyword string, f Form) (msg string, required bool) {
	switch field {
	case FieldFirstName:
		return MsgFirstNameRequired, true
	case FieldLastName:
		return MsgLastNameRequired, true
	case FieldDepartment:
		return MsgDepartmentRequired, true
	case FieldEmail:
		if keyword == "pattern" {
			return MsgEmailInvalid, false
		}
		return MsgEmailRequired, true
	case FieldGPA:
		if keyword == "type" {
			if strings.TrimSpace(f.GPA) == "" {
				return MsgGPARequired, true
			}
			return MsgGPANotNumber, false
		}
		return MsgGPARange, false
	}
	return "", false
}

// FieldError is a validation failure of one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors is the set of failures of one form submission.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// For returns the message recorded for field, or "".
func (e FieldErrors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}
