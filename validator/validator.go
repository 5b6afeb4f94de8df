package validator

// Collects the fields of one record while its parser walks the markup and checks them once
// the record is finished.

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrDuplicateFieldWrite  = errors.New("duplicate field write")
)

// FieldError names the record type and field an error belongs to.
type FieldError struct {
	Record string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Record, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type field interface {
	fieldName() string
	isSet() bool
	isRequired() bool
}

// Validator accumulates the fields of exactly one record.
type Validator struct {
	record string
	fields []field
	err    error
}

/*
Input: the record type name. Output: an empty Validator.

Cells are declared with Required, Optional, RequiredList and OptionalList and are
checked in declaration order.
*/
func New(record string) *Validator {
	return &Validator{record: record}
}

func (v *Validator) Record() string {
	return v.record
}

// Err returns the first error recorded so far.
func (v *Validator) Err() error {
	return v.err
}

// Fail records err against field unless an earlier error is already recorded.
func (v *Validator) Fail(field string, err error) {
	if v.err != nil {
		return
	}
	v.err = &FieldError{Record: v.record, Field: field, Err: err}
}

/*
No input. Output: whether any field was written, and an error.

The first recorded error wins. Otherwise an unset required field fails with
ErrMissingRequiredField. A record with no written field at all is reported as absent.
*/
func (v *Validator) Validate() (bool, error) {
	if v.err != nil {
		return false, v.err
	}

	present := false
	for _, f := range v.fields {
		if f.isSet() {
			present = true
			continue
		}
		if f.isRequired() {
			return false, &FieldError{Record: v.record, Field: f.fieldName(), Err: ErrMissingRequiredField}
		}
	}

	return present, nil
}

func (v *Validator) add(f field) {
	v.fields = append(v.fields, f)
}

type fieldOptions struct {
	guarded bool
}

type FieldOption func(opts *fieldOptions)

// Guarded makes a field non-overwritable: a second write fails with ErrDuplicateFieldWrite.
func Guarded() FieldOption {
	return func(opts *fieldOptions) {
		opts.guarded = true
	}
}

func buildOptions(opts []FieldOption) fieldOptions {
	options := fieldOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
