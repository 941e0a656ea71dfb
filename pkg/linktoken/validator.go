package linktoken

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the layout of startDate and endDate
const DateLayout = "2006-01-02"

// Field is a business field a step may require.
type Field string

const (
	FieldVIN           Field = "vin"
	FieldFolderID      Field = "folderId"
	FieldStartDate     Field = "startDate"
	FieldEndDate       Field = "endDate"
	FieldCustomerEmail Field = "customerEmail"
)

var (
	vinPattern      = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
	folderIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)
)

// Validator decides whether a decoded payload may be acted upon.
type Validator struct {
	now func() time.Time
}

// NewValidator creates a validator reading the wall clock.
func NewValidator(opts ...Option) *Validator {
	o := newOptions(opts)
	return &Validator{now: o.now}
}

// Validate runs the checks in order and returns the first failure:
// expiry, then phase, then required fields. Expiry comes first so an old
// link reads as expired even when its phase is also wrong.
func (v *Validator) Validate(p *Payload, accepted PhaseSet, required ...Field) error {
	if p.Exp == 0 || v.now().UnixMilli() >= p.Exp {
		return ErrLinkExpired
	}

	if !accepted.Contains(p.Phase) {
		return &PhaseError{Expected: accepted, Actual: p.Phase}
	}

	return CheckFields(p, required...)
}

// CheckFields runs only the field checks of Validate. It lets a payload be
// vetted before it is minted into links.
func CheckFields(p *Payload, fields ...Field) error {
	for _, field := range fields {
		if err := checkField(p, field); err != nil {
			return err
		}
	}
	return nil
}

func checkField(p *Payload, field Field) error {
	missing := &ValidationError{Field: field, Reason: "is required"}

	switch field {
	case FieldVIN:
		if p.VIN == "" {
			return missing
		}
		// older links carry lower-case VINs
		if !vinPattern.MatchString(strings.ToUpper(p.VIN)) {
			return &ValidationError{Field: field, Reason: "must be 17 characters without I, O or Q"}
		}
	case FieldFolderID:
		if p.FolderID == "" {
			return missing
		}
		if !folderIDPattern.MatchString(p.FolderID) {
			return &ValidationError{Field: field, Reason: "has an invalid format"}
		}
	case FieldStartDate:
		if p.StartDate == "" {
			return missing
		}
		if _, err := time.Parse(DateLayout, p.StartDate); err != nil {
			return &ValidationError{Field: field, Reason: "must be YYYY-MM-DD"}
		}
	case FieldEndDate:
		if p.EndDate == "" {
			return missing
		}
		end, err := time.Parse(DateLayout, p.EndDate)
		if err != nil {
			return &ValidationError{Field: field, Reason: "must be YYYY-MM-DD"}
		}
		if start, err := time.Parse(DateLayout, p.StartDate); err == nil && end.Before(start) {
			return &ValidationError{Field: field, Reason: "must not be before startDate"}
		}
	case FieldCustomerEmail:
		if p.CustomerEmail == "" {
			return missing
		}
		if _, err := mail.ParseAddress(p.CustomerEmail); err != nil {
			return &ValidationError{Field: field, Reason: "is not a valid email address"}
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	return nil
}

// Option configures a Validator or Sequencer.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
