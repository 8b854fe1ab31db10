package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failure so callers can branch on it instead of matching messages
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindTransport covers network, HTTP status, auth, timeout and top-level GraphQL errors
	KindTransport
	// KindFieldValidation means the remote platform rejected field values (userErrors)
	KindFieldValidation
	// KindNotFound means a referenced entity is absent
	KindNotFound
	// KindPersistence covers local store read/write failures
	KindPersistence
	// KindPartialSync means one step of a multi-step sync succeeded and a later one failed
	KindPartialSync
	// KindUnlinkedProduct means a remote product was created but no local link was recorded
	KindUnlinkedProduct
	// KindInvalidInput means the caller supplied an unusable payload
	KindInvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindFieldValidation:
		return "field_validation"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	case KindPartialSync:
		return "partial_sync"
	case KindUnlinkedProduct:
		return "unlinked_product"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

var (
	// ErrChannelNotFound is wrapped by the NotFound error returned when the storefront publication is missing
	ErrChannelNotFound = errors.New("storefront sales channel not found")
	// ErrAlreadyExists is wrapped when a unique per-shop record is created twice
	ErrAlreadyExists = errors.New("record already exists")
	// ErrProductNotLinked is wrapped when a shop has no provisioned gift wrap product
	ErrProductNotLinked = errors.New("gift wrap product not linked")
)

// FieldError is a single userErrors entry returned by the remote platform
type FieldError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

func (f FieldError) String() string {
	field := strings.Join(f.Field, ".")
	if field == "" {
		return f.Message
	}
	return field + ": " + f.Message
}

// Error is the tagged error returned by stores, the catalog client and the workflows
type Error struct {
	Kind ErrorKind
	Op   string
	// Fields is set for KindFieldValidation
	Fields []FieldError
	// Completed lists the steps that succeeded before a KindPartialSync failure
	Completed []string
	// ProductID is the orphaned remote product for KindUnlinkedProduct
	ProductID string
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.String())

	switch e.Kind {
	case KindFieldValidation:
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.String())
		}
		if len(parts) > 0 {
			b.WriteString(": ")
			b.WriteString(strings.Join(parts, "; "))
		}
	case KindPartialSync:
		if len(e.Completed) > 0 {
			fmt.Fprintf(&b, " (completed: %s)", strings.Join(e.Completed, ", "))
		}
	case KindUnlinkedProduct:
		if e.ProductID != "" {
			fmt.Fprintf(&b, " (product %s)", e.ProductID)
		}
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a failure to reach or talk to the remote platform
func NewTransportError(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

// NewFieldValidationError carries the userErrors list of a rejected mutation
func NewFieldValidationError(op string, fields []FieldError) *Error {
	return &Error{Kind: KindFieldValidation, Op: op, Fields: fields}
}

// NewNotFoundError reports an absent entity
func NewNotFoundError(op string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

// NewPersistenceError wraps a local store failure
func NewPersistenceError(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Op: op, Err: err}
}

// NewPartialSyncError reports a sync that applied the completed steps and then failed
func NewPartialSyncError(op string, completed []string, err error) *Error {
	return &Error{Kind: KindPartialSync, Op: op, Completed: completed, Err: err}
}

// NewUnlinkedProductError reports a remote product that exists without a local link
func NewUnlinkedProductError(op string, productID string, err error) *Error {
	return &Error{Kind: KindUnlinkedProduct, Op: op, ProductID: productID, Err: err}
}

// NewInvalidInputError reports an unusable caller payload
func NewInvalidInputError(op string, msg string) *Error {
	return &Error{Kind: KindInvalidInput, Op: op, Err: errors.New(msg)}
}

// KindOf returns the kind of the outermost *Error in err's chain
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether the outermost *Error in err's chain has the given kind
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// FieldErrorsOf returns the userErrors carried anywhere in err's chain
func FieldErrorsOf(err error) []FieldError {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return nil
		}
		if e.Kind == KindFieldValidation {
			return e.Fields
		}
		err = e.Err
	}
	return nil
}
