package catastrophic

import (
	"fmt"
	"strconv"

	pkgerrors "github.com/pkg/errors"
)

// noStackTrace is used when the runtime yields no stack frames.
const noStackTrace = "No stack trace available"

// stackTracer is implemented by errors created with github.com/pkg/errors.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Catastrophe is one occurrence of a declared error kind.
//
// A Catastrophe is immutable once created. It carries the stack captured at
// construction time, the declarations it was built from, the separator used
// to derive its identity, and an opaque caller annotation.
type Catastrophe struct {
	native     error
	stack      string
	kind       *ErrorSpec
	category   *CategorySpec
	separator  string
	annotation any
	cause      error
}

// newCatastrophe captures the current stack and builds a Catastrophe.
func newCatastrophe(category *CategorySpec, kind *ErrorSpec, separator string, annotation any) *Catastrophe {
	native := pkgerrors.New("catastrophe")

	stack := noStackTrace
	if st, ok := native.(stackTracer); ok && len(st.StackTrace()) > 0 {
		stack = fmt.Sprintf("%+v", native)
	}

	return &Catastrophe{
		native:     native,
		stack:      stack,
		kind:       kind,
		category:   category,
		separator:  separator,
		annotation: annotation,
	}
}

// Error returns the string representation of the catastrophe.
// Format: "[IDENTITY] description" or "[IDENTITY] description: cause".
func (c *Catastrophe) Error() string {
	if c.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", c.Identity(), c.kind.Description, c.cause)
	}
	return fmt.Sprintf("[%s] %s", c.Identity(), c.kind.Description)
}

// Identity returns the stable identity of the error kind, e.g. "TST_1".
func (c *Catastrophe) Identity() string {
	return c.category.UniqueCode + c.separator + strconv.Itoa(c.kind.UniqueNumber)
}

// IdentityJSON returns the structured form of Identity.
func (c *Catastrophe) IdentityJSON() Identity {
	return Identity{
		ErrorCategory: c.category.UniqueCode,
		ErrorNumber:   c.kind.UniqueNumber,
	}
}

// Native returns the underlying failure captured at construction.
func (c *Catastrophe) Native() error {
	return c.native
}

// Stack returns the stack trace captured at construction. It is never empty.
func (c *Catastrophe) Stack() string {
	return c.stack
}

// Kind returns the declaration of the error kind.
func (c *Catastrophe) Kind() ErrorSpec {
	return *c.kind
}

// Category returns the declaration of the category the error belongs to.
func (c *Catastrophe) Category() CategorySpec {
	return *c.category
}

// Separator returns the separator used to derive Identity.
func (c *Catastrophe) Separator() string {
	return c.separator
}

// Annotation returns the caller-supplied annotation exactly as given.
func (c *Catastrophe) Annotation() any {
	return c.annotation
}

// Cause returns the error attached with WithCause, or nil.
func (c *Catastrophe) Cause() error {
	return c.cause
}

// Unwrap returns the attached cause for errors.Is and errors.As compatibility.
func (c *Catastrophe) Unwrap() error {
	return c.cause
}

// WithCause returns a copy of the catastrophe that wraps cause.
// The receiver is left unchanged.
//
// Example:
//
//	if err := os.Remove(path); err != nil {
//	    return ohno[ErrCleanup](path).WithCause(err)
//	}
func (c *Catastrophe) WithCause(cause error) *Catastrophe {
	clone := *c
	clone.cause = cause
	return &clone
}

// Is reports whether target is a Catastrophe of the same error kind.
// Two catastrophes match when their category codes and unique numbers are equal.
func (c *Catastrophe) Is(target error) bool {
	t, ok := target.(*Catastrophe)
	if !ok || t == nil {
		return false
	}
	return c.category.UniqueCode == t.category.UniqueCode &&
		c.kind.UniqueNumber == t.kind.UniqueNumber
}
