// Package catastrophic provides a registry of namespaced error categories.
//
// Each module of a larger system declares its own category of errors once and
// receives a set of factories, one per declared error. Factories build
// Catastrophe values carrying a stable identity, an HTTP status hint, a
// captured stack trace and an opaque caller annotation.
//
// # Quick Start
//
// Create one Registry per process and share it:
//
//	registry := catastrophic.MustNew()
//
// Declare a category:
//
//	type userKey string
//
//	const (
//	    ErrUserNotFound userKey = "user_not_found"
//	    ErrUserInvalid  userKey = "user_invalid"
//	)
//
//	var ohno = catastrophic.MustRegisterCategory(registry,
//	    catastrophic.CategorySpec{UniqueCode: "USR", Description: "User errors"},
//	    catastrophic.Kinds[userKey]{
//	        {Key: ErrUserNotFound, Spec: catastrophic.ErrorSpec{UniqueNumber: 0, HTTPCode: 404, Description: "user not found"}},
//	        {Key: ErrUserInvalid, Spec: catastrophic.ErrorSpec{UniqueNumber: 1, HTTPCode: 400, Description: "user is invalid"}},
//	    })
//
// Fail:
//
//	return ohno[ErrUserNotFound](userID)
//
// # Identity
//
// The identity of a Catastrophe is the category code, the separator and the
// error number, e.g. "USR_0". Unique numbers are a compatibility contract: once
// shipped, a number must always refer to the same error.
//
// # Registry Errors
//
// Misuse of the Registry is reported through a reserved internal category
// ("CATASTROPHIC" by default), so registration failures are themselves
// catastrophes:
//
//   - CATASTROPHIC_0: the reserved internal code was reused
//   - CATASTROPHIC_1: a category code was registered twice
//   - CATASTROPHIC_2: a category code contains the separator
//   - CATASTROPHIC_3: two error kinds share a key
//   - CATASTROPHIC_4: two error kinds share a number
//   - CATASTROPHIC_5: an error catalog could not be read
//   - CATASTROPHIC_6: an error catalog is malformed
//
// These are configuration errors. They are meant to surface during
// development and are never retried.
//
// # Standard Library Compatibility
//
// Catastrophe implements error. errors.Is matches catastrophes of the same
// kind and errors.As extracts them from wrapped chains. WithCause attaches an
// underlying error that is reachable through errors.Unwrap.
//
// # Concurrency
//
// Registration is serialized by the Registry. Factories only read validated
// declarations and may be called from any number of goroutines.
package catastrophic
