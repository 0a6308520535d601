package catastrophic

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
//
// Catastrophes match by error kind, so a freshly built value can serve as
// the target:
//
//	if catastrophic.Is(err, ohno[ErrNotFound](nil)) {
//	    // Handle not found
//	}
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As extracts the first Catastrophe in err's chain into target, which is
// usually a **Catastrophe:
//
//	var c *catastrophic.Catastrophe
//	if catastrophic.As(err, &c) {
//	    log.Println(c.Identity(), c.Annotation())
//	}
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// IdentityOf extracts the identity record of the first Catastrophe in err's chain.
// Returns false if err is nil or holds no Catastrophe.
func IdentityOf(err error) (Identity, bool) {
	var c *Catastrophe
	if err == nil || !stderrors.As(err, &c) {
		return Identity{}, false
	}
	return c.IdentityJSON(), true
}

// HTTPCodeOf extracts the HTTP status hint of the first Catastrophe in err's chain.
// Returns false if err is nil or holds no Catastrophe.
//
// Example:
//
//	func handleError(w http.ResponseWriter, err error) {
//	    status, ok := catastrophic.HTTPCodeOf(err)
//	    if !ok {
//	        status = http.StatusInternalServerError
//	    }
//	    w.Header().Set("Content-Type", "application/json")
//	    w.WriteHeader(status)
//	    json.NewEncoder(w).Encode(err)
//	}
func HTTPCodeOf(err error) (int, bool) {
	var c *Catastrophe
	if err == nil || !stderrors.As(err, &c) {
		return 0, false
	}
	return c.kind.HTTPCode, true
}
