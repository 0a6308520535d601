package catastrophic

import (
	"encoding/json"
)

// Identity is the structured identity record of a Catastrophe.
// It is the only wire representation this package defines.
type Identity struct {
	// ErrorCategory is the unique code of the category.
	ErrorCategory string `json:"error_category"`

	// ErrorNumber is the unique number of the error kind within its category.
	ErrorNumber int `json:"error_number"`
}

// MarshalJSON implements json.Marshaler for Catastrophe.
// Only the identity record is emitted. The stack, annotation and cause are
// left out so that internal details never leak through API responses.
//
// Example:
//
//	data, _ := json.Marshal(ohno[TooBoring]("payload"))
//	// Output: {"error_category":"TST","error_number":1}
func (c *Catastrophe) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.IdentityJSON())
}
