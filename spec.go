package catastrophic

// CategorySpec declares a namespace of related error kinds.
//
// UniqueCode is a developer-facing identifier. It should only ever be exposed
// in debug output and logs, never to end users.
type CategorySpec struct {
	// UniqueCode namespaces every error kind in the category.
	// It must be unique within a Registry and must not contain the separator.
	UniqueCode string `json:"unique_code" yaml:"unique_code"`

	// Description is a human-readable summary of the category.
	Description string `json:"description" yaml:"description"`
}

// ErrorSpec declares one kind of error.
//
// UniqueNumber is part of the error's identity. Once shipped, a number must
// always refer to the same error so that identities stay stable across
// releases.
type ErrorSpec struct {
	// UniqueNumber identifies the error within its category.
	UniqueNumber int `json:"unique_number" yaml:"unique_number"`

	// HTTPCode is the status an HTTP layer should respond with.
	// It is a hint only and is never interpreted by this package.
	HTTPCode int `json:"http_code" yaml:"http_code"`

	// Description is a human-readable summary of the error.
	Description string `json:"description" yaml:"description"`
}

// Kind pairs an ErrorSpec with the key used to look up its factory.
type Kind[K comparable] struct {
	Key  K
	Spec ErrorSpec
}

// Kinds is an ordered collection of error kinds belonging to one category.
//
// Order is preserved so that registration reports conflicts deterministically.
// Keys and unique numbers must both be distinct within the collection.
type Kinds[K comparable] []Kind[K]

// Keys returns the keys of the collection in declaration order.
func (k Kinds[K]) Keys() []K {
	keys := make([]K, 0, len(k))
	for _, kind := range k {
		keys = append(keys, kind.Key)
	}
	return keys
}
