package catalog

import (
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/jmgilman/go/catastrophic"
)

// Source annotates catalog failures.
type Source struct {
	// Path is the catalog file or directory that failed.
	Path string

	// Details lists individual problems reported by the decoder or schema.
	// It is empty for read failures.
	Details []string
}

// unreadable reports a file that could not be read.
func (l *Loader) unreadable(path string, err error) error {
	return l.registry.Internal(catastrophic.CatalogUnreadable)(Source{Path: path}).WithCause(err)
}

// invalid reports a file that could not be decoded or failed the schema.
func (l *Loader) invalid(path string, err error) error {
	return l.registry.Internal(catastrophic.CatalogInvalid)(Source{
		Path:    path,
		Details: details(err),
	}).WithCause(err)
}

// details flattens CUE errors into one message per problem.
// Other errors yield their message.
func details(err error) []string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
