package catastrophic

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// Factory builds a Catastrophe for one declared error kind.
// The annotation is attached verbatim; pass nil when there is nothing to attach.
type Factory func(annotation any) *Catastrophe

// Factories maps each declared key of a category to its Factory.
// It holds exactly one entry per key of the registered Kinds.
type Factories[K comparable] map[K]Factory

// Registry is the process-wide set of error categories.
//
// A Registry enforces that category codes are unique and never contain the
// identity separator. It reserves one category for its own errors, so every
// registration failure is itself a Catastrophe.
//
// Registration is serialized internally. Factories returned by
// RegisterCategory never touch the Registry and are safe for concurrent use.
type Registry struct {
	mu sync.Mutex

	internalCode string
	separator    string
	logger       *slog.Logger

	specs      []*CategorySpec
	codes      map[string]struct{}
	categories map[string]*Category

	meta     *Category
	internal Factories[InternalKey]
}

// New creates a Registry and registers its internal category.
//
// Returns a CategoryCodeContainsSeparator catastrophe if the internal code
// contains the separator, or if the separator is empty.
//
// Example:
//
//	registry, err := catastrophic.New(catastrophic.WithSeparator("-"))
func New(opts ...Option) (*Registry, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Registry{
		internalCode: cfg.internalCode,
		separator:    cfg.separator,
		logger:       cfg.logger,
		codes:        make(map[string]struct{}),
		categories:   make(map[string]*Category),
	}

	// The internal kinds are hard-coded and unique, so this cannot fail.
	spec := CategorySpec{UniqueCode: cfg.internalCode, Description: internalDescription}
	r.meta, _ = newCategory(r, &spec, internalKinds)

	internal, err := RegisterCategory(r, spec, internalKinds)
	if err != nil {
		return nil, err
	}
	r.internal = internal
	r.meta = r.categories[cfg.internalCode]

	return r, nil
}

// MustNew is like New but panics if the configuration is invalid.
func MustNew(opts ...Option) *Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// RegisterCategory declares a category and its error kinds, returning one
// Factory per declared key.
//
// Validation happens in order and stops at the first violation:
//
//   - CategoryCodeContainsSeparator if the code contains the separator
//   - TriedToUseReservedCategoryCode if the code is the internal code
//   - NonUniqueCategoryCode if the code is already registered
//   - NonUniqueErrorKey if two kinds share a key
//   - NonUniqueErrorNumber if two kinds share a unique number
//
// The returned error is always a *Catastrophe from the internal category.
// A failed registration leaves the Registry unchanged: a category rejected
// for a duplicate key or number does not claim its code, so it can be
// registered again once the declarations are fixed.
//
// Example:
//
//	type tstKey string
//
//	const tooBoring tstKey = "too_boring_to_compute"
//
//	ohno, err := catastrophic.RegisterCategory(registry,
//	    catastrophic.CategorySpec{UniqueCode: "TST", Description: "Testing category"},
//	    catastrophic.Kinds[tstKey]{
//	        {Key: tooBoring, Spec: catastrophic.ErrorSpec{UniqueNumber: 1, HTTPCode: 400}},
//	    })
//	...
//	return ohno[tooBoring]("payload")
func RegisterCategory[K comparable](r *Registry, spec CategorySpec, kinds Kinds[K]) (Factories[K], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.Contains(spec.UniqueCode, r.separator) {
		return nil, r.reject(spec, r.fail(CategoryCodeContainsSeparator, spec))
	}

	if _, ok := r.codes[spec.UniqueCode]; ok {
		if spec.UniqueCode == r.internalCode {
			return nil, r.reject(spec, r.fail(TriedToUseReservedCategoryCode, spec))
		}
		return nil, r.reject(spec, r.fail(NonUniqueCategoryCode, spec))
	}

	shared := spec
	category, err := newCategory(r, &shared, kinds)
	if err != nil {
		return nil, r.reject(spec, err)
	}

	r.codes[shared.UniqueCode] = struct{}{}
	r.specs = append(r.specs, &shared)
	r.categories[shared.UniqueCode] = category

	r.logger.Debug("registered error category",
		"code", shared.UniqueCode,
		"kinds", len(kinds),
	)

	return bind(category, kinds), nil
}

// MustRegisterCategory is like RegisterCategory but panics on failure.
// It is intended for package-level declarations evaluated at startup.
func MustRegisterCategory[K comparable](r *Registry, spec CategorySpec, kinds Kinds[K]) Factories[K] {
	factories, err := RegisterCategory(r, spec, kinds)
	if err != nil {
		panic(err)
	}
	return factories
}

// Separator returns the identity separator of the Registry.
func (r *Registry) Separator() string {
	return r.separator
}

// InternalCode returns the category code reserved for the Registry's own errors.
func (r *Registry) InternalCode() string {
	return r.internalCode
}

// Logger returns the logger the Registry reports to.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}

// Internal returns the factory for one of the Registry's own error kinds.
// Packages building on the Registry use it to report their own failures.
// It panics if key is not an internal error kind.
func (r *Registry) Internal(key InternalKey) Factory {
	f, ok := r.internal[key]
	if !ok {
		panic(fmt.Sprintf("catastrophic: unknown internal error key %q", key))
	}
	return f
}

// IsInternal reports whether err's chain holds the internal error kind key.
func (r *Registry) IsInternal(err error, key InternalKey) bool {
	number, ok := internalNumber(key)
	if !ok {
		return false
	}

	var c *Catastrophe
	if !As(err, &c) {
		return false
	}
	return c.category.UniqueCode == r.internalCode && c.kind.UniqueNumber == number
}

// Categories returns the registered category declarations in registration
// order, starting with the internal category.
func (r *Registry) Categories() []CategorySpec {
	r.mu.Lock()
	defer r.mu.Unlock()

	specs := make([]CategorySpec, 0, len(r.specs))
	for _, s := range r.specs {
		specs = append(specs, *s)
	}
	return specs
}

// Category returns the registered category with the given code.
func (r *Registry) Category(code string) (*Category, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[code]
	return c, ok
}

// Lookup resolves an identity such as "TST_1" to its declarations.
func (r *Registry) Lookup(identity string) (CategorySpec, ErrorSpec, bool) {
	code, number, ok := strings.Cut(identity, r.separator)
	if !ok || r.separator == "" {
		return CategorySpec{}, ErrorSpec{}, false
	}

	n, err := strconv.Atoi(number)
	if err != nil {
		return CategorySpec{}, ErrorSpec{}, false
	}

	c, ok := r.Category(code)
	if !ok {
		return CategorySpec{}, ErrorSpec{}, false
	}

	kind, ok := c.Kind(n)
	if !ok {
		return CategorySpec{}, ErrorSpec{}, false
	}
	return c.Spec(), kind, true
}

// fail builds a Catastrophe from the internal category.
func (r *Registry) fail(key InternalKey, annotation any) *Catastrophe {
	number, ok := internalNumber(key)
	if !ok {
		panic(fmt.Sprintf("catastrophic: unknown internal error key %q", key))
	}

	c, _ := r.meta.Die(number, annotation)
	return c
}

// reject logs a failed registration and returns err unchanged.
func (r *Registry) reject(spec CategorySpec, err error) error {
	r.logger.Warn("rejected error category",
		"code", spec.UniqueCode,
		"error", err,
	)
	return err
}

// internalNumber returns the unique number of an internal error kind.
func internalNumber(key InternalKey) (int, bool) {
	for _, kind := range internalKinds {
		if kind.Key == key {
			return kind.Spec.UniqueNumber, true
		}
	}
	return 0, false
}
