package catastrophic

// Category owns one namespace of error kinds and manufactures catastrophes
// for them.
//
// A Category is validated once, when it is registered, and is read-only
// afterwards. Die is safe for concurrent use.
type Category struct {
	separator string
	spec      *CategorySpec
	kinds     []*ErrorSpec
	byNumber  map[int]*ErrorSpec
}

// newCategory validates kinds and builds a Category.
// Violations are reported through the registry's internal category.
func newCategory[K comparable](r *Registry, spec *CategorySpec, kinds Kinds[K]) (*Category, error) {
	c := &Category{
		separator: r.separator,
		spec:      spec,
		kinds:     make([]*ErrorSpec, 0, len(kinds)),
		byNumber:  make(map[int]*ErrorSpec, len(kinds)),
	}

	keys := make(map[K]struct{}, len(kinds))
	for _, kind := range kinds {
		if _, ok := keys[kind.Key]; ok {
			return nil, r.fail(NonUniqueErrorKey, KindConflict{
				Category: *spec,
				Key:      kind.Key,
				Number:   kind.Spec.UniqueNumber,
			})
		}
		if _, ok := c.byNumber[kind.Spec.UniqueNumber]; ok {
			return nil, r.fail(NonUniqueErrorNumber, KindConflict{
				Category: *spec,
				Key:      kind.Key,
				Number:   kind.Spec.UniqueNumber,
			})
		}

		keys[kind.Key] = struct{}{}
		kindSpec := kind.Spec
		c.kinds = append(c.kinds, &kindSpec)
		c.byNumber[kindSpec.UniqueNumber] = &kindSpec
	}

	return c, nil
}

// Spec returns the category declaration.
func (c *Category) Spec() CategorySpec {
	return *c.spec
}

// Kinds returns the declared error kinds in declaration order.
func (c *Category) Kinds() []ErrorSpec {
	kinds := make([]ErrorSpec, 0, len(c.kinds))
	for _, k := range c.kinds {
		kinds = append(kinds, *k)
	}
	return kinds
}

// Kind returns the error kind declared with the given unique number.
func (c *Category) Kind(number int) (ErrorSpec, bool) {
	k, ok := c.byNumber[number]
	if !ok {
		return ErrorSpec{}, false
	}
	return *k, true
}

// Die builds a Catastrophe for the kind declared with number.
// The annotation is stored verbatim, including nil.
//
// Die never fails for a declared number. An undeclared number yields an
// ok of false and a nil Catastrophe.
func (c *Category) Die(number int, annotation any) (*Catastrophe, bool) {
	k, ok := c.byNumber[number]
	if !ok {
		return nil, false
	}
	return c.die(k, annotation), true
}

// die builds a Catastrophe for a kind owned by this category.
func (c *Category) die(kind *ErrorSpec, annotation any) *Catastrophe {
	return newCatastrophe(c.spec, kind, c.separator, annotation)
}

// bind returns one factory per declared key.
// Kinds must be the collection the category was built from.
func bind[K comparable](c *Category, kinds Kinds[K]) Factories[K] {
	factories := make(Factories[K], len(kinds))
	for i, kind := range kinds {
		spec := c.kinds[i]
		factories[kind.Key] = func(annotation any) *Catastrophe {
			return c.die(spec, annotation)
		}
	}
	return factories
}
