package catalog

import (
	"github.com/jmgilman/go/catastrophic"
)

// Document is the decoded content of one or more catalog files.
type Document struct {
	Categories []CategoryDocument `json:"categories" yaml:"categories"`
}

// CategoryDocument declares one category.
type CategoryDocument struct {
	Code        string          `json:"code" yaml:"code"`
	Description string          `json:"description" yaml:"description"`
	Errors      []ErrorDocument `json:"errors" yaml:"errors"`
}

// ErrorDocument declares one error kind.
type ErrorDocument struct {
	Key         string `json:"key" yaml:"key"`
	Number      int    `json:"number" yaml:"number"`
	HTTPCode    int    `json:"http_code" yaml:"http_code"`
	Description string `json:"description" yaml:"description"`
}

// Spec converts the document to a category declaration.
func (c CategoryDocument) Spec() catastrophic.CategorySpec {
	return catastrophic.CategorySpec{
		UniqueCode:  c.Code,
		Description: c.Description,
	}
}

// Kinds converts the declared errors to kinds keyed by their catalog key.
// Declaration order is preserved.
func (c CategoryDocument) Kinds() catastrophic.Kinds[string] {
	kinds := make(catastrophic.Kinds[string], 0, len(c.Errors))
	for _, e := range c.Errors {
		kinds = append(kinds, catastrophic.Kind[string]{
			Key: e.Key,
			Spec: catastrophic.ErrorSpec{
				UniqueNumber: e.Number,
				HTTPCode:     e.HTTPCode,
				Description:  e.Description,
			},
		})
	}
	return kinds
}

// normalize replaces nil lists with empty ones so the document encodes to
// lists rather than nulls.
func (d *Document) normalize() {
	if d.Categories == nil {
		d.Categories = []CategoryDocument{}
	}
	for i := range d.Categories {
		if d.Categories[i].Errors == nil {
			d.Categories[i].Errors = []ErrorDocument{}
		}
	}
}

// Register registers every category of doc on r in document order and
// returns the factories keyed by category code.
//
// Registration stops at the first violation, which is returned unchanged.
// Categories registered before the violation stay registered.
func Register(r *catastrophic.Registry, doc *Document) (map[string]catastrophic.Factories[string], error) {
	factories := make(map[string]catastrophic.Factories[string], len(doc.Categories))
	for _, category := range doc.Categories {
		f, err := catastrophic.RegisterCategory(r, category.Spec(), category.Kinds())
		if err != nil {
			return nil, err
		}
		factories[category.Code] = f
	}
	return factories, nil
}
