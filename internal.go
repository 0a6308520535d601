package catastrophic

import "net/http"

// InternalKey identifies an error kind in the registry's reserved category.
type InternalKey string

const (
	// TriedToUseReservedCategoryCode reports registration of the reserved internal code.
	TriedToUseReservedCategoryCode InternalKey = "tried_to_use_reserved_category_code"

	// NonUniqueCategoryCode reports registration of an already registered code.
	NonUniqueCategoryCode InternalKey = "non_unique_category_code"

	// CategoryCodeContainsSeparator reports a category code containing the separator.
	CategoryCodeContainsSeparator InternalKey = "category_code_contains_separator"

	// NonUniqueErrorKey reports two error kinds sharing a key within one category.
	NonUniqueErrorKey InternalKey = "non_unique_error_key"

	// NonUniqueErrorNumber reports two error kinds sharing a number within one category.
	NonUniqueErrorNumber InternalKey = "non_unique_error_number"

	// CatalogUnreadable reports a catalog file that could not be read.
	CatalogUnreadable InternalKey = "catalog_unreadable"

	// CatalogInvalid reports a catalog file that could not be decoded or validated.
	CatalogInvalid InternalKey = "catalog_invalid"
)

// internalDescription describes the reserved category.
const internalDescription = "Errors from within the catastrophe registry"

// internalKinds is the taxonomy of the reserved category.
// Numbers are part of the public identity and must never be reassigned.
var internalKinds = Kinds[InternalKey]{
	{TriedToUseReservedCategoryCode, ErrorSpec{
		UniqueNumber: 0,
		HTTPCode:     http.StatusInternalServerError,
		Description:  "Tried to use reserved internal category code",
	}},
	{NonUniqueCategoryCode, ErrorSpec{
		UniqueNumber: 1,
		HTTPCode:     http.StatusInternalServerError,
		Description:  "Tried to register two categories with the same category code",
	}},
	{CategoryCodeContainsSeparator, ErrorSpec{
		UniqueNumber: 2,
		HTTPCode:     http.StatusInternalServerError,
		Description:  "Category code contains separator, this is not allowed",
	}},
	{NonUniqueErrorKey, ErrorSpec{
		UniqueNumber: 3,
		HTTPCode:     http.StatusInternalServerError,
		Description:  "Tried to register two errors with the same key in a single category",
	}},
	{NonUniqueErrorNumber, ErrorSpec{
		UniqueNumber: 4,
		HTTPCode:     http.StatusInternalServerError,
		Description:  "Tried to register two errors with the same number in a single category",
	}},
	{CatalogUnreadable, ErrorSpec{
		UniqueNumber: 5,
		HTTPCode:     http.StatusInternalServerError,
		Description:  "Failed to read error catalog",
	}},
	{CatalogInvalid, ErrorSpec{
		UniqueNumber: 6,
		HTTPCode:     http.StatusInternalServerError,
		Description:  "Error catalog is malformed",
	}},
}

// KindConflict annotates NonUniqueErrorKey and NonUniqueErrorNumber.
type KindConflict struct {
	// Category is the category being registered.
	Category CategorySpec

	// Key is the key of the conflicting kind.
	Key any

	// Number is the unique number of the conflicting kind.
	Number int
}
