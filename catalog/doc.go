// Package catalog loads error taxonomies from declarative files and registers
// them on a catastrophic.Registry.
//
// A catalog declares categories and their error kinds in YAML, JSON or CUE:
//
//	categories:
//	  - code: TST
//	    description: Testing category
//	    errors:
//	      - key: tepid_trepidations
//	        number: 0
//	        http_code: 500
//	        description: the function couldn't do it due to excessive worry
//
// Every catalog is validated against a CUE schema before registration.
// Duplicate codes, keys and numbers are left to the Registry, so they are
// reported through its internal category like any other registration.
//
// Files that cannot be read are reported as catastrophic.CatalogUnreadable.
// Files that cannot be decoded or fail the schema are reported as
// catastrophic.CatalogInvalid. Both wrap the underlying error.
package catalog
