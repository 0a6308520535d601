package catalog

// schemaSource constrains the shape of a catalog.
// Uniqueness is checked by the Registry, not here.
const schemaSource = `
#Catalog: {
	categories: *[] | [...#Category]
}

#Category: {
	code:        string & !=""
	description: *"" | string
	errors:      *[] | [...#Error]
}

#Error: {
	key:         string & !=""
	number:      int & >=0
	http_code:   int & >=100 & <=599
	description: *"" | string
}
`

// schemaDefinition is the definition catalogs are unified with.
const schemaDefinition = "#Catalog"
