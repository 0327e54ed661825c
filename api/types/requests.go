package types

// CatalogQuery carries the catalog controls from the query string
type CatalogQuery struct {
	// Genre is "all" or a genre id
	Genre string `form:"genre"`
	// Sort is one of updated, newest, popular
	Sort string `form:"sort"`
	// Open is the id of the podcast shown in the detail modal
	Open string `form:"open"`
}
