package dto

type BookFilters struct {
	CategoryID  int
	SearchQuery string
	IsActive    *bool
	Page        int
	PageSize    int
}
