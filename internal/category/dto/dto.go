package dto

type CategoryFilters struct {
	ParentID *int
	IsActive *bool
	Page     int
	PageSize int
}
