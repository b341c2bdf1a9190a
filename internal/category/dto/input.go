package dto

type CreateCategoryInput struct {
	ParentID    *int   `json:"parentId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

type UpdateCategoryInput struct {
	ID          int
	ParentID    *int   `json:"parentId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
	IsActive    bool   `json:"isActive"`
}
