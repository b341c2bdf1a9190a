package model

type Category struct {
	BaseModel
	ParentID    *int    `db:"parent_id" json:"parent_id"` // Nullable
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	SortOrder   int     `db:"sort_order" json:"sort_order"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}

type Book struct {
	BaseModel
	CategoryID  *int      `db:"category_id" json:"category_id"` // Nullable
	ISBN        string    `db:"isbn" json:"isbn"`
	Title       string    `db:"title" json:"title"`
	Author      string    `db:"author" json:"author"`
	Publisher   *string   `db:"publisher" json:"publisher"`
	PublishYear *int      `db:"publish_year" json:"publish_year"`
	Price       float64   `db:"price" json:"price"`
	Description *string   `db:"description" json:"description"`
	ImageURL    *string   `db:"image_url" json:"image_url"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	Category    *Category `db:"-" json:"category,omitempty"` // Joined data
}
