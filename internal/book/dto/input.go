package dto

type CreateBookInput struct {
	CategoryID  int     `json:"categoryId"`
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Publisher   string  `json:"publisher"`
	PublishYear int     `json:"publishYear"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

type UpdateBookInput struct {
	ID          int
	CategoryID  int     `json:"categoryId"`
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Publisher   string  `json:"publisher"`
	PublishYear int     `json:"publishYear"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	IsActive    bool    `json:"isActive"`
}
