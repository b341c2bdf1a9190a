package model

import "time"

type Shelf struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
}

// Bin is a physical subdivision of a shelf. Its ID is stored as text: legacy
// rows were written with letter-prefixed codes ("B3") as well as bare
// ordinals, so the column type must accept both and lookups must always use
// the identifier exactly as it was supplied.
type Bin struct {
	ID              string    `db:"id" json:"id"`
	ShelfID         *string   `db:"shelf_id" json:"shelf_id"`
	Name            string    `db:"name" json:"name"`
	MaxQuantity     int       `db:"max_quantity" json:"max_quantity"`
	CurrentQuantity int       `db:"current_quantity" json:"current_quantity"`
	Description     *string   `db:"description" json:"description"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// BookBin holds the quantity of one book physically present in one bin.
type BookBin struct {
	BinID    string `db:"bin_id" json:"bin_id"`
	BookID   int    `db:"book_id" json:"book_id"`
	Quantity int    `db:"quantity" json:"quantity"`
}

// Stock is the per-book aggregate across all bins. It is kept equal to the
// sum of that book's book_bins rows by updating both inside one transaction.
type Stock struct {
	BookID    int       `db:"book_id" json:"book_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	MinStock  int       `db:"min_stock" json:"min_stock"`
	MaxStock  int       `db:"max_stock" json:"max_stock"`
	Note      *string   `db:"note" json:"note"`
	Status    string    `db:"status" json:"status"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
