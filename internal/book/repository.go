package book

import (
	"context"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/book/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
)

type Repository interface {
	Create(ctx context.Context, b *model.Book) error
	FindByID(ctx context.Context, id int) (*model.Book, error)
	FindAll(ctx context.Context, filters *dto.BookFilters) ([]model.Book, int, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int) error
	IsISBNUnique(ctx context.Context, isbn string, excludeID int) (bool, error)
}
