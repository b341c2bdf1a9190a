package book

import (
	"context"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/book/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
)

type UseCase interface {
	CreateBook(ctx context.Context, input *dto.CreateBookInput) (*model.Book, error)
	GetBook(ctx context.Context, id int) (*model.Book, error)
	ListBooks(ctx context.Context, filters *dto.BookFilters) ([]model.Book, int, error)
	UpdateBook(ctx context.Context, input *dto.UpdateBookInput) (*model.Book, error)
	DeleteBook(ctx context.Context, id int) error
}
