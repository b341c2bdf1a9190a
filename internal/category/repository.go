package category

import (
	"context"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/category/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
)

type Repository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id int) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id int) error
	CountBooks(ctx context.Context, categoryID int) (int, error)
}
