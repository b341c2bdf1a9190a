package category

import (
	"context"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/category/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id int) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}
