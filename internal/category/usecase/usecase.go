package usecase

import (
	"context"
	"time"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/category"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/category/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, apperrors.New(apperrors.KindValidation, "name is required")
	}

	if input.ParentID != nil && *input.ParentID != 0 {
		parent, err := uc.repo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperrors.Newf(apperrors.KindNotFound, "parent category %d not found", *input.ParentID)
		}
	}

	now := time.Now()

	cat := &model.Category{
		BaseModel: model.BaseModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
		ParentID:  input.ParentID,
		Name:      input.Name,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.Description != "" {
		desc := input.Description
		cat.Description = &desc
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "category %d not found", id)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "category %d not found", input.ID)
	}

	if input.Name == "" {
		return nil, apperrors.New(apperrors.KindValidation, "name is required")
	}
	if input.ParentID != nil && *input.ParentID == cat.ID {
		return nil, apperrors.New(apperrors.KindValidation, "category cannot be its own parent")
	}

	cat.Name = input.Name
	cat.ParentID = input.ParentID
	cat.SortOrder = input.SortOrder
	cat.IsActive = input.IsActive
	if input.Description != "" {
		desc := input.Description
		cat.Description = &desc
	} else {
		cat.Description = nil
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperrors.Newf(apperrors.KindNotFound, "category %d not found", id)
	}

	inUse, err := uc.repo.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return apperrors.Newf(apperrors.KindConflict, "category %d still has %d books", id, inUse)
	}

	return uc.repo.Delete(ctx, id)
}
