package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/book"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/book/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/cache"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/logger"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/pkg/search"
	"go.uber.org/zap"
)

const booksIndex = "books"

type bookUseCase struct {
	repo   book.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
}

func NewBookUseCase(repo book.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) book.UseCase {
	return &bookUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *bookUseCase) CreateBook(ctx context.Context, input *dto.CreateBookInput) (*model.Book, error) {
	if input.Title == "" {
		return nil, apperrors.New(apperrors.KindValidation, "title is required")
	}
	if input.ISBN == "" {
		return nil, apperrors.New(apperrors.KindValidation, "isbn is required")
	}
	if input.Price < 0 {
		return nil, apperrors.New(apperrors.KindValidation, "price must not be negative")
	}

	unique, err := uc.repo.IsISBNUnique(ctx, input.ISBN, 0)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperrors.Newf(apperrors.KindConflict, "isbn %s already exists", input.ISBN)
	}

	now := time.Now()

	b := &model.Book{
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
		ISBN:      input.ISBN,
		Title:     input.Title,
		Author:    input.Author,
		Price:     input.Price,
		IsActive:  true,
	}
	if input.CategoryID != 0 {
		catID := input.CategoryID
		b.CategoryID = &catID
	}
	if input.Publisher != "" {
		pub := input.Publisher
		b.Publisher = &pub
	}
	if input.PublishYear != 0 {
		year := input.PublishYear
		b.PublishYear = &year
	}
	if input.Description != "" {
		desc := input.Description
		b.Description = &desc
	}
	if input.ImageURL != "" {
		img := input.ImageURL
		b.ImageURL = &img
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	go uc.invalidateBookCache(context.Background())
	go uc.syncToElastic(context.Background(), b)

	return b, nil
}

func (uc *bookUseCase) syncToElastic(ctx context.Context, b *model.Book) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"isbn": { "type": "keyword" },
				"title": { "type": "text" },
				"author": { "type": "text" },
				"publisher": { "type": "text" },
				"description": { "type": "text" },
				"price": { "type": "double" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, booksIndex, mapping)

	if err := uc.es.Index(ctx, booksIndex, fmt.Sprintf("%d", b.ID), b); err != nil {
		uc.logger.Error("failed to index book", zap.Error(err))
	}
}

func (uc *bookUseCase) GetBook(ctx context.Context, id int) (*model.Book, error) {
	b, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "book %d not found", id)
	}
	return b, nil
}

func (uc *bookUseCase) ListBooks(ctx context.Context, filters *dto.BookFilters) ([]model.Book, int, error) {
	cacheKey, keyErr := uc.generateCacheKey(filters)
	if keyErr == nil && uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var result struct {
				Books []model.Book
				Count int
			}
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Books, result.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"query_string": map[string]interface{}{
					"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
					"fields": []string{"title^3", "author", "isbn", "publisher", "description"},
				},
			},
			"from": (filters.Page - 1) * filters.PageSize,
		}
		if filters.PageSize > 0 {
			q["size"] = filters.PageSize
		}

		res, err := uc.es.Search(ctx, booksIndex, q)
		if err == nil {
			var esBooks []model.Book
			for _, hit := range res.Hits.Hits {
				var b model.Book
				if err := json.Unmarshal(hit.Source, &b); err == nil {
					esBooks = append(esBooks, b)
				}
			}
			return esBooks, res.Hits.Total.Value, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	books, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" && uc.cache != nil {
		cacheData := struct {
			Books []model.Book
			Count int
		}{
			Books: books,
			Count: count,
		}
		if data, err := json.Marshal(cacheData); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return books, count, nil
}

func (uc *bookUseCase) generateCacheKey(filters *dto.BookFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("books:list:%x", md5.Sum(data)), nil
}

func (uc *bookUseCase) invalidateBookCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "books:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *bookUseCase) UpdateBook(ctx context.Context, input *dto.UpdateBookInput) (*model.Book, error) {
	b, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "book %d not found", input.ID)
	}

	if input.ISBN == "" {
		return nil, apperrors.New(apperrors.KindValidation, "isbn is required")
	}
	if input.Price < 0 {
		return nil, apperrors.New(apperrors.KindValidation, "price must not be negative")
	}

	if b.ISBN != input.ISBN {
		unique, err := uc.repo.IsISBNUnique(ctx, input.ISBN, b.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, apperrors.Newf(apperrors.KindConflict, "isbn %s already exists", input.ISBN)
		}
	}

	b.ISBN = input.ISBN
	b.Title = input.Title
	b.Author = input.Author
	b.Price = input.Price
	b.IsActive = input.IsActive
	if input.CategoryID != 0 {
		catID := input.CategoryID
		b.CategoryID = &catID
	} else {
		b.CategoryID = nil
	}
	if input.Publisher != "" {
		pub := input.Publisher
		b.Publisher = &pub
	} else {
		b.Publisher = nil
	}
	if input.PublishYear != 0 {
		year := input.PublishYear
		b.PublishYear = &year
	} else {
		b.PublishYear = nil
	}
	if input.Description != "" {
		desc := input.Description
		b.Description = &desc
	} else {
		b.Description = nil
	}
	if input.ImageURL != "" {
		img := input.ImageURL
		b.ImageURL = &img
	} else {
		b.ImageURL = nil
	}

	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	go uc.invalidateBookCache(context.Background())
	go uc.syncToElastic(context.Background(), b)

	return b, nil
}

func (uc *bookUseCase) DeleteBook(ctx context.Context, id int) error {
	b, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return apperrors.Newf(apperrors.KindNotFound, "book %d not found", id)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateBookCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), booksIndex, fmt.Sprintf("%d", id)); err != nil {
				uc.logger.Error("failed to delete book from ES", zap.Error(err))
			}
		}()
	}

	return nil
}
