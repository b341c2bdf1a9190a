package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/book/dto"
	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, b *model.Book) error {
	query := `
        INSERT INTO books (
            category_id, isbn, title, author, publisher, publish_year,
            price, description, image_url, is_active, created_at, updated_at
        )
        VALUES (
            :category_id, :isbn, :title, :author, :publisher, :publish_year,
            :price, :description, :image_url, :is_active, :created_at, :updated_at
        )
        RETURNING id
    `
	rows, err := r.DB.NamedQueryContext(ctx, query, b)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&b.ID)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int) (*model.Book, error) {
	var book model.Book
	err := r.DB.GetContext(ctx, &book, `SELECT * FROM books WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.BookFilters) ([]model.Book, int, error) {
	var books []model.Book
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CategoryID != 0 {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(title ILIKE :search OR author ILIKE :search OR isbn = :isbn)")
		args["search"] = "%" + f.SearchQuery + "%"
		args["isbn"] = f.SearchQuery
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM books" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM books" + whereClause + " ORDER BY title ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &books, args)
	return books, count, err
}

func (r *PGRepository) Update(ctx context.Context, b *model.Book) error {
	query := `
        UPDATE books
        SET category_id = :category_id,
            isbn = :isbn,
            title = :title,
            author = :author,
            publisher = :publisher,
            publish_year = :publish_year,
            price = :price,
            description = :description,
            image_url = :image_url,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, b)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	return err
}

func (r *PGRepository) IsISBNUnique(ctx context.Context, isbn string, excludeID int) (bool, error) {
	var count int
	query := `SELECT count(*) FROM books WHERE isbn = $1 AND id != $2`
	err := r.DB.GetContext(ctx, &count, query, isbn, excludeID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
