package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (uuid, email, password, full_name, phone, role, is_active, created_at, updated_at)
        VALUES (:uuid, :email, :password, :full_name, :phone, :role, :is_active, :created_at, :updated_at)
        RETURNING id
    `
	rows, err := r.DB.NamedQueryContext(ctx, query, u)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&u.ID)
	}
	return nil
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1 LIMIT 1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *PGRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	var user model.User
	err := r.DB.GetContext(ctx, &user, `SELECT * FROM users WHERE uuid = $1 LIMIT 1`, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *PGRepository) UpdatePassword(ctx context.Context, uuid, hashed string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET password = $1, updated_at = now() WHERE uuid = $2`, hashed, uuid)
	return err
}
