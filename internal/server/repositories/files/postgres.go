package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/dmitrijs2005/dogbox/internal/dbx"
	"github.com/dmitrijs2005/dogbox/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]*models.File, error) {
	query := `SELECT id, owner_id, name, bytes, created_at FROM files
		WHERE owner_id=$1 ORDER BY created_at, name`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := make([]*models.File, 0)
	for rows.Next() {
		var item models.File
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Bytes, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.File) error {
	query := `INSERT INTO files (id, owner_id, name, bytes)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, file.ID, file.OwnerID, file.Name, file.Bytes).Scan(&file.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("file %q: %w", file.Name, common.ErrAlreadyExists)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, ownerID, name string) (*models.File, error) {
	query := `SELECT id, owner_id, name, bytes, created_at FROM files
		WHERE owner_id=$1 AND name=$2`

	result := &models.File{}
	err := r.db.QueryRowContext(ctx, query, ownerID, name).
		Scan(&result.ID, &result.OwnerID, &result.Name, &result.Bytes, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("file %q: %w", name, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM files WHERE id=$1 AND owner_id=$2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	switch n {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("file id %s: %w", id, common.ErrNotFound)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
