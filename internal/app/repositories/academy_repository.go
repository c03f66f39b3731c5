package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
)

// AcademyRepository handles database operations for academy settings
type AcademyRepository struct {
	db *pgxpool.Pool
}

// NewAcademyRepository creates a new AcademyRepository
func NewAcademyRepository(db *pgxpool.Pool) *AcademyRepository {
	return &AcademyRepository{db: db}
}

// GetAll retrieves every academy setting ordered by key
func (r *AcademyRepository) GetAll(ctx context.Context) ([]models.AcademyInfo, error) {
	rows, err := r.db.Query(ctx, `SELECT id, key, value FROM academy_info ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving academy info: %w", err)
	}
	defer rows.Close()

	var infos []models.AcademyInfo
	for rows.Next() {
		var info models.AcademyInfo
		if err := rows.Scan(&info.ID, &info.Key, &info.Value); err != nil {
			return nil, fmt.Errorf("error scanning academy info row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Upsert writes one setting, inserting or replacing by key
func (r *AcademyRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO academy_info (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("error upserting academy info %q: %w", key, err)
	}
	return nil
}
