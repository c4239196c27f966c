package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/storage"
)

// CreateSalaryAdjustment persists an adjustment history record.
func (s *SQLiteStore) CreateSalaryAdjustment(ctx context.Context, adjustment *models.SalaryAdjustment) error {
	// Generate ID if not set
	if adjustment.ID == "" {
		adjustment.ID = uuid.New().String()
	}
	if adjustment.CreatedAt == 0 {
		adjustment.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO salary_adjustments (id, designation, mode, magnitude, updated_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		adjustment.ID, adjustment.Designation, adjustment.Mode,
		adjustment.Magnitude.String(), adjustment.UpdatedCount, adjustment.CreatedAt,
	)
	if err != nil {
		return storage.Persistence("insert salary adjustment", err)
	}

	return nil
}

// ListSalaryAdjustments retrieves the adjustment history, newest first.
func (s *SQLiteStore) ListSalaryAdjustments(ctx context.Context) ([]*models.SalaryAdjustment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, designation, mode, magnitude, updated_count, created_at
		 FROM salary_adjustments ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, storage.Persistence("list salary adjustments", err)
	}
	defer rows.Close()

	var adjustments []*models.SalaryAdjustment
	for rows.Next() {
		adjustment := &models.SalaryAdjustment{}
		if err := rows.Scan(&adjustment.ID, &adjustment.Designation, &adjustment.Mode,
			&adjustment.Magnitude, &adjustment.UpdatedCount, &adjustment.CreatedAt); err != nil {
			return nil, storage.Persistence("scan salary adjustment", err)
		}
		adjustments = append(adjustments, adjustment)
	}

	if err := rows.Err(); err != nil {
		return nil, storage.Persistence("iterate salary adjustments", err)
	}

	return adjustments, nil
}
