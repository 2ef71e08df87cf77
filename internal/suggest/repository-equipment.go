package suggest

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkoskela/liftapp/internal/sqlite"
)

// sqliteEquipmentRepository reads gym equipment inventories.
type sqliteEquipmentRepository struct {
	baseRepository
}

func newSQLiteEquipmentRepository(db *sqlite.Database) *sqliteEquipmentRepository {
	return &sqliteEquipmentRepository{
		baseRepository: newBaseRepository(db),
	}
}

// ListForLocation returns the equipment registered at a gym location. An
// unknown or empty location yields an empty list; the caller decides the
// fallback.
func (r *sqliteEquipmentRepository) ListForLocation(ctx context.Context, locationID int) (_ []string, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT equipment_name
		FROM gym_equipment
		WHERE location_id = ?
		ORDER BY equipment_name`, locationID)
	if err != nil {
		return nil, fmt.Errorf("query gym equipment: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var names []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan equipment name: %w", err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return names, nil
}
