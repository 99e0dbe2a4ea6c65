package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"detallado/internal/db"
)

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: database}
}

func (r *VehicleRepository) ListForUser(userID int) ([]db.Vehicle, error) {
	query := `
		SELECT id, user_id, plate, vehicle_type, brand, model, nickname, is_primary, created_at
		FROM vehicles
		WHERE user_id = $1
		ORDER BY is_primary DESC, created_at`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		err := rows.Scan(&v.ID, &v.UserID, &v.Plate, &v.VehicleType, &v.Brand, &v.Model, &v.Nickname, &v.IsPrimary, &v.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepository) GetForUser(id, userID int) (*db.Vehicle, error) {
	var v db.Vehicle
	query := `
		SELECT id, user_id, plate, vehicle_type, brand, model, nickname, is_primary, created_at
		FROM vehicles
		WHERE id = $1 AND user_id = $2`
	err := r.DB.QueryRow(query, id, userID).
		Scan(&v.ID, &v.UserID, &v.Plate, &v.VehicleType, &v.Brand, &v.Model, &v.Nickname, &v.IsPrimary, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying vehicle: %w", err)
	}
	return &v, nil
}

func (r *VehicleRepository) Create(v *db.Vehicle) error {
	query := `
		INSERT INTO vehicles (user_id, plate, vehicle_type, brand, model, nickname, is_primary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at`
	return r.DB.QueryRow(query,
		v.UserID, v.Plate, v.VehicleType, v.Brand, v.Model, v.Nickname, v.IsPrimary).
		Scan(&v.ID, &v.CreatedAt)
}

func (r *VehicleRepository) Update(v *db.Vehicle) error {
	result, err := r.DB.Exec(
		`UPDATE vehicles SET brand = $1, model = $2, nickname = $3 WHERE id = $4 AND user_id = $5`,
		v.Brand, v.Model, v.Nickname, v.ID, v.UserID)
	if err != nil {
		return fmt.Errorf("error updating vehicle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetPrimary flags one vehicle as primary and clears the flag on the rest,
// inside a transaction so the user never ends up with two primaries.
func (r *VehicleRepository) SetPrimary(id, userID int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE vehicles SET is_primary = FALSE WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error clearing primary flags: %w", err)
	}
	result, err := tx.Exec(`UPDATE vehicles SET is_primary = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error setting primary vehicle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

func (r *VehicleRepository) Delete(id, userID int) error {
	result, err := r.DB.Exec(`DELETE FROM vehicles WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting vehicle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
