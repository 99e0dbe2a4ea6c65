package service

import (
	"database/sql"
	"fmt"

	"detallado/internal/catalog"
	"detallado/internal/db"
	"detallado/internal/entities"
	httperrors "detallado/internal/errors"
	"detallado/internal/repository"
	"detallado/internal/wizard"
)

type VehicleService struct {
	Repo *repository.VehicleRepository
}

func NewVehicleService(repo *repository.VehicleRepository) *VehicleService {
	return &VehicleService{Repo: repo}
}

func (s *VehicleService) ListForUser(userID int) ([]entities.VehicleResponse, error) {
	vehicles, err := s.Repo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		out = append(out, toVehicleResponse(&vehicles[i]))
	}
	return out, nil
}

func (s *VehicleService) Get(userID, vehicleID int) (*entities.VehicleResponse, error) {
	vehicle, err := s.Repo.GetForUser(vehicleID, userID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, httperrors.ErrNotFound("vehicle not found")
	}
	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

func (s *VehicleService) Create(userID int, req entities.VehicleRequest) (*entities.VehicleResponse, error) {
	if _, err := catalog.VehicleTypeByID(req.VehicleType); err != nil {
		return nil, httperrors.ErrBadRequest(err.Error())
	}
	plate := wizard.FormatPlate(req.Plate)
	if !wizard.ValidPlate(plate, req.VehicleType) {
		return nil, httperrors.ErrBadRequest(fmt.Sprintf("plate %q is not valid for a %s", plate, req.VehicleType))
	}

	vehicle := &db.Vehicle{
		UserID:      userID,
		Plate:       plate,
		VehicleType: req.VehicleType,
		IsPrimary:   req.IsPrimary,
	}
	if req.Brand != "" {
		vehicle.Brand = sql.NullString{String: req.Brand, Valid: true}
	}
	if req.Model != "" {
		vehicle.Model = sql.NullString{String: req.Model, Valid: true}
	}
	if req.Nickname != "" {
		vehicle.Nickname = sql.NullString{String: req.Nickname, Valid: true}
	}
	if err := s.Repo.Create(vehicle); err != nil {
		return nil, err
	}
	if vehicle.IsPrimary {
		if err := s.Repo.SetPrimary(vehicle.ID, userID); err != nil {
			return nil, err
		}
	}
	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

func (s *VehicleService) Update(userID, vehicleID int, req entities.VehicleRequest) (*entities.VehicleResponse, error) {
	vehicle, err := s.Repo.GetForUser(vehicleID, userID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, httperrors.ErrNotFound("vehicle not found")
	}

	vehicle.Brand = sql.NullString{String: req.Brand, Valid: req.Brand != ""}
	vehicle.Model = sql.NullString{String: req.Model, Valid: req.Model != ""}
	vehicle.Nickname = sql.NullString{String: req.Nickname, Valid: req.Nickname != ""}
	if err := s.Repo.Update(vehicle); err != nil {
		return nil, err
	}
	if req.IsPrimary && !vehicle.IsPrimary {
		if err := s.Repo.SetPrimary(vehicle.ID, userID); err != nil {
			return nil, err
		}
		vehicle.IsPrimary = true
	}
	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

func (s *VehicleService) SetPrimary(userID, vehicleID int) error {
	return s.Repo.SetPrimary(vehicleID, userID)
}

func (s *VehicleService) Delete(userID, vehicleID int) error {
	return s.Repo.Delete(vehicleID, userID)
}

func toVehicleResponse(v *db.Vehicle) entities.VehicleResponse {
	resp := entities.VehicleResponse{
		ID:          v.ID,
		Plate:       v.Plate,
		VehicleType: v.VehicleType,
		IsPrimary:   v.IsPrimary,
	}
	if v.Brand.Valid {
		resp.Brand = v.Brand.String
	}
	if v.Model.Valid {
		resp.Model = v.Model.String
	}
	if v.Nickname.Valid {
		resp.Nickname = v.Nickname.String
	}
	return resp
}
