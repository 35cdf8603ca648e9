package bus

import (
	"context"
	"errors"

	"github.com/swiftroute/bus-ticketing-backend/internal/operator"
)

type CreateRequest struct {
	OperatorID string
	BusNumber  string
	BusType    Type
	TotalSeats int
	Amenities  []string
}

type UpdateRequest struct {
	BusNumber  *string
	BusType    *Type
	TotalSeats *int
	Amenities  []string
	IsActive   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Bus, error)
	GetByID(ctx context.Context, id string) (*Bus, error)
	List(ctx context.Context, filter Filter) ([]*Bus, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Bus, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	opService operator.Service
}

func NewService(repo Repository, opService operator.Service) Service {
	return &service{
		repo:      repo,
		opService: opService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Bus, error) {
	if !ValidType(req.BusType) {
		return nil, ErrInvalidBusType
	}
	if req.TotalSeats <= 0 {
		return nil, ErrInvalidSeatCount
	}

	if _, err := s.opService.GetByID(ctx, req.OperatorID); err != nil {
		if errors.Is(err, operator.ErrNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}

	b := &Bus{
		OperatorID: req.OperatorID,
		BusNumber:  req.BusNumber,
		BusType:    req.BusType,
		TotalSeats: req.TotalSeats,
		Amenities:  req.Amenities,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Bus, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Bus, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Bus, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BusNumber != nil {
		b.BusNumber = *req.BusNumber
	}
	if req.BusType != nil {
		if !ValidType(*req.BusType) {
			return nil, ErrInvalidBusType
		}
		b.BusType = *req.BusType
	}
	if req.TotalSeats != nil {
		if *req.TotalSeats <= 0 {
			return nil, ErrInvalidSeatCount
		}
		b.TotalSeats = *req.TotalSeats
	}
	if req.Amenities != nil {
		b.Amenities = req.Amenities
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
