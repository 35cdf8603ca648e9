package route

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Origin                 string
	Destination            string
	DistanceKm             float64
	EstimatedDurationHours float64
}

type UpdateRequest struct {
	Origin                 *string
	Destination            *string
	DistanceKm             *float64
	EstimatedDurationHours *float64
	IsActive               *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Route, error)
	GetByID(ctx context.Context, id string) (*Route, error)
	List(ctx context.Context, filter Filter) ([]*Route, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Route, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Route, error) {
	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if origin == "" || destination == "" {
		return nil, ErrEndpointRequired
	}

	rt := &Route{
		Origin:                 origin,
		Destination:            destination,
		DistanceKm:             req.DistanceKm,
		EstimatedDurationHours: req.EstimatedDurationHours,
		IsActive:               true,
	}

	if err := s.repo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Route, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Route, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Route, error) {
	rt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Origin != nil {
		if strings.TrimSpace(*req.Origin) == "" {
			return nil, ErrEndpointRequired
		}
		rt.Origin = strings.TrimSpace(*req.Origin)
	}
	if req.Destination != nil {
		if strings.TrimSpace(*req.Destination) == "" {
			return nil, ErrEndpointRequired
		}
		rt.Destination = strings.TrimSpace(*req.Destination)
	}
	if req.DistanceKm != nil {
		rt.DistanceKm = *req.DistanceKm
	}
	if req.EstimatedDurationHours != nil {
		rt.EstimatedDurationHours = *req.EstimatedDurationHours
	}
	if req.IsActive != nil {
		rt.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
