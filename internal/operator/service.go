package operator

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name          string
	ContactEmail  string
	ContactPhone  string
	LicenseNumber string
}

type UpdateRequest struct {
	Name          *string
	ContactEmail  *string
	ContactPhone  *string
	LicenseNumber *string
	IsActive      *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Operator, error)
	GetByID(ctx context.Context, id string) (*Operator, error)
	List(ctx context.Context, filter Filter) ([]*Operator, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Operator, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Operator, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	o := &Operator{
		Name:          req.Name,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		LicenseNumber: req.LicenseNumber,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Operator, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Operator, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Operator, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		o.Name = *req.Name
	}
	if req.ContactEmail != nil {
		o.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		o.ContactPhone = *req.ContactPhone
	}
	if req.LicenseNumber != nil {
		o.LicenseNumber = *req.LicenseNumber
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
