package extras

import (
	"context"
	"strings"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/repository"
)

type ExtraUseCase interface {
	Create(ctx context.Context, svc *domain.ExtraService) (*domain.ExtraService, error)
	Update(ctx context.Context, svc *domain.ExtraService) (*domain.ExtraService, error)
	Get(ctx context.Context, id int64) (*domain.ExtraService, error)
	List(ctx context.Context, activeOnly bool) ([]domain.ExtraService, error)
}

type ExtraService struct {
	extras repository.ExtraServiceRepository
}

func NewExtraService(extras repository.ExtraServiceRepository) *ExtraService {
	return &ExtraService{extras: extras}
}

func (s *ExtraService) Create(ctx context.Context, svc *domain.ExtraService) (*domain.ExtraService, error) {
	svc.Name = strings.TrimSpace(svc.Name)
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	if err := s.extras.Create(ctx, svc); err != nil {
		return nil, domain.AsBusinessRule(err)
	}
	return svc, nil
}

// Update changes the catalog entry. Line items keep the price they were created with.
func (s *ExtraService) Update(ctx context.Context, svc *domain.ExtraService) (*domain.ExtraService, error) {
	svc.Name = strings.TrimSpace(svc.Name)
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	if err := s.extras.Update(ctx, svc); err != nil {
		return nil, domain.AsBusinessRule(err)
	}
	return svc, nil
}

func (s *ExtraService) Get(ctx context.Context, id int64) (*domain.ExtraService, error) {
	return s.extras.GetByID(ctx, id)
}

func (s *ExtraService) List(ctx context.Context, activeOnly bool) ([]domain.ExtraService, error) {
	return s.extras.List(ctx, activeOnly)
}

var _ ExtraUseCase = (*ExtraService)(nil)
