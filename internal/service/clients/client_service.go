package clients

import (
	"context"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/logger"
	"github.com/Domenick1991/hoteldesk/internal/repository"
	"github.com/sirupsen/logrus"
)

type ClientUseCase interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Client, error)
	Search(ctx context.Context, query string) ([]domain.Client, error)
	Detail(ctx context.Context, id int64) (*Detail, error)
}

// TotalsReader supplies the activity totals shown on a client page.
type TotalsReader interface {
	ClientTotals(ctx context.Context, clientID int64) (domain.ActivityTotals, error)
}

type Detail struct {
	Client       *domain.Client        `json:"client"`
	Reservations []domain.Reservation  `json:"reservations"`
	Totals       domain.ActivityTotals `json:"totals"`
}

type ClientService struct {
	clients      repository.ClientRepository
	reservations repository.ReservationRepository
	totals       TotalsReader
	log          logrus.FieldLogger
}

type ClientServiceOption func(*ClientService)

func WithLogger(log logrus.FieldLogger) ClientServiceOption {
	return func(s *ClientService) {
		s.log = log
	}
}

func NewClientService(
	clients repository.ClientRepository,
	reservations repository.ReservationRepository,
	totals TotalsReader,
	opts ...ClientServiceOption,
) *ClientService {
	s := &ClientService{
		clients:      clients,
		reservations: reservations,
		totals:       totals,
		log:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ClientService) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	client.Normalize()
	if err := client.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, client, 0); err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, domain.AsBusinessRule(err)
	}
	s.log.WithField("client_id", client.ID).Info("client registered")
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	client.Normalize()
	if err := client.Validate(); err != nil {
		return nil, err
	}
	current, err := s.clients.GetByID(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, client, client.ID); err != nil {
		return nil, err
	}
	client.RegisteredAt = current.RegisteredAt
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, domain.AsBusinessRule(err)
	}
	return client, nil
}

// Delete refuses to remove a client who still has reservations.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.reservations.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.BusinessRulef("client has %d reservation(s) and cannot be deleted", n)
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return domain.AsBusinessRule(err)
	}
	s.log.WithField("client_id", id).Info("client deleted")
	return nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *ClientService) Search(ctx context.Context, query string) ([]domain.Client, error) {
	return s.clients.Search(ctx, query)
}

func (s *ClientService) Detail(ctx context.Context, id int64) (*Detail, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservations.ListByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	totals, err := s.totals.ClientTotals(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Client: client, Reservations: reservations, Totals: totals}, nil
}

func (s *ClientService) checkUnique(ctx context.Context, c *domain.Client, excludeID int64) error {
	checks := []struct {
		field repository.ClientField
		value string
		label string
	}{
		{repository.ClientFieldEmail, c.Email, "email"},
		{repository.ClientFieldPhone, c.Phone, "phone number"},
		{repository.ClientFieldIDNumber, c.IDNumber, "ID number"},
	}
	for _, check := range checks {
		exists, err := s.clients.Exists(ctx, check.field, check.value, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return domain.BusinessRulef("a client with %s %s already exists", check.label, check.value)
		}
	}
	return nil
}

var _ ClientUseCase = (*ClientService)(nil)
