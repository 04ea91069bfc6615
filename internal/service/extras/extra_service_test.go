package extras

import (
	"context"
	"testing"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/Domenick1991/hoteldesk/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExtraService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExtraRepo{}
	svc := NewExtraService(repo)

	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.ExtraService).ID = 5
	}).Return(nil)

	out, err := svc.Create(ctx, &domain.ExtraService{Name: "  Breakfast ", Price: decimal.NewFromInt(75), Active: true})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, "Breakfast", out.Name)

	_, err = svc.Create(ctx, &domain.ExtraService{Name: "Laundry", Price: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Create(ctx, &domain.ExtraService{Name: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExtraService_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExtraRepo{}
	svc := NewExtraService(repo)
	repo.On("Update", ctx, mock.Anything).Return(domain.NotFoundf("service not found"))

	_, err := svc.Update(ctx, &domain.ExtraService{ID: 9, Name: "Spa", Price: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtraService_List(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExtraRepo{}
	svc := NewExtraService(repo)
	repo.On("List", ctx, true).Return([]domain.ExtraService{{ID: 1, Name: "Breakfast", Active: true}}, nil)

	list, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	repo.AssertExpectations(t)
}
