package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arentz1234-code/jrodstudios/internal/domain"
	serviceRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/service"
	"github.com/arentz1234-code/jrodstudios/internal/service/catalog/models"
	"github.com/arentz1234-code/jrodstudios/pkg/ptr"
)

type fakeServiceRepo struct {
	byID   map[int64]*domain.Service
	nextID int64
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{byID: make(map[int64]*domain.Service), nextID: 1}
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	created := *svc
	created.ID = f.nextID
	f.nextID++
	f.byID[created.ID] = &created
	return &created, nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.byID[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeServiceRepo) List(_ context.Context, activeOnly bool) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0, len(f.byID))
	for id := int64(1); id < f.nextID; id++ {
		svc, ok := f.byID[id]
		if !ok {
			continue
		}
		if activeOnly && !svc.IsActive {
			continue
		}
		services = append(services, svc)
	}
	return services, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, id int64, update domain.ServiceUpdate) (*domain.Service, error) {
	svc, ok := f.byID[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	if update.Name != nil {
		svc.Name = *update.Name
	}
	if update.Price != nil {
		svc.Price = *update.Price
	}
	if update.DurationMinutes != nil {
		svc.DurationMinutes = *update.DurationMinutes
	}
	if update.IsActive != nil {
		svc.IsActive = *update.IsActive
	}
	return svc, nil
}

func (f *fakeServiceRepo) Deactivate(_ context.Context, id int64) error {
	svc, ok := f.byID[id]
	if !ok {
		return serviceRepo.ErrServiceNotFound
	}
	svc.IsActive = false
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCreateAndList(t *testing.T) {
	svc := NewService(newFakeServiceRepo(), nopLogger{})

	created, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:            "Regular Cut",
		Price:           30,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	resp, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Regular Cut", resp.Services[0].Name)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateServiceRequest
	}{
		{"empty name", models.CreateServiceRequest{Name: " ", Price: 10, DurationMinutes: 30}},
		{"negative price", models.CreateServiceRequest{Name: "Cut", Price: -1, DurationMinutes: 30}},
		{"duration too short", models.CreateServiceRequest{Name: "Cut", Price: 10, DurationMinutes: 1}},
		{"duration too long", models.CreateServiceRequest{Name: "Cut", Price: 10, DurationMinutes: 999}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeServiceRepo(), nopLogger{})

			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdatePartial(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewService(repo, nopLogger{})

	created, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:            "Regular Cut",
		Price:           30,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &models.UpdateServiceRequest{
		Price: ptr.Ptr(35.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 35.0, updated.Price)
	assert.Equal(t, "Regular Cut", updated.Name)
	assert.Equal(t, 30, updated.DurationMinutes)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateServiceRequest{
		DurationMinutes: ptr.Ptr(1000),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), 99, &models.UpdateServiceRequest{})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDeactivateHidesFromPublicList(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewService(repo, nopLogger{})

	created, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:            "Regular Cut",
		Price:           30,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))

	public, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, public.Services)

	admin, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, admin.Services, 1)
	assert.False(t, admin.Services[0].IsActive)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), 99), ErrServiceNotFound)
}
