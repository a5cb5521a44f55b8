package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	directoryDomain "github.com/storeops/siteline/internal/directory/domain"
	"github.com/storeops/siteline/internal/expansion/domain"
	planningDomain "github.com/storeops/siteline/internal/planning/domain"
	"github.com/stretchr/testify/mock"
)

// mockLocationRepo is a mock implementation of domain.Repository.
type mockLocationRepo struct {
	mock.Mock
}

func (m *mockLocationRepo) Save(ctx context.Context, location *domain.CandidateLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *mockLocationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.CandidateLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateLocation), args.Error(1)
}

func (m *mockLocationRepo) FindByCode(ctx context.Context, code string) (*domain.CandidateLocation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateLocation), args.Error(1)
}

func (m *mockLocationRepo) List(ctx context.Context, filter domain.ListFilter) ([]*domain.CandidateLocation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CandidateLocation), args.Error(1)
}

func (m *mockLocationRepo) CountActiveAtAddress(ctx context.Context, address string, exclude uuid.UUID) (int, error) {
	args := m.Called(ctx, address, exclude)
	return args.Int(0), args.Error(1)
}

func (m *mockLocationRepo) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

func (m *mockLocationRepo) AverageScoreByRegion(ctx context.Context) ([]domain.RegionScore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegionScore), args.Error(1)
}

func (m *mockLocationRepo) CountContractedSince(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

// mockFollowUpRepo is a mock implementation of domain.FollowUpRepository.
type mockFollowUpRepo struct {
	mock.Mock
}

func (m *mockFollowUpRepo) Save(ctx context.Context, record *domain.FollowUpRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockFollowUpRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.FollowUpRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FollowUpRecord), args.Error(1)
}

func (m *mockFollowUpRepo) FindByLocation(ctx context.Context, locationID uuid.UUID) ([]*domain.FollowUpRecord, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FollowUpRecord), args.Error(1)
}

func (m *mockFollowUpRepo) CountOpenByLocation(ctx context.Context, locationID uuid.UUID) (int, error) {
	args := m.Called(ctx, locationID)
	return args.Int(0), args.Error(1)
}

func (m *mockFollowUpRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockRegionRepo is a mock implementation of the directory repository.
type mockRegionRepo struct {
	mock.Mock
}

func (m *mockRegionRepo) Save(ctx context.Context, region *directoryDomain.Region) error {
	args := m.Called(ctx, region)
	return args.Error(0)
}

func (m *mockRegionRepo) FindByID(ctx context.Context, id uuid.UUID) (*directoryDomain.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Region), args.Error(1)
}

func (m *mockRegionRepo) FindByCode(ctx context.Context, code string) (*directoryDomain.Region, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directoryDomain.Region), args.Error(1)
}

func (m *mockRegionRepo) List(ctx context.Context, activeOnly bool) ([]*directoryDomain.Region, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*directoryDomain.Region), args.Error(1)
}

// mockPlanRepo is a mock implementation of the planning repository.
type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) Save(ctx context.Context, plan *planningDomain.StorePlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *mockPlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*planningDomain.StorePlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planningDomain.StorePlan), args.Error(1)
}

func (m *mockPlanRepo) List(ctx context.Context) ([]*planningDomain.StorePlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*planningDomain.StorePlan), args.Error(1)
}

func (m *mockPlanRepo) IncrementCompleted(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
