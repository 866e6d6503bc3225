// Package repository contains hand-maintained testify mocks for the domain
// repository interfaces.
package repository

import (
	"context"
	"time"

	"soko/internal/domain/entity"
	"soko/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockListingRepository is a mock implementation of repository.ListingRepository.
type MockListingRepository struct {
	mock.Mock
}

// NewMockListingRepository creates a new mock and registers expectation
// assertions for test cleanup.
func NewMockListingRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockListingRepository {
	m := &MockListingRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	args := m.Called(ctx, listing)

	return args.Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*entity.Listing, error) {
	args := m.Called(ctx, id)

	if listing, ok := args.Get(0).(*entity.Listing); ok {
		return listing, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingRepository) FindByFilter(ctx context.Context, filter repository.Filter) ([]*entity.Listing, error) {
	args := m.Called(ctx, filter)

	if listings, ok := args.Get(0).([]*entity.Listing); ok {
		return listings, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingRepository) FindByOwner(ctx context.Context, owner string) ([]*entity.Listing, error) {
	args := m.Called(ctx, owner)

	if listings, ok := args.Get(0).([]*entity.Listing); ok {
		return listings, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingRepository) FindAll(ctx context.Context) ([]*entity.Listing, error) {
	args := m.Called(ctx)

	if listings, ok := args.Get(0).([]*entity.Listing); ok {
		return listings, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	args := m.Called(ctx, listing)

	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockListingRepository) MarkSold(ctx context.Context, id string, soldAt time.Time) (*entity.Listing, error) {
	args := m.Called(ctx, id, soldAt)

	if listing, ok := args.Get(0).(*entity.Listing); ok {
		return listing, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
