package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fleetdepot/depot/internal/domain"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, events ...domain.StockEvent) {
	m.Called(ctx, events)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, partID uint) (domain.PartStock, bool) {
	args := m.Called(ctx, partID)
	return args.Get(0).(domain.PartStock), args.Bool(1)
}

func (m *mockCache) Set(ctx context.Context, stock domain.PartStock) {
	m.Called(ctx, stock)
}

func (m *mockCache) Invalidate(ctx context.Context, partIDs ...uint) {
	m.Called(ctx, partIDs)
}

type mockPartRepo struct{ mock.Mock }

func (m *mockPartRepo) Create(ctx context.Context, part domain.Part) (domain.Part, error) {
	args := m.Called(ctx, part)
	return args.Get(0).(domain.Part), args.Error(1)
}

func (m *mockPartRepo) FindByID(ctx context.Context, id uint) (domain.Part, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Part), args.Error(1)
}

func (m *mockPartRepo) List(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Part), args.Error(1)
}

func (m *mockPartRepo) Update(ctx context.Context, part domain.Part) (domain.Part, error) {
	args := m.Called(ctx, part)
	return args.Get(0).(domain.Part), args.Error(1)
}

type mockPartStockRepo struct{ mock.Mock }

func (m *mockPartStockRepo) PartStock(ctx context.Context, partID uint) (domain.PartStock, error) {
	args := m.Called(ctx, partID)
	return args.Get(0).(domain.PartStock), args.Error(1)
}

type mockReceiptRepo struct{ mock.Mock }

func (m *mockReceiptRepo) Create(ctx context.Context, receipt domain.Receipt) (domain.Receipt, error) {
	args := m.Called(ctx, receipt)
	return args.Get(0).(domain.Receipt), args.Error(1)
}

func (m *mockReceiptRepo) FindByID(ctx context.Context, id uint) (domain.Receipt, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Receipt), args.Error(1)
}

func (m *mockReceiptRepo) List(ctx context.Context, status string, limit, offset int) ([]domain.Receipt, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *mockReceiptRepo) Cancel(ctx context.Context, id uint) (domain.Receipt, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Receipt), args.Error(1)
}

func (m *mockReceiptRepo) Allocate(ctx context.Context, id uint, allocations []domain.Allocation, userID uint) (domain.AllocationResult, error) {
	args := m.Called(ctx, id, allocations, userID)
	return args.Get(0).(domain.AllocationResult), args.Error(1)
}

type mockPickslipRepo struct{ mock.Mock }

func (m *mockPickslipRepo) Create(ctx context.Context, pickslip domain.Pickslip) (domain.Pickslip, error) {
	args := m.Called(ctx, pickslip)
	return args.Get(0).(domain.Pickslip), args.Error(1)
}

func (m *mockPickslipRepo) FindByID(ctx context.Context, id uint) (domain.Pickslip, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Pickslip), args.Error(1)
}

func (m *mockPickslipRepo) List(ctx context.Context, status string, limit, offset int) ([]domain.Pickslip, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Pickslip), args.Error(1)
}

func (m *mockPickslipRepo) SuggestPicks(ctx context.Context, id uint) ([]domain.PickSuggestion, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.PickSuggestion), args.Error(1)
}

func (m *mockPickslipRepo) Complete(ctx context.Context, id uint, userID uint) (domain.Completion, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(domain.Completion), args.Error(1)
}

func (m *mockPickslipRepo) Cancel(ctx context.Context, id uint, userID uint) (domain.Pickslip, []domain.StockMovement, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(domain.Pickslip), args.Get(1).([]domain.StockMovement), args.Error(2)
}

func (m *mockPickslipRepo) Hold(ctx context.Context, pickslipID, partID uint, qty int, userID uint) ([]domain.Holding, error) {
	args := m.Called(ctx, pickslipID, partID, qty, userID)
	return args.Get(0).([]domain.Holding), args.Error(1)
}

func (m *mockPickslipRepo) Holdings(ctx context.Context, pickslipID uint) ([]domain.Holding, error) {
	args := m.Called(ctx, pickslipID)
	return args.Get(0).([]domain.Holding), args.Error(1)
}

func (m *mockPickslipRepo) ReleaseHolding(ctx context.Context, holdingID uint, userID uint) (domain.Holding, error) {
	args := m.Called(ctx, holdingID, userID)
	return args.Get(0).(domain.Holding), args.Error(1)
}

func (m *mockPickslipRepo) TransferHolding(ctx context.Context, holdingID, targetPickslipID uint, qty int) (domain.Holding, domain.Holding, error) {
	args := m.Called(ctx, holdingID, targetPickslipID, qty)
	return args.Get(0).(domain.Holding), args.Get(1).(domain.Holding), args.Error(2)
}

type mockSalesRepo struct{ mock.Mock }

func (m *mockSalesRepo) CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	args := m.Called(ctx, lead)
	return args.Get(0).(domain.Lead), args.Error(1)
}

func (m *mockSalesRepo) FindLead(ctx context.Context, id uint) (domain.Lead, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Lead), args.Error(1)
}

func (m *mockSalesRepo) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Lead), args.Error(1)
}

func (m *mockSalesRepo) UpdateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	args := m.Called(ctx, lead)
	return args.Get(0).(domain.Lead), args.Error(1)
}

func (m *mockSalesRepo) CreateQuote(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	args := m.Called(ctx, quote)
	return args.Get(0).(domain.Quote), args.Error(1)
}

func (m *mockSalesRepo) FindQuote(ctx context.Context, id uint) (domain.Quote, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Quote), args.Error(1)
}

func (m *mockSalesRepo) ListQuotes(ctx context.Context, leadID uint, status string, limit, offset int) ([]domain.Quote, error) {
	args := m.Called(ctx, leadID, status, limit, offset)
	return args.Get(0).([]domain.Quote), args.Error(1)
}

func (m *mockSalesRepo) UpdateQuoteStatus(ctx context.Context, id uint, from []string, status string) (domain.Quote, error) {
	args := m.Called(ctx, id, from, status)
	return args.Get(0).(domain.Quote), args.Error(1)
}
