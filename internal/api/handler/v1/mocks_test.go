package v1

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/fleetdepot/depot/internal/domain"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockPartService struct{ mock.Mock }

func (m *mockPartService) CreatePart(ctx context.Context, part domain.Part) (domain.Part, error) {
	args := m.Called(ctx, part)
	return args.Get(0).(domain.Part), args.Error(1)
}

func (m *mockPartService) GetPart(ctx context.Context, id uint) (domain.Part, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Part), args.Error(1)
}

func (m *mockPartService) ListParts(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Part), args.Error(1)
}

func (m *mockPartService) UpdatePart(ctx context.Context, part domain.Part) (domain.Part, error) {
	args := m.Called(ctx, part)
	return args.Get(0).(domain.Part), args.Error(1)
}

func (m *mockPartService) GetStock(ctx context.Context, partID uint) (domain.PartStock, error) {
	args := m.Called(ctx, partID)
	return args.Get(0).(domain.PartStock), args.Error(1)
}

type mockBinService struct{ mock.Mock }

func (m *mockBinService) CreateBin(ctx context.Context, bin domain.Bin) (domain.Bin, error) {
	args := m.Called(ctx, bin)
	return args.Get(0).(domain.Bin), args.Error(1)
}

func (m *mockBinService) GetBin(ctx context.Context, id uint) (domain.Bin, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Bin), args.Error(1)
}

func (m *mockBinService) ListBins(ctx context.Context, filter domain.BinFilter) ([]domain.Bin, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Bin), args.Error(1)
}

func (m *mockBinService) UpdateBin(ctx context.Context, id uint, update domain.BinUpdate) (domain.Bin, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.Bin), args.Error(1)
}

func (m *mockBinService) GetBinStock(ctx context.Context, id uint) ([]domain.BinStock, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.BinStock), args.Error(1)
}

type mockReceivingService struct{ mock.Mock }

func (m *mockReceivingService) CreateReceipt(ctx context.Context, receipt domain.Receipt) (domain.Receipt, error) {
	args := m.Called(ctx, receipt)
	return args.Get(0).(domain.Receipt), args.Error(1)
}

func (m *mockReceivingService) GetReceipt(ctx context.Context, id uint) (domain.Receipt, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Receipt), args.Error(1)
}

func (m *mockReceivingService) ListReceipts(ctx context.Context, status string, limit, offset int) ([]domain.Receipt, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *mockReceivingService) CancelReceipt(ctx context.Context, id uint) (domain.Receipt, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Receipt), args.Error(1)
}

func (m *mockReceivingService) Allocate(ctx context.Context, receiptID uint, allocations []domain.Allocation, userID uint) (domain.AllocationResult, error) {
	args := m.Called(ctx, receiptID, allocations, userID)
	return args.Get(0).(domain.AllocationResult), args.Error(1)
}

type mockPickslipService struct{ mock.Mock }

func (m *mockPickslipService) CreatePickslip(ctx context.Context, pickslip domain.Pickslip) (domain.Pickslip, error) {
	args := m.Called(ctx, pickslip)
	return args.Get(0).(domain.Pickslip), args.Error(1)
}

func (m *mockPickslipService) GetPickslip(ctx context.Context, id uint) (domain.Pickslip, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Pickslip), args.Error(1)
}

func (m *mockPickslipService) ListPickslips(ctx context.Context, status string, limit, offset int) ([]domain.Pickslip, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Pickslip), args.Error(1)
}

func (m *mockPickslipService) SuggestPicks(ctx context.Context, id uint) ([]domain.PickSuggestion, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.PickSuggestion), args.Error(1)
}

func (m *mockPickslipService) Complete(ctx context.Context, id uint, userID uint) (domain.Completion, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(domain.Completion), args.Error(1)
}

func (m *mockPickslipService) Cancel(ctx context.Context, id uint, userID uint) (domain.Pickslip, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(domain.Pickslip), args.Error(1)
}

func (m *mockPickslipService) Hold(ctx context.Context, pickslipID, partID uint, qty int, userID uint) ([]domain.Holding, error) {
	args := m.Called(ctx, pickslipID, partID, qty, userID)
	return args.Get(0).([]domain.Holding), args.Error(1)
}

func (m *mockPickslipService) Holdings(ctx context.Context, pickslipID uint) ([]domain.Holding, error) {
	args := m.Called(ctx, pickslipID)
	return args.Get(0).([]domain.Holding), args.Error(1)
}

func (m *mockPickslipService) ReleaseHolding(ctx context.Context, holdingID uint, userID uint) (domain.Holding, error) {
	args := m.Called(ctx, holdingID, userID)
	return args.Get(0).(domain.Holding), args.Error(1)
}

func (m *mockPickslipService) TransferHolding(ctx context.Context, holdingID, targetPickslipID uint, qty int) (domain.Holding, domain.Holding, error) {
	args := m.Called(ctx, holdingID, targetPickslipID, qty)
	return args.Get(0).(domain.Holding), args.Get(1).(domain.Holding), args.Error(2)
}

type mockStockService struct{ mock.Mock }

func (m *mockStockService) Movements(ctx context.Context, filter domain.MovementFilter) ([]domain.StockMovement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *mockStockService) Transfer(ctx context.Context, t domain.Transfer) (domain.BinStock, domain.BinStock, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(domain.BinStock), args.Get(1).(domain.BinStock), args.Error(2)
}

type mockSalesService struct{ mock.Mock }

func (m *mockSalesService) CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	args := m.Called(ctx, lead)
	return args.Get(0).(domain.Lead), args.Error(1)
}

func (m *mockSalesService) GetLead(ctx context.Context, id uint) (domain.Lead, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Lead), args.Error(1)
}

func (m *mockSalesService) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Lead), args.Error(1)
}

func (m *mockSalesService) UpdateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	args := m.Called(ctx, lead)
	return args.Get(0).(domain.Lead), args.Error(1)
}

func (m *mockSalesService) CreateQuote(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	args := m.Called(ctx, quote)
	return args.Get(0).(domain.Quote), args.Error(1)
}

func (m *mockSalesService) GetQuote(ctx context.Context, id uint) (domain.Quote, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Quote), args.Error(1)
}

func (m *mockSalesService) ListQuotes(ctx context.Context, leadID uint, status string, limit, offset int) ([]domain.Quote, error) {
	args := m.Called(ctx, leadID, status, limit, offset)
	return args.Get(0).([]domain.Quote), args.Error(1)
}

func (m *mockSalesService) ChangeQuoteStatus(ctx context.Context, id uint, status string) (domain.Quote, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.Quote), args.Error(1)
}

type mockReportService struct{ mock.Mock }

func (m *mockReportService) StockOnHand(ctx context.Context, warehouse string) ([]domain.StockOnHandRow, error) {
	args := m.Called(ctx, warehouse)
	return args.Get(0).([]domain.StockOnHandRow), args.Error(1)
}

func (m *mockReportService) WriteStockOnHandXLSX(ctx context.Context, w io.Writer, warehouse string) error {
	args := m.Called(ctx, w, warehouse)
	return args.Error(0)
}

type mockETLJob struct{ mock.Mock }

func (m *mockETLJob) RunOnce(ctx context.Context) (domain.ETLRun, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ETLRun), args.Error(1)
}

func (m *mockETLJob) Runs(ctx context.Context, limit int) ([]domain.ETLRun, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.ETLRun), args.Error(1)
}
