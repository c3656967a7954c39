package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/biz_books_app/internal/apperrors"
	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portssvc "github.com/SscSPs/biz_books_app/internal/core/ports/services"
	"github.com/SscSPs/biz_books_app/internal/core/services"
	"github.com/SscSPs/biz_books_app/internal/dto"
)

// MockCounterpartyRepository is a mock type for the CounterpartyRepositoryFacade interface
type MockCounterpartyRepository struct {
	mock.Mock
}

func (m *MockCounterpartyRepository) FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	args := m.Called(ctx, counterpartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyRepository) ListCounterpartiesByKind(ctx context.Context, kind domain.CounterpartyKind) ([]domain.Counterparty, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyRepository) SaveCounterparty(ctx context.Context, cp domain.Counterparty) error {
	args := m.Called(ctx, cp)
	return args.Error(0)
}

func (m *MockCounterpartyRepository) UpdateCounterparty(ctx context.Context, cp domain.Counterparty) error {
	args := m.Called(ctx, cp)
	return args.Error(0)
}

func (m *MockCounterpartyRepository) DeleteCounterparty(ctx context.Context, counterpartyID string, userID string, now time.Time) error {
	args := m.Called(ctx, counterpartyID, userID, now)
	return args.Error(0)
}

// MockProductService is a mock type for the ProductSvcFacade interface
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	args := m.Called(ctx, productID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) ConsumeStock(ctx context.Context, productID string, quantity int, userID string) error {
	args := m.Called(ctx, productID, quantity, userID)
	return args.Error(0)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, productID string, userID string) error {
	args := m.Called(ctx, productID, userID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocRepo    *MockDocumentRepository
	mockCpRepo     *MockCounterpartyRepository
	mockProductSvc *MockProductService
	service        portssvc.DocumentSvcFacade
	userID         string
	vendor         *domain.Counterparty
	customer       *domain.Counterparty
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockCpRepo = new(MockCounterpartyRepository)
	suite.mockProductSvc = new(MockProductService)
	suite.service = services.NewDocumentService(suite.mockDocRepo, suite.mockCpRepo, suite.mockProductSvc)
	suite.userID = uuid.NewString()
	suite.vendor = &domain.Counterparty{CounterpartyID: "vendor-1", Kind: domain.KindVendor, Name: "Acme Supply"}
	suite.customer = &domain.Counterparty{CounterpartyID: "customer-1", Kind: domain.KindCustomer, Name: "Globex Corp"}
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_BillWithFlatAmount() {
	ctx := context.Background()
	amount := decimal.RequireFromString("250.75")

	suite.mockCpRepo.On("FindCounterpartyByID", ctx, "vendor-1").Return(suite.vendor, nil).Once()

	var saved domain.Document
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Document) }).
		Return(nil).Once()

	doc, err := suite.service.CreateDocument(ctx, domain.KindBill, dto.CreateDocumentRequest{
		CounterpartyID: "vendor-1",
		InvoiceNumber:  "B-1001",
		Amount:         &amount,
		DocumentDate:   "2025-06-01",
		DueDate:        "2025-07-01",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(doc.DocumentID)
	suite.Equal(domain.KindBill, doc.Kind)
	suite.Equal("Acme Supply", doc.CounterpartyName)
	suite.True(doc.FaceAmount.Equal(amount))
	suite.Equal(domain.StatusUnpaid, doc.Status.Code)
	suite.False(doc.IsCredit)
	suite.Empty(doc.Payments)
	suite.Equal(suite.userID, doc.CreatedBy)
	suite.Equal(doc.DocumentID, saved.DocumentID)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_InvoiceLineItemsConsumeStock() {
	ctx := context.Background()

	suite.mockCpRepo.On("FindCounterpartyByID", ctx, "customer-1").Return(suite.customer, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()
	suite.mockProductSvc.On("ConsumeStock", ctx, "prod-1", 3, suite.userID).Return(nil).Once()

	doc, err := suite.service.CreateDocument(ctx, domain.KindInvoice, dto.CreateDocumentRequest{
		CounterpartyID: "customer-1",
		LineItems: []dto.LineItemRequest{
			{ProductID: "prod-1", Description: "Widget", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("19.99")},
			{Description: "Setup fee", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("50")},
		},
		DocumentDate: "2025-06-01",
		DueDate:      "2025-07-01",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, doc.Status.Code)
	suite.True(doc.FaceAmount.Equal(decimal.RequireFromString("109.97")))
	suite.Len(doc.LineItems, 2)
	suite.mockProductSvc.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_VendorCredit() {
	ctx := context.Background()
	amount := decimal.RequireFromString("30")

	suite.mockCpRepo.On("FindCounterpartyByID", ctx, "vendor-1").Return(suite.vendor, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()

	doc, err := suite.service.CreateDocument(ctx, domain.KindBill, dto.CreateDocumentRequest{
		CounterpartyID: "vendor-1",
		InvoiceNumber:  "CR-500",
		Amount:         &amount,
		IsCredit:       true,
		DocumentDate:   "2025-06-01",
		DueDate:        "2025-06-01",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(doc.IsCredit)
	suite.True(doc.FaceAmount.Equal(decimal.RequireFromString("-30")))
	suite.Equal(domain.StatusCredit, doc.Status.Code)
	suite.Nil(doc.AppliedToDocumentID)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_AlreadyPaid() {
	ctx := context.Background()
	amount := decimal.RequireFromString("120")

	suite.mockCpRepo.On("FindCounterpartyByID", ctx, "vendor-1").Return(suite.vendor, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()

	doc, err := suite.service.CreateDocument(ctx, domain.KindBill, dto.CreateDocumentRequest{
		CounterpartyID: "vendor-1",
		Amount:         &amount,
		DocumentDate:   "2025-06-01",
		DueDate:        "2025-07-01",
		AlreadyPaid: &dto.InitialPaymentRequest{
			Type: string(domain.PaymentCheck),
			Date: "2025-06-01",
		},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, doc.Status.Code)
	suite.Require().Len(doc.Payments, 1)
	suite.True(doc.Payments[0].Amount.Equal(amount))
	suite.Equal(domain.PaymentCheck, doc.PaymentType)
	suite.Require().NotNil(doc.PaymentDate)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_CounterpartyKindMismatch() {
	ctx := context.Background()
	amount := decimal.RequireFromString("10")

	// A bill must name a vendor, not a customer.
	suite.mockCpRepo.On("FindCounterpartyByID", ctx, "customer-1").Return(suite.customer, nil).Once()

	_, err := suite.service.CreateDocument(ctx, domain.KindBill, dto.CreateDocumentRequest{
		CounterpartyID: "customer-1",
		Amount:         &amount,
		DocumentDate:   "2025-06-01",
		DueDate:        "2025-07-01",
	}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_RequiresAmountOrLineItems() {
	ctx := context.Background()

	suite.mockCpRepo.On("FindCounterpartyByID", ctx, "vendor-1").Return(suite.vendor, nil).Once()

	_, err := suite.service.CreateDocument(ctx, domain.KindBill, dto.CreateDocumentRequest{
		CounterpartyID: "vendor-1",
		DocumentDate:   "2025-06-01",
		DueDate:        "2025-07-01",
	}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestListDocuments_StatusFilterMatchesEffective() {
	ctx := context.Background()
	now := time.Now().UTC()

	overdue := domain.Document{
		DocumentID: uuid.NewString(), Kind: domain.KindBill,
		FaceAmount: decimal.RequireFromString("100"),
		Status:     domain.SimpleStatus(domain.StatusUnpaid),
		DueDate:    now.AddDate(0, 0, -5),
	}
	current := domain.Document{
		DocumentID: uuid.NewString(), Kind: domain.KindBill,
		FaceAmount: decimal.RequireFromString("50"),
		Status:     domain.SimpleStatus(domain.StatusUnpaid),
		DueDate:    now.AddDate(0, 0, 5),
	}

	suite.mockDocRepo.On("ListDocumentsByKind", ctx, domain.KindBill, 50, (*string)(nil)).
		Return([]domain.Document{overdue, current}, nil, nil).Once()

	resp, err := suite.service.ListDocuments(ctx, domain.KindBill, dto.ListDocumentsParams{Status: "Overdue"})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Documents, 1)
	suite.Equal(overdue.DocumentID, resp.Documents[0].DocumentID)
	suite.Equal("Overdue", resp.Documents[0].Status)
	suite.Equal("text-danger", resp.Documents[0].StatusBadge.ColorClass)
}

func (suite *DocumentServiceTestSuite) TestDeleteDocument_AppliedCreditRefused() {
	ctx := context.Background()
	billID := uuid.NewString()
	credit := &domain.Document{
		DocumentID: uuid.NewString(), Kind: domain.KindBill,
		IsCredit:            true,
		Status:              domain.SimpleStatus(domain.StatusApplied),
		AppliedToDocumentID: &billID,
	}

	suite.mockDocRepo.On("FindDocumentByID", ctx, credit.DocumentID).Return(credit, nil).Once()

	err := suite.service.DeleteDocument(ctx, credit.DocumentID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "DeleteDocument", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_HeaderFields() {
	ctx := context.Background()
	doc := &domain.Document{
		DocumentID: uuid.NewString(), Kind: domain.KindBill,
		InvoiceNumber: "B-1001",
		FaceAmount:    decimal.RequireFromString("100"),
		Status:        domain.SimpleStatus(domain.StatusUnpaid),
		DueDate:       time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockDocRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()

	newNumber := "B-1001-R"
	newDue := "2025-08-01"
	updated, err := suite.service.UpdateDocument(ctx, doc.DocumentID, dto.UpdateDocumentRequest{
		InvoiceNumber: &newNumber,
		DueDate:       &newDue,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("B-1001-R", updated.InvoiceNumber)
	suite.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), updated.DueDate)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
