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

// MockDocumentRepository is a mock type for the DocumentRepositoryFacade interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByKind(ctx context.Context, kind domain.DocumentKind, limit int, nextToken *string) ([]domain.Document, *string, error) {
	args := m.Called(ctx, kind, limit, nextToken)
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.Document), token, args.Error(2)
}

func (m *MockDocumentRepository) ListAllDocumentsByKind(ctx context.Context, kind domain.DocumentKind) ([]domain.Document, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAvailableCredits(ctx context.Context, counterpartyID string) ([]domain.Document, error) {
	args := m.Called(ctx, counterpartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocuments(ctx context.Context, docs []domain.Document) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockDocumentRepository
	service  portssvc.LedgerSvcFacade
	userID   string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDocumentRepository)
	suite.service = services.NewLedgerService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) newBill(faceAmount string) *domain.Document {
	now := time.Now().UTC()
	return &domain.Document{
		DocumentID:       uuid.NewString(),
		Kind:             domain.KindBill,
		CounterpartyID:   "vendor-1",
		CounterpartyName: "Acme Supply",
		InvoiceNumber:    "B-1001",
		FaceAmount:       decimal.RequireFromString(faceAmount),
		Status:           domain.SimpleStatus(domain.StatusUnpaid),
		DocumentDate:     now.AddDate(0, 0, -10),
		DueDate:          now.AddDate(0, 0, 20),
		DateCreated:      now.AddDate(0, 0, -10),
		Payments:         []domain.PaymentRecord{},
		CreditsApplied:   []domain.CreditApplication{},
	}
}

func (suite *LedgerServiceTestSuite) newCredit(faceAmount string) *domain.Document {
	credit := suite.newBill(faceAmount)
	credit.InvoiceNumber = "CR-500"
	credit.IsCredit = true
	credit.Status = domain.SimpleStatus(domain.StatusCredit)
	return credit
}

// --- RecordPayment ---

func (suite *LedgerServiceTestSuite) TestRecordPayment_PartialThenPaid() {
	ctx := context.Background()
	bill := suite.newBill("100")

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)

	var saved domain.Document
	suite.mockRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.Document")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Document) }).
		Return(nil)

	// First payment: $60 cash.
	doc, message, err := suite.service.RecordPayment(ctx, bill.DocumentID, dto.RecordPaymentRequest{
		Type:   string(domain.PaymentCash),
		Date:   "2025-06-01",
		Amount: decimal.RequireFromString("60"),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Partial ($60.00)", doc.Status.String())
	suite.Len(doc.Payments, 1)
	suite.Equal(domain.PaymentCash, doc.Payments[0].Type)
	suite.Nil(doc.PaymentDate)
	suite.Contains(message, "$60.00")
	suite.Contains(message, "$40.00")
	suite.Equal("Partial ($60.00)", saved.Status.String())

	// Second payment: $40 check settles the bill.
	doc, message, err = suite.service.RecordPayment(ctx, bill.DocumentID, dto.RecordPaymentRequest{
		Type:      string(domain.PaymentCheck),
		Date:      "2025-06-15",
		Amount:    decimal.RequireFromString("40"),
		Reference: "chk 2231",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, doc.Status.Code)
	suite.Len(doc.Payments, 2)
	suite.Require().NotNil(doc.PaymentDate)
	suite.Equal(domain.PaymentCheck, doc.PaymentType)
	suite.Equal("chk 2231", doc.PaymentReference)
	suite.Contains(message, "fully paid")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_WithinToleranceIsPaid() {
	ctx := context.Background()
	bill := suite.newBill("100")
	bill.Payments = []domain.PaymentRecord{{
		ID: uuid.NewString(), Type: domain.PaymentCash,
		Amount: decimal.RequireFromString("99.995"),
		Date:   time.Now().UTC(),
	}}
	bill.Status = domain.PartialStatus(decimal.RequireFromString("99.995"))

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)
	suite.mockRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil)

	// A residual $0.005 payment lands within the 1-cent tolerance.
	doc, _, err := suite.service.RecordPayment(ctx, bill.DocumentID, dto.RecordPaymentRequest{
		Type:   string(domain.PaymentCash),
		Date:   "2025-06-01",
		Amount: decimal.RequireFromString("0.005"),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, doc.Status.Code)
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_OverpaymentRejected() {
	ctx := context.Background()
	bill := suite.newBill("100")
	bill.Payments = []domain.PaymentRecord{{
		ID: uuid.NewString(), Type: domain.PaymentCash,
		Amount: decimal.RequireFromString("60"),
		Date:   time.Now().UTC(),
	}}
	bill.Status = domain.PartialStatus(decimal.RequireFromString("60"))

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)

	_, _, err := suite.service.RecordPayment(ctx, bill.DocumentID, dto.RecordPaymentRequest{
		Type:   string(domain.PaymentCash),
		Date:   "2025-06-01",
		Amount: decimal.RequireFromString("50"),
	}, suite.userID)

	suite.Require().Error(err)
	var exceeds *services.AmountExceedsBalanceError
	suite.Require().ErrorAs(err, &exceeds)
	suite.True(exceeds.Remaining.Equal(decimal.RequireFromString("40")))
	suite.True(exceeds.Requested.Equal(decimal.RequireFromString("50")))

	// The failed attempt must not touch the payment list.
	suite.Len(bill.Payments, 1)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDocument", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_AlreadyPaid() {
	ctx := context.Background()
	bill := suite.newBill("100")
	bill.Status = domain.SimpleStatus(domain.StatusPaid)

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)

	_, _, err := suite.service.RecordPayment(ctx, bill.DocumentID, dto.RecordPaymentRequest{
		Type:   string(domain.PaymentCash),
		Date:   "2025-06-01",
		Amount: decimal.RequireFromString("10"),
	}, suite.userID)

	suite.Require().ErrorIs(err, services.ErrDocumentAlreadyPaid)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDocument", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_RejectsNonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []string{"0", "-5"} {
		_, _, err := suite.service.RecordPayment(ctx, uuid.NewString(), dto.RecordPaymentRequest{
			Type:   string(domain.PaymentCash),
			Date:   "2025-06-01",
			Amount: decimal.RequireFromString(amount),
		}, suite.userID)
		suite.Require().ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "FindDocumentByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_RejectsUnknownType() {
	ctx := context.Background()

	_, _, err := suite.service.RecordPayment(ctx, uuid.NewString(), dto.RecordPaymentRequest{
		Type:   "Barter",
		Date:   "2025-06-01",
		Amount: decimal.RequireFromString("10"),
	}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_RejectsBadDate() {
	ctx := context.Background()

	_, _, err := suite.service.RecordPayment(ctx, uuid.NewString(), dto.RecordPaymentRequest{
		Type:   string(domain.PaymentCash),
		Date:   "not a date",
		Amount: decimal.RequireFromString("10"),
	}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

// --- RecordCreditPayment ---

func (suite *LedgerServiceTestSuite) TestRecordCreditPayment_Success() {
	ctx := context.Background()
	bill := suite.newBill("100")
	credit := suite.newCredit("-30")
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)
	suite.mockRepo.On("FindDocumentByID", ctx, credit.DocumentID).Return(credit, nil)

	var saved []domain.Document
	suite.mockRepo.On("UpdateDocuments", ctx, mock.AnythingOfType("[]domain.Document")).
		Run(func(args mock.Arguments) { saved = args.Get(1).([]domain.Document) }).
		Return(nil).Once()

	doc, err := suite.service.RecordCreditPayment(ctx, bill.DocumentID, credit.DocumentID, decimal.RequireFromString("30"), date, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Partial ($30.00)", doc.Status.String())

	suite.Require().Len(doc.Payments, 1)
	suite.Equal(domain.PaymentVendorCredit, doc.Payments[0].Type)
	suite.True(doc.Payments[0].Amount.Equal(decimal.RequireFromString("30")))
	suite.Contains(doc.Payments[0].Reference, "CR-500")

	suite.Require().Len(doc.CreditsApplied, 1)
	suite.Equal(credit.DocumentID, doc.CreditsApplied[0].CreditID)
	suite.Equal("CR-500", doc.CreditsApplied[0].CreditInvoiceNumber)
	suite.True(doc.CreditsApplied[0].Amount.Equal(decimal.RequireFromString("30")))
	suite.True(doc.CreditsApplied[0].AppliedDate.Equal(date))

	suite.Equal(domain.StatusApplied, credit.Status.Code)
	suite.Require().NotNil(credit.AppliedToDocumentID)
	suite.Equal(bill.DocumentID, *credit.AppliedToDocumentID)
	suite.Require().NotNil(credit.AppliedDate)
	suite.True(credit.AppliedDate.Equal(date))

	// Both rewrites travel in one repository call.
	suite.Require().Len(saved, 2)
	suite.Equal(bill.DocumentID, saved[0].DocumentID)
	suite.Equal(credit.DocumentID, saved[1].DocumentID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_CreditTypeDelegates() {
	ctx := context.Background()
	bill := suite.newBill("100")
	credit := suite.newCredit("-30")

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)
	suite.mockRepo.On("FindDocumentByID", ctx, credit.DocumentID).Return(credit, nil)
	suite.mockRepo.On("UpdateDocuments", ctx, mock.AnythingOfType("[]domain.Document")).Return(nil).Once()

	doc, message, err := suite.service.RecordPayment(ctx, bill.DocumentID, dto.RecordPaymentRequest{
		Type:   "credit-" + credit.DocumentID,
		Date:   "2025-06-10",
		Amount: decimal.RequireFromString("30"),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Partial ($30.00)", doc.Status.String())
	suite.Equal(domain.StatusApplied, credit.Status.Code)
	suite.Contains(message, "$30.00")
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDocument", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordCreditPayment_CreditAlreadyApplied() {
	ctx := context.Background()
	bill := suite.newBill("100")
	credit := suite.newCredit("-30")
	credit.Status = domain.SimpleStatus(domain.StatusApplied)

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)
	suite.mockRepo.On("FindDocumentByID", ctx, credit.DocumentID).Return(credit, nil)

	_, err := suite.service.RecordCreditPayment(ctx, bill.DocumentID, credit.DocumentID, decimal.RequireFromString("30"), time.Now().UTC(), suite.userID)

	suite.Require().ErrorIs(err, services.ErrCreditUnavailable)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDocuments", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordCreditPayment_CreditNotFound() {
	ctx := context.Background()
	bill := suite.newBill("100")
	missingID := uuid.NewString()

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)
	suite.mockRepo.On("FindDocumentByID", ctx, missingID).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.RecordCreditPayment(ctx, bill.DocumentID, missingID, decimal.RequireFromString("30"), time.Now().UTC(), suite.userID)

	suite.Require().ErrorIs(err, services.ErrCreditUnavailable)
}

func (suite *LedgerServiceTestSuite) TestRecordCreditPayment_DifferentVendor() {
	ctx := context.Background()
	bill := suite.newBill("100")
	credit := suite.newCredit("-30")
	credit.CounterpartyID = "vendor-2"

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)
	suite.mockRepo.On("FindDocumentByID", ctx, credit.DocumentID).Return(credit, nil)

	_, err := suite.service.RecordCreditPayment(ctx, bill.DocumentID, credit.DocumentID, decimal.RequireFromString("30"), time.Now().UTC(), suite.userID)

	suite.Require().ErrorIs(err, services.ErrCreditUnavailable)
}

// --- ApplyCredits ---

func (suite *LedgerServiceTestSuite) TestApplyCredits_BatchAtomic() {
	ctx := context.Background()
	bill := suite.newBill("100")
	creditA := suite.newCredit("-30")
	creditB := suite.newCredit("-70")
	creditB.InvoiceNumber = "CR-501"

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)
	suite.mockRepo.On("FindDocumentByID", ctx, creditA.DocumentID).Return(creditA, nil)
	suite.mockRepo.On("FindDocumentByID", ctx, creditB.DocumentID).Return(creditB, nil)

	var saved []domain.Document
	suite.mockRepo.On("UpdateDocuments", ctx, mock.AnythingOfType("[]domain.Document")).
		Run(func(args mock.Arguments) { saved = args.Get(1).([]domain.Document) }).
		Return(nil).Once()

	doc, err := suite.service.ApplyCredits(ctx, bill.DocumentID, []dto.CreditSelection{
		{CreditID: creditA.DocumentID, Amount: decimal.RequireFromString("30")},
		{CreditID: creditB.DocumentID, Amount: decimal.RequireFromString("70")},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, doc.Status.Code)
	suite.Len(doc.Payments, 2)
	suite.Len(doc.CreditsApplied, 2)
	suite.Equal(domain.StatusApplied, creditA.Status.Code)
	suite.Equal(domain.StatusApplied, creditB.Status.Code)

	// One atomic repository call carrying the bill and both credits.
	suite.Require().Len(saved, 3)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestApplyCredits_TotalExceedsBalance() {
	ctx := context.Background()
	bill := suite.newBill("100")
	creditA := suite.newCredit("-80")
	creditB := suite.newCredit("-50")

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)
	suite.mockRepo.On("FindDocumentByID", ctx, creditA.DocumentID).Return(creditA, nil)
	suite.mockRepo.On("FindDocumentByID", ctx, creditB.DocumentID).Return(creditB, nil)

	_, err := suite.service.ApplyCredits(ctx, bill.DocumentID, []dto.CreditSelection{
		{CreditID: creditA.DocumentID, Amount: decimal.RequireFromString("80")},
		{CreditID: creditB.DocumentID, Amount: decimal.RequireFromString("50")},
	}, suite.userID)

	var exceeds *services.AmountExceedsBalanceError
	suite.Require().ErrorAs(err, &exceeds)
	suite.True(exceeds.Remaining.Equal(decimal.RequireFromString("100")))

	// Nothing was mutated: validation failed before any apply.
	suite.Equal(domain.StatusCredit, creditA.Status.Code)
	suite.Equal(domain.StatusCredit, creditB.Status.Code)
	suite.Empty(bill.Payments)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDocuments", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestApplyCredits_DuplicateSelection() {
	ctx := context.Background()
	bill := suite.newBill("100")
	credit := suite.newCredit("-30")

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil)
	suite.mockRepo.On("FindDocumentByID", ctx, credit.DocumentID).Return(credit, nil)

	_, err := suite.service.ApplyCredits(ctx, bill.DocumentID, []dto.CreditSelection{
		{CreditID: credit.DocumentID, Amount: decimal.RequireFromString("15")},
		{CreditID: credit.DocumentID, Amount: decimal.RequireFromString("15")},
	}, suite.userID)

	suite.Require().ErrorIs(err, services.ErrCreditUnavailable)
}

// --- AvailableCredits / OutstandingBalance ---

func (suite *LedgerServiceTestSuite) TestAvailableCredits() {
	ctx := context.Background()
	credit := suite.newCredit("-30")

	suite.mockRepo.On("FindAvailableCredits", ctx, "vendor-1").Return([]domain.Document{*credit}, nil).Once()

	credits, err := suite.service.AvailableCredits(ctx, "vendor-1")
	suite.Require().NoError(err)
	suite.Require().Len(credits, 1)
	suite.Equal(credit.DocumentID, credits[0].DocumentID)
}

func (suite *LedgerServiceTestSuite) TestOutstandingBalance() {
	ctx := context.Background()
	bill := suite.newBill("100")
	bill.Payments = []domain.PaymentRecord{{
		ID: uuid.NewString(), Type: domain.PaymentCash,
		Amount: decimal.RequireFromString("60"),
		Date:   time.Now().UTC(),
	}}

	suite.mockRepo.On("FindDocumentByID", ctx, bill.DocumentID).Return(bill, nil).Once()

	balance, err := suite.service.OutstandingBalance(ctx, bill.DocumentID)
	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("40")))
}

// --- MigrateLegacyPartialStatuses ---

func (suite *LedgerServiceTestSuite) TestMigrate_PercentToDollarWithSyntheticPayment() {
	ctx := context.Background()
	bill := suite.newBill("50")
	bill.Status = domain.ParseStatus("Partial (40.0%)")

	suite.mockRepo.On("ListAllDocumentsByKind", ctx, domain.KindBill).Return([]domain.Document{*bill}, nil).Once()
	suite.mockRepo.On("ListAllDocumentsByKind", ctx, domain.KindInvoice).Return([]domain.Document{}, nil).Once()

	var saved domain.Document
	suite.mockRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.Document")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Document) }).
		Return(nil).Once()

	migrated, err := suite.service.MigrateLegacyPartialStatuses(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, migrated)
	suite.Equal("Partial ($20.00)", saved.Status.String())
	suite.Require().Len(saved.Payments, 1)
	suite.Equal(domain.PaymentUnknown, saved.Payments[0].Type)
	suite.True(saved.Payments[0].Amount.Equal(decimal.RequireFromString("20")))
	suite.Equal("Migrated from old system", saved.Payments[0].Reference)
	suite.Contains(saved.Payments[0].Notes, "Partial (40.0%)")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMigrate_IdempotentOnDollarForm() {
	ctx := context.Background()
	bill := suite.newBill("50")
	bill.Status = domain.ParseStatus("Partial ($20.00)")
	bill.Payments = []domain.PaymentRecord{{
		ID: uuid.NewString(), Type: domain.PaymentUnknown,
		Amount: decimal.RequireFromString("20"),
		Date:   time.Now().UTC(),
	}}

	suite.mockRepo.On("ListAllDocumentsByKind", ctx, domain.KindBill).Return([]domain.Document{*bill}, nil).Once()
	suite.mockRepo.On("ListAllDocumentsByKind", ctx, domain.KindInvoice).Return([]domain.Document{}, nil).Once()

	migrated, err := suite.service.MigrateLegacyPartialStatuses(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, migrated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDocument", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestMigrate_KeepsExistingPayments() {
	ctx := context.Background()
	bill := suite.newBill("50")
	bill.Status = domain.ParseStatus("Partial (40.0%)")
	bill.Payments = []domain.PaymentRecord{{
		ID: uuid.NewString(), Type: domain.PaymentCash,
		Amount: decimal.RequireFromString("25"),
		Date:   time.Now().UTC(),
	}}

	suite.mockRepo.On("ListAllDocumentsByKind", ctx, domain.KindBill).Return([]domain.Document{*bill}, nil).Once()
	suite.mockRepo.On("ListAllDocumentsByKind", ctx, domain.KindInvoice).Return([]domain.Document{}, nil).Once()

	var saved domain.Document
	suite.mockRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.Document")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Document) }).
		Return(nil).Once()

	migrated, err := suite.service.MigrateLegacyPartialStatuses(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, migrated)
	// Existing payments win: no synthetic record, status reflects their sum.
	suite.Len(saved.Payments, 1)
	suite.Equal("Partial ($25.00)", saved.Status.String())
}

func (suite *LedgerServiceTestSuite) TestMigrate_MalformedLeftUntouched() {
	ctx := context.Background()
	bill := suite.newBill("50")
	bill.Status = domain.ParseStatus("Partial (garbage%)")

	suite.mockRepo.On("ListAllDocumentsByKind", ctx, domain.KindBill).Return([]domain.Document{*bill}, nil).Once()
	suite.mockRepo.On("ListAllDocumentsByKind", ctx, domain.KindInvoice).Return([]domain.Document{}, nil).Once()

	migrated, err := suite.service.MigrateLegacyPartialStatuses(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, migrated)
	suite.Equal("Partial (garbage%)", bill.Status.String())
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateDocument", mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
