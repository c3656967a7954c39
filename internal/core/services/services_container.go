package services

import (
	portsrepo "github.com/SscSPs/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_books_app/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	productSvc := NewProductService(repos.ProductRepo)
	return &portssvc.ServiceContainer{
		Ledger:       NewLedgerService(repos.DocumentRepo),
		Document:     NewDocumentService(repos.DocumentRepo, repos.CounterpartyRepo, productSvc),
		Counterparty: NewCounterpartyService(repos.CounterpartyRepo),
		Product:      productSvc,
		User:         NewUserService(repos.UserRepo),
		Reporting:    NewReportingService(repos.DocumentRepo),
		Export:       NewExportService(repos.DocumentRepo),
	}
}
