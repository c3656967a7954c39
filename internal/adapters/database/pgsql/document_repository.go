package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/biz_books_app/internal/apperrors"
	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/biz_books_app/internal/utils/pagination"
)

type documentRepository struct {
	baseRepository
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new repository for bills, invoices and
// vendor credits.
func NewDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &documentRepository{baseRepository: baseRepository{pool: pool}, pool: pool}
}

var _ portsrepo.DocumentRepositoryFacade = (*documentRepository)(nil)

const documentColumns = `document_id, kind, counterparty_id, counterparty_name, invoice_number, description,
	face_amount, is_credit, status, line_items,
	document_date, due_date, date_created,
	payment_date, payment_type, payment_reference,
	payments, credits_applied,
	applied_to_document_id, applied_date,
	created_at, created_by, last_updated_at, last_updated_by`

// documentArgs flattens a document into the positional arguments matching
// documentColumns. Payments, credits and line items travel as JSONB.
func documentArgs(doc domain.Document) ([]interface{}, error) {
	lineItemsJSON, err := json.Marshal(doc.LineItems)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal line items for %s: %w", doc.DocumentID, err)
	}
	paymentsJSON, err := json.Marshal(doc.Payments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payments for %s: %w", doc.DocumentID, err)
	}
	creditsJSON, err := json.Marshal(doc.CreditsApplied)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credit applications for %s: %w", doc.DocumentID, err)
	}

	var paymentType *string
	if doc.PaymentType != "" {
		pt := string(doc.PaymentType)
		paymentType = &pt
	}

	return []interface{}{
		doc.DocumentID, string(doc.Kind), doc.CounterpartyID, doc.CounterpartyName, doc.InvoiceNumber, doc.Description,
		doc.FaceAmount, doc.IsCredit, doc.Status.String(), lineItemsJSON,
		doc.DocumentDate, doc.DueDate, doc.DateCreated,
		doc.PaymentDate, paymentType, doc.PaymentReference,
		paymentsJSON, creditsJSON,
		doc.AppliedToDocumentID, doc.AppliedDate,
		doc.CreatedAt, doc.CreatedBy, doc.LastUpdatedAt, doc.LastUpdatedBy,
	}, nil
}

// scanDocument reads one row into a document, decoding the JSONB columns and
// re-parsing the stored status text.
func scanDocument(row pgx.Row) (*domain.Document, error) {
	var doc domain.Document
	var kind, statusStr string
	var paymentType *string
	var lineItemsJSON, paymentsJSON, creditsJSON []byte

	err := row.Scan(
		&doc.DocumentID, &kind, &doc.CounterpartyID, &doc.CounterpartyName, &doc.InvoiceNumber, &doc.Description,
		&doc.FaceAmount, &doc.IsCredit, &statusStr, &lineItemsJSON,
		&doc.DocumentDate, &doc.DueDate, &doc.DateCreated,
		&doc.PaymentDate, &paymentType, &doc.PaymentReference,
		&paymentsJSON, &creditsJSON,
		&doc.AppliedToDocumentID, &doc.AppliedDate,
		&doc.CreatedAt, &doc.CreatedBy, &doc.LastUpdatedAt, &doc.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	doc.Kind = domain.DocumentKind(kind)
	doc.Status = domain.ParseStatus(statusStr)
	if paymentType != nil {
		doc.PaymentType = domain.PaymentType(*paymentType)
	}

	if len(lineItemsJSON) > 0 {
		if err := json.Unmarshal(lineItemsJSON, &doc.LineItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal line items for %s: %w", doc.DocumentID, err)
		}
	}
	if err := json.Unmarshal(paymentsJSON, &doc.Payments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payments for %s: %w", doc.DocumentID, err)
	}
	if err := json.Unmarshal(creditsJSON, &doc.CreditsApplied); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credit applications for %s: %w", doc.DocumentID, err)
	}
	if doc.Payments == nil {
		doc.Payments = []domain.PaymentRecord{}
	}
	if doc.CreditsApplied == nil {
		doc.CreditsApplied = []domain.CreditApplication{}
	}
	return &doc, nil
}

// SaveDocument inserts a new document.
func (r *documentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	args, err := documentArgs(doc)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save document %s: %w", doc.DocumentID, err)
	}
	return nil
}

const updateDocumentQuery = `
	UPDATE documents SET
		kind = $2, counterparty_id = $3, counterparty_name = $4, invoice_number = $5, description = $6,
		face_amount = $7, is_credit = $8, status = $9, line_items = $10,
		document_date = $11, due_date = $12, date_created = $13,
		payment_date = $14, payment_type = $15, payment_reference = $16,
		payments = $17, credits_applied = $18,
		applied_to_document_id = $19, applied_date = $20,
		created_at = $21, created_by = $22, last_updated_at = $23, last_updated_by = $24
	WHERE document_id = $1;
`

// UpdateDocument rewrites an existing document in full.
func (r *documentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	args, err := documentArgs(doc)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, updateDocumentQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", doc.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.DocumentID, apperrors.ErrNotFound)
	}
	return nil
}

// UpdateDocuments rewrites several documents inside one database
// transaction. Credit application relies on this: the bill and its source
// credits either all commit or none do.
func (r *documentRepository) UpdateDocuments(ctx context.Context, docs []domain.Document) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	batch := &pgx.Batch{}
	for _, doc := range docs {
		args, err := documentArgs(doc)
		if err != nil {
			return err
		}
		batch.Queue(updateDocumentQuery, args...)
	}

	br := tx.SendBatch(ctx, batch)
	for _, doc := range docs {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to update document %s in batch: %w", doc.DocumentID, err)
		}
		if tag.RowsAffected() == 0 {
			_ = br.Close()
			return fmt.Errorf("document %s: %w", doc.DocumentID, apperrors.ErrNotFound)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close document update batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit document updates: %w", err)
	}
	return nil
}

// DeleteDocument removes a document.
func (r *documentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", documentID, apperrors.ErrNotFound)
	}
	return nil
}

// FindDocumentByID retrieves a single document.
func (r *documentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	doc, err := scanDocument(r.pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", documentID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return doc, nil
}

// ListDocumentsByKind retrieves one page of documents, newest first, using
// a (created_at, document_id) keyset token.
func (r *documentRepository) ListDocumentsByKind(ctx context.Context, kind domain.DocumentKind, limit int, nextToken *string) ([]domain.Document, *string, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE kind = $1`
	args := []interface{}{string(kind)}

	if nextToken != nil && *nextToken != "" {
		createdAt, documentID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, document_id) < ($2, $3)`
		args = append(args, createdAt, documentID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, document_id DESC LIMIT %d;`, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s documents: %w", kind, err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0, limit)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan %s document: %w", kind, err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate %s documents: %w", kind, err)
	}

	var token *string
	if len(docs) > limit {
		docs = docs[:limit]
		last := docs[len(docs)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.DocumentID)
		token = &t
	}
	return docs, token, nil
}

// ListAllDocumentsByKind retrieves every document of one kind in insertion
// order. Migration, reporting and export need the full set.
func (r *documentRepository) ListAllDocumentsByKind(ctx context.Context, kind domain.DocumentKind) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE kind = $1 ORDER BY created_at ASC, document_id ASC;`
	rows, err := r.pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", kind, err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", kind, err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s documents: %w", kind, err)
	}
	return docs, nil
}

// FindAvailableCredits retrieves the unconsumed credit documents for a
// counterparty, oldest first so earlier credits are offered first.
func (r *documentRepository) FindAvailableCredits(ctx context.Context, counterpartyID string) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE counterparty_id = $1 AND is_credit = TRUE AND status = $2
		ORDER BY created_at ASC, document_id ASC;`
	rows, err := r.pool.Query(ctx, query, counterpartyID, domain.SimpleStatus(domain.StatusCredit).String())
	if err != nil {
		return nil, fmt.Errorf("failed to list available credits for %s: %w", counterpartyID, err)
	}
	defer rows.Close()

	var credits []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit document: %w", err)
		}
		credits = append(credits, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credit documents: %w", err)
	}
	return credits, nil
}
