package services

import (
	"context"
	"io"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/SscSPs/closing_tracker/internal/dto"
)

// DocumentReaderSvc defines read operations on the document registry.
type DocumentReaderSvc interface {
	GetDocument(ctx context.Context, transactionID, documentID string, userID string) (*domain.TransactionDocument, error)

	// ListDocuments returns the latest version of every document.
	ListDocuments(ctx context.Context, transactionID string, userID string) ([]domain.TransactionDocument, error)

	// ListVersions returns every version of a lineage, oldest first.
	ListVersions(ctx context.Context, transactionID, lineageID string, userID string) ([]domain.TransactionDocument, error)
}

// DocumentWriterSvc defines document mutations.
type DocumentWriterSvc interface {
	// Upload stores content and records the document. A latest document with the same name
	// becomes the previous version.
	Upload(ctx context.Context, transactionID string, req dto.UploadDocumentRequest, content io.Reader, userID string) (*dto.Versioned[domain.TransactionDocument], error)
	SetStatus(ctx context.Context, transactionID, documentID string, req dto.SetDocumentStatusRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error)

	// AddSignature records the caller's signature on an approved document.
	AddSignature(ctx context.Context, transactionID, documentID string, req dto.AddSignatureRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error)
	AddComment(ctx context.Context, transactionID, documentID string, req dto.AddCommentRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error)
	ResolveComment(ctx context.Context, transactionID, documentID, commentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error)
}

// DocumentSvcFacade combines all document operations.
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}
