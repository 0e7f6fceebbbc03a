package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/SscSPs/closing_tracker/internal/utils/retry"
	"golang.org/x/crypto/blake2b"
)

type documentService struct {
	recordStore
	storage portsrepo.DocumentStorage
}

// NewDocumentService creates the document registry backed by storage.
func NewDocumentService(repo portsrepo.TransactionRepositoryFacade, storage portsrepo.DocumentStorage, options ...ServiceOption) portssvc.DocumentSvcFacade {
	return &documentService{
		recordStore: newRecordStore(repo, options),
		storage:     storage,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

type storedObject struct {
	key      string
	size     int64
	checksum string
}

func (s *documentService) Upload(ctx context.Context, transactionID string, req dto.UploadDocumentRequest, content io.Reader, userID string) (*dto.Versioned[domain.TransactionDocument], error) {
	contentType, err := s.checkUpload(req)
	if err != nil {
		return nil, err
	}

	// Fail before storing anything the record write would reject anyway.
	txn, scope, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	if err := requireParty(scope); err != nil {
		return nil, err
	}
	if !txn.AcceptsChildEntities() {
		return nil, fmt.Errorf("%w: cannot add documents while transaction is %s", apperrors.ErrValidation, txn.Status)
	}

	documentID := s.cfg.newID()
	key := fmt.Sprintf("%s/%s/%s", transactionID, documentID, safeFileName(req.FileName, req.Name))
	obj, err := s.store(ctx, key, content, contentType)
	if err != nil {
		return nil, err
	}

	var added domain.TransactionDocument
	txn, err = s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, _ domain.RequestScope, now time.Time) (change, error) {
		var dueDate *time.Time
		if req.DueDate != nil {
			d := req.DueDate.UTC()
			dueDate = &d
		}
		doc, err := txn.AddDocument(domain.TransactionDocument{
			DocumentID:  documentID,
			Name:        strings.TrimSpace(req.Name),
			Type:        domain.DocumentType(req.Type),
			Category:    req.Category,
			RequiredBy:  domain.PartySide(req.RequiredBy),
			DueDate:     dueDate,
			UploadedBy:  userID,
			UploadedAt:  now,
			FileSize:    obj.size,
			ContentType: contentType,
			Checksum:    obj.checksum,
			StorageKey:  obj.key,
			DownloadURL: s.storage.DownloadURL(obj.key),
		})
		if err != nil {
			return change{}, err
		}
		added = *doc
		return change{
			action:   "document.uploaded",
			kind:     domain.EntityDocument,
			entityID: doc.DocumentID,
			summary:  fmt.Sprintf("Uploaded %q version %d", doc.Name, doc.Version),
		}, nil
	})
	if err != nil {
		// The record is the source of truth; an unreferenced object is removed.
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), obj.key); delErr != nil {
			s.LogError(ctx, delErr, "Failed to remove orphaned document content", slog.String("storage_key", obj.key))
		}
		return nil, err
	}
	return versioned(added, txn), nil
}

func (s *documentService) checkUpload(req dto.UploadDocumentRequest) (string, error) {
	policy := s.cfg.upload
	if policy.MaxSizeBytes > 0 && req.Size > policy.MaxSizeBytes {
		return "", fmt.Errorf("%w: file is %d bytes, limit is %d", apperrors.ErrUpload, req.Size, policy.MaxSizeBytes)
	}
	contentType := req.ContentType
	if parsed, _, err := mime.ParseMediaType(req.ContentType); err == nil {
		contentType = parsed
	}
	if len(policy.AllowedContentTypes) == 0 {
		return contentType, nil
	}
	for _, allowed := range policy.AllowedContentTypes {
		if strings.EqualFold(allowed, contentType) {
			return contentType, nil
		}
	}
	return "", fmt.Errorf("%w: %s", apperrors.ErrUnsupportedContentType, req.ContentType)
}

// store streams content to storage through a blake2b hasher. Seekable content is rewound
// between attempts so transient storage failures can be retried.
func (s *documentService) store(ctx context.Context, key string, content io.Reader, contentType string) (*storedObject, error) {
	if s.cfg.upload.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.upload.Timeout)
		defer cancel()
	}

	limit := s.cfg.upload.MaxSizeBytes
	seeker, seekable := content.(io.Seeker)
	retryCfg := s.cfg.storageRetry
	if !seekable {
		retryCfg.MaxAttempts = 1
	}

	var obj storedObject
	result, err := retry.Do(ctx, retryCfg, func(ctx context.Context) error {
		if seekable {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return fmt.Errorf("%w: rewinding upload: %v", apperrors.ErrUpload, err)
			}
		}
		hasher, err := blake2b.New256(nil)
		if err != nil {
			return err
		}
		var body io.Reader = content
		if limit > 0 {
			body = io.LimitReader(content, limit+1)
		}
		n, err := s.storage.Put(ctx, key, io.TeeReader(body, hasher), contentType)
		if err != nil {
			return err
		}
		obj = storedObject{key: key, size: n, checksum: hex.EncodeToString(hasher.Sum(nil))}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to store document content", slog.String("storage_key", key), slog.String("retry", result.String()))
		if errors.Is(err, apperrors.ErrUpload) {
			return nil, err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: upload timed out", apperrors.ErrUpload)
		}
		return nil, fmt.Errorf("storing document: %w", err)
	}

	if limit > 0 && obj.size > limit {
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.LogError(ctx, delErr, "Failed to remove oversized document content", slog.String("storage_key", key))
		}
		return nil, fmt.Errorf("%w: file exceeds %d bytes", apperrors.ErrUpload, limit)
	}
	if obj.size == 0 {
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.LogError(ctx, delErr, "Failed to remove empty document content", slog.String("storage_key", key))
		}
		return nil, fmt.Errorf("%w: file is empty", apperrors.ErrUpload)
	}
	return &obj, nil
}

// safeFileName keeps the base name of an uploaded file to characters that are safe in storage keys.
func safeFileName(fileName, fallback string) string {
	name := filepath.Base(strings.TrimSpace(fileName))
	if name == "." || name == "/" || name == "" {
		name = fallback
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if strings.Trim(name, "._") == "" {
		return "document"
	}
	return name
}

func (s *documentService) GetDocument(ctx context.Context, transactionID, documentID string, userID string) (*domain.TransactionDocument, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	doc, err := txn.Document(documentID)
	if err != nil {
		return nil, err
	}
	out := *doc
	return &out, nil
}

func (s *documentService) ListDocuments(ctx context.Context, transactionID string, userID string) ([]domain.TransactionDocument, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	return txn.LatestDocuments(), nil
}

func (s *documentService) ListVersions(ctx context.Context, transactionID, lineageID string, userID string) ([]domain.TransactionDocument, error) {
	txn, _, err := s.load(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	return txn.DocumentVersions(lineageID)
}

func (s *documentService) SetStatus(ctx context.Context, transactionID, documentID string, req dto.SetDocumentStatusRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error) {
	status := domain.DocumentStatus(req.Status)
	var result domain.TransactionDocument
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, _ time.Time) (change, error) {
		doc, err := txn.Document(documentID)
		if err != nil {
			return change{}, err
		}
		if err := scope.Authorize(doc.UploadedBy, doc.RequiredBy); err != nil {
			return change{}, err
		}
		if doc.Status == status {
			result = *doc
			return change{noop: true}, nil
		}
		previous := doc.Status
		doc, err = txn.SetDocumentStatus(documentID, status)
		if err != nil {
			return change{}, err
		}
		result = *doc
		return change{
			action:   "document.status_changed",
			kind:     domain.EntityDocument,
			entityID: documentID,
			summary:  fmt.Sprintf("%q moved from %s to %s", doc.Name, previous, status),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func (s *documentService) AddSignature(ctx context.Context, transactionID, documentID string, req dto.AddSignatureRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error) {
	var result domain.TransactionDocument
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, _ domain.RequestScope, now time.Time) (change, error) {
		doc, err := txn.AddSignature(documentID, domain.Signature{
			SignatoryID: userID,
			SignedAt:    now,
			Method:      domain.SignatureMethod(req.Method),
			IPAddress:   req.IPAddress,
			Location:    req.Location,
		})
		if err != nil {
			return change{}, err
		}
		result = *doc
		summary := fmt.Sprintf("Signed %q", doc.Name)
		if doc.Status == domain.DocumentSigned {
			summary += ", signatures complete"
		}
		return change{
			action:   "document.signed",
			kind:     domain.EntityDocument,
			entityID: documentID,
			summary:  summary,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func (s *documentService) AddComment(ctx context.Context, transactionID, documentID string, req dto.AddCommentRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error) {
	var result domain.TransactionDocument
	txn, err := s.mutate(ctx, transactionID, userID, req.VersionedRequest, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		if err := requireParty(scope); err != nil {
			return change{}, err
		}
		comment, err := s.newComment(req.Text, userID, now)
		if err != nil {
			return change{}, err
		}
		doc, err := txn.AddDocumentComment(documentID, comment)
		if err != nil {
			return change{}, err
		}
		result = *doc
		return change{
			action:   "document.commented",
			kind:     domain.EntityDocument,
			entityID: documentID,
			summary:  fmt.Sprintf("Comment on %q", doc.Name),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}

func (s *documentService) ResolveComment(ctx context.Context, transactionID, documentID, commentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error) {
	var result domain.TransactionDocument
	txn, err := s.mutate(ctx, transactionID, userID, req, func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error) {
		if err := requireParty(scope); err != nil {
			return change{}, err
		}
		doc, err := txn.Document(documentID)
		if err != nil {
			return change{}, err
		}
		if commentResolved(doc.Comments, commentID) {
			result = *doc
			return change{noop: true}, nil
		}
		doc, err = txn.ResolveDocumentComment(documentID, commentID, userID, now)
		if err != nil {
			return change{}, err
		}
		result = *doc
		return change{
			action:   "document.comment_resolved",
			kind:     domain.EntityDocument,
			entityID: documentID,
			summary:  fmt.Sprintf("Resolved comment %s", commentID),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return versioned(result, txn), nil
}
