package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
)

// DocumentType is the area a document belongs to.
type DocumentType string

const (
	DocumentLegal       DocumentType = "legal"
	DocumentFinancial   DocumentType = "financial"
	DocumentOperational DocumentType = "operational"
	DocumentRegulatory  DocumentType = "regulatory"
	DocumentClosing     DocumentType = "closing"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentLegal, DocumentFinancial, DocumentOperational, DocumentRegulatory, DocumentClosing:
		return true
	}
	return false
}

// DocumentStatus tracks review and signing.
type DocumentStatus string

const (
	DocumentDraft    DocumentStatus = "draft"
	DocumentReview   DocumentStatus = "review"
	DocumentApproved DocumentStatus = "approved"
	DocumentSigned   DocumentStatus = "signed"
)

var documentTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentDraft:  {DocumentReview},
	DocumentReview: {DocumentDraft, DocumentApproved},
}

// SignatureMethod is how a document was signed.
type SignatureMethod string

const (
	SignatureElectronic SignatureMethod = "electronic"
	SignatureWet        SignatureMethod = "wet"
)

// Valid reports whether m is a known method.
func (m SignatureMethod) Valid() bool {
	return m == SignatureElectronic || m == SignatureWet
}

// Signature is one signatory's mark on a document.
type Signature struct {
	SignatoryID   string          `json:"signatoryID"`
	SignatoryName string          `json:"signatoryName"`
	SignedAt      time.Time       `json:"signedAt"`
	Method        SignatureMethod `json:"method"`
	IPAddress     string          `json:"ipAddress,omitempty"`
	Location      string          `json:"location,omitempty"`
}

// TransactionDocument is one version of a document in a lineage.
type TransactionDocument struct {
	DocumentID  string         `json:"documentID"`
	LineageID   string         `json:"lineageID"`
	Name        string         `json:"name"`
	Type        DocumentType   `json:"type"`
	Category    string         `json:"category,omitempty"`
	Status      DocumentStatus `json:"status"`
	RequiredBy  PartySide      `json:"requiredBy"`
	DueDate     *time.Time     `json:"dueDate,omitempty"`
	UploadedBy  string         `json:"uploadedBy"`
	UploadedAt  time.Time      `json:"uploadedAt"`
	FileSize    int64          `json:"fileSize"`
	ContentType string         `json:"contentType"`
	Checksum    string         `json:"checksum"`
	StorageKey  string         `json:"-"`
	DownloadURL string         `json:"downloadUrl"`
	Version     int            `json:"version"`
	IsLatest    bool           `json:"isLatest"`
	Signatures  []Signature    `json:"signatures"`
	Comments    []Comment      `json:"comments"`
}

// HasSigned reports whether userID already signed this version.
func (d TransactionDocument) HasSigned(userID string) bool {
	for _, s := range d.Signatures {
		if s.SignatoryID == userID {
			return true
		}
	}
	return false
}

func normalizeDocumentName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Document finds a document version by id.
func (t *Transaction) Document(documentID string) (*TransactionDocument, error) {
	for i := range t.Documents {
		if t.Documents[i].DocumentID == documentID {
			return &t.Documents[i], nil
		}
	}
	return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
}

// LatestDocumentByName returns the latest version of the lineage named name, if any.
func (t *Transaction) LatestDocumentByName(name string) *TransactionDocument {
	key := normalizeDocumentName(name)
	for i := range t.Documents {
		if t.Documents[i].IsLatest && normalizeDocumentName(t.Documents[i].Name) == key {
			return &t.Documents[i]
		}
	}
	return nil
}

// AddDocument registers an uploaded document as a new draft. When a latest document of the
// same name exists the upload becomes its next version and the prior one stops being latest.
func (t *Transaction) AddDocument(doc TransactionDocument) (*TransactionDocument, error) {
	if err := t.ensureOpenForChildren(EntityDocument); err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Name) == "" {
		return nil, fmt.Errorf("%w: document name is required", apperrors.ErrValidation)
	}
	if !doc.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, doc.Type)
	}
	if !doc.RequiredBy.Valid() {
		return nil, fmt.Errorf("%w: unknown required-by party %q", apperrors.ErrValidation, doc.RequiredBy)
	}

	doc.Status = DocumentDraft
	doc.Version = 1
	doc.LineageID = doc.DocumentID
	doc.IsLatest = true
	doc.Signatures = []Signature{}
	doc.Comments = []Comment{}

	if prior := t.LatestDocumentByName(doc.Name); prior != nil {
		doc.Version = prior.Version + 1
		doc.LineageID = prior.LineageID
		prior.IsLatest = false
	}
	t.Documents = append(t.Documents, doc)
	return &t.Documents[len(t.Documents)-1], nil
}

// DocumentVersions lists every version of a lineage, oldest first.
func (t *Transaction) DocumentVersions(lineageID string) ([]TransactionDocument, error) {
	var out []TransactionDocument
	for _, d := range t.Documents {
		if d.LineageID == lineageID {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: document lineage %s", apperrors.ErrNotFound, lineageID)
	}
	return out, nil
}

// SetDocumentStatus applies a review workflow transition. Signed is reached only through signatures.
func (t *Transaction) SetDocumentStatus(documentID string, status DocumentStatus) (*TransactionDocument, error) {
	doc, err := t.Document(documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status == status {
		return doc, nil
	}
	allowed := false
	for _, next := range documentTransitions[doc.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: cannot move document from %s to %q", apperrors.ErrValidation, doc.Status, status)
	}
	doc.Status = status
	return doc, nil
}

// ExpectedSignatories are the principal parties on the side that must sign the document.
func (t *Transaction) ExpectedSignatories(doc TransactionDocument) []Party {
	return t.PartiesOnSide(doc.RequiredBy)
}

// SigningComplete reports whether every expected signatory signed. With no expected signatory
// a single signature completes the document.
func (t *Transaction) SigningComplete(doc TransactionDocument) bool {
	expected := t.ExpectedSignatories(doc)
	if len(expected) == 0 {
		return len(doc.Signatures) > 0
	}
	for _, p := range expected {
		if !doc.HasSigned(p.UserID) {
			return false
		}
	}
	return true
}

// AddSignature records a party's signature on an approved document and marks it signed once
// the expected signatory set is complete.
func (t *Transaction) AddSignature(documentID string, sig Signature) (*TransactionDocument, error) {
	doc, err := t.Document(documentID)
	if err != nil {
		return nil, err
	}
	if !sig.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown signature method %q", apperrors.ErrValidation, sig.Method)
	}
	if doc.Status != DocumentApproved {
		return nil, fmt.Errorf("%w: document must be approved before signing, status is %s", apperrors.ErrValidation, doc.Status)
	}
	if !doc.IsLatest {
		return nil, fmt.Errorf("%w: only the latest version can be signed", apperrors.ErrValidation)
	}
	party := t.PartyForUser(sig.SignatoryID)
	if party == nil {
		return nil, fmt.Errorf("%w: signatory %s is not a party", apperrors.ErrForbidden, sig.SignatoryID)
	}
	if doc.HasSigned(sig.SignatoryID) {
		return nil, fmt.Errorf("%w: %s already signed document %s", apperrors.ErrDuplicate, sig.SignatoryID, documentID)
	}
	if sig.SignatoryName == "" {
		sig.SignatoryName = party.Name
	}
	doc.Signatures = append(doc.Signatures, sig)
	if t.SigningComplete(*doc) {
		doc.Status = DocumentSigned
	}
	return doc, nil
}

// AddDocumentComment appends a comment to a document version.
func (t *Transaction) AddDocumentComment(documentID string, c Comment) (*TransactionDocument, error) {
	doc, err := t.Document(documentID)
	if err != nil {
		return nil, err
	}
	doc.Comments = append(doc.Comments, c)
	return doc, nil
}

// ResolveDocumentComment resolves a comment without touching the document status.
func (t *Transaction) ResolveDocumentComment(documentID, commentID, userID string, now time.Time) (*TransactionDocument, error) {
	doc, err := t.Document(documentID)
	if err != nil {
		return nil, err
	}
	if _, err := resolveComment(doc.Comments, commentID, userID, now); err != nil {
		return nil, err
	}
	return doc, nil
}

// LatestDocuments filters to the latest version of every lineage.
func (t *Transaction) LatestDocuments() []TransactionDocument {
	out := make([]TransactionDocument, 0, len(t.Documents))
	for _, d := range t.Documents {
		if d.IsLatest {
			out = append(out, d)
		}
	}
	return out
}
