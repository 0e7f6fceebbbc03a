package domain_test

import (
	"testing"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocument(id, name string, requiredBy domain.PartySide) domain.TransactionDocument {
	return domain.TransactionDocument{
		DocumentID: id,
		Name:       name,
		Type:       domain.DocumentLegal,
		RequiredBy: requiredBy,
		UploadedBy: "seller-user",
		UploadedAt: refNow,
		FileSize:   1024,
	}
}

func approve(t *testing.T, txn *domain.Transaction, id string) {
	t.Helper()
	_, err := txn.SetDocumentStatus(id, domain.DocumentReview)
	require.NoError(t, err)
	_, err = txn.SetDocumentStatus(id, domain.DocumentApproved)
	require.NoError(t, err)
}

func TestDocument_UploadStartsAsLatestDraft(t *testing.T) {
	txn := newTestTransaction()
	doc, err := txn.AddDocument(newDocument("d1", "Purchase Agreement", domain.SideBoth))
	require.NoError(t, err)

	assert.Equal(t, domain.DocumentDraft, doc.Status)
	assert.Equal(t, 1, doc.Version)
	assert.True(t, doc.IsLatest)
	assert.Equal(t, "d1", doc.LineageID)
}

func TestDocument_NewVersionKeepsSingleLatest(t *testing.T) {
	txn := newTestTransaction()
	_, err := txn.AddDocument(newDocument("d1", "Purchase Agreement", domain.SideBoth))
	require.NoError(t, err)
	_, err = txn.AddDocument(newDocument("other", "Disclosure Letter", domain.SideSeller))
	require.NoError(t, err)
	_, err = txn.AddDocument(newDocument("d2", "purchase agreement ", domain.SideBoth))
	require.NoError(t, err)
	v3, err := txn.AddDocument(newDocument("d3", "Purchase Agreement", domain.SideBoth))
	require.NoError(t, err)

	assert.Equal(t, 3, v3.Version)
	assert.Equal(t, "d1", v3.LineageID)

	versions, err := txn.DocumentVersions("d1")
	require.NoError(t, err)
	require.Len(t, versions, 3)
	latest := 0
	for _, v := range versions {
		if v.IsLatest {
			latest++
			assert.Equal(t, "d3", v.DocumentID)
		}
	}
	assert.Equal(t, 1, latest)

	other, err := txn.Document("other")
	require.NoError(t, err)
	assert.True(t, other.IsLatest)
	assert.Len(t, txn.LatestDocuments(), 2)
}

func TestDocument_StatusWorkflow(t *testing.T) {
	tests := []struct {
		name    string
		steps   []domain.DocumentStatus
		wantErr bool
	}{
		{name: "draft to review", steps: []domain.DocumentStatus{domain.DocumentReview}},
		{name: "review back to draft", steps: []domain.DocumentStatus{domain.DocumentReview, domain.DocumentDraft}},
		{name: "review to approved", steps: []domain.DocumentStatus{domain.DocumentReview, domain.DocumentApproved}},
		{name: "draft to approved skips review", steps: []domain.DocumentStatus{domain.DocumentApproved}, wantErr: true},
		{name: "signed only via signatures", steps: []domain.DocumentStatus{domain.DocumentReview, domain.DocumentApproved, domain.DocumentSigned}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := newTestTransaction()
			_, err := txn.AddDocument(newDocument("d1", "SPA", domain.SideBoth))
			require.NoError(t, err)
			for _, s := range tt.steps {
				_, err = txn.SetDocumentStatus("d1", s)
				if err != nil {
					break
				}
			}
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDocument_SignedWhenExpectedSignatoriesComplete(t *testing.T) {
	txn := newTestTransaction()
	_, err := txn.AddDocument(newDocument("d1", "SPA", domain.SideBoth))
	require.NoError(t, err)

	_, err = txn.AddSignature("d1", domain.Signature{SignatoryID: "buyer-user", SignedAt: refNow, Method: domain.SignatureElectronic})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "draft documents cannot be signed")

	approve(t, txn, "d1")

	doc, err := txn.AddSignature("d1", domain.Signature{SignatoryID: "buyer-user", SignedAt: refNow, Method: domain.SignatureElectronic})
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentApproved, doc.Status)
	assert.Equal(t, "Bea Buyer", doc.Signatures[0].SignatoryName)

	_, err = txn.AddSignature("d1", domain.Signature{SignatoryID: "buyer-user", SignedAt: refNow, Method: domain.SignatureWet})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = txn.AddSignature("d1", domain.Signature{SignatoryID: "stranger", SignedAt: refNow, Method: domain.SignatureWet})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	doc, err = txn.AddSignature("d1", domain.Signature{SignatoryID: "seller-user", SignedAt: refNow, Method: domain.SignatureWet})
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentSigned, doc.Status)
}

func TestDocument_AdvisorSignatureDoesNotCompleteSellerDocument(t *testing.T) {
	txn := newTestTransaction()
	_, err := txn.AddDocument(newDocument("d1", "Disclosure Letter", domain.SideSeller))
	require.NoError(t, err)
	approve(t, txn, "d1")

	doc, err := txn.AddSignature("d1", domain.Signature{SignatoryID: "advisor-user", SignedAt: refNow, Method: domain.SignatureElectronic})
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentApproved, doc.Status)

	doc, err = txn.AddSignature("d1", domain.Signature{SignatoryID: "seller-user", SignedAt: refNow, Method: domain.SignatureElectronic})
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentSigned, doc.Status)
}

func TestDocument_CommentsDoNotChangeStatus(t *testing.T) {
	txn := newTestTransaction()
	_, err := txn.AddDocument(newDocument("d1", "SPA", domain.SideBoth))
	require.NoError(t, err)
	approve(t, txn, "d1")

	c, err := domain.NewComment("c1", "advisor-user", "clause 4.2 needs a cap", refNow)
	require.NoError(t, err)
	_, err = txn.AddDocumentComment("d1", c)
	require.NoError(t, err)

	doc, err := txn.ResolveDocumentComment("d1", "c1", "seller-user", refNow)
	require.NoError(t, err)
	assert.True(t, doc.Comments[0].Resolved)
	assert.Equal(t, domain.DocumentApproved, doc.Status)
}
