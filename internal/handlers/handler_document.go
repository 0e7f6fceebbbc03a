package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// multipartOverhead is the allowance for form fields and boundaries on top of the file limit.
const multipartOverhead = 1 << 20

// ContentOpener serves stored document bytes. The local filesystem storage implements it.
type ContentOpener interface {
	Open(key string) (*os.File, error)
}

// documentHandler handles HTTP requests on the document registry.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	maxUploadBytes  int64
	files           ContentOpener
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, maxUploadBytes int64, files ContentOpener) *documentHandler {
	return &documentHandler{documentService: ds, maxUploadBytes: maxUploadBytes, files: files}
}

func registerDocumentRoutes(txn *gin.RouterGroup, h *documentHandler) {
	documents := txn.Group("/documents")
	{
		documents.GET("", h.listDocuments)
		documents.POST("", h.uploadDocument)
		documents.GET("/:documentId", h.getDocument)
		documents.PATCH("/:documentId", h.setStatus)
		documents.GET("/:documentId/versions", h.listVersions)
		documents.GET("/:documentId/download", h.download)
		documents.POST("/:documentId/signatures", h.addSignature)
		documents.POST("/:documentId/comments", h.addComment)
		documents.POST("/:documentId/comments/:commentId/resolve", h.resolveComment)
	}
}

// listDocuments godoc
// @Summary List the latest version of every document
// @Tags documents
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Success 200 {array} domain.TransactionDocument
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionId}/documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	docs, err := h.documentService.ListDocuments(c.Request.Context(), c.Param("transactionId"), userID)
	if err != nil {
		respondError(c, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, docs)
}

// uploadDocument godoc
// @Summary Upload a document
// @Description Stores the file and records it as a draft. Uploading a name that already exists adds a new version.
// @Tags documents
// @Accept  multipart/form-data
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   If-Match header string false "Expected transaction version"
// @Param   file formData file true "Document content"
// @Param   name formData string true "Document name"
// @Param   type formData string true "Document type" Enums(legal, financial, operational, regulatory, closing)
// @Param   category formData string false "Free-form category"
// @Param   requiredBy formData string true "Side that must sign" Enums(buyer, seller, both)
// @Param   dueDate formData string false "Due date (YYYY-MM-DD)"
// @Success 201 {object} domain.TransactionDocument
// @Failure 400 {object} map[string]string "Invalid metadata"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 415 {object} map[string]string "Content type not accepted"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /transactions/{transactionId}/documents [post]
func (h *documentHandler) uploadDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	var req dto.UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, apperrors.NewAppError(http.StatusRequestEntityTooLarge, "request body too large", apperrors.ErrUpload), "Failed to upload document")
			return
		}
		logger.Warn("Failed to bind upload form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !applyIfMatch(c, &req.VersionedRequest) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Upload without file part", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperrors.NewAppError(http.StatusBadRequest, "unreadable file part", errors.Join(apperrors.ErrUpload, err)), "Failed to upload document")
		return
	}
	defer file.Close()

	req.FileName = fileHeader.Filename
	req.ContentType = fileHeader.Header.Get("Content-Type")
	req.Size = fileHeader.Size

	logger.Info("Received document upload",
		slog.String("name", req.Name),
		slog.String("content_type", req.ContentType),
		slog.Int64("size", req.Size))

	doc, err := h.documentService.Upload(c.Request.Context(), c.Param("transactionId"), req, file, userID)
	if err != nil {
		respondError(c, err, "Failed to upload document")
		return
	}
	logger.Info("Document uploaded", slog.String("document_id", doc.Data.DocumentID), slog.Int("version", doc.Data.Version))
	respondVersioned(c, http.StatusCreated, doc)
}

// getDocument godoc
// @Summary Get a document version
// @Tags documents
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   documentId path string true "Document ID"
// @Success 200 {object} domain.TransactionDocument
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
// @Router /transactions/{transactionId}/documents/{documentId} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	doc, err := h.documentService.GetDocument(c.Request.Context(), c.Param("transactionId"), c.Param("documentId"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve document")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// listVersions godoc
// @Summary List every version of a document
// @Description Accepts the id of any version in the lineage. Oldest first.
// @Tags documents
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   documentId path string true "Document ID"
// @Success 200 {array} domain.TransactionDocument
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
// @Router /transactions/{transactionId}/documents/{documentId}/versions [get]
func (h *documentHandler) listVersions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	txnID := c.Param("transactionId")
	doc, err := h.documentService.GetDocument(c.Request.Context(), txnID, c.Param("documentId"), userID)
	if err != nil {
		respondError(c, err, "Failed to list document versions")
		return
	}
	versions, err := h.documentService.ListVersions(c.Request.Context(), txnID, doc.LineageID, userID)
	if err != nil {
		respondError(c, err, "Failed to list document versions")
		return
	}
	c.JSON(http.StatusOK, versions)
}

// download godoc
// @Summary Download a document
// @Description Redirects to the document's download URL.
// @Tags documents
// @Param   transactionId path string true "Transaction ID"
// @Param   documentId path string true "Document ID"
// @Success 302
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
// @Router /transactions/{transactionId}/documents/{documentId}/download [get]
func (h *documentHandler) download(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	doc, err := h.documentService.GetDocument(c.Request.Context(), c.Param("transactionId"), c.Param("documentId"), userID)
	if err != nil {
		respondError(c, err, "Failed to download document")
		return
	}
	c.Redirect(http.StatusFound, doc.DownloadURL)
}

// serveContent streams stored bytes for keys of the form {transactionId}/{documentId}/{file}.
// The caller must be able to read the document the key belongs to.
func (h *documentHandler) serveContent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	key := strings.TrimPrefix(c.Param("key"), "/")
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || h.files == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document content not found"})
		return
	}
	doc, err := h.documentService.GetDocument(c.Request.Context(), parts[0], parts[1], userID)
	if err != nil {
		respondError(c, err, "Failed to download document")
		return
	}
	if doc.StorageKey != key {
		c.JSON(http.StatusNotFound, gin.H{"error": "document content not found"})
		return
	}
	f, err := h.files.Open(key)
	if err != nil {
		respondError(c, err, "Failed to open document content")
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
	c.Header("Content-Type", doc.ContentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, f); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Document download interrupted", slog.String("error", err.Error()))
	}
}

// setStatus godoc
// @Summary Move a document through review
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   documentId path string true "Document ID"
// @Param   If-Match header string false "Expected transaction version"
// @Param   status body dto.SetDocumentStatusRequest true "New status"
// @Success 200 {object} domain.TransactionDocument
// @Failure 400 {object} map[string]string "Invalid transition"
// @Failure 409 {object} map[string]string "Version conflict"
// @Security BearerAuth
// @Router /transactions/{transactionId}/documents/{documentId} [patch]
func (h *documentHandler) setStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SetDocumentStatusRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	doc, err := h.documentService.SetStatus(c.Request.Context(), c.Param("transactionId"), c.Param("documentId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update document")
		return
	}
	respondVersioned(c, http.StatusOK, doc)
}

// addSignature godoc
// @Summary Sign an approved document
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   documentId path string true "Document ID"
// @Param   signature body dto.AddSignatureRequest true "Signature"
// @Success 201 {object} domain.TransactionDocument
// @Failure 400 {object} map[string]string "Document not approved"
// @Failure 409 {object} map[string]string "Already signed or version conflict"
// @Security BearerAuth
// @Router /transactions/{transactionId}/documents/{documentId}/signatures [post]
func (h *documentHandler) addSignature(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddSignatureRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	req.IPAddress = c.ClientIP()
	doc, err := h.documentService.AddSignature(c.Request.Context(), c.Param("transactionId"), c.Param("documentId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to sign document")
		return
	}
	respondVersioned(c, http.StatusCreated, doc)
}

// addComment godoc
// @Summary Comment on a document
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   documentId path string true "Document ID"
// @Param   comment body dto.AddCommentRequest true "Comment"
// @Success 201 {object} domain.TransactionDocument
// @Security BearerAuth
// @Router /transactions/{transactionId}/documents/{documentId}/comments [post]
func (h *documentHandler) addComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddCommentRequest
	if !bindJSON(c, &req, &req.VersionedRequest) {
		return
	}
	doc, err := h.documentService.AddComment(c.Request.Context(), c.Param("transactionId"), c.Param("documentId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}
	respondVersioned(c, http.StatusCreated, doc)
}

// resolveComment godoc
// @Summary Resolve a document comment
// @Tags documents
// @Produce  json
// @Param   transactionId path string true "Transaction ID"
// @Param   documentId path string true "Document ID"
// @Param   commentId path string true "Comment ID"
// @Success 200 {object} domain.TransactionDocument
// @Security BearerAuth
// @Router /transactions/{transactionId}/documents/{documentId}/comments/{commentId}/resolve [post]
func (h *documentHandler) resolveComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.VersionedRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	doc, err := h.documentService.ResolveComment(c.Request.Context(), c.Param("transactionId"), c.Param("documentId"), c.Param("commentId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to resolve comment")
		return
	}
	respondVersioned(c, http.StatusOK, doc)
}
