package dto

import (
	"time"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddChecklistItemRequest defines a new closing task.
type AddChecklistItemRequest struct {
	VersionedRequest
	Category         string    `json:"category" binding:"required,oneof=legal financial operational regulatory closing post_closing"`
	Title            string    `json:"title" binding:"required,max=200"`
	Description      string    `json:"description" binding:"max=4000"`
	Priority         string    `json:"priority" binding:"required,oneof=low medium high critical"`
	AssignedTo       string    `json:"assignedTo"`
	ResponsibleParty string    `json:"responsibleParty" binding:"omitempty,oneof=buyer seller both"`
	DueDate          time.Time `json:"dueDate" binding:"required"`
	Dependencies     []string  `json:"dependencies" binding:"omitempty,dive,required"`
	DocumentIDs      []string  `json:"documentIDs" binding:"omitempty,dive,required"`
	Required         bool      `json:"required"`
}

// SetChecklistStatusRequest defines the body of PATCH /checklist/{itemId}.
type SetChecklistStatusRequest struct {
	VersionedRequest
	Status string `json:"status" binding:"required,oneof=pending in_progress completed blocked"`
}

// UpdateDependenciesRequest replaces an item's dependency list.
type UpdateDependenciesRequest struct {
	VersionedRequest
	Dependencies []string `json:"dependencies" binding:"dive,required"`
}

// ChecklistResponse is the grouped checklist with its progress.
type ChecklistResponse struct {
	Categories map[domain.ChecklistCategory][]domain.ClosingChecklistItem `json:"categories"`
	Progress   domain.CategoryProgress[domain.ChecklistCategory]          `json:"progress"`
	Version    int64                                                      `json:"version"`
}

// UploadDocumentRequest is the metadata part of a multipart upload.
type UploadDocumentRequest struct {
	VersionedRequest
	Name        string     `form:"name" binding:"required,max=200"`
	Type        string     `form:"type" binding:"required,oneof=legal financial operational regulatory closing"`
	Category    string     `form:"category" binding:"max=100"`
	RequiredBy  string     `form:"requiredBy" binding:"required,oneof=buyer seller both"`
	DueDate     *time.Time `form:"dueDate" time_format:"2006-01-02" time_utc:"1"`
	FileName    string     `form:"-"`
	ContentType string     `form:"-"`
	Size        int64      `form:"-"`
}

// SetDocumentStatusRequest moves a document through review.
type SetDocumentStatusRequest struct {
	VersionedRequest
	Status string `json:"status" binding:"required,oneof=draft review approved"`
}

// AddSignatureRequest records the caller's signature.
type AddSignatureRequest struct {
	VersionedRequest
	Method    string `json:"method" binding:"required,oneof=electronic wet"`
	Location  string `json:"location" binding:"max=200"`
	IPAddress string `json:"-"`
}

// SchedulePaymentRequest defines a new scheduled payment.
type SchedulePaymentRequest struct {
	VersionedRequest
	Type        string          `json:"type" binding:"required,oneof=down_payment closing_payment financing_payment earnout_payment"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" binding:"required,iso4217"`
	DueDate     time.Time       `json:"dueDate" binding:"required"`
	FromParty   string          `json:"fromParty" binding:"required"`
	ToParty     string          `json:"toParty" binding:"required"`
	Description string          `json:"description" binding:"max=2000"`
}

// BankDetailsRequest describes the receiving account.
type BankDetailsRequest struct {
	BankName      string `json:"bankName" binding:"required"`
	AccountHolder string `json:"accountHolder" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	RoutingNumber string `json:"routingNumber"`
	IBAN          string `json:"iban"`
	SWIFT         string `json:"swift"`
}

// ProcessPaymentRequest defines the body of PATCH /payments/{paymentId}.
type ProcessPaymentRequest struct {
	VersionedRequest
	ConfirmationNumber string              `json:"confirmationNumber" binding:"required,max=100"`
	Method             string              `json:"method" binding:"required,oneof=wire_transfer ach check escrow"`
	Reference          string              `json:"reference" binding:"max=200"`
	BankDetails        *BankDetailsRequest `json:"bankDetails,omitempty"`
}

// ReleaseConditionRequest defines one escrow release condition.
type ReleaseConditionRequest struct {
	Description      string `json:"description" binding:"required"`
	ResponsibleParty string `json:"responsibleParty" binding:"required,oneof=buyer seller both"`
}

// SetEscrowRequest opens the escrow account.
type SetEscrowRequest struct {
	VersionedRequest
	Agent             string                    `json:"agent" binding:"required"`
	AccountID         string                    `json:"accountID" binding:"required"`
	HeldAmount        decimal.Decimal           `json:"heldAmount"`
	Currency          string                    `json:"currency" binding:"required,iso4217"`
	ReleaseConditions []ReleaseConditionRequest `json:"releaseConditions" binding:"dive"`
}

// UpdateReleaseConditionRequest sets a condition's status.
type UpdateReleaseConditionRequest struct {
	VersionedRequest
	Status string `json:"status" binding:"required,oneof=pending satisfied failed"`
}

// ReleaseCheckResponse reports whether escrow may be released.
type ReleaseCheckResponse struct {
	AllSatisfied bool                      `json:"allSatisfied"`
	Pending      []domain.ReleaseCondition `json:"pending"`
}

// AddKeyDateRequest defines a timeline entry.
type AddKeyDateRequest struct {
	VersionedRequest
	Name             string    `json:"name" binding:"required,max=200"`
	Date             time.Time `json:"date" binding:"required"`
	Type             string    `json:"type" binding:"required,oneof=milestone deadline deliverable payment closing"`
	ResponsibleParty string    `json:"responsibleParty" binding:"omitempty,oneof=buyer seller both"`
	Critical         bool      `json:"critical"`
	Description      string    `json:"description" binding:"max=2000"`
}

// TimelineResponse is the ordered key dates with the closing countdown.
type TimelineResponse struct {
	KeyDates  []domain.KeyDate        `json:"keyDates"`
	Countdown domain.ClosingCountdown `json:"countdown"`
}

// AddPostClosingItemRequest defines a handover task.
type AddPostClosingItemRequest struct {
	VersionedRequest
	Title             string    `json:"title" binding:"required,max=200"`
	Description       string    `json:"description" binding:"max=4000"`
	Type              string    `json:"type" binding:"required,oneof=transition integration compliance reporting"`
	Priority          string    `json:"priority" binding:"required,oneof=low medium high critical"`
	AssignedTo        string    `json:"assignedTo"`
	DueDate           time.Time `json:"dueDate" binding:"required"`
	ResponsibleParty  string    `json:"responsibleParty" binding:"required,oneof=buyer seller both"`
	EstimatedDuration int       `json:"estimatedDuration" binding:"min=0,max=3650"`
	Dependencies      []string  `json:"dependencies" binding:"omitempty,dive,required"`
	Deliverables      []string  `json:"deliverables" binding:"omitempty,dive,required"`
}

// SetPostClosingStatusRequest defines the body of PATCH /post-closing/{itemId}.
type SetPostClosingStatusRequest struct {
	VersionedRequest
	Status string `json:"status" binding:"required,oneof=pending in_progress completed cancelled"`
}

// PostClosingResponse is the grouped post-closing work with progress and suggested dates.
type PostClosingResponse struct {
	Types     map[domain.PostClosingType][]domain.PostClosingItem `json:"types"`
	Progress  domain.CategoryProgress[domain.PostClosingType]     `json:"progress"`
	Suggested []domain.SuggestedCompletion                        `json:"suggested"`
	Version   int64                                               `json:"version"`
}
