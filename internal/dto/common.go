package dto

import (
	"reflect"
	"time"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// VersionedRequest carries the transaction version the caller read. Handlers fill it from
// the If-Match header when the body does not set it.
type VersionedRequest struct {
	ExpectedVersion *int64 `json:"version,omitempty" binding:"omitempty,min=1"`
}

// Versioned pairs a mutated entity with the transaction version after the write.
type Versioned[T any] struct {
	Data    T
	Version int64
}

// AddCommentRequest defines the payload for commenting on an item or document.
type AddCommentRequest struct {
	VersionedRequest
	Text string `json:"text" binding:"required,max=4000"`
}

// EntityPatch defines the fields that the generic entity update accepts.
// Pointers distinguish omitted fields from zero values.
type EntityPatch struct {
	VersionedRequest
	Title             *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Name              *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description,omitempty" validate:"omitempty,max=4000"`
	Category          *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Priority          *string          `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	AssignedTo        *string          `json:"assignedTo,omitempty"`
	ResponsibleParty  *string          `json:"responsibleParty,omitempty" validate:"omitempty,oneof=buyer seller both"`
	DueDate           *time.Time       `json:"dueDate,omitempty"`
	Date              *time.Time       `json:"date,omitempty"`
	Required          *bool            `json:"required,omitempty"`
	Critical          *bool            `json:"critical,omitempty"`
	Amount            *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gt=0"`
	FromParty         *string          `json:"fromParty,omitempty" validate:"omitempty,min=1"`
	ToParty           *string          `json:"toParty,omitempty" validate:"omitempty,min=1"`
	EstimatedDuration *int             `json:"estimatedDuration,omitempty" validate:"omitempty,min=0,max=3650"`
	Deliverables      []string         `json:"deliverables,omitempty" validate:"omitempty,dive,min=1"`
	DocumentIDs       []string         `json:"documentIDs,omitempty" validate:"omitempty,dive,min=1"`
}

// ToDomain converts the request into a domain patch.
func (p EntityPatch) ToDomain() domain.EntityPatch {
	out := domain.EntityPatch{
		Title:             p.Title,
		Name:              p.Name,
		Description:       p.Description,
		Category:          p.Category,
		AssignedTo:        p.AssignedTo,
		DueDate:           p.DueDate,
		Date:              p.Date,
		Required:          p.Required,
		Critical:          p.Critical,
		Amount:            p.Amount,
		FromParty:         p.FromParty,
		ToParty:           p.ToParty,
		EstimatedDuration: p.EstimatedDuration,
		Deliverables:      p.Deliverables,
		DocumentIDs:       p.DocumentIDs,
	}
	if p.Priority != nil {
		priority := domain.Priority(*p.Priority)
		out.Priority = &priority
	}
	if p.ResponsibleParty != nil {
		side := domain.PartySide(*p.ResponsibleParty)
		out.ResponsibleParty = &side
	}
	return out
}

// NewValidator returns a validator that understands decimal amounts.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}
