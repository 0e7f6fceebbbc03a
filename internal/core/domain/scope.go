package domain

import (
	"fmt"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
)

// RequestScope is who is acting on which transaction, resolved once per call.
type RequestScope struct {
	TransactionID string
	UserID        string
	Role          PartyRole
	IsAdmin       bool
}

// ResolveScope builds the scope of userID on t. Users that are neither parties, the creator nor
// admins get ErrNotFound so the transaction's existence is not revealed.
func ResolveScope(t *Transaction, userID string, isAdmin bool) (RequestScope, error) {
	scope := RequestScope{TransactionID: t.TransactionID, UserID: userID, IsAdmin: isAdmin}
	if p := t.PartyForUser(userID); p != nil {
		scope.Role = p.Role
		return scope, nil
	}
	if isAdmin || (userID != "" && userID == t.CreatedBy) {
		return scope, nil
	}
	return RequestScope{}, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, t.TransactionID)
}

// CanActOn reports whether the scope may mutate work assigned to assignee on side.
// Unassigned work without a side is open to every party.
func (s RequestScope) CanActOn(assignee string, side PartySide) bool {
	if s.IsAdmin || s.Role.IsAdvisor() {
		return true
	}
	if assignee != "" && assignee == s.UserID {
		return true
	}
	if side != "" {
		return side.Includes(s.Role.Side())
	}
	return assignee == "" && s.Role != ""
}

// Authorize returns ErrForbidden when CanActOn is false.
func (s RequestScope) Authorize(assignee string, side PartySide) error {
	if !s.CanActOn(assignee, side) {
		return fmt.Errorf("%w: user %s cannot act on this item", apperrors.ErrForbidden, s.UserID)
	}
	return nil
}

// IsPrincipal reports whether the scope acts as buyer or seller.
func (s RequestScope) IsPrincipal() bool {
	return s.Role == RoleBuyer || s.Role == RoleSeller
}

// CanManageEscrow reports whether the scope may open, release or dispute escrow.
func (s RequestScope) CanManageEscrow() bool {
	return s.IsAdmin || s.IsPrincipal() || s.Role == RoleEscrowAgent
}
