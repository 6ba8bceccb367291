// Package permissions holds the stateless predicates answering "may actor X
// perform action Y on entity Z right now?". Predicates take the acting
// session explicitly and return booleans only; callers decide how a refusal
// maps onto the response.
package permissions

import (
	"context"

	"github.com/ytgov/digital-marketplace/models"
)

// ErrorMessage is the uniform message placed in the permissions error slot.
const ErrorMessage = "You do not have permission to perform this action."

// AffiliationReader is the slice of the persistence collaborator needed by
// predicates whose decision depends on persisted membership facts.
type AffiliationReader interface {
	ReadOneAffiliation(ctx context.Context, userID, organizationID string) (*models.Affiliation, error)
}

// IsSignedIn reports whether a session is present and belongs to a real user.
func IsSignedIn(session *models.Session) bool {
	return session != nil && session.UserID != ""
}

// IsActive reports whether the acting account may act at all.
func IsActive(session *models.Session) bool {
	return IsSignedIn(session) && session.Status == models.UserStatusActive
}

// IsAdmin reports whether the session belongs to an admin.
func IsAdmin(session *models.Session) bool {
	return IsActive(session) && session.UserType == models.UserTypeAdmin
}

// IsVendor reports whether the session belongs to a vendor.
func IsVendor(session *models.Session) bool {
	return IsActive(session) && session.UserType == models.UserTypeVendor
}

// IsGovernment reports whether the session belongs to a government user.
func IsGovernment(session *models.Session) bool {
	return IsActive(session) && session.UserType == models.UserTypeGovernment
}

// IsOwnAccount reports whether the session belongs to the given user.
func IsOwnAccount(session *models.Session, userID string) bool {
	return IsSignedIn(session) && session.UserID == userID
}

// IsOrgOwner reports whether the session user is an active owner of the
// organization. Admins pass unconditionally.
func IsOrgOwner(ctx context.Context, repo AffiliationReader, session *models.Session, organizationID string) (bool, error) {
	if IsAdmin(session) {
		return true, nil
	}
	if !IsActive(session) {
		return false, nil
	}
	affiliation, err := repo.ReadOneAffiliation(ctx, session.UserID, organizationID)
	if err != nil {
		return false, err
	}
	return affiliation != nil && affiliation.IsActiveOwner(), nil
}
