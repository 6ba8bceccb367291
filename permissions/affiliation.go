package permissions

import (
	"context"

	"github.com/ytgov/digital-marketplace/models"
)

// CreateAffiliation allows a user to request membership for themself; admins
// may create memberships on anyone's behalf.
func CreateAffiliation(session *models.Session, userID string) bool {
	return IsAdmin(session) || (IsActive(session) && IsOwnAccount(session, userID))
}

// ReadManyAffiliations allows any signed-in, active user to list their own
// memberships.
func ReadManyAffiliations(session *models.Session) bool {
	return IsActive(session)
}

// UpdateAffiliation allows an active owner of the target organization, or an
// admin, to change a membership's status.
func UpdateAffiliation(ctx context.Context, repo AffiliationReader, session *models.Session, organizationID string) (bool, error) {
	return IsOrgOwner(ctx, repo, session, organizationID)
}

// DeleteAffiliation allows the affiliated user themself, an owner of the
// organization, or an admin to remove a membership. The sole-owner invariant
// is not this predicate's concern; the guard checks it first.
func DeleteAffiliation(ctx context.Context, repo AffiliationReader, session *models.Session, userID, organizationID string) (bool, error) {
	if IsOwnAccount(session, userID) && IsActive(session) {
		return true, nil
	}
	return IsOrgOwner(ctx, repo, session, organizationID)
}
