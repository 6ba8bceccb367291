package permissions

import (
	"context"

	"github.com/ytgov/digital-marketplace/models"
)

// CreateCWUOpportunity allows government users and admins to post work items.
func CreateCWUOpportunity(session *models.Session) bool {
	return IsGovernment(session) || IsAdmin(session)
}

// EditCWUOpportunity allows the opportunity's author, an owner of its
// organization, or an admin to modify it.
func EditCWUOpportunity(ctx context.Context, repo AffiliationReader, session *models.Session, opportunity *models.CWUOpportunity) (bool, error) {
	if IsAdmin(session) {
		return true, nil
	}
	if !IsGovernment(session) {
		return false, nil
	}
	if IsOwnAccount(session, opportunity.CreatedBy) {
		return true, nil
	}
	return IsOrgOwner(ctx, repo, session, opportunity.OrganizationID)
}

// ReadOneCWUOpportunity allows anyone to read a public opportunity, and
// editors to read drafts.
func ReadOneCWUOpportunity(ctx context.Context, repo AffiliationReader, session *models.Session, opportunity *models.CWUOpportunity) (bool, error) {
	if opportunity.IsPublic() || opportunity.Status == models.CWUOpportunityStatusCanceled {
		return true, nil
	}
	return EditCWUOpportunity(ctx, repo, session, opportunity)
}

// WatchCWUOpportunity allows signed-in users who cannot edit the opportunity
// to watch it.
func WatchCWUOpportunity(session *models.Session, opportunity *models.CWUOpportunity) bool {
	return IsActive(session) && !IsOwnAccount(session, opportunity.CreatedBy)
}
