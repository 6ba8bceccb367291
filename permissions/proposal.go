package permissions

import (
	"context"

	"github.com/ytgov/digital-marketplace/models"
)

// CreateCWUProposal allows vendors to draft proposals.
func CreateCWUProposal(session *models.Session) bool {
	return IsVendor(session)
}

// EditCWUProposal allows the authoring vendor to modify their own proposal.
func EditCWUProposal(session *models.Session, proposal *models.CWUProposal) bool {
	return IsVendor(session) && IsOwnAccount(session, proposal.AuthorID)
}

// ReviewCWUProposal allows the owning organization's reviewers (editors of
// the parent opportunity) to review, score and award proposals.
func ReviewCWUProposal(ctx context.Context, repo AffiliationReader, session *models.Session, opportunity *models.CWUOpportunity) (bool, error) {
	return EditCWUOpportunity(ctx, repo, session, opportunity)
}

// ReadOneCWUProposal allows the author and the opportunity's reviewers.
func ReadOneCWUProposal(ctx context.Context, repo AffiliationReader, session *models.Session, proposal *models.CWUProposal, opportunity *models.CWUOpportunity) (bool, error) {
	if EditCWUProposal(session, proposal) {
		return true, nil
	}
	return ReviewCWUProposal(ctx, repo, session, opportunity)
}

// ReadManyCWUProposals gates the collection endpoint: vendors list their own
// proposals; reviewers list a closed opportunity's proposals.
func ReadManyCWUProposals(session *models.Session) bool {
	return IsActive(session)
}
