package services

import (
	"context"
	"time"

	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/permissions"
	"github.com/ytgov/digital-marketplace/repository"
	"github.com/ytgov/digital-marketplace/utils/logger"
	"github.com/ytgov/digital-marketplace/validation"
)

// Messages surfaced by the proposal guards.
const (
	MsgProposalNotFound        = "The specified proposal was not found."
	MsgProposalRaced           = "The proposal was modified by another request. Please try again."
	MsgProposalExists          = "You already have a proposal for this opportunity."
	MsgOpportunityClosed       = "The opportunity is no longer accepting proposals."
	MsgTermsNotAccepted        = "Please accept the terms and conditions before submitting."
	MsgCannotEditProposal      = "The proposal may not be edited in its current state."
	MsgAttachmentsFinal        = "Attachments may not be removed from this proposal."
	MsgCannotSubmit            = "Only draft or withdrawn proposals may be submitted."
	MsgCannotWithdraw          = "Only submitted proposals may be withdrawn."
	MsgCannotReview            = "Only submitted proposals may move to review."
	MsgCannotScore             = "Only proposals under review may be scored."
	MsgCannotAward             = "Only evaluated proposals may be awarded."
	MsgOpportunityNotEvaluating = "The opportunity is not in evaluation."
	MsgCannotDeleteProposal    = "Only draft proposals may be deleted."
	MsgChangesSavedNotSubmitted = "Your changes were saved, but the proposal could not be submitted."
)

// ProposalService implements the Code With Us proposal state machine:
// Draft -> Submitted <-> Withdrawn, Submitted -> UnderReview -> Evaluated,
// and Evaluated -> Awarded or NotAwarded.
type ProposalService struct {
	proposalRepo    repository.ProposalRepositoryInterface
	opportunityRepo repository.OpportunityRepositoryInterface
	affiliationRepo repository.AffiliationRepositoryInterface
	userRepo        repository.UserRepositoryInterface
	logger          logger.Logger
	now             func() time.Time
}

func NewProposalService(
	proposalRepo repository.ProposalRepositoryInterface,
	opportunityRepo repository.OpportunityRepositoryInterface,
	affiliationRepo repository.AffiliationRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	log logger.Logger,
) *ProposalService {
	return &ProposalService{
		proposalRepo:    proposalRepo,
		opportunityRepo: opportunityRepo,
		affiliationRepo: affiliationRepo,
		userRepo:        userRepo,
		logger:          log,
		now:             time.Now,
	}
}

// CreateProposalIntention is the validated description of a proposal draft.
type CreateProposalIntention struct {
	OpportunityID string
	AuthorID      string
	Document      models.CWUProposalDocument
}

// ProposalTransition is the validated description of a tagged update.
type ProposalTransition struct {
	Proposal    *models.CWUProposal
	Opportunity *models.CWUOpportunity
	Tag         string
	Document    *models.CWUProposalDocument
	Score       *float64
	NewStatus   models.CWUProposalStatus
}

// ValidateCreate runs the creation guard. A vendor may hold at most one
// proposal per opportunity, and the opportunity must still be open.
func (s *ProposalService) ValidateCreate(ctx context.Context, session *models.Session, req *models.CreateCWUProposalRequest) (validation.Validation[CreateProposalIntention], error) {
	var zero validation.Validation[CreateProposalIntention]

	opportunity, err := s.opportunityRepo.ReadOneOpportunity(ctx, req.Opportunity)
	if err != nil {
		return zero, err
	}
	if opportunity == nil {
		return validation.Invalid[CreateProposalIntention](validation.Errors{"opportunity": {MsgOpportunityNotFound}}), nil
	}
	if !opportunity.AcceptingProposals(s.now()) {
		return validation.Invalid[CreateProposalIntention](validation.Errors{"opportunity": {MsgOpportunityClosed}}), nil
	}

	if session != nil {
		existing, err := s.proposalRepo.ReadOneProposalForAuthor(ctx, opportunity.ID, session.UserID)
		if err != nil {
			return zero, err
		}
		if existing != nil {
			return validation.Invalid[CreateProposalIntention](validation.Errors{"proposal": {MsgProposalExists}}), nil
		}
	}

	if !permissions.CreateCWUProposal(session) {
		return validation.Invalid[CreateProposalIntention](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}

	return validation.Valid(CreateProposalIntention{
		OpportunityID: opportunity.ID,
		AuthorID:      session.UserID,
		Document:      req.Document,
	}), nil
}

// ExecuteCreate performs the single write for an accepted creation.
func (s *ProposalService) ExecuteCreate(ctx context.Context, intention CreateProposalIntention) (*models.CWUProposal, error) {
	return s.proposalRepo.CreateProposal(ctx, &models.CWUProposal{
		OpportunityID: intention.OpportunityID,
		AuthorID:      intention.AuthorID,
		Status:        models.CWUProposalStatusDraft,
		Document:      intention.Document,
	})
}

// ValidateUpdate runs the guard for a tagged update body. Guard order is
// structural, referential, invariant, then permission.
func (s *ProposalService) ValidateUpdate(ctx context.Context, session *models.Session, id string, req *models.UpdateCWUProposalRequest) (validation.Validation[ProposalTransition], error) {
	var zero validation.Validation[ProposalTransition]

	switch req.Tag {
	case models.CWUProposalTagEdit, models.CWUProposalTagSubmit, models.CWUProposalTagWithdraw,
		models.CWUProposalTagReview, models.CWUProposalTagScore, models.CWUProposalTagAward:
	default:
		return validation.Invalid[ProposalTransition](validation.Errors{"tag": {MsgUnrecognizedAction}}), nil
	}

	proposal, err := s.proposalRepo.ReadOneProposal(ctx, id)
	if err != nil {
		return zero, err
	}
	if proposal == nil {
		return validation.Invalid[ProposalTransition](validation.Errors{"proposal": {MsgProposalNotFound}}), nil
	}
	opportunity, err := s.opportunityRepo.ReadOneOpportunity(ctx, proposal.OpportunityID)
	if err != nil {
		return zero, err
	}
	if opportunity == nil {
		return validation.Invalid[ProposalTransition](validation.Errors{"opportunity": {MsgOpportunityNotFound}}), nil
	}

	transition := ProposalTransition{
		Proposal:    proposal,
		Opportunity: opportunity,
		Tag:         req.Tag,
	}

	switch req.Tag {
	case models.CWUProposalTagEdit:
		if req.Edit == nil {
			return validation.Invalid[ProposalTransition](validation.Errors{"value": {MsgDocumentRequired}}), nil
		}
		// A submitted proposal may still be revised while the opportunity
		// accepts proposals; after that only draft and withdrawn remain
		// editable.
		submittedOpen := proposal.Status == models.CWUProposalStatusSubmitted && opportunity.AcceptingProposals(s.now())
		if proposal.Status != models.CWUProposalStatusDraft && proposal.Status != models.CWUProposalStatusWithdrawn && !submittedOpen {
			return validation.Invalid[ProposalTransition](validation.Errors{"status": {MsgCannotEditProposal}}), nil
		}
		if validation.AttachmentsRemoved(proposal.Document.Attachments, req.Edit.Attachments) {
			// Removal is allowed only from a draft, or from a submitted
			// proposal while the window is still open.
			if proposal.Status != models.CWUProposalStatusDraft && !submittedOpen {
				return validation.Invalid[ProposalTransition](validation.Errors{"attachments": {MsgAttachmentsFinal}}), nil
			}
		}
		if !permissions.EditCWUProposal(session, proposal) {
			return validation.Invalid[ProposalTransition](validation.PermissionErrors(permissions.ErrorMessage)), nil
		}
		transition.Document = req.Edit
		return validation.Valid(transition), nil

	case models.CWUProposalTagSubmit:
		if docErrs := validation.ValidateCWUProposalDocument(&proposal.Document); docErrs != nil {
			return validation.Invalid[ProposalTransition](docErrs), nil
		}
		if proposal.Status != models.CWUProposalStatusDraft && proposal.Status != models.CWUProposalStatusWithdrawn {
			return validation.Invalid[ProposalTransition](validation.Errors{"status": {MsgCannotSubmit}}), nil
		}
		if !opportunity.AcceptingProposals(s.now()) {
			return validation.Invalid[ProposalTransition](validation.Errors{"opportunity": {MsgOpportunityClosed}}), nil
		}
		author, err := s.userRepo.ReadOneUser(ctx, proposal.AuthorID)
		if err != nil {
			return zero, err
		}
		if author == nil || !author.HasAcceptedTerms() {
			return validation.Invalid[ProposalTransition](validation.Errors{"acceptedTerms": {MsgTermsNotAccepted}}), nil
		}
		if !permissions.EditCWUProposal(session, proposal) {
			return validation.Invalid[ProposalTransition](validation.PermissionErrors(permissions.ErrorMessage)), nil
		}
		transition.NewStatus = models.CWUProposalStatusSubmitted
		return validation.Valid(transition), nil

	case models.CWUProposalTagWithdraw:
		if proposal.Status != models.CWUProposalStatusSubmitted {
			return validation.Invalid[ProposalTransition](validation.Errors{"status": {MsgCannotWithdraw}}), nil
		}
		if !permissions.EditCWUProposal(session, proposal) {
			return validation.Invalid[ProposalTransition](validation.PermissionErrors(permissions.ErrorMessage)), nil
		}
		transition.NewStatus = models.CWUProposalStatusWithdrawn
		return validation.Valid(transition), nil

	case models.CWUProposalTagReview:
		if proposal.Status != models.CWUProposalStatusSubmitted {
			return validation.Invalid[ProposalTransition](validation.Errors{"status": {MsgCannotReview}}), nil
		}
		if opportunity.Status != models.CWUOpportunityStatusEvaluation {
			return validation.Invalid[ProposalTransition](validation.Errors{"opportunity": {MsgOpportunityNotEvaluating}}), nil
		}
		transition.NewStatus = models.CWUProposalStatusUnderReview

	case models.CWUProposalTagScore:
		scoreValidation := validation.ValidateCWUProposalScore(req.Score)
		if !scoreValidation.Ok() {
			return validation.Invalid[ProposalTransition](validation.Errors{"score": scoreValidation.Messages()}), nil
		}
		// Each proposal is evaluated exactly once.
		if proposal.Status != models.CWUProposalStatusUnderReview {
			return validation.Invalid[ProposalTransition](validation.Errors{"status": {MsgCannotScore}}), nil
		}
		transition.Score = req.Score
		transition.NewStatus = models.CWUProposalStatusEvaluated

	case models.CWUProposalTagAward:
		if proposal.Status != models.CWUProposalStatusEvaluated {
			return validation.Invalid[ProposalTransition](validation.Errors{"status": {MsgCannotAward}}), nil
		}
		if opportunity.Status != models.CWUOpportunityStatusEvaluation {
			return validation.Invalid[ProposalTransition](validation.Errors{"opportunity": {MsgOpportunityNotEvaluating}}), nil
		}
		transition.NewStatus = models.CWUProposalStatusAwarded
	}

	allowed, err := permissions.ReviewCWUProposal(ctx, s.affiliationRepo, session, opportunity)
	if err != nil {
		return zero, err
	}
	if !allowed {
		return validation.Invalid[ProposalTransition](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}
	return validation.Valid(transition), nil
}

// ExecuteUpdate performs the writes for an accepted transition. Awarding is
// the one multi-record execution: the winner is written first, then every
// other judged proposal is marked not awarded. Earlier writes are not
// rolled back when a later one fails.
func (s *ProposalService) ExecuteUpdate(ctx context.Context, transition ProposalTransition) (*models.CWUProposal, validation.Errors, error) {
	updates := map[string]interface{}{}

	switch transition.Tag {
	case models.CWUProposalTagEdit:
		updates["document"] = *transition.Document
	case models.CWUProposalTagSubmit:
		updates["status"] = string(transition.NewStatus)
		updates["submitted_at"] = s.now()
	case models.CWUProposalTagScore:
		updates["status"] = string(transition.NewStatus)
		updates["score"] = *transition.Score
	default:
		updates["status"] = string(transition.NewStatus)
	}

	updated, err := s.proposalRepo.UpdateProposal(ctx, transition.Proposal, updates)
	if err != nil {
		if isConditionFailed(err) {
			return nil, validation.Errors{"proposal": {MsgProposalRaced}}, nil
		}
		return nil, nil, err
	}

	if transition.Tag == models.CWUProposalTagAward {
		if err := s.markOthersNotAwarded(ctx, transition.Opportunity.ID, updated.ID); err != nil {
			return nil, nil, err
		}
	}
	return updated, nil, nil
}

func (s *ProposalService) markOthersNotAwarded(ctx context.Context, opportunityID, awardedID string) error {
	proposals, err := s.proposalRepo.ReadManyProposalsForOpportunity(ctx, opportunityID)
	if err != nil {
		return err
	}
	for _, p := range proposals {
		if p.ID == awardedID {
			continue
		}
		if p.Status != models.CWUProposalStatusUnderReview && p.Status != models.CWUProposalStatusEvaluated {
			continue
		}
		_, err := s.proposalRepo.UpdateProposal(ctx, p, map[string]interface{}{
			"status": string(models.CWUProposalStatusNotAwarded),
		})
		if err != nil {
			if isConditionFailed(err) {
				s.logger.Warnf("Proposal %s raced during award fan-out", p.ID)
				continue
			}
			return err
		}
	}
	return nil
}

// ValidateDelete runs the removal guard; only the author's drafts may be
// deleted.
func (s *ProposalService) ValidateDelete(ctx context.Context, session *models.Session, id string) (validation.Validation[*models.CWUProposal], error) {
	var zero validation.Validation[*models.CWUProposal]

	proposal, err := s.proposalRepo.ReadOneProposal(ctx, id)
	if err != nil {
		return zero, err
	}
	if proposal == nil {
		return validation.Invalid[*models.CWUProposal](validation.Errors{"proposal": {MsgProposalNotFound}}), nil
	}
	if proposal.Status != models.CWUProposalStatusDraft {
		return validation.Invalid[*models.CWUProposal](validation.Errors{"status": {MsgCannotDeleteProposal}}), nil
	}
	if !permissions.EditCWUProposal(session, proposal) {
		return validation.Invalid[*models.CWUProposal](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}
	return validation.Valid(proposal), nil
}

// ExecuteDelete removes a draft and returns its last known state.
func (s *ProposalService) ExecuteDelete(ctx context.Context, proposal *models.CWUProposal) (*models.CWUProposal, validation.Errors, error) {
	if err := s.proposalRepo.DeleteProposal(ctx, proposal); err != nil {
		if isConditionFailed(err) {
			return nil, validation.Errors{"proposal": {MsgProposalRaced}}, nil
		}
		return nil, nil, err
	}
	return proposal, nil, nil
}

// ReadOne returns a single proposal for its author or the opportunity's
// reviewers.
func (s *ProposalService) ReadOne(ctx context.Context, session *models.Session, id string) (*models.CWUProposal, validation.Errors, error) {
	proposal, err := s.proposalRepo.ReadOneProposal(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if proposal == nil {
		return nil, validation.Errors{"proposal": {MsgProposalNotFound}}, nil
	}
	opportunity, err := s.opportunityRepo.ReadOneOpportunity(ctx, proposal.OpportunityID)
	if err != nil {
		return nil, nil, err
	}
	if opportunity == nil {
		return nil, validation.Errors{"opportunity": {MsgOpportunityNotFound}}, nil
	}

	allowed, err := permissions.ReadOneCWUProposal(ctx, s.affiliationRepo, session, proposal, opportunity)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, validation.PermissionErrors(permissions.ErrorMessage), nil
	}
	return proposal, nil, nil
}

// ReadMany lists proposal summaries. Vendors see their own; reviewers pass
// an opportunity id and see every non-draft proposal against it.
func (s *ProposalService) ReadMany(ctx context.Context, session *models.Session, opportunityID string) ([]models.CWUProposalSlim, validation.Errors, error) {
	if !permissions.ReadManyCWUProposals(session) {
		return nil, validation.PermissionErrors(permissions.ErrorMessage), nil
	}

	if opportunityID == "" {
		proposals, err := s.proposalRepo.ReadManyProposalsForAuthor(ctx, session.UserID)
		if err != nil {
			return nil, nil, err
		}
		return slimProposals(proposals), nil, nil
	}

	opportunity, err := s.opportunityRepo.ReadOneOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, nil, err
	}
	if opportunity == nil {
		return nil, validation.Errors{"opportunity": {MsgOpportunityNotFound}}, nil
	}
	allowed, err := permissions.ReviewCWUProposal(ctx, s.affiliationRepo, session, opportunity)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, validation.PermissionErrors(permissions.ErrorMessage), nil
	}

	proposals, err := s.proposalRepo.ReadManyProposalsForOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, nil, err
	}
	judged := make([]*models.CWUProposal, 0, len(proposals))
	for _, p := range proposals {
		if p.Status == models.CWUProposalStatusDraft {
			continue
		}
		judged = append(judged, p)
	}
	return slimProposals(judged), nil, nil
}

// SaveAndSubmit chains the edit pipeline with the submit transition. If the
// edit fails nothing is written; if the edit succeeds but submission fails
// the edits stay persisted and the response flags the partial outcome.
func (s *ProposalService) SaveAndSubmit(ctx context.Context, session *models.Session, id string, doc *models.CWUProposalDocument) (*models.CWUProposal, validation.Errors, bool, error) {
	editValidation, err := s.ValidateUpdate(ctx, session, id, &models.UpdateCWUProposalRequest{
		Tag:  models.CWUProposalTagEdit,
		Edit: doc,
	})
	if err != nil {
		return nil, nil, false, err
	}
	if !editValidation.Ok() {
		return nil, editValidation.Errors(), false, nil
	}
	saved, execErrs, err := s.ExecuteUpdate(ctx, editValidation.Value())
	if err != nil {
		return nil, nil, false, err
	}
	if execErrs != nil {
		return nil, execErrs, false, nil
	}

	submitValidation, err := s.ValidateUpdate(ctx, session, id, &models.UpdateCWUProposalRequest{
		Tag: models.CWUProposalTagSubmit,
	})
	if err != nil {
		return nil, nil, false, err
	}
	if !submitValidation.Ok() {
		errs := validation.Errors{"changesSaved": {MsgChangesSavedNotSubmitted}}
		errs.Merge(submitValidation.Errors())
		return saved, errs, true, nil
	}
	submitted, execErrs, err := s.ExecuteUpdate(ctx, submitValidation.Value())
	if err != nil {
		return nil, nil, false, err
	}
	if execErrs != nil {
		errs := validation.Errors{"changesSaved": {MsgChangesSavedNotSubmitted}}
		errs.Merge(execErrs)
		return saved, errs, true, nil
	}
	return submitted, nil, false, nil
}

func slimProposals(proposals []*models.CWUProposal) []models.CWUProposalSlim {
	slims := make([]models.CWUProposalSlim, 0, len(proposals))
	for _, p := range proposals {
		slims = append(slims, p.Slim())
	}
	return slims
}
