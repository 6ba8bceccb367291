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

// Messages surfaced by the opportunity guards.
const (
	MsgOpportunityNotFound       = "The specified opportunity was not found."
	MsgOpportunityRaced          = "The opportunity was modified by another request. Please try again."
	MsgUnrecognizedAction        = "Unrecognized action."
	MsgDocumentRequired          = "A document is required for this action."
	MsgCannotPublish             = "Only draft or suspended opportunities may be published."
	MsgCannotSuspend             = "Only published opportunities may be suspended."
	MsgCannotCancel              = "Only published or suspended opportunities may be canceled."
	MsgCannotStartEvaluation     = "Only published opportunities may move to evaluation."
	MsgCannotEditCanceled        = "A canceled opportunity cannot be edited."
	MsgCannotDeletePublished     = "Only draft opportunities may be deleted."
	MsgAttachmentsLocked         = "Attachments may not be removed once the opportunity is public."
	MsgOpportunityNotPublic      = "The opportunity is not public."
	MsgChangesSavedNotPublished  = "Your changes were saved, but the opportunity could not be published."
)

// OpportunityService implements the Code With Us opportunity state machine:
// Draft -> Published <-> Suspended, Published/Suspended -> Canceled, and
// Published -> Evaluation once proposals are being judged.
type OpportunityService struct {
	opportunityRepo repository.OpportunityRepositoryInterface
	proposalRepo    repository.ProposalRepositoryInterface
	affiliationRepo repository.AffiliationRepositoryInterface
	orgRepo         repository.OrganizationRepositoryInterface
	logger          logger.Logger
	now             func() time.Time
}

func NewOpportunityService(
	opportunityRepo repository.OpportunityRepositoryInterface,
	proposalRepo repository.ProposalRepositoryInterface,
	affiliationRepo repository.AffiliationRepositoryInterface,
	orgRepo repository.OrganizationRepositoryInterface,
	log logger.Logger,
) *OpportunityService {
	return &OpportunityService{
		opportunityRepo: opportunityRepo,
		proposalRepo:    proposalRepo,
		affiliationRepo: affiliationRepo,
		orgRepo:         orgRepo,
		logger:          log,
		now:             time.Now,
	}
}

// CreateOpportunityIntention is the validated description of an opportunity
// creation. Opportunities are always created as drafts.
type CreateOpportunityIntention struct {
	OrganizationID string
	CreatedBy      string
	Document       models.CWUOpportunityDocument
}

// OpportunityTransition is the validated description of a tagged update.
type OpportunityTransition struct {
	Opportunity *models.CWUOpportunity
	Tag         string
	ActorID     string
	Document    *models.CWUOpportunityDocument
	NewStatus   models.CWUOpportunityStatus
}

// ValidateCreate runs the creation guard. Drafts validate leniently; the
// full document check happens at publish time.
func (s *OpportunityService) ValidateCreate(ctx context.Context, session *models.Session, req *models.CreateCWUOpportunityRequest) (validation.Validation[CreateOpportunityIntention], error) {
	var zero validation.Validation[CreateOpportunityIntention]

	errs := validation.Errors{}
	errs.Merge(validation.ValidateCWUOpportunityDraft(&req.Document))

	organization, err := s.orgRepo.ReadOneOrganization(ctx, req.Organization)
	if err != nil {
		return zero, err
	}
	if organization == nil || !organization.Active {
		errs.Add("organization", MsgOrganizationNotFound)
	}
	if !errs.Empty() {
		return validation.Invalid[CreateOpportunityIntention](errs), nil
	}

	if !permissions.CreateCWUOpportunity(session) {
		return validation.Invalid[CreateOpportunityIntention](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}
	allowed, err := permissions.IsOrgOwner(ctx, s.affiliationRepo, session, req.Organization)
	if err != nil {
		return zero, err
	}
	if !allowed {
		return validation.Invalid[CreateOpportunityIntention](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}

	return validation.Valid(CreateOpportunityIntention{
		OrganizationID: req.Organization,
		CreatedBy:      session.UserID,
		Document:       req.Document,
	}), nil
}

// ExecuteCreate performs the single write for an accepted creation.
func (s *OpportunityService) ExecuteCreate(ctx context.Context, intention CreateOpportunityIntention) (*models.CWUOpportunity, error) {
	return s.opportunityRepo.CreateOpportunity(ctx, &models.CWUOpportunity{
		OrganizationID: intention.OrganizationID,
		CreatedBy:      intention.CreatedBy,
		UpdatedBy:      intention.CreatedBy,
		Document:       intention.Document,
		Watchers:       []string{},
	})
}

// ValidateUpdate runs the guard for a tagged update body. Guard order is
// structural, referential, invariant, then permission.
func (s *OpportunityService) ValidateUpdate(ctx context.Context, session *models.Session, id string, req *models.UpdateCWUOpportunityRequest) (validation.Validation[OpportunityTransition], error) {
	var zero validation.Validation[OpportunityTransition]

	switch req.Tag {
	case models.CWUOpportunityTagEdit, models.CWUOpportunityTagPublish, models.CWUOpportunityTagSuspend,
		models.CWUOpportunityTagCancel, models.CWUOpportunityTagStartEvaluation,
		models.CWUOpportunityTagWatch, models.CWUOpportunityTagUnwatch:
	default:
		return validation.Invalid[OpportunityTransition](validation.Errors{"tag": {MsgUnrecognizedAction}}), nil
	}

	opportunity, err := s.opportunityRepo.ReadOneOpportunity(ctx, id)
	if err != nil {
		return zero, err
	}
	if opportunity == nil {
		return validation.Invalid[OpportunityTransition](validation.Errors{"opportunity": {MsgOpportunityNotFound}}), nil
	}

	transition := OpportunityTransition{
		Opportunity: opportunity,
		Tag:         req.Tag,
		ActorID:     sessionUserID(session),
	}

	switch req.Tag {
	case models.CWUOpportunityTagEdit:
		if req.Edit == nil {
			return validation.Invalid[OpportunityTransition](validation.Errors{"value": {MsgDocumentRequired}}), nil
		}
		if opportunity.Status == models.CWUOpportunityStatusCanceled {
			return validation.Invalid[OpportunityTransition](validation.Errors{"status": {MsgCannotEditCanceled}}), nil
		}
		if opportunity.IsPublic() {
			if docErrs := validation.ValidateCWUOpportunityDocument(req.Edit, s.now()); docErrs != nil {
				return validation.Invalid[OpportunityTransition](docErrs), nil
			}
			if validation.AttachmentsRemoved(opportunity.Document.Attachments, req.Edit.Attachments) {
				return validation.Invalid[OpportunityTransition](validation.Errors{"attachments": {MsgAttachmentsLocked}}), nil
			}
		} else {
			if docErrs := validation.ValidateCWUOpportunityDraft(req.Edit); docErrs != nil {
				return validation.Invalid[OpportunityTransition](docErrs), nil
			}
		}
		transition.Document = req.Edit

	case models.CWUOpportunityTagPublish:
		if opportunity.Status != models.CWUOpportunityStatusDraft && opportunity.Status != models.CWUOpportunityStatusSuspended {
			return validation.Invalid[OpportunityTransition](validation.Errors{"status": {MsgCannotPublish}}), nil
		}
		if docErrs := validation.ValidateCWUOpportunityDocument(&opportunity.Document, s.now()); docErrs != nil {
			return validation.Invalid[OpportunityTransition](docErrs), nil
		}
		transition.NewStatus = models.CWUOpportunityStatusPublished

	case models.CWUOpportunityTagSuspend:
		if opportunity.Status != models.CWUOpportunityStatusPublished {
			return validation.Invalid[OpportunityTransition](validation.Errors{"status": {MsgCannotSuspend}}), nil
		}
		transition.NewStatus = models.CWUOpportunityStatusSuspended

	case models.CWUOpportunityTagCancel:
		// Canceled is reachable only from the public statuses; a draft is
		// discarded through delete, never through a status update.
		if opportunity.Status != models.CWUOpportunityStatusPublished && opportunity.Status != models.CWUOpportunityStatusSuspended {
			return validation.Invalid[OpportunityTransition](validation.Errors{"status": {MsgCannotCancel}}), nil
		}
		transition.NewStatus = models.CWUOpportunityStatusCanceled

	case models.CWUOpportunityTagStartEvaluation:
		if opportunity.Status != models.CWUOpportunityStatusPublished {
			return validation.Invalid[OpportunityTransition](validation.Errors{"status": {MsgCannotStartEvaluation}}), nil
		}
		transition.NewStatus = models.CWUOpportunityStatusEvaluation

	case models.CWUOpportunityTagWatch, models.CWUOpportunityTagUnwatch:
		if !opportunity.IsPublic() {
			return validation.Invalid[OpportunityTransition](validation.Errors{"opportunity": {MsgOpportunityNotPublic}}), nil
		}
		if !permissions.WatchCWUOpportunity(session, opportunity) {
			return validation.Invalid[OpportunityTransition](validation.PermissionErrors(permissions.ErrorMessage)), nil
		}
		return validation.Valid(transition), nil
	}

	allowed, err := permissions.EditCWUOpportunity(ctx, s.affiliationRepo, session, opportunity)
	if err != nil {
		return zero, err
	}
	if !allowed {
		return validation.Invalid[OpportunityTransition](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}
	return validation.Valid(transition), nil
}

// ExecuteUpdate performs the single conditional write for an accepted
// transition and returns the updated entity.
func (s *OpportunityService) ExecuteUpdate(ctx context.Context, transition OpportunityTransition) (*models.CWUOpportunity, validation.Errors, error) {
	updates := map[string]interface{}{
		"updated_by": transition.ActorID,
	}

	switch transition.Tag {
	case models.CWUOpportunityTagEdit:
		updates["document"] = *transition.Document
	case models.CWUOpportunityTagPublish:
		updates["status"] = string(transition.NewStatus)
		if transition.Opportunity.PublishedAt == nil {
			updates["published_at"] = s.now()
		}
	case models.CWUOpportunityTagWatch:
		updates["watchers"] = appendUnique(transition.Opportunity.Watchers, transition.ActorID)
	case models.CWUOpportunityTagUnwatch:
		updates["watchers"] = removeString(transition.Opportunity.Watchers, transition.ActorID)
	default:
		updates["status"] = string(transition.NewStatus)
	}

	updated, err := s.opportunityRepo.UpdateOpportunity(ctx, transition.Opportunity, updates)
	if err != nil {
		if isConditionFailed(err) {
			return nil, validation.Errors{"opportunity": {MsgOpportunityRaced}}, nil
		}
		return nil, nil, err
	}
	return updated, nil, nil
}

// ValidateDelete runs the removal guard; only drafts may be deleted.
func (s *OpportunityService) ValidateDelete(ctx context.Context, session *models.Session, id string) (validation.Validation[*models.CWUOpportunity], error) {
	var zero validation.Validation[*models.CWUOpportunity]

	opportunity, err := s.opportunityRepo.ReadOneOpportunity(ctx, id)
	if err != nil {
		return zero, err
	}
	if opportunity == nil {
		return validation.Invalid[*models.CWUOpportunity](validation.Errors{"opportunity": {MsgOpportunityNotFound}}), nil
	}
	if opportunity.Status != models.CWUOpportunityStatusDraft {
		return validation.Invalid[*models.CWUOpportunity](validation.Errors{"status": {MsgCannotDeletePublished}}), nil
	}

	allowed, err := permissions.EditCWUOpportunity(ctx, s.affiliationRepo, session, opportunity)
	if err != nil {
		return zero, err
	}
	if !allowed {
		return validation.Invalid[*models.CWUOpportunity](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}
	return validation.Valid(opportunity), nil
}

// ExecuteDelete removes a draft and returns its last known state.
func (s *OpportunityService) ExecuteDelete(ctx context.Context, opportunity *models.CWUOpportunity) (*models.CWUOpportunity, validation.Errors, error) {
	if err := s.opportunityRepo.DeleteOpportunity(ctx, opportunity); err != nil {
		if isConditionFailed(err) {
			return nil, validation.Errors{"opportunity": {MsgOpportunityRaced}}, nil
		}
		return nil, nil, err
	}
	return opportunity, nil, nil
}

// ReadOne returns a single opportunity, bumping its view counter and
// filling in the live proposal count. Drafts are only visible to editors.
func (s *OpportunityService) ReadOne(ctx context.Context, session *models.Session, id string) (*models.CWUOpportunity, validation.Errors, error) {
	opportunity, err := s.opportunityRepo.ReadOneOpportunity(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if opportunity == nil {
		return nil, validation.Errors{"opportunity": {MsgOpportunityNotFound}}, nil
	}

	allowed, err := permissions.ReadOneCWUOpportunity(ctx, s.affiliationRepo, session, opportunity)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, validation.PermissionErrors(permissions.ErrorMessage), nil
	}

	if err := s.opportunityRepo.IncrementViews(ctx, opportunity); err != nil {
		// A failed counter bump never blocks the read.
		s.logger.Warnf("Failed to increment views for opportunity %s: %v", opportunity.ID, err)
	} else {
		opportunity.Views++
	}

	proposals, err := s.proposalRepo.ReadManyProposalsForOpportunity(ctx, opportunity.ID)
	if err != nil {
		return nil, nil, err
	}
	opportunity.ProposalCount = countNonDraft(proposals)

	return opportunity, nil, nil
}

// ReadMany lists opportunity summaries: public ones for everyone, drafts
// only for their editors.
func (s *OpportunityService) ReadMany(ctx context.Context, session *models.Session) ([]models.CWUOpportunitySlim, error) {
	opportunities, err := s.opportunityRepo.ReadManyOpportunities(ctx)
	if err != nil {
		return nil, err
	}

	slims := make([]models.CWUOpportunitySlim, 0, len(opportunities))
	for _, o := range opportunities {
		if o.Status == models.CWUOpportunityStatusDraft {
			if !permissions.IsAdmin(session) && !permissions.IsOwnAccount(session, o.CreatedBy) {
				continue
			}
		}
		slims = append(slims, o.Slim())
	}
	return slims, nil
}

// SaveAndPublish chains the edit pipeline with the publish transition. If
// the edit fails nothing is written; if the edit succeeds but publishing
// fails the edits stay persisted, and the response flags the partial
// outcome so the caller can say "changes saved, but could not publish".
func (s *OpportunityService) SaveAndPublish(ctx context.Context, session *models.Session, id string, doc *models.CWUOpportunityDocument) (*models.CWUOpportunity, validation.Errors, bool, error) {
	editValidation, err := s.ValidateUpdate(ctx, session, id, &models.UpdateCWUOpportunityRequest{
		Tag:  models.CWUOpportunityTagEdit,
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

	publishValidation, err := s.ValidateUpdate(ctx, session, id, &models.UpdateCWUOpportunityRequest{
		Tag: models.CWUOpportunityTagPublish,
	})
	if err != nil {
		return nil, nil, false, err
	}
	if !publishValidation.Ok() {
		errs := validation.Errors{"changesSaved": {MsgChangesSavedNotPublished}}
		errs.Merge(publishValidation.Errors())
		return saved, errs, true, nil
	}
	published, execErrs, err := s.ExecuteUpdate(ctx, publishValidation.Value())
	if err != nil {
		return nil, nil, false, err
	}
	if execErrs != nil {
		errs := validation.Errors{"changesSaved": {MsgChangesSavedNotPublished}}
		errs.Merge(execErrs)
		return saved, errs, true, nil
	}
	return published, nil, false, nil
}

// SweepDeadlines moves published opportunities whose proposal deadline has
// passed into evaluation. Invoked by the background worker as the system
// actor; the guard order does not apply because no request is involved.
func (s *OpportunityService) SweepDeadlines(ctx context.Context) (int, error) {
	published, err := s.opportunityRepo.ReadManyOpportunitiesByStatus(ctx, models.CWUOpportunityStatusPublished)
	if err != nil {
		return 0, err
	}

	swept := 0
	now := s.now()
	for _, o := range published {
		if now.Before(o.Document.ProposalDeadline) {
			continue
		}
		_, err := s.opportunityRepo.UpdateOpportunity(ctx, o, map[string]interface{}{
			"status":     string(models.CWUOpportunityStatusEvaluation),
			"updated_by": "system",
		})
		if err != nil {
			if isConditionFailed(err) {
				// Raced with a concurrent transition; the next sweep settles it.
				continue
			}
			return swept, err
		}
		s.logger.Infof("Opportunity %s moved to evaluation (deadline passed)", o.ID)
		swept++
	}
	return swept, nil
}

func sessionUserID(session *models.Session) string {
	if session == nil {
		return ""
	}
	return session.UserID
}

func countNonDraft(proposals []*models.CWUProposal) int {
	count := 0
	for _, p := range proposals {
		if p.Status != models.CWUProposalStatusDraft {
			count++
		}
	}
	return count
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func removeString(list []string, value string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
