package models

import "time"

// CWUOpportunityStatus represents the lifecycle status of a Code With Us opportunity
type CWUOpportunityStatus string

const (
	CWUOpportunityStatusDraft      CWUOpportunityStatus = "DRAFT"
	CWUOpportunityStatusPublished  CWUOpportunityStatus = "PUBLISHED"
	CWUOpportunityStatusSuspended  CWUOpportunityStatus = "SUSPENDED"
	CWUOpportunityStatusEvaluation CWUOpportunityStatus = "EVALUATION"
	CWUOpportunityStatusCanceled   CWUOpportunityStatus = "CANCELED"
)

// CWUOpportunityDocument groups the editable detail fields of an opportunity.
// Draft opportunities may hold any subset of these; publishing requires the
// full document to validate.
type CWUOpportunityDocument struct {
	Title              string    `json:"title" dynamodbav:"title"`
	Teaser             string    `json:"teaser" dynamodbav:"teaser"`
	Description        string    `json:"description" dynamodbav:"description"`
	RemoteOK           bool      `json:"remoteOk" dynamodbav:"remote_ok"`
	Location           string    `json:"location" dynamodbav:"location"`
	Reward             float64   `json:"reward" dynamodbav:"reward"`
	Skills             []string  `json:"skills" dynamodbav:"skills"`
	ProposalDeadline   time.Time `json:"proposalDeadline" dynamodbav:"proposal_deadline"`
	AssignmentDate     time.Time `json:"assignmentDate" dynamodbav:"assignment_date"`
	StartDate          time.Time `json:"startDate" dynamodbav:"start_date"`
	CompletionDate     time.Time `json:"completionDate" dynamodbav:"completion_date"`
	SubmissionInfo     string    `json:"submissionInfo" dynamodbav:"submission_info"`
	AcceptanceCriteria string    `json:"acceptanceCriteria" dynamodbav:"acceptance_criteria"`
	EvaluationCriteria string    `json:"evaluationCriteria" dynamodbav:"evaluation_criteria"`
	Attachments        []string  `json:"attachments" dynamodbav:"attachments"`
}

// CWUOpportunity is a posted work item owned by an organization.
type CWUOpportunity struct {
	ID             string                 `json:"id" dynamodbav:"id"`
	OrganizationID string                 `json:"organization" dynamodbav:"organization_id"`
	CreatedBy      string                 `json:"createdBy" dynamodbav:"created_by"`
	UpdatedBy      string                 `json:"updatedBy,omitempty" dynamodbav:"updated_by,omitempty"`
	Status         CWUOpportunityStatus   `json:"status" dynamodbav:"status"`
	Document       CWUOpportunityDocument `json:"document" dynamodbav:"document"`
	Views          int                    `json:"views" dynamodbav:"views"`
	Watchers       []string               `json:"watchers" dynamodbav:"watchers"`
	ProposalCount  int                    `json:"proposalCount" dynamodbav:"proposal_count"`
	PublishedAt    *time.Time             `json:"publishedAt,omitempty" dynamodbav:"published_at,omitempty"`
	CreatedAt      time.Time              `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt      time.Time              `json:"updatedAt" dynamodbav:"updated_at"`
	Version        int64                  `json:"-" dynamodbav:"version"`
}

// IsPublic reports whether the opportunity has ever been visible to vendors.
// Detail edits on public opportunities may not remove attachments.
func (o *CWUOpportunity) IsPublic() bool {
	switch o.Status {
	case CWUOpportunityStatusPublished, CWUOpportunityStatusSuspended, CWUOpportunityStatusEvaluation:
		return true
	}
	return false
}

// AcceptingProposals reports whether vendors may submit or resubmit proposals.
func (o *CWUOpportunity) AcceptingProposals(now time.Time) bool {
	return o.Status == CWUOpportunityStatusPublished && now.Before(o.Document.ProposalDeadline)
}

// CWUOpportunitySlim is the summary shape returned by collection endpoints.
type CWUOpportunitySlim struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Teaser           string               `json:"teaser"`
	Status           CWUOpportunityStatus `json:"status"`
	Reward           float64              `json:"reward"`
	Location         string               `json:"location"`
	RemoteOK         bool                 `json:"remoteOk"`
	ProposalDeadline time.Time            `json:"proposalDeadline"`
	CreatedAt        time.Time            `json:"createdAt"`
}

// Slim converts an opportunity to its summary shape.
func (o *CWUOpportunity) Slim() CWUOpportunitySlim {
	return CWUOpportunitySlim{
		ID:               o.ID,
		Title:            o.Document.Title,
		Teaser:           o.Document.Teaser,
		Status:           o.Status,
		Reward:           o.Document.Reward,
		Location:         o.Document.Location,
		RemoteOK:         o.Document.RemoteOK,
		ProposalDeadline: o.Document.ProposalDeadline,
		CreatedAt:        o.CreatedAt,
	}
}

// CreateCWUOpportunityRequest is the creation body for the opportunities resource.
type CreateCWUOpportunityRequest struct {
	Organization string                 `json:"organization"`
	Document     CWUOpportunityDocument `json:"document"`
}

// Opportunity update tags. The server dispatches on the tag alone;
// unrecognized tags are a structural validation error.
const (
	CWUOpportunityTagEdit            = "edit"
	CWUOpportunityTagPublish         = "publish"
	CWUOpportunityTagSuspend         = "suspend"
	CWUOpportunityTagCancel          = "cancel"
	CWUOpportunityTagStartEvaluation = "startEvaluation"
	CWUOpportunityTagSaveAndPublish  = "saveAndPublish"
	CWUOpportunityTagWatch           = "watch"
	CWUOpportunityTagUnwatch         = "unwatch"
)

// UpdateCWUOpportunityRequest is the tagged update body for the
// opportunities resource. Edit carries the full document replace for the
// "edit" and "saveAndPublish" tags and is ignored otherwise.
type UpdateCWUOpportunityRequest struct {
	Tag  string                  `json:"tag"`
	Edit *CWUOpportunityDocument `json:"value,omitempty"`
}
