package models

import "time"

// CWUProposalStatus represents the lifecycle status of a Code With Us proposal
type CWUProposalStatus string

const (
	CWUProposalStatusDraft       CWUProposalStatus = "DRAFT"
	CWUProposalStatusSubmitted   CWUProposalStatus = "SUBMITTED"
	CWUProposalStatusWithdrawn   CWUProposalStatus = "WITHDRAWN"
	CWUProposalStatusUnderReview CWUProposalStatus = "UNDER_REVIEW"
	CWUProposalStatusEvaluated   CWUProposalStatus = "EVALUATED"
	CWUProposalStatusAwarded     CWUProposalStatus = "AWARDED"
	CWUProposalStatusNotAwarded  CWUProposalStatus = "NOT_AWARDED"
)

// CWUProposalDocument groups the editable content fields of a proposal.
type CWUProposalDocument struct {
	ProposalText       string   `json:"proposalText" dynamodbav:"proposal_text"`
	AdditionalComments string   `json:"additionalComments" dynamodbav:"additional_comments"`
	Attachments        []string `json:"attachments" dynamodbav:"attachments"`
}

// CWUProposal is a vendor's submission against an opportunity.
type CWUProposal struct {
	ID            string              `json:"id" dynamodbav:"id"`
	OpportunityID string              `json:"opportunity" dynamodbav:"opportunity_id"`
	AuthorID      string              `json:"author" dynamodbav:"author_id"`
	Status        CWUProposalStatus   `json:"status" dynamodbav:"status"`
	Document      CWUProposalDocument `json:"document" dynamodbav:"document"`
	Score         *float64            `json:"score,omitempty" dynamodbav:"score,omitempty"`
	Rank          *int                `json:"rank,omitempty" dynamodbav:"rank,omitempty"`
	SubmittedAt   *time.Time          `json:"submittedAt,omitempty" dynamodbav:"submitted_at,omitempty"`
	CreatedAt     time.Time           `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt     time.Time           `json:"updatedAt" dynamodbav:"updated_at"`
	Version       int64               `json:"-" dynamodbav:"version"`
}

// CWUProposalSlim is the summary shape returned by collection endpoints.
type CWUProposalSlim struct {
	ID          string            `json:"id"`
	Opportunity string            `json:"opportunity"`
	Author      string            `json:"author"`
	Status      CWUProposalStatus `json:"status"`
	Score       *float64          `json:"score,omitempty"`
	SubmittedAt *time.Time        `json:"submittedAt,omitempty"`
}

// Slim converts a proposal to its summary shape.
func (p *CWUProposal) Slim() CWUProposalSlim {
	return CWUProposalSlim{
		ID:          p.ID,
		Opportunity: p.OpportunityID,
		Author:      p.AuthorID,
		Status:      p.Status,
		Score:       p.Score,
		SubmittedAt: p.SubmittedAt,
	}
}

// CreateCWUProposalRequest is the creation body for the proposals resource.
type CreateCWUProposalRequest struct {
	Opportunity string              `json:"opportunity"`
	Document    CWUProposalDocument `json:"document"`
}

// Proposal update tags.
const (
	CWUProposalTagEdit          = "edit"
	CWUProposalTagSubmit        = "submit"
	CWUProposalTagWithdraw      = "withdraw"
	CWUProposalTagReview        = "review"
	CWUProposalTagScore         = "score"
	CWUProposalTagAward         = "award"
	CWUProposalTagSaveAndSubmit = "saveAndSubmit"
)

// UpdateCWUProposalRequest is the tagged update body for the proposals
// resource. Edit carries the document for "edit"/"saveAndSubmit"; Score
// carries the evaluation score for "score".
type UpdateCWUProposalRequest struct {
	Tag   string               `json:"tag"`
	Edit  *CWUProposalDocument `json:"value,omitempty"`
	Score *float64             `json:"score,omitempty"`
}
