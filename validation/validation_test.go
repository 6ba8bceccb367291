package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ytgov/digital-marketplace/models"
)

func TestErrorsAddSkipsEmptySlices(t *testing.T) {
	errs := Errors{}
	errs.Add("title")
	errs.Add("reward", "Too high.")

	assert.False(t, errs.Empty())
	assert.NotContains(t, errs, "title")
	assert.Equal(t, []string{"Too high."}, errs["reward"])
}

func TestErrorsMergeAppends(t *testing.T) {
	errs := Errors{"title": {"Required."}}
	errs.Merge(Errors{"title": {"Too long."}, "reward": {"Too high."}})

	assert.Equal(t, []string{"Required.", "Too long."}, errs["title"])
	assert.Equal(t, []string{"Too high."}, errs["reward"])
}

func TestHasPermissionErrors(t *testing.T) {
	assert.True(t, PermissionErrors("No.").HasPermissionErrors())
	assert.False(t, Errors{"title": {"Required."}}.HasPermissionErrors())
	assert.False(t, Errors{}.HasPermissionErrors())
}

func TestErrorsFlatten(t *testing.T) {
	flat := Errors{"status": {"Closed."}, "title": {"Required.", "Too long."}}.Flatten()
	assert.ElementsMatch(t, []string{"Closed.", "Required.", "Too long."}, flat)
	assert.Empty(t, Errors{}.Flatten())
}

func TestValidationZeroValueIsInvalid(t *testing.T) {
	var v Validation[string]
	assert.False(t, v.Ok())
	assert.Empty(t, v.Messages())
}

func TestFieldValidationMessages(t *testing.T) {
	v := Field[float64]("Please provide a score.")
	assert.False(t, v.Ok())
	assert.Equal(t, []string{"Please provide a score."}, v.Messages())
}

func TestAllValid(t *testing.T) {
	assert.True(t, AllValid(Valid(1), Valid("a")))
	assert.False(t, AllValid(Valid(1), Field[int]("bad")))
}

func completeOpportunityDocument(now time.Time) models.CWUOpportunityDocument {
	return models.CWUOpportunityDocument{
		Title:              "Modernize the permit portal",
		Description:        "Replace the paper workflow",
		RemoteOK:           true,
		Reward:             25000,
		Skills:             []string{"go", "postgres"},
		ProposalDeadline:   now.Add(7 * 24 * time.Hour),
		AssignmentDate:     now.Add(10 * 24 * time.Hour),
		StartDate:          now.Add(14 * 24 * time.Hour),
		CompletionDate:     now.Add(60 * 24 * time.Hour),
		SubmissionInfo:     "Upload through the portal",
		AcceptanceCriteria: "All permits migrated",
		EvaluationCriteria: "Quality and cost",
	}
}

func TestOpportunityDocumentCompletePasses(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := completeOpportunityDocument(now)

	assert.Nil(t, ValidateCWUOpportunityDocument(&doc, now))
}

func TestOpportunityDocumentRewardCeiling(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := completeOpportunityDocument(now)
	doc.Reward = 70001

	errs := ValidateCWUOpportunityDocument(&doc, now)
	assert.Equal(t, []string{"The reward may not exceed $70,000."}, errs["reward"])
}

func TestOpportunityDocumentLocationRequiredOnSite(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := completeOpportunityDocument(now)
	doc.RemoteOK = false
	doc.Location = ""

	errs := ValidateCWUOpportunityDocument(&doc, now)
	assert.Contains(t, errs, "location")
}

func TestOpportunityDocumentDateOrdering(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := completeOpportunityDocument(now)
	doc.StartDate = doc.AssignmentDate.Add(-24 * time.Hour)

	errs := ValidateCWUOpportunityDocument(&doc, now)
	assert.Contains(t, errs, "startDate")
}

func TestOpportunityDocumentPastDeadline(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := completeOpportunityDocument(now)
	doc.ProposalDeadline = now.Add(-time.Hour)

	errs := ValidateCWUOpportunityDocument(&doc, now)
	assert.Contains(t, errs, "proposalDeadline")
}

func TestOpportunityDraftOnlyNeedsTitle(t *testing.T) {
	doc := models.CWUOpportunityDocument{Title: "A bare idea"}
	assert.Nil(t, ValidateCWUOpportunityDraft(&doc))

	doc.Title = "   "
	errs := ValidateCWUOpportunityDraft(&doc)
	assert.Equal(t, []string{"This field is required."}, errs["title"])
}

func TestAttachmentsRemoved(t *testing.T) {
	assert.False(t, AttachmentsRemoved(nil, nil))
	assert.False(t, AttachmentsRemoved([]string{"a.pdf"}, []string{"a.pdf", "b.pdf"}))
	assert.True(t, AttachmentsRemoved([]string{"a.pdf", "b.pdf"}, []string{"b.pdf"}))
}

func TestProposalDocument(t *testing.T) {
	doc := models.CWUProposalDocument{ProposalText: "We will deliver."}
	assert.Nil(t, ValidateCWUProposalDocument(&doc))

	doc.ProposalText = ""
	errs := ValidateCWUProposalDocument(&doc)
	assert.Equal(t, []string{"This field is required."}, errs["proposalText"])
}

func TestProposalScore(t *testing.T) {
	assert.False(t, ValidateCWUProposalScore(nil).Ok())

	tooHigh := 101.0
	assert.False(t, ValidateCWUProposalScore(&tooHigh).Ok())

	negative := -1.0
	assert.False(t, ValidateCWUProposalScore(&negative).Ok())

	fine := 88.5
	v := ValidateCWUProposalScore(&fine)
	assert.True(t, v.Ok())
	assert.Equal(t, fine, v.Value())
}
