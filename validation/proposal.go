package validation

import (
	"github.com/ytgov/digital-marketplace/models"
)

// ValidateCWUProposalDocument is the full check applied at submission time.
func ValidateCWUProposalDocument(doc *models.CWUProposalDocument) Errors {
	errs := Errors{}
	errs.Add("proposalText", requiredString(doc.ProposalText, 1, 10000)...)
	errs.Add("additionalComments", optionalString(doc.AdditionalComments, 5000)...)
	if errs.Empty() {
		return nil
	}
	return errs
}

// ValidateCWUProposalScore checks an evaluation score.
func ValidateCWUProposalScore(score *float64) Validation[float64] {
	if score == nil {
		return Field[float64]("Please provide a score.")
	}
	if *score < 0 || *score > 100 {
		return Field[float64]("The score must be between 0 and 100.")
	}
	return Valid(*score)
}
