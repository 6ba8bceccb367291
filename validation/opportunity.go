package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ytgov/digital-marketplace/models"
)

// Opportunity documents are validated leniently while drafting and in full
// at publish time. ValidateCWUOpportunityDocument is the full check.
func ValidateCWUOpportunityDocument(doc *models.CWUOpportunityDocument, now time.Time) Errors {
	errs := Errors{}
	errs.Add("title", requiredString(doc.Title, 1, 200)...)
	errs.Add("teaser", optionalString(doc.Teaser, 500)...)
	errs.Add("description", requiredString(doc.Description, 1, 10000)...)
	if !doc.RemoteOK {
		errs.Add("location", requiredString(doc.Location, 1, 100)...)
	}
	if doc.Reward <= 0 {
		errs.Add("reward", "Please enter a reward greater than zero.")
	} else if doc.Reward > 70000 {
		errs.Add("reward", "The reward may not exceed $70,000.")
	}
	if len(doc.Skills) == 0 {
		errs.Add("skills", "Please select at least one skill.")
	}
	errs.Add("proposalDeadline", dateInFuture(doc.ProposalDeadline, now, "proposal deadline")...)
	errs.Add("assignmentDate", dateOnOrAfter(doc.AssignmentDate, doc.ProposalDeadline, "assignment date", "proposal deadline")...)
	errs.Add("startDate", dateOnOrAfter(doc.StartDate, doc.AssignmentDate, "start date", "assignment date")...)
	errs.Add("completionDate", dateOnOrAfter(doc.CompletionDate, doc.StartDate, "completion date", "start date")...)
	errs.Add("submissionInfo", requiredString(doc.SubmissionInfo, 1, 500)...)
	errs.Add("acceptanceCriteria", requiredString(doc.AcceptanceCriteria, 1, 5000)...)
	errs.Add("evaluationCriteria", requiredString(doc.EvaluationCriteria, 1, 5000)...)
	if errs.Empty() {
		return nil
	}
	return errs
}

// ValidateCWUOpportunityDraft is the lenient check applied while the
// opportunity is still a draft: a title is the only hard requirement.
func ValidateCWUOpportunityDraft(doc *models.CWUOpportunityDocument) Errors {
	errs := Errors{}
	errs.Add("title", requiredString(doc.Title, 1, 200)...)
	if errs.Empty() {
		return nil
	}
	return errs
}

// AttachmentsRemoved reports whether next drops any attachment present in
// prev. Removal is restricted once an opportunity is public.
func AttachmentsRemoved(prev, next []string) bool {
	kept := make(map[string]struct{}, len(next))
	for _, a := range next {
		kept[a] = struct{}{}
	}
	for _, a := range prev {
		if _, ok := kept[a]; !ok {
			return true
		}
	}
	return false
}

func requiredString(value string, min, max int) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return []string{"This field is required."}
	}
	return boundedString(trimmed, min, max)
}

func optionalString(value string, max int) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return boundedString(trimmed, 0, max)
}

func boundedString(value string, min, max int) []string {
	if len(value) < min {
		return []string{fmt.Sprintf("Must be at least %d characters.", min)}
	}
	if max > 0 && len(value) > max {
		return []string{fmt.Sprintf("Must be at most %d characters.", max)}
	}
	return nil
}

func dateInFuture(date, now time.Time, name string) []string {
	if date.IsZero() {
		return []string{"This field is required."}
	}
	if !date.After(now) {
		return []string{fmt.Sprintf("The %s must be in the future.", name)}
	}
	return nil
}

func dateOnOrAfter(date, floor time.Time, name, floorName string) []string {
	if date.IsZero() {
		return []string{"This field is required."}
	}
	if date.Before(floor) {
		return []string{fmt.Sprintf("The %s must be on or after the %s.", name, floorName)}
	}
	return nil
}
