package validation

import (
	"strings"

	"github.com/ytgov/digital-marketplace/models"
)

// ValidateMembershipType parses the raw membership type from a creation body.
func ValidateMembershipType(raw string) Validation[models.MembershipType] {
	switch models.MembershipType(strings.ToUpper(strings.TrimSpace(raw))) {
	case models.MembershipTypeOwner:
		return Valid(models.MembershipTypeOwner)
	case models.MembershipTypeMember:
		return Valid(models.MembershipTypeMember)
	default:
		return Field[models.MembershipType]("Please select a valid membership type.")
	}
}
