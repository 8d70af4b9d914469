package domain

// VerificationStatus is the canonical status of a verification queue item.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationInReview VerificationStatus = "in_review"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Source platform verification statuses (agent dashboard).
const (
	sourcePending      = "pending"
	sourceUnderReview  = "under_review"
	sourceApproved     = "approved"
	sourceRejected     = "rejected"
	sourceResubmission = "resubmission_required"
)

// MapVerificationStatus translates a source platform status into the
// canonical one. Unrecognized statuses fall back to pending.
func MapVerificationStatus(platformStatus string) VerificationStatus {
	switch platformStatus {
	case sourcePending:
		return VerificationPending
	case sourceUnderReview:
		return VerificationInReview
	case sourceApproved:
		return VerificationApproved
	case sourceRejected:
		return VerificationRejected
	case sourceResubmission:
		return VerificationPending
	default:
		return VerificationPending
	}
}
