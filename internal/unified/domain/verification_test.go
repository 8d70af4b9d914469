package domain

import "testing"

func TestMapVerificationStatus(t *testing.T) {
	cases := []struct {
		in   string
		want VerificationStatus
	}{
		{"pending", VerificationPending},
		{"under_review", VerificationInReview},
		{"approved", VerificationApproved},
		{"rejected", VerificationRejected},
		{"resubmission_required", VerificationPending},
		{"", VerificationPending},
		{"something_new", VerificationPending},
	}

	for _, tc := range cases {
		if got := MapVerificationStatus(tc.in); got != tc.want {
			t.Errorf("MapVerificationStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
