package entity

import "testing"

func TestApplicationTransitions(t *testing.T) {
	tests := []struct {
		from, to ApplicationStatus
		want     bool
	}{
		{ApplicationPending, ApplicationReviewed, true},
		{ApplicationPending, ApplicationAccepted, false},
		{ApplicationReviewed, ApplicationWithdrawn, true},
		{ApplicationShortlisted, ApplicationWithdrawn, false},
		{ApplicationInterview, ApplicationAccepted, true},
		{ApplicationAccepted, ApplicationRejected, false},
		{ApplicationWithdrawn, ApplicationPending, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
	for _, s := range []ApplicationStatus{ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestOfferVisibility(t *testing.T) {
	o := &JobOffer{Status: OfferPublished, AdminStatus: AdminApproved}
	if !o.IsVisible() {
		t.Fatal("published+approved offer should be visible")
	}
	o.AdminStatus = AdminFlagged
	if o.IsVisible() {
		t.Fatal("flagged offer should be hidden")
	}
	if !OfferDraft.CanTransition(OfferPublished) || OfferArchived.CanTransition(OfferPublished) {
		t.Fatal("unexpected offer status transitions")
	}
}

func TestParsers(t *testing.T) {
	if ParseRole(" recruiter ") != RoleRecruiter {
		t.Error("ParseRole should normalize case and spaces")
	}
	if ParseRole("root") != "" {
		t.Error("unknown role should be empty")
	}
	if RoleAdmin.SelfRegistrable() {
		t.Error("admins must not self-register")
	}
	if ParseContractType("mis") != ContractInterim || ParseContractType("cdi") != ContractCDI {
		t.Error("contract codes not mapped")
	}
}
