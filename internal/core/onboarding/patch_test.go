package onboarding

import (
	"errors"
	"testing"
)

func TestDecodeUserPatch(t *testing.T) {
	t.Parallel()

	p, err := DecodeUserPatch([]byte(`{"employee_status":"active","start_date":null,"location":"Plant C"}`))
	if err != nil {
		t.Fatalf("DecodeUserPatch returned error: %v", err)
	}
	if p.EmployeeStatus == nil || *p.EmployeeStatus != EmployeeStatusActive {
		t.Fatalf("expected employee_status active, got %v", p.EmployeeStatus)
	}
	if !p.StartDateSet || p.StartDate != nil {
		t.Fatalf("expected explicit null start_date, got set=%t value=%v", p.StartDateSet, p.StartDate)
	}

	start := "2025-05-01"
	merged := p.Apply(User{StartDate: &start, EmployeeStatus: EmployeeStatusPending, State: EmployeeStatePending})
	if merged.StartDate != nil || merged.State != EmployeeStateActive || merged.Location != "Plant C" {
		t.Fatalf("unexpected merge result %+v", merged)
	}
}

func TestDecodePatch_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		decode func([]byte) error
		input  string
	}{
		{
			name:   "user",
			decode: func(b []byte) error { _, err := DecodeUserPatch(b); return err },
			input:  `{"is_admin":true}`,
		},
		{
			name:   "setup identity",
			decode: func(b []byte) error { _, err := DecodeEmploymentSetupPatch(b); return err },
			input:  `{"user_email":"other@y.com"}`,
		},
		{
			name:   "notification owner",
			decode: func(b []byte) error { _, err := DecodeNotificationPatch(b); return err },
			input:  `{"is_read":true,"user_email":"other@y.com"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.decode([]byte(tt.input)); !errors.Is(err, ErrUnknownPatchField) {
				t.Fatalf("expected ErrUnknownPatchField, got %v", err)
			}
		})
	}
}

func TestDecodePatch_InvalidValues(t *testing.T) {
	t.Parallel()

	if _, err := DecodeEmploymentSetupPatch([]byte(`{"ppe_status":"shipped"}`)); !errors.Is(err, ErrInvalidPpeStatus) {
		t.Fatalf("expected ErrInvalidPpeStatus, got %v", err)
	}
	if _, err := DecodeUserPatch([]byte(`{"state":"inactive"}`)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if _, err := DecodeNotificationPatch([]byte(`{"is_read":"yes"}`)); !errors.Is(err, ErrInvalidPatch) {
		t.Fatalf("expected ErrInvalidPatch, got %v", err)
	}
	if _, err := DecodeNotificationPatch([]byte(`[]`)); !errors.Is(err, ErrInvalidPatch) {
		t.Fatalf("expected ErrInvalidPatch for non-object, got %v", err)
	}
}

func TestEmploymentSetupPatch_ApplyIsShallow(t *testing.T) {
	t.Parallel()

	base := EmploymentSetup{ID: "setup_x", UserEmail: "x", Screen2Completed: true, PpeStatus: PpeStatusPending}
	got := EmploymentSetupPatch{Screen3Completed: boolRef(true)}.Apply(base)

	if !got.Screen2Completed || !got.Screen3Completed || got.PpeStatus != PpeStatusPending || got.ID != "setup_x" {
		t.Fatalf("unexpected merge result %+v", got)
	}
}
