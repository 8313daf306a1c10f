package onboarding

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStore_Me_CreatesDefaultsOnce(t *testing.T) {
	t.Parallel()

	store, storage, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Me(ctx)
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}

	if first.EmployeeStatus != EmployeeStatusPending || first.State != EmployeeStatePending {
		t.Errorf("expected pending/pending, got %s/%s", first.EmployeeStatus, first.State)
	}
	if first.Email != DefaultUserEmail || first.EmployeeID != DefaultEmployeeID {
		t.Errorf("unexpected defaults: %+v", first)
	}
	if !first.PassedIDGate || first.SetupStatus != "in_progress" {
		t.Errorf("unexpected defaults: %+v", first)
	}

	writes := storage.writes
	second, err := store.Me(ctx)
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second read differs (-first +second):\n%s", diff)
	}
	if storage.writes != writes {
		t.Fatalf("expected no write on second read, got %d writes", storage.writes-writes)
	}
}

func TestStore_Me_DerivesMissingState(t *testing.T) {
	t.Parallel()

	store, storage, _ := newTestStore(t)
	storage.items[userKey] = `{"email":"a@b.com","employee_status":"active"}`

	u, err := store.Me(context.Background())
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if u.State != EmployeeStateActive {
		t.Fatalf("expected derived state active, got %s", u.State)
	}
}

func TestStore_UpdateMe_SyncsStateAndStatus(t *testing.T) {
	t.Parallel()

	active := EmployeeStatusActive
	inactive := EmployeeStatusInactive
	statePending := EmployeeStatePending
	stateActive := EmployeeStateActive

	tests := []struct {
		name       string
		patch      UserPatch
		wantStatus EmployeeStatus
		wantState  EmployeeState
	}{
		{name: "status active derives state", patch: UserPatch{EmployeeStatus: &active}, wantStatus: EmployeeStatusActive, wantState: EmployeeStateActive},
		{name: "status inactive derives pending", patch: UserPatch{EmployeeStatus: &inactive}, wantStatus: EmployeeStatusInactive, wantState: EmployeeStatePending},
		{name: "state active derives status", patch: UserPatch{State: &stateActive}, wantStatus: EmployeeStatusActive, wantState: EmployeeStateActive},
		{name: "both given are kept", patch: UserPatch{EmployeeStatus: &inactive, State: &statePending}, wantStatus: EmployeeStatusInactive, wantState: EmployeeStatePending},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, _, _ := newTestStore(t)
			got, err := store.UpdateMe(context.Background(), tt.patch)
			if err != nil {
				t.Fatalf("UpdateMe returned error: %v", err)
			}
			if got.EmployeeStatus != tt.wantStatus || got.State != tt.wantState {
				t.Fatalf("expected %s/%s, got %s/%s", tt.wantStatus, tt.wantState, got.EmployeeStatus, got.State)
			}
		})
	}
}

func TestStore_UpdateMe_PersistsShallowMerge(t *testing.T) {
	t.Parallel()

	store, storage, _ := newTestStore(t)
	ctx := context.Background()

	location := "Plant B"
	start := "2025-04-01"
	if _, err := store.UpdateMe(ctx, UserPatch{Location: &location, StartDate: &start}); err != nil {
		t.Fatalf("UpdateMe returned error: %v", err)
	}

	var persisted User
	if err := json.Unmarshal([]byte(storage.items[userKey]), &persisted); err != nil {
		t.Fatalf("failed to decode persisted user: %v", err)
	}
	if persisted.Location != "Plant B" || persisted.StartDate == nil || *persisted.StartDate != start {
		t.Fatalf("unexpected persisted user: %+v", persisted)
	}
	if persisted.EmployeeID != DefaultEmployeeID {
		t.Fatalf("expected untouched fields to survive, got %+v", persisted)
	}

	cleared, err := store.UpdateMe(ctx, UserPatch{StartDateSet: true})
	if err != nil {
		t.Fatalf("UpdateMe returned error: %v", err)
	}
	if cleared.StartDate != nil {
		t.Fatalf("expected start_date cleared, got %v", *cleared.StartDate)
	}
}

func TestStore_UpdateMe_InvalidStatus(t *testing.T) {
	t.Parallel()

	store, storage, _ := newTestStore(t)
	invalid := EmployeeStatus("blocked")

	if _, err := store.UpdateMe(context.Background(), UserPatch{EmployeeStatus: &invalid}); err != ErrInvalidEmployeeStatus {
		t.Fatalf("expected ErrInvalidEmployeeStatus, got %v", err)
	}
	if storage.writes != 0 {
		t.Fatalf("expected no writes, got %d", storage.writes)
	}
}

func TestStore_Logout_RecreatesDefaults(t *testing.T) {
	t.Parallel()

	store, storage, _ := newTestStore(t)
	ctx := context.Background()

	note := "fix your address"
	if _, err := store.UpdateMe(ctx, UserPatch{NeedsFixNote: &note}); err != nil {
		t.Fatalf("UpdateMe returned error: %v", err)
	}

	if err := store.Logout(ctx); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, ok := storage.items[userKey]; ok {
		t.Fatal("expected user record removed")
	}

	u, err := store.Me(ctx)
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if u.NeedsFixNote != "" {
		t.Fatalf("expected fresh defaults, got %+v", u)
	}
}
