package onboarding

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	auditActionApprovePPE   = "approve_ppe"
	auditActionRejectPPE    = "reject_ppe"
	auditActionCompleteStep = "manual_complete_step"
	auditActionResetStep    = "reset_step"
	auditActionBlockUser    = "block_user"
	auditActionUnblockUser  = "unblock_user"
)

// ApprovePPE は PPE 申請を承認し、PPE 画面を完了扱いにします。
func (s *Store) ApprovePPE(ctx context.Context, userEmail string) (*EmploymentSetup, error) {
	email, ok := normalizeScope(userEmail)
	if !ok {
		return nil, ErrScopeMissing
	}

	approved := PpeStatusApproved
	patch := EmploymentSetupPatch{PpeStatus: &approved, Screen5Completed: boolPtr(true)}

	return s.review(ctx, email, patch, &NotificationInput{
		Title:   "Safety Footwear Approved",
		Message: "Your safety footwear purchase has been approved. You can now continue with shift selection.",
		Type:    NotificationTypeApproved,
	}, auditActionApprovePPE, map[string]string{"auto_completed": "true"})
}

// RejectPPE は PPE 申請を差し戻し、理由を管理者メモとして保存します。
func (s *Store) RejectPPE(ctx context.Context, userEmail, reason string) (*EmploymentSetup, error) {
	email, ok := normalizeScope(userEmail)
	if !ok {
		return nil, ErrScopeMissing
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrInvalidReason
	}

	rejected := PpeStatusRejected
	patch := EmploymentSetupPatch{
		PpeStatus:        &rejected,
		PpeAdminNote:     &reason,
		Screen5Completed: boolPtr(false),
	}

	return s.review(ctx, email, patch, &NotificationInput{
		Title:   "Safety Footwear Requires Action",
		Message: "Your safety footwear submission was not approved. Reason: " + reason,
		Type:    NotificationTypeNeedsFix,
	}, auditActionRejectPPE, map[string]string{"reason": reason})
}

// CompleteStep は管理者が画面 screen を手動で完了扱いにします。
func (s *Store) CompleteStep(ctx context.Context, userEmail string, screen int) (*EmploymentSetup, error) {
	email, ok := normalizeScope(userEmail)
	if !ok {
		return nil, ErrScopeMissing
	}

	patch, err := screenPatch(screen, true)
	if err != nil {
		return nil, err
	}

	return s.review(ctx, email, patch, nil, auditActionCompleteStep,
		map[string]string{"screen": strconv.Itoa(screen)})
}

// ResetStep は完了済みの画面 screen を未完了に戻します。
// PPE 画面 (5) の場合は承認も取り消し、ppe_status を pending にします。
func (s *Store) ResetStep(ctx context.Context, userEmail string, screen int) (*EmploymentSetup, error) {
	email, ok := normalizeScope(userEmail)
	if !ok {
		return nil, ErrScopeMissing
	}

	patch, err := screenPatch(screen, false)
	if err != nil {
		return nil, err
	}
	if screen == 5 {
		pending := PpeStatusPending
		patch.PpeStatus = &pending
	}

	return s.review(ctx, email, patch, nil, auditActionResetStep,
		map[string]string{"screen": strconv.Itoa(screen)})
}

// BlockUser はユーザーのアクセスを取り消します。
func (s *Store) BlockUser(ctx context.Context, reason string) (*User, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrInvalidReason
	}
	return s.setAccess(ctx, true, reason, auditActionBlockUser, map[string]string{"reason": reason})
}

// UnblockUser はユーザーのアクセス取り消しを解除します。
func (s *Store) UnblockUser(ctx context.Context) (*User, error) {
	return s.setAccess(ctx, false, "", auditActionUnblockUser, nil)
}

// ListAuditLog は監査ログを新しい順に返します。
func (s *Store) ListAuditLog(ctx context.Context) ([]AuditEntry, error) {
	var entries []AuditEntry
	if err := s.read(ctx, func(txCtx context.Context) error {
		var err error
		entries, err = s.loadAuditLog(txCtx)
		return err
	}); err != nil {
		return nil, err
	}

	result := make([]AuditEntry, len(entries))
	copy(result, entries)
	sortByKey(result, "-created_date", "created_date", func(e AuditEntry) string { return e.CreatedDate })
	return result, nil
}

func (s *Store) review(
	ctx context.Context,
	email string,
	patch EmploymentSetupPatch,
	notice *NotificationInput,
	action string,
	details map[string]string,
) (*EmploymentSetup, error) {
	var (
		result  *EmploymentSetup
		created *Notification
	)

	if err := s.readWrite(ctx, func(txCtx context.Context) error {
		setup, err := s.patchSetup(txCtx, email, patch)
		if err != nil {
			return err
		}

		if notice != nil {
			n, err := s.appendNotification(txCtx, email, notice.Title, notice.Message, notice.Type)
			if err != nil {
				return err
			}
			created = &n
		}

		merged := map[string]string{"setup_id": setup.ID}
		for k, v := range details {
			merged[k] = v
		}
		if err := s.appendAudit(txCtx, action, email, merged); err != nil {
			return err
		}

		result = setup
		return nil
	}); err != nil {
		return nil, err
	}

	if created != nil {
		s.publish(ctx, *created)
	}
	s.logger.Info("admin review applied",
		zap.String("action", action),
		zap.String("user_email", email))
	return result, nil
}

func (s *Store) setAccess(ctx context.Context, revoked bool, reason, action string, details map[string]string) (*User, error) {
	var result *User
	if err := s.readWrite(ctx, func(txCtx context.Context) error {
		u, err := s.patchUser(txCtx, UserPatch{AccessRevoked: &revoked, AccessRevokedReason: &reason})
		if err != nil {
			return err
		}
		if err := s.appendAudit(txCtx, action, u.Email, details); err != nil {
			return err
		}
		result = u
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) loadAuditLog(ctx context.Context) ([]AuditEntry, error) {
	var entries []AuditEntry
	if _, err := s.loadJSON(ctx, auditLogKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) appendAudit(ctx context.Context, action, target string, details map[string]string) error {
	entries, err := s.loadAuditLog(ctx)
	if err != nil {
		return err
	}

	entry := AuditEntry{
		ID:          s.newID(),
		AdminEmail:  s.adminEmail,
		Action:      action,
		TargetEmail: target,
		Details:     details,
		CreatedDate: s.timestamp(0),
	}
	return s.saveJSON(ctx, auditLogKey, append(entries, entry))
}

func screenPatch(screen int, completed bool) (EmploymentSetupPatch, error) {
	v := boolPtr(completed)
	switch screen {
	case 2:
		return EmploymentSetupPatch{Screen2Completed: v}, nil
	case 3:
		return EmploymentSetupPatch{Screen3Completed: v}, nil
	case 4:
		return EmploymentSetupPatch{Screen4Completed: v}, nil
	case 5:
		return EmploymentSetupPatch{Screen5Completed: v}, nil
	case 6:
		return EmploymentSetupPatch{Screen6Completed: v}, nil
	case 7:
		return EmploymentSetupPatch{Screen7Completed: v}, nil
	default:
		return EmploymentSetupPatch{}, fmt.Errorf("screen %d: %w", screen, ErrInvalidScreen)
	}
}

func boolPtr(v bool) *bool {
	return &v
}
