package onboarding

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	DefaultUserEmail  = "demo@sunpowerabc.com"
	DefaultEmployeeID = "ABC-1001"
)

func defaultUser() User {
	return User{
		Email:          DefaultUserEmail,
		EmployeeID:     DefaultEmployeeID,
		PassedIDGate:   true,
		EmployeeStatus: EmployeeStatusPending,
		SetupStatus:    "in_progress",
		State:          EmployeeStatePending,
	}
}

// Me は現在のユーザーを返します。未作成の場合は既定値で作成して保存します。
func (s *Store) Me(ctx context.Context) (*User, error) {
	var result *User
	if err := s.readWrite(ctx, func(txCtx context.Context) error {
		u, err := s.getOrCreateUser(txCtx)
		if err != nil {
			return err
		}
		result = u
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateMe は現在のユーザーにパッチをマージして保存します。
func (s *Store) UpdateMe(ctx context.Context, patch UserPatch) (*User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var result *User
	if err := s.readWrite(ctx, func(txCtx context.Context) error {
		u, err := s.patchUser(txCtx, patch)
		if err != nil {
			return err
		}
		result = u
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// Logout はユーザーレコードを削除します。次回の Me で既定値が再作成されます。
func (s *Store) Logout(ctx context.Context) error {
	return s.readWrite(ctx, func(txCtx context.Context) error {
		if err := s.storage.RemoveItem(txCtx, userKey); err != nil {
			return fmt.Errorf("onboarding: remove %s: %w", userKey, err)
		}
		return nil
	})
}

func (s *Store) getOrCreateUser(ctx context.Context) (*User, error) {
	var u User
	found, err := s.loadJSON(ctx, userKey, &u)
	if err != nil {
		return nil, err
	}
	if found {
		if u.State == "" {
			u.State = DeriveState(u.EmployeeStatus)
		}
		return &u, nil
	}

	u = defaultUser()
	if err := s.saveJSON(ctx, userKey, u); err != nil {
		return nil, err
	}
	s.logger.Info("created default user", zap.String("email", u.Email))
	return &u, nil
}

func (s *Store) patchUser(ctx context.Context, patch UserPatch) (*User, error) {
	current, err := s.getOrCreateUser(ctx)
	if err != nil {
		return nil, err
	}

	next := patch.Apply(*current)
	if err := s.saveJSON(ctx, userKey, next); err != nil {
		return nil, err
	}
	return &next, nil
}
