package onboarding

import "context"

// FilterEmploymentSetups は userEmail の EmploymentSetup を 0 件または 1 件で返します。
func (s *Store) FilterEmploymentSetups(ctx context.Context, userEmail string) ([]EmploymentSetup, error) {
	email, ok := normalizeScope(userEmail)
	if !ok {
		return []EmploymentSetup{}, nil
	}

	var result []EmploymentSetup
	if err := s.read(ctx, func(txCtx context.Context) error {
		if s.lazySeed {
			setup, err := s.getOrCreateSetup(txCtx, email)
			if err != nil {
				return err
			}
			result = []EmploymentSetup{*setup}
			return nil
		}

		setup, found, err := s.loadSetup(txCtx, email)
		if err != nil {
			return err
		}
		result = []EmploymentSetup{}
		if found {
			result = append(result, *setup)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateEmploymentSetup は userEmail の EmploymentSetup を作成します。
// 既に存在する場合は重複を作らずに既存のレコードを返します。
func (s *Store) CreateEmploymentSetup(ctx context.Context, userEmail string) (*EmploymentSetup, error) {
	email, ok := normalizeScope(userEmail)
	if !ok {
		return nil, ErrScopeMissing
	}

	var result *EmploymentSetup
	if err := s.readWrite(ctx, func(txCtx context.Context) error {
		setup, err := s.getOrCreateSetup(txCtx, email)
		if err != nil {
			return err
		}
		result = setup
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateEmploymentSetup は userEmail の EmploymentSetup にパッチをマージします。
func (s *Store) UpdateEmploymentSetup(ctx context.Context, userEmail string, patch EmploymentSetupPatch) (*EmploymentSetup, error) {
	email, ok := normalizeScope(userEmail)
	if !ok {
		return nil, ErrScopeMissing
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var result *EmploymentSetup
	if err := s.readWrite(ctx, func(txCtx context.Context) error {
		setup, err := s.patchSetup(txCtx, email, patch)
		if err != nil {
			return err
		}
		result = setup
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) patchSetup(ctx context.Context, email string, patch EmploymentSetupPatch) (*EmploymentSetup, error) {
	current, err := s.getOrCreateSetup(ctx, email)
	if err != nil {
		return nil, err
	}

	next := patch.Apply(*current)
	if err := s.saveJSON(ctx, SetupKey(email), next); err != nil {
		return nil, err
	}
	return &next, nil
}
