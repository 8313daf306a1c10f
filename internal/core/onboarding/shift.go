package onboarding

import "context"

// ShiftFilter はシフトの絞り込み条件です。
type ShiftFilter struct {
	UserEmail string
}

// FilterShifts は userEmail のシフトを返します。orderBy は "date" または "-date" を受け付けます。
func (s *Store) FilterShifts(ctx context.Context, where ShiftFilter, orderBy string) ([]Shift, error) {
	email, ok := normalizeScope(where.UserEmail)
	if !ok {
		return []Shift{}, nil
	}

	var all []Shift
	if err := s.read(ctx, func(txCtx context.Context) error {
		var err error
		if s.lazySeed {
			all, err = s.getOrCreateShifts(txCtx, email)
		} else {
			all, _, err = s.loadShifts(txCtx, email)
		}
		return err
	}); err != nil {
		return nil, err
	}

	result := make([]Shift, 0, len(all))
	for _, sh := range all {
		if sh.UserEmail == email {
			result = append(result, sh)
		}
	}

	sortByKey(result, orderBy, "date", func(sh Shift) string { return sh.Date })
	return result, nil
}
