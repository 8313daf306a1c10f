package onboarding

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EnsureSeeded は userEmail のスコープに既定のレコードを用意します。
// 既存レコードの有無で判定するため、何度呼び出しても重複しません。
func (s *Store) EnsureSeeded(ctx context.Context, userEmail string) error {
	email, ok := normalizeScope(userEmail)
	if !ok {
		return ErrScopeMissing
	}

	return s.readWrite(ctx, func(txCtx context.Context) error {
		if _, err := s.getOrCreateSetup(txCtx, email); err != nil {
			return err
		}
		if _, err := s.getOrCreateNotifications(txCtx, email); err != nil {
			return err
		}
		if _, err := s.getOrCreateShifts(txCtx, email); err != nil {
			return err
		}
		return nil
	})
}

func defaultSetup(email string) EmploymentSetup {
	return EmploymentSetup{
		ID:        "setup_" + email,
		UserEmail: email,
		PpeStatus: PpeStatusPending,
	}
}

func (s *Store) seedNotifications(email string) []Notification {
	return []Notification{
		{
			ID:          "n1",
			UserEmail:   email,
			IsRead:      false,
			Title:       "Reminder: Bring your I-9 documents on your first day",
			Message:     "Make sure to bring your identification documents for the I-9 form on your start date.",
			Type:        NotificationTypeInfo,
			CreatedDate: s.timestamp(-5 * time.Hour),
		},
		{
			ID:          "n2",
			UserEmail:   email,
			IsRead:      false,
			Title:       "Please Confirm Your Work Shift",
			Message:     "Select your preferred work schedule to confirm your shift.",
			Type:        NotificationTypeNeedsFix,
			CreatedDate: s.timestamp(-24 * time.Hour),
		},
		{
			ID:          "n3",
			UserEmail:   email,
			IsRead:      true,
			Title:       "Safety Footwear: Don’t Forget to Order",
			Message:     "Visit our safety footwear program to use your allowance.",
			Type:        NotificationTypeInfo,
			CreatedDate: s.timestamp(-48 * time.Hour),
		},
	}
}

func (s *Store) seedShifts(email string) []Shift {
	now := s.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return []Shift{
		{
			ID:        "s1",
			UserEmail: email,
			Date:      today.Format(isoTimestampLayout),
			StartTime: "6:00 AM",
			EndTime:   "2:30 PM",
			Location:  "Plant A",
		},
		{
			ID:        "s2",
			UserEmail: email,
			Date:      today.AddDate(0, 0, 2).Format(isoTimestampLayout),
			StartTime: "2:00 PM",
			EndTime:   "10:30 PM",
			Location:  "Plant A",
		},
	}
}

func (s *Store) loadSetup(ctx context.Context, email string) (*EmploymentSetup, bool, error) {
	var setup EmploymentSetup
	found, err := s.loadJSON(ctx, SetupKey(email), &setup)
	if err != nil || !found {
		return nil, false, err
	}
	return &setup, true, nil
}

func (s *Store) getOrCreateSetup(ctx context.Context, email string) (*EmploymentSetup, error) {
	existing, found, err := s.loadSetup(ctx, email)
	if err != nil {
		return nil, err
	}
	if found {
		return existing, nil
	}

	setup := defaultSetup(email)
	if err := s.saveJSON(ctx, SetupKey(email), setup); err != nil {
		return nil, err
	}
	s.logger.Debug("seeded employment setup", zap.String("user_email", email))
	return &setup, nil
}

func (s *Store) loadNotifications(ctx context.Context) ([]Notification, error) {
	var list []Notification
	if _, err := s.loadJSON(ctx, notificationsKey, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// getOrCreateNotifications は全ユーザー分の通知一覧を返します。
// email の通知が 1 件もなければシードを追加して保存します。
func (s *Store) getOrCreateNotifications(ctx context.Context, email string) ([]Notification, error) {
	list, err := s.loadNotifications(ctx)
	if err != nil {
		return nil, err
	}

	for _, n := range list {
		if n.UserEmail == email {
			return list, nil
		}
	}

	next := append(list, s.seedNotifications(email)...)
	if err := s.saveJSON(ctx, notificationsKey, next); err != nil {
		return nil, err
	}
	s.logger.Debug("seeded notifications", zap.String("user_email", email))
	return next, nil
}

func (s *Store) loadShifts(ctx context.Context, email string) ([]Shift, bool, error) {
	var list []Shift
	found, err := s.loadJSON(ctx, ShiftsKey(email), &list)
	if err != nil {
		return nil, false, err
	}
	return list, found, nil
}

func (s *Store) getOrCreateShifts(ctx context.Context, email string) ([]Shift, error) {
	existing, found, err := s.loadShifts(ctx, email)
	if err != nil {
		return nil, err
	}
	if found {
		return existing, nil
	}

	seed := s.seedShifts(email)
	if err := s.saveJSON(ctx, ShiftsKey(email), seed); err != nil {
		return nil, err
	}
	s.logger.Debug("seeded shifts", zap.String("user_email", email))
	return seed, nil
}
