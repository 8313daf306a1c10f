package onboarding

import (
	"context"

	"go.uber.org/zap"
)

// NotificationFilter は通知の絞り込み条件です。user_email と is_read のみ有効です。
type NotificationFilter struct {
	UserEmail string
	IsRead    *bool
}

// NotificationInput は通知作成時の入力です。
type NotificationInput struct {
	UserEmail string
	Title     string
	Message   string
	Type      NotificationType
}

// FilterNotifications は条件に一致する通知を返します。
// user_email が空の場合はストレージに触れずに空スライスを返します。
func (s *Store) FilterNotifications(ctx context.Context, where NotificationFilter, orderBy string) ([]Notification, error) {
	email, ok := normalizeScope(where.UserEmail)
	if !ok {
		return []Notification{}, nil
	}

	var all []Notification
	if err := s.read(ctx, func(txCtx context.Context) error {
		var err error
		if s.lazySeed {
			all, err = s.getOrCreateNotifications(txCtx, email)
		} else {
			all, err = s.loadNotifications(txCtx)
		}
		return err
	}); err != nil {
		return nil, err
	}

	result := make([]Notification, 0, len(all))
	for _, n := range all {
		if n.UserEmail != email {
			continue
		}
		if where.IsRead != nil && n.IsRead != *where.IsRead {
			continue
		}
		result = append(result, n)
	}

	sortByKey(result, orderBy, "created_date", func(n Notification) string { return n.CreatedDate })
	return result, nil
}

// CreateNotification は通知を追加します。
func (s *Store) CreateNotification(ctx context.Context, in NotificationInput) (*Notification, error) {
	email, ok := normalizeScope(in.UserEmail)
	if !ok {
		return nil, ErrScopeMissing
	}

	typ := in.Type
	if typ == "" {
		typ = NotificationTypeInfo
	}
	if !isValidNotificationType(typ) {
		return nil, ErrInvalidNotificationType
	}

	var created Notification
	if err := s.readWrite(ctx, func(txCtx context.Context) error {
		n, err := s.appendNotification(txCtx, email, in.Title, in.Message, typ)
		if err != nil {
			return err
		}
		created = n
		return nil
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, created)
	return &created, nil
}

// UpdateNotification は id の通知にパッチをマージします。
// シードされた通知の id はユーザー間で重複するため、最初に一致した通知を更新します。
// 該当する通知がない場合は nil を返し、コレクションは変更しません。
func (s *Store) UpdateNotification(ctx context.Context, id string, patch NotificationPatch) (*Notification, error) {
	return s.updateNotification(ctx, "", id, patch)
}

// UpdateUserNotification は userEmail 宛ての通知のうち id に一致するものだけを更新します。
func (s *Store) UpdateUserNotification(ctx context.Context, userEmail, id string, patch NotificationPatch) (*Notification, error) {
	email, ok := normalizeScope(userEmail)
	if !ok {
		return nil, ErrScopeMissing
	}
	return s.updateNotification(ctx, email, id, patch)
}

// updateNotification は email が空でなければ宛先も一致する通知だけを対象にします。
func (s *Store) updateNotification(ctx context.Context, email, id string, patch NotificationPatch) (*Notification, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var result *Notification
	if err := s.readWrite(ctx, func(txCtx context.Context) error {
		list, err := s.loadNotifications(txCtx)
		if err != nil {
			return err
		}

		idx := -1
		for i, n := range list {
			if n.ID == id && (email == "" || n.UserEmail == email) {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil
		}

		next := make([]Notification, len(list))
		copy(next, list)
		next[idx] = patch.Apply(next[idx])
		if err := s.saveJSON(txCtx, notificationsKey, next); err != nil {
			return err
		}

		updated := next[idx]
		result = &updated
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// appendNotification は遅延シードが有効な場合、追加前にスコープのシードを済ませます。
func (s *Store) appendNotification(ctx context.Context, email, title, message string, typ NotificationType) (Notification, error) {
	var (
		list []Notification
		err  error
	)
	if s.lazySeed {
		list, err = s.getOrCreateNotifications(ctx, email)
	} else {
		list, err = s.loadNotifications(ctx)
	}
	if err != nil {
		return Notification{}, err
	}

	n := Notification{
		ID:          s.newID(),
		UserEmail:   email,
		IsRead:      false,
		Title:       title,
		Message:     message,
		Type:        typ,
		CreatedDate: s.timestamp(0),
	}
	if err := s.saveJSON(ctx, notificationsKey, append(list, n)); err != nil {
		return Notification{}, err
	}
	return n, nil
}

func (s *Store) publish(ctx context.Context, n Notification) {
	if err := s.publisher.NotificationCreated(ctx, n); err != nil {
		s.logger.Warn("failed to publish notification event",
			zap.String("notification_id", n.ID),
			zap.String("user_email", n.UserEmail),
			zap.Error(err))
	}
}
