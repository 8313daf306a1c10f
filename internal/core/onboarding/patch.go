package onboarding

import (
	"encoding/json"
	"fmt"
	"sort"
)

// UserPatch は User の部分更新です。nil のフィールドは変更しません。
type UserPatch struct {
	Email               *string         `json:"email,omitempty"`
	EmployeeID          *string         `json:"employee_id,omitempty"`
	PassedIDGate        *bool           `json:"passed_id_gate,omitempty"`
	AccessRevoked       *bool           `json:"access_revoked,omitempty"`
	AccessRevokedReason *string         `json:"access_revoked_reason,omitempty"`
	EmployeeStatus      *EmployeeStatus `json:"employee_status,omitempty"`
	SetupStatus         *string         `json:"setup_status,omitempty"`
	NeedsFixNote        *string         `json:"needs_fix_note,omitempty"`
	StartDate           *string         `json:"start_date,omitempty"`
	StartDateSet        bool            `json:"-"`
	ArrivalTime         *string         `json:"arrival_time,omitempty"`
	Location            *string         `json:"location,omitempty"`
	State               *EmployeeState  `json:"state,omitempty"`
}

// EmploymentSetupPatch は EmploymentSetup の部分更新です。
type EmploymentSetupPatch struct {
	Screen2Completed *bool      `json:"screen_2_completed,omitempty"`
	Screen3Completed *bool      `json:"screen_3_completed,omitempty"`
	Screen4Completed *bool      `json:"screen_4_completed,omitempty"`
	Screen5Completed *bool      `json:"screen_5_completed,omitempty"`
	Screen6Completed *bool      `json:"screen_6_completed,omitempty"`
	Screen7Completed *bool      `json:"screen_7_completed,omitempty"`
	PpeStatus        *PpeStatus `json:"ppe_status,omitempty"`
	PpeAcknowledged  *bool      `json:"ppe_acknowledged,omitempty"`
	PpeAdminNote     *string    `json:"ppe_admin_note,omitempty"`
}

// NotificationPatch は Notification の部分更新です。
type NotificationPatch struct {
	IsRead  *bool             `json:"is_read,omitempty"`
	Title   *string           `json:"title,omitempty"`
	Message *string           `json:"message,omitempty"`
	Type    *NotificationType `json:"type,omitempty"`
}

var (
	userPatchFields = fieldSet("email", "employee_id", "passed_id_gate", "access_revoked",
		"access_revoked_reason", "employee_status", "setup_status", "needs_fix_note",
		"start_date", "arrival_time", "location", "state")
	setupPatchFields = fieldSet("screen_2_completed", "screen_3_completed", "screen_4_completed",
		"screen_5_completed", "screen_6_completed", "screen_7_completed", "ppe_status",
		"ppe_acknowledged", "ppe_admin_note")
	notificationPatchFields = fieldSet("is_read", "title", "message", "type")
)

func fieldSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// DecodeUserPatch は JSON オブジェクトを UserPatch に変換します。
// User が持たないキーが含まれる場合は ErrUnknownPatchField を返します。
func DecodeUserPatch(data []byte) (UserPatch, error) {
	var p UserPatch
	keys, err := decodePatch(data, userPatchFields, &p)
	if err != nil {
		return UserPatch{}, err
	}
	_, p.StartDateSet = keys["start_date"]
	if err := p.Validate(); err != nil {
		return UserPatch{}, err
	}
	return p, nil
}

// DecodeEmploymentSetupPatch は JSON オブジェクトを EmploymentSetupPatch に変換します。
func DecodeEmploymentSetupPatch(data []byte) (EmploymentSetupPatch, error) {
	var p EmploymentSetupPatch
	if _, err := decodePatch(data, setupPatchFields, &p); err != nil {
		return EmploymentSetupPatch{}, err
	}
	if err := p.Validate(); err != nil {
		return EmploymentSetupPatch{}, err
	}
	return p, nil
}

// DecodeNotificationPatch は JSON オブジェクトを NotificationPatch に変換します。
func DecodeNotificationPatch(data []byte) (NotificationPatch, error) {
	var p NotificationPatch
	if _, err := decodePatch(data, notificationPatchFields, &p); err != nil {
		return NotificationPatch{}, err
	}
	if err := p.Validate(); err != nil {
		return NotificationPatch{}, err
	}
	return p, nil
}

func decodePatch(data []byte, known map[string]struct{}, dest any) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := known[k]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPatchField, k)
		}
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return raw, nil
}

// Validate は列挙値を検証します。
func (p UserPatch) Validate() error {
	if p.EmployeeStatus != nil && !isValidEmployeeStatus(*p.EmployeeStatus) {
		return ErrInvalidEmployeeStatus
	}
	if p.State != nil && !isValidEmployeeState(*p.State) {
		return ErrInvalidState
	}
	return nil
}

// Validate は列挙値を検証します。
func (p EmploymentSetupPatch) Validate() error {
	if p.PpeStatus != nil && !isValidPpeStatus(*p.PpeStatus) {
		return ErrInvalidPpeStatus
	}
	return nil
}

// Validate は列挙値を検証します。
func (p NotificationPatch) Validate() error {
	if p.Type != nil && !isValidNotificationType(*p.Type) {
		return ErrInvalidNotificationType
	}
	return nil
}

// Apply は u にパッチを浅くマージした結果を返します。
// employee_status と state の一方だけが指定された場合、もう一方を導出します。
func (p UserPatch) Apply(u User) User {
	setString(&u.Email, p.Email)
	setString(&u.EmployeeID, p.EmployeeID)
	setBool(&u.PassedIDGate, p.PassedIDGate)
	setBool(&u.AccessRevoked, p.AccessRevoked)
	setString(&u.AccessRevokedReason, p.AccessRevokedReason)
	setString(&u.SetupStatus, p.SetupStatus)
	setString(&u.NeedsFixNote, p.NeedsFixNote)
	setString(&u.ArrivalTime, p.ArrivalTime)
	setString(&u.Location, p.Location)

	if p.StartDateSet || p.StartDate != nil {
		if p.StartDate == nil {
			u.StartDate = nil
		} else {
			v := *p.StartDate
			u.StartDate = &v
		}
	}

	if p.EmployeeStatus != nil {
		u.EmployeeStatus = *p.EmployeeStatus
	}
	if p.State != nil {
		u.State = *p.State
	}

	switch {
	case p.EmployeeStatus != nil && p.State == nil:
		u.State = DeriveState(*p.EmployeeStatus)
	case p.State != nil && p.EmployeeStatus == nil:
		u.EmployeeStatus = EmployeeStatus(*p.State)
	}

	return u
}

// Apply は s にパッチを浅くマージした結果を返します。
func (p EmploymentSetupPatch) Apply(s EmploymentSetup) EmploymentSetup {
	setBool(&s.Screen2Completed, p.Screen2Completed)
	setBool(&s.Screen3Completed, p.Screen3Completed)
	setBool(&s.Screen4Completed, p.Screen4Completed)
	setBool(&s.Screen5Completed, p.Screen5Completed)
	setBool(&s.Screen6Completed, p.Screen6Completed)
	setBool(&s.Screen7Completed, p.Screen7Completed)
	setBool(&s.PpeAcknowledged, p.PpeAcknowledged)
	setString(&s.PpeAdminNote, p.PpeAdminNote)
	if p.PpeStatus != nil {
		s.PpeStatus = *p.PpeStatus
	}
	return s
}

// Apply は n にパッチを浅くマージした結果を返します。
func (p NotificationPatch) Apply(n Notification) Notification {
	setBool(&n.IsRead, p.IsRead)
	setString(&n.Title, p.Title)
	setString(&n.Message, p.Message)
	if p.Type != nil {
		n.Type = *p.Type
	}
	return n
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
