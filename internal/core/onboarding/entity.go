package onboarding

// EmployeeStatus は社員の雇用ステータスを表します。
type EmployeeStatus string

const (
	EmployeeStatusPending  EmployeeStatus = "pending"
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// EmployeeState は UI 向けに縮約された状態 (pending|active) です。
type EmployeeState string

const (
	EmployeeStatePending EmployeeState = "pending"
	EmployeeStateActive  EmployeeState = "active"
)

// PpeStatus は安全靴 (PPE) 申請の審査状態です。
type PpeStatus string

const (
	PpeStatusPending          PpeStatus = "pending"
	PpeStatusAwaitingApproval PpeStatus = "awaiting_approval"
	PpeStatusApproved         PpeStatus = "approved"
	PpeStatusRejected         PpeStatus = "rejected"
)

// NotificationType は通知の種別です。
type NotificationType string

const (
	NotificationTypeInfo     NotificationType = "info"
	NotificationTypeNeedsFix NotificationType = "needs_fix"
	NotificationTypeApproved NotificationType = "approved"
	NotificationTypeAction   NotificationType = "action"
)

// User はオンボーディング中の社員を表します。
type User struct {
	Email               string         `json:"email"`
	EmployeeID          string         `json:"employee_id"`
	PassedIDGate        bool           `json:"passed_id_gate"`
	AccessRevoked       bool           `json:"access_revoked"`
	AccessRevokedReason string         `json:"access_revoked_reason"`
	EmployeeStatus      EmployeeStatus `json:"employee_status"`
	SetupStatus         string         `json:"setup_status"`
	NeedsFixNote        string         `json:"needs_fix_note"`
	StartDate           *string        `json:"start_date"`
	ArrivalTime         string         `json:"arrival_time"`
	Location            string         `json:"location"`
	State               EmployeeState  `json:"state"`
}

// EmploymentSetup はユーザーごとのオンボーディング チェックリストです。
type EmploymentSetup struct {
	ID               string    `json:"id"`
	UserEmail        string    `json:"user_email"`
	Screen2Completed bool      `json:"screen_2_completed"`
	Screen3Completed bool      `json:"screen_3_completed"`
	Screen4Completed bool      `json:"screen_4_completed"`
	Screen5Completed bool      `json:"screen_5_completed"`
	Screen6Completed bool      `json:"screen_6_completed"`
	Screen7Completed bool      `json:"screen_7_completed"`
	PpeStatus        PpeStatus `json:"ppe_status"`
	PpeAcknowledged  bool      `json:"ppe_acknowledged"`
	PpeAdminNote     string    `json:"ppe_admin_note,omitempty"`
}

// Notification はユーザー宛ての通知です。
type Notification struct {
	ID          string           `json:"id"`
	UserEmail   string           `json:"user_email"`
	IsRead      bool             `json:"is_read"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	CreatedDate string           `json:"created_date"`
}

// Shift は勤務シフトです。開始・終了時刻は表示用文字列として保持します。
type Shift struct {
	ID        string `json:"id"`
	UserEmail string `json:"user_email"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
}

// AuditEntry は管理者操作の監査ログです。
type AuditEntry struct {
	ID          string            `json:"id"`
	AdminEmail  string            `json:"admin_email"`
	Action      string            `json:"action"`
	TargetEmail string            `json:"target_email,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
	CreatedDate string            `json:"created_date"`
}

// DeriveState は雇用ステータスから UI 向け状態を導出します。
func DeriveState(status EmployeeStatus) EmployeeState {
	if status == EmployeeStatusActive {
		return EmployeeStateActive
	}
	return EmployeeStatePending
}

func isValidEmployeeStatus(status EmployeeStatus) bool {
	switch status {
	case EmployeeStatusPending, EmployeeStatusActive, EmployeeStatusInactive:
		return true
	default:
		return false
	}
}

func isValidEmployeeState(state EmployeeState) bool {
	switch state {
	case EmployeeStatePending, EmployeeStateActive:
		return true
	default:
		return false
	}
}

func isValidPpeStatus(status PpeStatus) bool {
	switch status {
	case PpeStatusPending, PpeStatusAwaitingApproval, PpeStatusApproved, PpeStatusRejected:
		return true
	default:
		return false
	}
}

func isValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeNeedsFix, NotificationTypeApproved, NotificationTypeAction:
		return true
	default:
		return false
	}
}
