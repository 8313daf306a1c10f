package onboarding

import "errors"

var (
	// ErrScopeMissing は user_email などのスコープ識別子が指定されていない場合に返却されます。
	ErrScopeMissing = errors.New("onboarding: user_email is required")
	// ErrUnknownPatchField はパッチにエンティティが持たないフィールドが含まれる場合に返却されます。
	ErrUnknownPatchField = errors.New("onboarding: unknown patch field")
	// ErrInvalidPatch はパッチの形式が不正な場合に返却されます。
	ErrInvalidPatch = errors.New("onboarding: invalid patch")
	// ErrInvalidEmployeeStatus は雇用ステータスが不正な場合に返却されます。
	ErrInvalidEmployeeStatus = errors.New("onboarding: invalid employee status")
	// ErrInvalidState は state が不正な場合に返却されます。
	ErrInvalidState = errors.New("onboarding: invalid state")
	// ErrInvalidPpeStatus は PPE ステータスが不正な場合に返却されます。
	ErrInvalidPpeStatus = errors.New("onboarding: invalid ppe status")
	// ErrInvalidNotificationType は通知種別が不正な場合に返却されます。
	ErrInvalidNotificationType = errors.New("onboarding: invalid notification type")
	// ErrInvalidScreen は存在しない画面番号が指定された場合に返却されます。
	ErrInvalidScreen = errors.New("onboarding: invalid screen number")
	// ErrInvalidReason は差し戻しやアクセス停止の理由が空の場合に返却されます。
	ErrInvalidReason = errors.New("onboarding: reason is required")
)
