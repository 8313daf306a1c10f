package handler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/celebrityscoop868/sunpowerabc/internal/core/backendapi"
	"github.com/celebrityscoop868/sunpowerabc/internal/core/onboarding"
	"github.com/celebrityscoop868/sunpowerabc/internal/core/progress"
)

// OnboardingGrpcHandler は OnboardingService の gRPC 実装です。
type OnboardingGrpcHandler struct {
	store  onboarding.UseCase
	api    *backendapi.API
	logger *zap.Logger
}

// NewOnboardingGrpcHandler は OnboardingGrpcHandler を生成します。api が nil の場合は未実装 API を使います。
func NewOnboardingGrpcHandler(store onboarding.UseCase, api *backendapi.API, logger *zap.Logger) *OnboardingGrpcHandler {
	if api == nil {
		api = backendapi.NewUnimplemented()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OnboardingGrpcHandler{store: store, api: api, logger: logger}
}

var _ OnboardingServiceServer = (*OnboardingGrpcHandler)(nil)

type scopeRequest struct {
	UserEmail string `json:"user_email"`
}

type patchRequest struct {
	UserEmail string          `json:"user_email"`
	ID        string          `json:"id"`
	Patch     json.RawMessage `json:"patch"`
}

type notificationListRequest struct {
	Where struct {
		UserEmail string `json:"user_email"`
		IsRead    *bool  `json:"is_read"`
	} `json:"where"`
	OrderBy string `json:"order_by"`
}

type shiftListRequest struct {
	Where struct {
		UserEmail string `json:"user_email"`
	} `json:"where"`
	OrderBy string `json:"order_by"`
}

type createNotificationRequest struct {
	UserEmail string                      `json:"user_email"`
	Title     string                      `json:"title"`
	Message   string                      `json:"message"`
	Type      onboarding.NotificationType `json:"type"`
}

type reviewRequest struct {
	UserEmail string `json:"user_email"`
	Reason    string `json:"reason"`
	Screen    int    `json:"screen"`
}

type progressRequest struct {
	Tasks []progress.Task `json:"tasks"`
}

type adminAPIRequest struct {
	Resource  string `json:"resource"`
	Operation string `json:"operation"`
}

// Me は現在のユーザーを返します。
func (h *OnboardingGrpcHandler) Me(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	u, err := h.store.Me(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(u)
}

// UpdateMe は現在のユーザーに patch をマージします。
func (h *OnboardingGrpcHandler) UpdateMe(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in patchRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	patch, err := onboarding.DecodeUserPatch(patchBytes(in.Patch))
	if err != nil {
		return nil, toStatusError(err)
	}

	u, err := h.store.UpdateMe(ctx, patch)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(u)
}

// Logout は保存されている現在のユーザーを削除します。
func (h *OnboardingGrpcHandler) Logout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := h.store.Logout(ctx); err != nil {
		return nil, toStatusError(err)
	}
	return &structpb.Struct{}, nil
}

// SeedScope は user_email のスコープに初期データを投入します。
func (h *OnboardingGrpcHandler) SeedScope(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in scopeRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	if err := h.store.EnsureSeeded(ctx, in.UserEmail); err != nil {
		return nil, toStatusError(err)
	}
	return &structpb.Struct{}, nil
}

// ListNotifications は where と order_by に従って通知を返します。
func (h *OnboardingGrpcHandler) ListNotifications(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in notificationListRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	list, err := h.store.FilterNotifications(ctx, onboarding.NotificationFilter{
		UserEmail: in.Where.UserEmail,
		IsRead:    in.Where.IsRead,
	}, in.OrderBy)
	if err != nil {
		return nil, toStatusError(err)
	}
	return listResponse(list)
}

// CreateNotification は通知を作成します。
func (h *OnboardingGrpcHandler) CreateNotification(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createNotificationRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	n, err := h.store.CreateNotification(ctx, onboarding.NotificationInput{
		UserEmail: in.UserEmail,
		Title:     in.Title,
		Message:   in.Message,
		Type:      in.Type,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(n)
}

// UpdateNotification は id の通知を更新します。user_email があればその宛先の通知に限定します。
// 該当がなければ NotFound を返します。
func (h *OnboardingGrpcHandler) UpdateNotification(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in patchRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	patch, err := onboarding.DecodeNotificationPatch(patchBytes(in.Patch))
	if err != nil {
		return nil, toStatusError(err)
	}

	var n *onboarding.Notification
	if in.UserEmail != "" {
		n, err = h.store.UpdateUserNotification(ctx, in.UserEmail, in.ID, patch)
	} else {
		n, err = h.store.UpdateNotification(ctx, in.ID, patch)
	}
	if err != nil {
		return nil, toStatusError(err)
	}
	if n == nil {
		return nil, status.Errorf(codes.NotFound, "notification %s not found", in.ID)
	}
	return toStruct(n)
}

// ListEmploymentSetups は user_email の EmploymentSetup を返します。
func (h *OnboardingGrpcHandler) ListEmploymentSetups(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in scopeRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	list, err := h.store.FilterEmploymentSetups(ctx, in.UserEmail)
	if err != nil {
		return nil, toStatusError(err)
	}
	return listResponse(list)
}

// CreateEmploymentSetup は既定値の EmploymentSetup を保存します。
func (h *OnboardingGrpcHandler) CreateEmploymentSetup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in scopeRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	setup, err := h.store.CreateEmploymentSetup(ctx, in.UserEmail)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(setup)
}

// UpdateEmploymentSetup は user_email の EmploymentSetup に patch をマージします。
func (h *OnboardingGrpcHandler) UpdateEmploymentSetup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in patchRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	patch, err := onboarding.DecodeEmploymentSetupPatch(patchBytes(in.Patch))
	if err != nil {
		return nil, toStatusError(err)
	}

	setup, err := h.store.UpdateEmploymentSetup(ctx, in.UserEmail, patch)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(setup)
}

// ListShifts は user_email のシフトを返します。
func (h *OnboardingGrpcHandler) ListShifts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in shiftListRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	list, err := h.store.FilterShifts(ctx, onboarding.ShiftFilter{UserEmail: in.Where.UserEmail}, in.OrderBy)
	if err != nil {
		return nil, toStatusError(err)
	}
	return listResponse(list)
}

// GetProgress はタスク一覧からステッパーの表示モデルを導出します。
// tasks を省略した場合は初期タスクを使います。
func (h *OnboardingGrpcHandler) GetProgress(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in progressRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	tasks := in.Tasks
	if tasks == nil {
		tasks = progress.DefaultTasks()
	}
	for _, t := range tasks {
		if !t.Status.IsValid() {
			return nil, status.Errorf(codes.InvalidArgument, "task %q has unknown status %q", t.Title, t.Status)
		}
	}

	return toStruct(progress.Derive(progress.CanonicalSteps, tasks))
}

// ApprovePPE は安全靴の提出を承認します。
func (h *OnboardingGrpcHandler) ApprovePPE(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in reviewRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	setup, err := h.store.ApprovePPE(ctx, in.UserEmail)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(setup)
}

// RejectPPE は安全靴の提出を差し戻します。
func (h *OnboardingGrpcHandler) RejectPPE(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in reviewRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	setup, err := h.store.RejectPPE(ctx, in.UserEmail, in.Reason)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(setup)
}

// CompleteStep は指定画面を手動で完了にします。
func (h *OnboardingGrpcHandler) CompleteStep(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in reviewRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	setup, err := h.store.CompleteStep(ctx, in.UserEmail, in.Screen)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(setup)
}

// ResetStep は指定画面を未完了に戻します。
func (h *OnboardingGrpcHandler) ResetStep(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in reviewRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	setup, err := h.store.ResetStep(ctx, in.UserEmail, in.Screen)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(setup)
}

// BlockUser は現在のユーザーのアクセスを停止します。
func (h *OnboardingGrpcHandler) BlockUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in reviewRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	u, err := h.store.BlockUser(ctx, in.Reason)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(u)
}

// UnblockUser は現在のユーザーのアクセス停止を解除します。
func (h *OnboardingGrpcHandler) UnblockUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	u, err := h.store.UnblockUser(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(u)
}

// ListAuditLog は監査ログを新しい順に返します。
func (h *OnboardingGrpcHandler) ListAuditLog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	entries, err := h.store.ListAuditLog(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return listResponse(entries)
}

// InvokeAdminAPI は管理画面向け API を resource と operation で呼び出します。
func (h *OnboardingGrpcHandler) InvokeAdminAPI(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in adminAPIRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}

	if err := h.api.Invoke(ctx, in.Resource, in.Operation); err != nil {
		h.logger.Warn("admin api call failed",
			zap.String("resource", in.Resource),
			zap.String("operation", in.Operation),
			zap.Error(err),
		)
		return nil, toStatusError(err)
	}
	return &structpb.Struct{}, nil
}
