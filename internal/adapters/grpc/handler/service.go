package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName は OnboardingService の完全修飾名です。
const ServiceName = "onboarding.v1.OnboardingService"

// OnboardingService のメソッド名です。
const (
	MethodMe                    = "Me"
	MethodUpdateMe              = "UpdateMe"
	MethodLogout                = "Logout"
	MethodSeedScope             = "SeedScope"
	MethodListNotifications     = "ListNotifications"
	MethodCreateNotification    = "CreateNotification"
	MethodUpdateNotification    = "UpdateNotification"
	MethodListEmploymentSetups  = "ListEmploymentSetups"
	MethodCreateEmploymentSetup = "CreateEmploymentSetup"
	MethodUpdateEmploymentSetup = "UpdateEmploymentSetup"
	MethodListShifts            = "ListShifts"
	MethodGetProgress           = "GetProgress"
	MethodApprovePPE            = "ApprovePPE"
	MethodRejectPPE             = "RejectPPE"
	MethodCompleteStep          = "CompleteStep"
	MethodResetStep             = "ResetStep"
	MethodBlockUser             = "BlockUser"
	MethodUnblockUser           = "UnblockUser"
	MethodListAuditLog          = "ListAuditLog"
	MethodInvokeAdminAPI        = "InvokeAdminAPI"
)

// OnboardingServiceServer は OnboardingService のサーバー側インターフェースです。
// リクエストとレスポンスは google.protobuf.Struct で表現します。
type OnboardingServiceServer interface {
	Me(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateMe(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Logout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SeedScope(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListNotifications(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateNotification(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateNotification(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEmploymentSetups(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateEmploymentSetup(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateEmploymentSetup(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListShifts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProgress(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApprovePPE(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RejectPPE(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CompleteStep(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResetStep(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BlockUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UnblockUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAuditLog(context.Context, *structpb.Struct) (*structpb.Struct, error)
	InvokeAdminAPI(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(OnboardingServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(OnboardingServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*structpb.Struct))
			})
		},
	}
}

// FullMethod は name の完全なメソッドパスを返します。
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// OnboardingServiceDesc は OnboardingService の grpc.ServiceDesc です。
var OnboardingServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OnboardingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc(MethodMe, OnboardingServiceServer.Me),
		methodDesc(MethodUpdateMe, OnboardingServiceServer.UpdateMe),
		methodDesc(MethodLogout, OnboardingServiceServer.Logout),
		methodDesc(MethodSeedScope, OnboardingServiceServer.SeedScope),
		methodDesc(MethodListNotifications, OnboardingServiceServer.ListNotifications),
		methodDesc(MethodCreateNotification, OnboardingServiceServer.CreateNotification),
		methodDesc(MethodUpdateNotification, OnboardingServiceServer.UpdateNotification),
		methodDesc(MethodListEmploymentSetups, OnboardingServiceServer.ListEmploymentSetups),
		methodDesc(MethodCreateEmploymentSetup, OnboardingServiceServer.CreateEmploymentSetup),
		methodDesc(MethodUpdateEmploymentSetup, OnboardingServiceServer.UpdateEmploymentSetup),
		methodDesc(MethodListShifts, OnboardingServiceServer.ListShifts),
		methodDesc(MethodGetProgress, OnboardingServiceServer.GetProgress),
		methodDesc(MethodApprovePPE, OnboardingServiceServer.ApprovePPE),
		methodDesc(MethodRejectPPE, OnboardingServiceServer.RejectPPE),
		methodDesc(MethodCompleteStep, OnboardingServiceServer.CompleteStep),
		methodDesc(MethodResetStep, OnboardingServiceServer.ResetStep),
		methodDesc(MethodBlockUser, OnboardingServiceServer.BlockUser),
		methodDesc(MethodUnblockUser, OnboardingServiceServer.UnblockUser),
		methodDesc(MethodListAuditLog, OnboardingServiceServer.ListAuditLog),
		methodDesc(MethodInvokeAdminAPI, OnboardingServiceServer.InvokeAdminAPI),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "onboarding/v1/onboarding.proto",
}

// RegisterOnboardingServiceServer は srv を s に登録します。
func RegisterOnboardingServiceServer(s grpc.ServiceRegistrar, srv OnboardingServiceServer) {
	s.RegisterService(&OnboardingServiceDesc, srv)
}

// OnboardingServiceClient は OnboardingService を呼び出すクライアントです。
type OnboardingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewOnboardingServiceClient は OnboardingServiceClient を生成します。
func NewOnboardingServiceClient(cc grpc.ClientConnInterface) *OnboardingServiceClient {
	return &OnboardingServiceClient{cc: cc}
}

// Call は method を in で呼び出し、レスポンスを返します。
func (c *OnboardingServiceClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
