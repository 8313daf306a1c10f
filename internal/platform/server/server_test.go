package server

import (
	"context"
	"net"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/celebrityscoop868/sunpowerabc/internal/adapters/grpc/handler"
	"github.com/celebrityscoop868/sunpowerabc/internal/adapters/storage/memory"
	"github.com/celebrityscoop868/sunpowerabc/internal/core/onboarding"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	store := onboarding.NewStore(memory.New(), nil, nil)
	srv := New("bufnet", handler.NewOnboardingGrpcHandler(store, nil, logger), logger)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	client := handler.NewOnboardingServiceClient(conn)
	callCtx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()

	resp, err := client.Call(callCtx, handler.MethodMe, nil)
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if resp.GetFields()["email"].GetStringValue() != onboarding.DefaultUserEmail {
		t.Fatalf("unexpected response %v", resp)
	}

	_, err = client.Call(callCtx, handler.MethodInvokeAdminAPI, &structpb.Struct{Fields: map[string]*structpb.Value{
		"resource":  structpb.NewStringValue("Document"),
		"operation": structpb.NewStringValue("list"),
	}})
	if status.Code(err) != codes.Unimplemented {
		t.Fatalf("expected Unimplemented, got %v", err)
	}

	if err := conn.Close(); err != nil {
		t.Fatalf("failed to close client: %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	if logs.FilterMessage("rpc completed").Len() != 1 {
		t.Errorf("expected one completed rpc log, got %d", logs.FilterMessage("rpc completed").Len())
	}
	if logs.FilterMessage("rpc rejected").Len() != 1 {
		t.Errorf("expected one rejected rpc log, got %d", logs.FilterMessage("rpc rejected").Len())
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := recoveryInterceptor(zap.NewNop())
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/y"},
		func(context.Context, any) (any, error) { panic("boom") })

	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
}
