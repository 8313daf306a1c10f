package handler

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// decodeRequest は Struct を JSON 経由で dest に変換します。
func decodeRequest(req *structpb.Struct, dest any) error {
	if req == nil {
		return status.Error(codes.InvalidArgument, "request is required")
	}
	b, err := json.Marshal(req.AsMap())
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	return nil
}

// patchBytes は request の patch フィールドを JSON として返します。未指定なら空オブジェクトです。
func patchBytes(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}

// toStruct は v を JSON 経由で Struct に変換します。
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return s, nil
}

// listResponse は一覧を {"items": [...]} 形式で返します。
func listResponse[T any](items []T) (*structpb.Struct, error) {
	if items == nil {
		items = []T{}
	}
	return toStruct(struct {
		Items []T `json:"items"`
	}{Items: items})
}
