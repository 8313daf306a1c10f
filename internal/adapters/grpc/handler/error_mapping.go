package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/celebrityscoop868/sunpowerabc/internal/core/backendapi"
	"github.com/celebrityscoop868/sunpowerabc/internal/core/onboarding"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, onboarding.ErrScopeMissing),
		errors.Is(err, onboarding.ErrUnknownPatchField),
		errors.Is(err, onboarding.ErrInvalidPatch),
		errors.Is(err, onboarding.ErrInvalidEmployeeStatus),
		errors.Is(err, onboarding.ErrInvalidState),
		errors.Is(err, onboarding.ErrInvalidPpeStatus),
		errors.Is(err, onboarding.ErrInvalidNotificationType),
		errors.Is(err, onboarding.ErrInvalidScreen),
		errors.Is(err, onboarding.ErrInvalidReason),
		errors.Is(err, backendapi.ErrUnknownOperation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, backendapi.ErrNotImplemented):
		return status.Error(codes.Unimplemented, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
