package handler

import (
	"errors"
	"log/slog"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/service"
)

// MapServiceError converts a service error to an APIError so every handler
// answers the same failure with the same status and message.
func MapServiceError(err error) *model.APIError {
	if err == nil {
		return nil
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrIntentNotFound):
		return model.NewNotFoundError("payment intent")

	// ===== Validation Errors → 400 =====
	case errors.Is(err, service.ErrUnsupportedGateway):
		return model.NewBadRequestError(err.Error())
	case errors.Is(err, service.ErrAmountOutOfRange):
		return model.NewInvalidAmountError(
			"amount must be between 100 and 50000000 CLP",
			model.MinPaymentAmount,
			model.MaxPaymentAmount,
		)
	case errors.Is(err, service.ErrDescriptionTooLong),
		errors.Is(err, service.ErrPaymentIntentIDNeeded):
		return model.NewBadRequestError(err.Error())
	}

	slog.Error("unmapped service error", slog.String("error", err.Error()))
	return model.NewInternalError("")
}
