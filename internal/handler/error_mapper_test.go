package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/service"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   model.ErrorCode
	}{
		{"intent not found", service.ErrIntentNotFound, http.StatusNotFound, model.ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", service.ErrIntentNotFound), http.StatusNotFound, model.ErrCodeNotFound},
		{"unsupported gateway", service.ErrUnsupportedGateway, http.StatusBadRequest, model.ErrCodeInvalidInput},
		{"amount", service.ErrAmountOutOfRange, http.StatusBadRequest, model.ErrCodeInvalidAmount},
		{"description", service.ErrDescriptionTooLong, http.StatusBadRequest, model.ErrCodeInvalidInput},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, model.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := MapServiceError(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.Status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestMapServiceError_Nil(t *testing.T) {
	assert.Nil(t, MapServiceError(nil))
}

func TestMapServiceError_AmountCarriesBounds(t *testing.T) {
	apiErr := MapServiceError(service.ErrAmountOutOfRange)
	require.NotNil(t, apiErr.Min)
	require.NotNil(t, apiErr.Max)
	assert.Equal(t, model.MinPaymentAmount, *apiErr.Min)
	assert.Equal(t, model.MaxPaymentAmount, *apiErr.Max)
}

func TestMapServiceError_InternalHidesDetails(t *testing.T) {
	apiErr := MapServiceError(errors.New("dial tcp 10.0.0.5:8000: refused"))
	assert.Equal(t, "An unexpected error occurred", apiErr.Message)
}
