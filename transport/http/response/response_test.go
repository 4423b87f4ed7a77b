package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"lunchtime/shared/constant"
	"lunchtime/shared/failure"
	"lunchtime/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantCode     int
		wantLocation string
	}{
		{
			name:         "unauthorized carries the login location",
			err:          failure.Unauthorized("Missing authorization header"),
			wantCode:     http.StatusUnauthorized,
			wantLocation: constant.PathLogin,
		},
		{
			name:     "not found has no location",
			err:      failure.NotFound("reservation not found"),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "forbidden has no location",
			err:      failure.Forbidden("you do not manage this restaurant"),
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantLocation, recorder.Header().Get(constant.RequestHeaderLocation))

			var body map[string]string
			assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestWithMessage(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithMessage(recorder, http.StatusCreated, "Reservation created successfully")

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, constant.ContentTypeJSON, recorder.Header().Get(constant.RequestHeaderContentType))

	var body map[string]string
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Reservation created successfully", body["message"])
}
