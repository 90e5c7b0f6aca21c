package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/scheduling"
	"github.com/amitayhanson-cloud/salon-platform-sub000/internal/service/commit"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Dana"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "Dana", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Dana","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestRespondSchedulingError(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail map[string]interface{}
	}{
		{
			name: "conflict with range",
			err: fmt.Errorf("wrapped: %w", &scheduling.ConflictError{
				WorkerID: "w1", ServiceID: "cut", BookingID: "b1",
				Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 30*time.Minute),
			}),
			wantStatus: http.StatusConflict,
			wantDetail: map[string]interface{}{
				"workerId": "w1", "serviceId": "cut", "bookingId": "b1", "start": "10:00", "end": "10:30",
			},
		},
		{
			name:       "incompatible worker",
			err:        &scheduling.IncompatibleWorkerError{WorkerID: "w4", ServiceID: "color", Reason: "worker is inactive"},
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: map[string]interface{}{"workerId": "w4", "serviceId": "color", "reason": "worker is inactive"},
		},
		{name: "outside hours", err: commit.ErrOutsideWorkingHours, wantStatus: http.StatusUnprocessableEntity},
		{name: "day locked", err: commit.ErrDayLocked, wantStatus: http.StatusConflict},
		{name: "replaced changed", err: fmt.Errorf("%w: cancelled 0 of 1", commit.ErrReplacedChanged), wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.True(t, RespondSchedulingError(rec, tt.err))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Code    int                    `json:"code"`
				Details map[string]interface{} `json:"details"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Code)
			if tt.wantDetail != nil {
				assert.Equal(t, tt.wantDetail, body.Details)
			}
		})
	}

	rec := httptest.NewRecorder()
	assert.False(t, RespondSchedulingError(rec, errors.New("other")))
	assert.Equal(t, http.StatusOK, rec.Code)
}
