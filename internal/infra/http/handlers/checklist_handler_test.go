package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lhomangroup/voyageur-malin/internal/logger"
	"github.com/lhomangroup/voyageur-malin/internal/usecase"
)

type MockChecklistSender struct {
	mock.Mock
}

func (m *MockChecklistSender) Execute(ctx context.Context, input usecase.SendChecklistInput) (*usecase.SendChecklistOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SendChecklistOutput), args.Error(1)
}

func postChecklist(t *testing.T, h *ChecklistHandler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/send-checklist", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Handle(rr, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr, resp
}

const awaPayload = `{"firstName":"Awa","lastName":"K.","email":"awa@example.com","gdprConsent":true}`

func TestChecklistHandler_Success(t *testing.T) {
	sender := new(MockChecklistSender)
	sender.On("Execute", mock.Anything, usecase.SendChecklistInput{
		FirstName: "Awa", LastName: "K.", Email: "awa@example.com", GDPRConsent: true,
	}).Return(&usecase.SendChecklistOutput{Message: usecase.MsgChecklistSent, SubscriberID: "sub-1"}, nil)

	rr, resp := postChecklist(t, NewChecklistHandler(sender, logger.Nop()), awaPayload)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, usecase.MsgChecklistSent, resp["message"])
	assert.Equal(t, "sub-1", resp["subscriber_id"])
	assert.NotContains(t, resp, "fallback")
	sender.AssertExpectations(t)
}

func TestChecklistHandler_AlreadySentOmitsID(t *testing.T) {
	sender := new(MockChecklistSender)
	sender.On("Execute", mock.Anything, mock.Anything).
		Return(&usecase.SendChecklistOutput{Message: usecase.MsgAlreadySent, AlreadySent: true}, nil)

	rr, resp := postChecklist(t, NewChecklistHandler(sender, logger.Nop()), awaPayload)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, usecase.MsgAlreadySent, resp["message"])
	assert.NotContains(t, resp, "subscriber_id")
}

func TestChecklistHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantDetail string
	}{
		{
			name:       "validation",
			err:        &usecase.DomainError{Code: usecase.CodeValidation, Message: "Format d'email invalide", Details: "email: format d'email invalide"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Format d'email invalide",
			wantDetail: "email: format d'email invalide",
		},
		{
			name:       "store",
			err:        &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: usecase.MsgStoreFailed, Err: errors.New("pq: connection refused")},
			wantStatus: http.StatusInternalServerError,
			wantError:  usecase.MsgStoreFailed,
		},
		{
			name:       "notification",
			err:        &usecase.TechnicalError{Code: usecase.CodeNotification, Message: usecase.MsgSendFailed, Err: errors.New("smtp: timeout")},
			wantStatus: http.StatusInternalServerError,
			wantError:  usecase.MsgSendFailed,
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  msgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := new(MockChecklistSender)
			sender.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rr, resp := postChecklist(t, NewChecklistHandler(sender, logger.Nop()), awaPayload)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantError, resp["error"])
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, resp["details"])
			} else {
				assert.NotContains(t, resp, "details")
			}
		})
	}
}

func TestChecklistHandler_TechnicalDetailsNotLeaked(t *testing.T) {
	sender := new(MockChecklistSender)
	sender.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: usecase.MsgStoreFailed, Err: errors.New("password authentication failed")})

	rr, _ := postChecklist(t, NewChecklistHandler(sender, logger.Nop()), awaPayload)

	assert.NotContains(t, rr.Body.String(), "password")
}

func TestChecklistHandler_MalformedJSON(t *testing.T) {
	sender := new(MockChecklistSender)

	rr, resp := postChecklist(t, NewChecklistHandler(sender, logger.Nop()), `{"firstName":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, msgInvalidPayload, resp["error"])
	sender.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestChecklistHandler_NoStoreConfigured(t *testing.T) {
	var logs bytes.Buffer
	lg := slog.New(slog.NewTextHandler(&logs, nil))

	rr, resp := postChecklist(t, NewChecklistHandler(nil, lg), awaPayload)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, msgBadConfig, resp["error"])
	assert.Contains(t, logs.String(), "code="+usecase.CodeConfig)
}

func TestChecklistHandler_Preflight(t *testing.T) {
	rr := httptest.NewRecorder()
	NewChecklistHandler(nil, logger.Nop()).Preflight(rr, httptest.NewRequest(http.MethodOptions, "/send-checklist", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}
