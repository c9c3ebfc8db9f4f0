package user

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/common"
	"inkwell/internal/dbmysql"
)

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *MockUserService)
		wantStatus int
	}{
		{
			name: "success",
			body: `{"handle":"alice","email":"alice@example.com","password":"secret1"}`,
			setup: func(m *MockUserService) {
				m.EXPECT().
					RegisterUser(gomock.Any(), "alice", "alice@example.com", "secret1").
					Return(&dbmysql.User{UserID: 1, Handle: "alice", Role: "user"}, "token-abc", nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate handle",
			body: `{"handle":"alice","email":"alice@example.com","password":"secret1"}`,
			setup: func(m *MockUserService) {
				m.EXPECT().
					RegisterUser(gomock.Any(), "alice", "alice@example.com", "secret1").
					Return(nil, "", common.NewValidationError("handle", "already exists"))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"handle":`,
			setup:      func(m *MockUserService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockUserService(ctrl)
			tt.setup(mockSvc)

			handler := NewHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				var resp authResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "token-abc", resp.Token)
				assert.Equal(t, "alice", resp.Handle)
			}
		})
	}
}

func TestHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSvc := NewMockUserService(ctrl)
		mockSvc.EXPECT().
			LoginUser(gomock.Any(), "alice", "secret1").
			Return(&dbmysql.User{UserID: 1, Handle: "alice", Role: "user"}, "token-abc", nil)

		handler := NewHandler(mockSvc)

		body := `{"handle":"alice","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp authResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "token-abc", resp.Token)
	})

	t.Run("bad credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSvc := NewMockUserService(ctrl)
		mockSvc.EXPECT().
			LoginUser(gomock.Any(), "alice", "wrong").
			Return(nil, "", errors.New("invalid handle or password"))

		handler := NewHandler(mockSvc)

		body := `{"handle":"alice","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_GetProfile(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSvc := NewMockUserService(ctrl)
		mockSvc.EXPECT().
			GetProfile(gomock.Any(), uint64(7)).
			Return(&dbmysql.User{UserID: 7, Handle: "bob", Email: "bob@example.com", Role: "user"}, nil)

		handler := NewHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		ctx := common.WithPrincipal(req.Context(), common.Principal{UserID: 7, Handle: "bob", Role: common.RoleUser})
		rec := httptest.NewRecorder()

		handler.GetProfile(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp profileResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "bob@example.com", resp.Email)
	})

	t.Run("no principal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := NewHandler(NewMockUserService(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		rec := httptest.NewRecorder()

		handler.GetProfile(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockUserService(ctrl)
	mockSvc.EXPECT().
		UpdateProfile(gomock.Any(), uint64(7), "new@example.com", "about me").
		Return(nil)

	handler := NewHandler(mockSvc)

	body := `{"email":"new@example.com","bio":"about me"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/me", bytes.NewBufferString(body))
	ctx := common.WithPrincipal(req.Context(), common.Principal{UserID: 7, Handle: "bob", Role: common.RoleUser})
	rec := httptest.NewRecorder()

	handler.UpdateProfile(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
}
