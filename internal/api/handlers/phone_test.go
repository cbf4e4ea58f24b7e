package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"ukphone/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *api.APIError   `json:"error"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h, err := NewPhoneHandler()
	require.NoError(t, err)

	router := gin.New()
	router.POST("/api/v1/phone/format", h.FormatNumber)
	router.GET("/api/v1/phone/validate", h.ValidateNumber)
	return router
}

func postFormat(t *testing.T, router *gin.Engine, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/phone/format", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func getValidate(t *testing.T, router *gin.Engine, rawQuery string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/phone/validate?"+rawQuery, nil))

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestFormatNumber_Success(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"national string", `{"number":"07123456789"}`},
		{"spaced string", `{"number":"  07123 456 789 "}`},
		{"international string", `{"number":"447123456789"}`},
		{"canonical string", `{"number":"+447123456789"}`},
		{"json number", `{"number":447123456789}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := postFormat(t, router, tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, resp.Success)

			var data FormatResponse
			require.NoError(t, json.Unmarshal(resp.Data, &data))
			assert.Equal(t, "+447123456789", data.Number)
		})
	}
}

func TestFormatNumber_Rejections(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name    string
		body    string
		reason  string
		message string
	}{
		{"null number", `{"number":null}`, "empty_input", "Invalid phone number: Please enter a phone number"},
		{"missing number", `{}`, "empty_input", "Invalid phone number: Please enter a phone number"},
		{"blank number", `{"number":"   "}`, "empty_input", "Invalid phone number: Please enter a phone number"},
		{"letters", `{"number":"07123abc6789"}`, "invalid_characters", "Invalid phone number: Phone number must only contain digits"},
		{"boolean", `{"number":true}`, "invalid_characters", "Invalid phone number: Phone number must only contain digits"},
		{"too short", `{"number":"071"}`, "too_short", "Invalid phone number: Phone number is too short"},
		{"numeric loses leading zero", `{"number":7123456789}`, "too_short", "Invalid phone number: Phone number is too short"},
		{"too long", `{"number":"071234567890123456"}`, "too_long", "Invalid phone number: Phone number is too long"},
		{"bad prefix", `{"number":"06343434343"}`, "invalid_prefix", "Invalid phone number: Must be a UK phone number prefix +44"},
		{"final too short", `{"number":"+447123"}`, "final_too_short", "Invalid phone number: Phone number is too short for +447 format"},
		{"final too long", `{"number":"+447123456789123"}`, "final_too_long", "Invalid phone number: Phone number is too long for +447 format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := postFormat(t, router, tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, api.ErrCodeInvalidPhone, resp.Error.Code)
			assert.Equal(t, tt.reason, resp.Error.Details)
			assert.Equal(t, tt.message, resp.Error.Message)
		})
	}
}

func TestFormatNumber_MalformedBody(t *testing.T) {
	router := setupRouter(t)

	for _, body := range []string{"", "{", `"07123456789"`} {
		t.Run(body, func(t *testing.T) {
			w, resp := postFormat(t, router, body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, api.ErrCodeValidation, resp.Error.Code)
		})
	}
}

func TestValidateNumber(t *testing.T) {
	router := setupRouter(t)

	t.Run("valid number", func(t *testing.T) {
		w, resp := getValidate(t, router, "number=07123456789")

		assert.Equal(t, http.StatusOK, w.Code)
		var data ValidateResponse
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.True(t, data.Valid)
		assert.Equal(t, "+447123456789", data.Number)
		assert.Empty(t, data.Reason)
	})

	t.Run("encoded plus", func(t *testing.T) {
		w, resp := getValidate(t, router, "number="+url.QueryEscape("+447123456789"))

		assert.Equal(t, http.StatusOK, w.Code)
		var data ValidateResponse
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.True(t, data.Valid)
		assert.Equal(t, "+447123456789", data.Number)
	})

	t.Run("invalid number reports reason", func(t *testing.T) {
		w, resp := getValidate(t, router, "number=06343434343")

		assert.Equal(t, http.StatusOK, w.Code)
		var data ValidateResponse
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.False(t, data.Valid)
		assert.Empty(t, data.Number)
		assert.Equal(t, "invalid_prefix", data.Reason)
		assert.Equal(t, "Invalid phone number: Must be a UK phone number prefix +44", data.Message)
	})

	t.Run("blank number reports empty input", func(t *testing.T) {
		w, resp := getValidate(t, router, "number="+url.QueryEscape("   "))

		assert.Equal(t, http.StatusOK, w.Code)
		var data ValidateResponse
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.False(t, data.Valid)
		assert.Equal(t, "empty_input", data.Reason)
	})

	t.Run("missing number", func(t *testing.T) {
		w, resp := getValidate(t, router, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, api.ErrCodeValidation, resp.Error.Code)
	})
}
