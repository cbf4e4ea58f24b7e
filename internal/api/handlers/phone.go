package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ukphone/internal/api"
	"ukphone/internal/logger"
	"ukphone/internal/phone"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// PhoneHandler handles phone number formatting requests
type PhoneHandler struct {
	validator *validator.Validate
}

// NewPhoneHandler creates a phone handler with the uk_mobile validation tag registered
func NewPhoneHandler() (*PhoneHandler, error) {
	v := validator.New()
	if err := phone.RegisterValidation(v); err != nil {
		return nil, err
	}
	return &PhoneHandler{validator: v}, nil
}

// FormatRequest represents the request to format a phone number
// @Description Number may be a JSON string, a JSON number or null
type FormatRequest struct {
	Number any `json:"number" swaggertype:"string" example:"07123 456 789"`
}

// FormatResponse carries the canonical number
type FormatResponse struct {
	Number string `json:"number" example:"+447123456789"`
}

// ValidateQuery represents query parameters for validating a number
type ValidateQuery struct {
	Number string `form:"number" validate:"required,uk_mobile" example:"07123456789"`
}

// ValidateResponse reports whether a number would be accepted
type ValidateResponse struct {
	Valid   bool   `json:"valid" example:"false"`
	Number  string `json:"number,omitempty" example:"+447123456789"`
	Reason  string `json:"reason,omitempty" example:"too_short"`
	Message string `json:"message,omitempty" example:"Invalid phone number: Phone number is too short"`
}

// FormatNumber normalizes a UK mobile number
// @Summary Format a UK mobile number
// @Description Normalizes a UK mobile number to +447XXXXXXXXX
// @Tags phone
// @Accept json
// @Produce json
// @Param request body FormatRequest true "Number to format"
// @Success 200 {object} api.APIResponse{data=FormatResponse} "Number formatted"
// @Failure 400 {object} api.APIResponse{error=api.APIError} "Malformed request body"
// @Failure 422 {object} api.APIResponse{error=api.APIError} "Number rejected"
// @Router /phone/format [post]
func (h *PhoneHandler) FormatNumber(c *gin.Context) {
	var req FormatRequest

	// UseNumber keeps the literal text of JSON numbers
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	formatted, err := phone.Format(req.Number)
	if err != nil {
		h.sendRejection(c, err)
		return
	}

	api.SendSuccess(c, http.StatusOK, FormatResponse{Number: formatted})
}

// ValidateNumber reports whether a number is an acceptable UK mobile number
// @Summary Validate a UK mobile number
// @Description Returns valid=false with the rejection reason instead of an error status. Encode '+' as %2B.
// @Tags phone
// @Produce json
// @Param number query string true "Number to validate"
// @Success 200 {object} api.APIResponse{data=ValidateResponse} "Validation result"
// @Failure 400 {object} api.APIResponse{error=api.APIError} "Missing number"
// @Router /phone/validate [get]
func (h *PhoneHandler) ValidateNumber(c *gin.Context) {
	var query ValidateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		api.SendValidationError(c, "Invalid query parameters", err.Error())
		return
	}

	if err := h.validator.Struct(query); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) || !onlyTag(validationErrors, phone.ValidationTag) {
			api.SendValidationError(c, "Validation failed", err.Error())
			return
		}
	}

	formatted, err := phone.Format(query.Number)
	if err != nil {
		kind, _ := phone.KindOf(err)
		api.SendSuccess(c, http.StatusOK, ValidateResponse{
			Valid:   false,
			Reason:  kind.String(),
			Message: err.Error(),
		})
		return
	}

	api.SendSuccess(c, http.StatusOK, ValidateResponse{Valid: true, Number: formatted})
}

func (h *PhoneHandler) sendRejection(c *gin.Context, err error) {
	kind, ok := phone.KindOf(err)
	if !ok {
		api.SendInternalError(c, "Failed to format phone number")
		return
	}

	logger.Debug().
		Str("request_id", api.RequestID(c)).
		Str("reason", kind.String()).
		Msg("phone number rejected")

	api.SendInvalidPhone(c, err.Error(), kind.String())
}

// onlyTag reports whether every validation failure came from tag
func onlyTag(validationErrors validator.ValidationErrors, tag string) bool {
	for _, fe := range validationErrors {
		if fe.Tag() != tag {
			return false
		}
	}
	return true
}
