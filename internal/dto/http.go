package dto

import "net/http"

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

type SignUpRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	ReferralCode string `json:"referral_code" validate:"omitempty,len=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GenerateReportRequest struct {
	Ticker string `json:"ticker" validate:"required,max=12"`
}

type UpdateProfileRequest struct {
	Nickname string `json:"nickname" validate:"required,max=32"`
}
