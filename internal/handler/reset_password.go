// File: internal/handler/reset_password.go
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"reset-password/internal/credential"
	"reset-password/internal/dto"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// ErrMissingFields user_id 或 new_password 缺少或為空
var ErrMissingFields = errors.New(dto.MissingFieldsMessage)

// DecodeError 請求 body 不是合法的 JSON 或欄位型別不符
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// bindResetPasswordRequest 不看 Content-Type，整個 body 必須是單一 JSON 值
func bindResetPasswordRequest(c echo.Context) (*dto.ResetPasswordRequest, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	var req dto.ResetPasswordRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if err := c.Validate(&req); err != nil {
		return nil, ErrMissingFields
	}
	return &req, nil
}

// writeJSON 以不帶 charset 的 application/json 回應
func writeJSON(c echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, b)
}

// ResetPasswordHandler 以管理權限覆寫指定使用者的密碼
// @Summary     Reset user password
// @Description 由具備 service key 的後端呼叫身分服務 admin API，將指定使用者的密碼設為 new_password。所有錯誤皆回 400。
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body      dto.ResetPasswordRequest true "目標使用者與新密碼"
// @Success     200  {object}  dto.ResetPasswordResponse
// @Failure     400  {object}  dto.HTTPError
// @Router      /reset-password [post]
func ResetPasswordHandler(store credential.Store, logger log.FieldLogger) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bindResetPasswordRequest(c)
		if err != nil {
			logger.WithError(err).Debug("reset password: invalid request")
			return writeJSON(c, http.StatusBadRequest, dto.HTTPError{Error: err.Error()})
		}

		entry := logger.WithField("user_id", req.UserID)
		if err := store.SetPassword(c.Request().Context(), req.UserID, req.NewPassword); err != nil {
			// 身分後端的訊息原樣回傳，其他錯誤也一律 400
			if pe, ok := credential.AsProviderError(err); ok {
				entry.WithFields(log.Fields{"provider_status": pe.Status, "provider_code": pe.Code}).
					Warn("reset password: rejected by provider")
				return writeJSON(c, http.StatusBadRequest, dto.HTTPError{Error: pe.Message})
			}
			entry.WithError(err).Error("reset password: provider call failed")
			return writeJSON(c, http.StatusBadRequest, dto.HTTPError{Error: err.Error()})
		}

		entry.Info("reset password: updated")
		return writeJSON(c, http.StatusOK, dto.ResetPasswordResponse{Success: true})
	}
}
