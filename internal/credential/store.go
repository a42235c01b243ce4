// Package credential 封裝「以管理權限覆寫使用者密碼」這個唯一的外部操作。
package credential

import (
	"context"
	"errors"
	"net/http"
)

// Store 以管理權限設定指定使用者的密碼
type Store interface {
	SetPassword(ctx context.Context, userID, newPassword string) error
}

// ProviderError 身分後端明確拒絕操作時回傳（例如找不到使用者）
type ProviderError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// ErrUserNotFound 建立與 GoTrue 相同語意的 user_not_found 錯誤
func ErrUserNotFound() *ProviderError {
	return &ProviderError{Status: http.StatusNotFound, Code: "user_not_found", Message: "User not found"}
}

// AsProviderError 從錯誤鏈中取出 ProviderError
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// FakeStore 測試用
type FakeStore struct {
	SetPasswordFn func(ctx context.Context, userID, newPassword string) error
}

// SetPassword 執行 Fake 設定或 panic
func (f *FakeStore) SetPassword(ctx context.Context, userID, newPassword string) error {
	if f.SetPasswordFn != nil {
		return f.SetPasswordFn(ctx, userID, newPassword)
	}
	panic("unexpected SetPassword")
}
