package credential

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ClientInfo 送往 GoTrue 的 X-Client-Info
const ClientInfo = "reset-password/1.0.0"

const maxErrorBody = 1 << 20

// GoTrueStore 透過 Supabase Auth (GoTrue) 的 admin API 更新密碼
type GoTrueStore struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

// NewGoTrueStore baseURL 為專案 URL，例如 https://xyz.supabase.co
func NewGoTrueStore(baseURL, serviceKey string, timeout time.Duration) *GoTrueStore {
	return &GoTrueStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: timeout},
	}
}

type updateUserBody struct {
	Password string `json:"password"`
}

// gotrueError 涵蓋 GoTrue 各版本的錯誤格式
type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
	ErrorCode        string `json:"error_code"`
	Code             any    `json:"code"`
}

// SetPassword PUT /auth/v1/admin/users/{id}
func (s *GoTrueStore) SetPassword(ctx context.Context, userID, newPassword string) error {
	body, err := json.Marshal(updateUserBody{Password: newPassword})
	if err != nil {
		return fmt.Errorf("SetPassword: %w", err)
	}

	endpoint := s.baseURL + "/auth/v1/admin/users/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("SetPassword: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("X-Client-Info", ClientInfo)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("SetPassword: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("SetPassword: read error body: %w", err)
	}
	return decodeProviderError(resp.StatusCode, raw)
}

func decodeProviderError(status int, raw []byte) *ProviderError {
	pe := &ProviderError{Status: status}

	var ge gotrueError
	if err := json.Unmarshal(raw, &ge); err != nil {
		pe.Message = http.StatusText(status)
		if pe.Message == "" {
			pe.Message = fmt.Sprintf("unexpected status %d", status)
		}
		return pe
	}

	pe.Code = ge.ErrorCode
	if pe.Code == "" {
		if c, ok := ge.Code.(string); ok {
			pe.Code = c
		}
	}

	for _, m := range []string{ge.Msg, ge.Message, ge.ErrorDescription, ge.Error} {
		if m != "" {
			pe.Message = m
			return pe
		}
	}
	pe.Message = strings.TrimSpace(string(raw))
	return pe
}
