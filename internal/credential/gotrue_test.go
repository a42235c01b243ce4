package credential

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newGoTrueServer(t *testing.T, status int, body string, inspect func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoTrueStoreSetPassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newGoTrueServer(t, http.StatusOK, `{"id":"u1"}`, func(r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "/auth/v1/admin/users/u1", r.URL.Path)
			require.Equal(t, "service-key", r.Header.Get("apikey"))
			require.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.Equal(t, ClientInfo, r.Header.Get("X-Client-Info"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, map[string]string{"password": "hunter2"}, body)
		})
		s := NewGoTrueStore(srv.URL+"/", "service-key", time.Second)
		require.NoError(t, s.SetPassword(context.Background(), "u1", "hunter2"))
	})

	t.Run("path escaped", func(t *testing.T) {
		srv := newGoTrueServer(t, http.StatusOK, `{}`, func(r *http.Request) {
			require.Equal(t, "/auth/v1/admin/users/a%2Fb", r.URL.EscapedPath())
		})
		require.NoError(t, NewGoTrueStore(srv.URL, "k", time.Second).SetPassword(context.Background(), "a/b", "x"))
	})

	t.Run("user not found", func(t *testing.T) {
		srv := newGoTrueServer(t, http.StatusNotFound, `{"code":404,"error_code":"user_not_found","msg":"User not found"}`, nil)
		err := NewGoTrueStore(srv.URL, "k", time.Second).SetPassword(context.Background(), "ghost", "x")
		pe, ok := AsProviderError(err)
		require.True(t, ok)
		require.Equal(t, http.StatusNotFound, pe.Status)
		require.Equal(t, "user_not_found", pe.Code)
		require.Equal(t, "User not found", pe.Message)
	})

	t.Run("weak password", func(t *testing.T) {
		srv := newGoTrueServer(t, http.StatusUnprocessableEntity, `{"code":"weak_password","message":"Password should be at least 6 characters."}`, nil)
		err := NewGoTrueStore(srv.URL, "k", time.Second).SetPassword(context.Background(), "u1", "x")
		pe, ok := AsProviderError(err)
		require.True(t, ok)
		require.Equal(t, "weak_password", pe.Code)
		require.Equal(t, "Password should be at least 6 characters.", pe.Error())
	})

	t.Run("invalid api key", func(t *testing.T) {
		srv := newGoTrueServer(t, http.StatusUnauthorized, `{"error":"invalid_grant","error_description":"Invalid API key"}`, nil)
		err := NewGoTrueStore(srv.URL, "bad", time.Second).SetPassword(context.Background(), "u1", "x")
		require.EqualError(t, err, "Invalid API key")
	})

	t.Run("unknown json shape", func(t *testing.T) {
		srv := newGoTrueServer(t, http.StatusBadRequest, `{"detail":"nope"}`, nil)
		err := NewGoTrueStore(srv.URL, "k", time.Second).SetPassword(context.Background(), "u1", "x")
		require.EqualError(t, err, `{"detail":"nope"}`)
	})

	t.Run("non json body", func(t *testing.T) {
		srv := newGoTrueServer(t, http.StatusBadGateway, `<html>bad gateway</html>`, nil)
		err := NewGoTrueStore(srv.URL, "k", time.Second).SetPassword(context.Background(), "u1", "x")
		pe, ok := AsProviderError(err)
		require.True(t, ok)
		require.Equal(t, http.StatusBadGateway, pe.Status)
		require.Equal(t, "Bad Gateway", pe.Message)
	})

	t.Run("transport error", func(t *testing.T) {
		srv := newGoTrueServer(t, http.StatusOK, `{}`, nil)
		url := srv.URL
		srv.Close()
		err := NewGoTrueStore(url, "k", time.Second).SetPassword(context.Background(), "u1", "x")
		require.Error(t, err)
		_, ok := AsProviderError(err)
		require.False(t, ok)
	})

	t.Run("context canceled", func(t *testing.T) {
		srv := newGoTrueServer(t, http.StatusOK, `{}`, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewGoTrueStore(srv.URL, "k", time.Second).SetPassword(ctx, "u1", "x")
		require.ErrorIs(t, err, context.Canceled)
	})
}
