package aigateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, RoleSystem, req.Messages[0].Role)

		_ = json.NewEncoder(w).Encode(completionResponse{Content: "merhaba"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	out, err := c.Complete(context.Background(), "gpt-test", []Message{
		{Role: RoleSystem, Content: "Sen bir pazarlama asistanısın."},
		{Role: RoleUser, Content: "Başlık üret"},
	})
	require.NoError(t, err)
	assert.Equal(t, "merhaba", out)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusPaymentRequired, ErrInsufficientCredits},
		{http.StatusInternalServerError, ErrGatewayFailure},
		{http.StatusBadRequest, ErrGatewayFailure},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "hata", tt.status)
		}))
		c := NewClient(srv.URL, "")
		_, err := c.Complete(context.Background(), "", []Message{{Role: RoleUser, Content: "x"}})
		assert.ErrorIsf(t, err, tt.want, "durum=%d", tt.status)
		srv.Close()
	}
}

func TestCompleteStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		_, _ = w.Write([]byte("birinci\nikinci\n\nüçüncü\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	var chunks []string
	err := c.CompleteStream(context.Background(), "", []Message{{Role: RoleUser, Content: "x"}}, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"birinci", "ikinci", "üçüncü"}, chunks)
}

func TestCompleteStructured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.OutputSchema)
		_, _ = w.Write([]byte(`{"headline":"Kampanya","variants":3}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	schema := json.RawMessage(`{"type":"object"}`)
	out, err := c.CompleteStructured(context.Background(), "", []Message{{Role: RoleUser, Content: "x"}}, schema)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Kampanya", decoded["headline"])
}
