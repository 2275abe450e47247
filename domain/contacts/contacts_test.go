package contacts

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ealfred1/ResQ-X-checklist/internal/config"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/brevo"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleContact() Contact {
	return Contact{
		Email:         "ada@example.com",
		SignupDate:    time.Date(2024, 5, 1, 11, 0, 0, 123_000_000, time.FixedZone("WAT", 3600)),
		Source:        "Emergency Guide Landing Page",
		ListIDs:       []int{5},
		UpdateEnabled: true,
	}
}

func TestContact_FormattedSignupDate(t *testing.T) {
	assert.Equal(t, "2024-05-01T10:00:00.123Z", sampleContact().FormattedSignupDate())
}

func TestBrevoRegistrar_Register(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/contacts", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer server.Close()

	r := NewBrevoRegistrar(brevo.New(server.URL, "key"), discard())
	require.NoError(t, r.Register(context.Background(), sampleContact()))

	assert.Equal(t, "ada@example.com", body["email"])
	assert.Equal(t, []any{float64(5)}, body["listIds"])
	assert.Equal(t, true, body["updateEnabled"])
	assert.Equal(t, map[string]any{
		"SIGNUP_DATE": "2024-05-01T10:00:00.123Z",
		"SOURCE":      "Emergency Guide Landing Page",
	}, body["attributes"])
}

func TestBrevoRegistrar_PropagatesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_parameter","message":"Invalid email address"}`))
	}))
	defer server.Close()

	err := NewBrevoRegistrar(brevo.New(server.URL, "key"), discard()).Register(context.Background(), sampleContact())
	var apiErr *brevo.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid email address", apiErr.Message)
}

type memberCall struct {
	merge  bool
	list   string
	member mailgun.Member
}

type fakeMembers struct {
	calls []memberCall
	err   error
}

func (f *fakeMembers) CreateMember(_ context.Context, merge bool, addr string, m mailgun.Member) error {
	f.calls = append(f.calls, memberCall{merge: merge, list: addr, member: m})
	return f.err
}

func TestMailgunRegistrar_Register(t *testing.T) {
	f := &fakeMembers{}
	r := NewMailgunRegistrar(f, map[string]string{"5": "guide@mg.example.com"}, discard())

	require.NoError(t, r.Register(context.Background(), sampleContact()))
	require.Len(t, f.calls, 1)

	call := f.calls[0]
	assert.True(t, call.merge)
	assert.Equal(t, "guide@mg.example.com", call.list)
	assert.Equal(t, "ada@example.com", call.member.Address)
	require.NotNil(t, call.member.Subscribed)
	assert.True(t, *call.member.Subscribed)
	assert.Equal(t, "2024-05-01T10:00:00.123Z", call.member.Vars["SIGNUP_DATE"])
	assert.Equal(t, "Emergency Guide Landing Page", call.member.Vars["SOURCE"])
}

func TestMailgunRegistrar_UnmappedList(t *testing.T) {
	f := &fakeMembers{}
	r := NewMailgunRegistrar(f, map[string]string{}, discard())

	err := r.Register(context.Background(), sampleContact())
	assert.ErrorIs(t, err, ErrUnknownList)
	assert.Empty(t, f.calls)
}

func TestMailgunRegistrar_Failure(t *testing.T) {
	f := &fakeMembers{err: errors.New("401 Forbidden")}
	r := NewMailgunRegistrar(f, map[string]string{"5": "guide@mg.example.com"}, discard())

	err := r.Register(context.Background(), sampleContact())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guide@mg.example.com")
}

func TestNewRegistrar(t *testing.T) {
	tests := []struct {
		provider string
		want     any
		wantErr  bool
	}{
		{provider: config.ProviderBrevo, want: &BrevoRegistrar{}},
		{provider: config.ProviderMailgun, want: &MailgunRegistrar{}},
		{provider: "listmonk", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := &config.Config{Contacts: config.ContactsConfig{Provider: tt.provider}}
			r, err := NewRegistrar(cfg, discard())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, r)
		})
	}
}

func TestRegistrarFunc(t *testing.T) {
	var got Contact
	var r Registrar = RegistrarFunc(func(_ context.Context, c Contact) error {
		got = c
		return nil
	})
	require.NoError(t, r.Register(context.Background(), sampleContact()))
	assert.Equal(t, "ada@example.com", got.Email)
}
