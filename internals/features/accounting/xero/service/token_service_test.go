// file: internals/features/accounting/xero/service/token_service_test.go
package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "tutorku_backend/internals/features/accounting/xero/model"
)

type memStore struct {
	cred  *model.XeroCredential
	saved int
}

func (s *memStore) Latest() (*model.XeroCredential, error) {
	if s.cred == nil || s.cred.CredentialRevoked {
		return nil, ErrNoCredential
	}
	return s.cred, nil
}

func (s *memStore) Save(cred *model.XeroCredential) error {
	s.cred = cred
	s.saved++
	return nil
}

func freshCred(expiresIn time.Duration) *model.XeroCredential {
	return &model.XeroCredential{
		CredentialID:           uuid.New(),
		CredentialAccessToken:  "access-old",
		CredentialRefreshToken: "refresh-old",
		CredentialExpiresAt:    time.Now().Add(expiresIn).UTC(),
		CredentialTenantID:     "tenant-1",
	}
}

func TestGetValidToken_NoCredential(t *testing.T) {
	svc := &TokenService{Store: &memStore{}, HTTP: http.DefaultClient}

	_, _, err := svc.GetValidToken(context.Background())
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestGetValidToken_CachedWhileFarFromExpiry(t *testing.T) {
	store := &memStore{cred: freshCred(time.Hour)}
	svc := &TokenService{
		Store:    store,
		HTTP:     http.DefaultClient,
		TokenURL: "http://127.0.0.1:1", // must never be called
	}

	token, tenant, err := svc.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-old", token)
	assert.Equal(t, "tenant-1", tenant)
	assert.Zero(t, store.saved)
}

func TestGetValidToken_RefreshWithinLeeway(t *testing.T) {
	var gotGrant, gotRefresh string
	var gotBasicUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotGrant = r.PostFormValue("grant_type")
		gotRefresh = r.PostFormValue("refresh_token")
		gotBasicUser, _, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-new","refresh_token":"refresh-new","expires_in":1800}`))
	}))
	defer srv.Close()

	store := &memStore{cred: freshCred(2 * time.Minute)} // inside the 5 min leeway
	svc := &TokenService{
		Store:        store,
		HTTP:         srv.Client(),
		TokenURL:     srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}

	token, tenant, err := svc.GetValidToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "refresh_token", gotGrant)
	assert.Equal(t, "refresh-old", gotRefresh)
	assert.Equal(t, "client-id", gotBasicUser)

	assert.Equal(t, "access-new", token)
	assert.Equal(t, "tenant-1", tenant)
	assert.Equal(t, "refresh-new", store.cred.CredentialRefreshToken)
	assert.Equal(t, 1, store.saved)
	assert.Greater(t, time.Until(store.cred.CredentialExpiresAt), 20*time.Minute)
}

func TestGetValidToken_RefreshFailureRevokes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	store := &memStore{cred: freshCred(time.Minute)}
	svc := &TokenService{
		Store:    store,
		HTTP:     srv.Client(),
		TokenURL: srv.URL,
	}

	_, _, err := svc.GetValidToken(context.Background())
	require.ErrorIs(t, err, ErrCredentialExpired)

	// revoked, not deleted: the row survives for audit
	require.NotNil(t, store.cred)
	assert.True(t, store.cred.CredentialRevoked)
	assert.Equal(t, 1, store.saved)

	// subsequent calls see no usable credential
	_, _, err = svc.GetValidToken(context.Background())
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestGetValidToken_ExpiredTokenTriggersRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-new","refresh_token":"refresh-new","expires_in":1800}`))
	}))
	defer srv.Close()

	store := &memStore{cred: freshCred(-time.Hour)} // already expired
	svc := &TokenService{Store: store, HTTP: srv.Client(), TokenURL: srv.URL}

	token, _, err := svc.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-new", token)
}

func TestStoreAuthorizationCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/connect/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostFormValue("grant_type"))
		assert.Equal(t, "the-code", r.PostFormValue("code"))
		assert.Equal(t, "https://app.example.com/callback", r.PostFormValue("redirect_uri"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-1","refresh_token":"refresh-1","expires_in":1800}`))
	})
	mux.HandleFunc("/connections", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"tenantId":"tenant-9"},{"tenantId":"tenant-other"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := &memStore{}
	svc := &TokenService{
		Store:    store,
		HTTP:     srv.Client(),
		TokenURL: srv.URL + "/connect/token",
	}

	cred, err := svc.StoreAuthorizationCode(
		context.Background(), "the-code", "https://app.example.com/callback", srv.URL+"/connections", false)
	require.NoError(t, err)

	assert.Equal(t, "access-1", cred.CredentialAccessToken)
	assert.Equal(t, "refresh-1", cred.CredentialRefreshToken)
	assert.Equal(t, "tenant-9", cred.CredentialTenantID) // first connected tenant wins
	assert.False(t, cred.CredentialRevoked)
	assert.Equal(t, 1, store.saved)
}

func TestStoreAuthorizationCode_EmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"expires_in":1800}`))
	}))
	defer srv.Close()

	svc := &TokenService{Store: &memStore{}, HTTP: srv.Client(), TokenURL: srv.URL}

	_, err := svc.StoreAuthorizationCode(context.Background(), "c", "r", srv.URL, false)
	assert.Error(t, err)
}
