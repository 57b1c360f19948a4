// file: internals/features/accounting/xero/service/token_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	model "tutorku_backend/internals/features/accounting/xero/model"
)

// refreshLeeway: refresh when the token is within this window of expiry.
const refreshLeeway = 5 * time.Minute

var (
	// ErrNoCredential: nothing connected yet, or the credential was revoked.
	ErrNoCredential = errors.New("no usable accounting credential, reconnect required")
	// ErrCredentialExpired: refresh failed; caller must surface "reconnect
	// required", never silently retry.
	ErrCredentialExpired = errors.New("accounting credential expired, reconnect required")
)

/* =========================
   Credential store
   ========================= */

type CredentialStore interface {
	Latest() (*model.XeroCredential, error)
	Save(cred *model.XeroCredential) error
}

type GormCredentialStore struct {
	DB *gorm.DB
}

func (s *GormCredentialStore) Latest() (*model.XeroCredential, error) {
	var cred model.XeroCredential
	err := s.DB.Where("credential_revoked = false").
		Order("credential_created_at DESC").
		First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoCredential
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (s *GormCredentialStore) Save(cred *model.XeroCredential) error {
	return s.DB.Save(cred).Error
}

/* =========================
   Token service
   ========================= */

type TokenService struct {
	Store        CredentialStore
	HTTP         *http.Client
	TokenURL     string
	ClientID     string
	ClientSecret string
}

func NewTokenService(db *gorm.DB, tokenURL, clientID, clientSecret string) *TokenService {
	return &TokenService{
		Store:        &GormCredentialStore{DB: db},
		HTTP:         &http.Client{Timeout: 30 * time.Second},
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
}

// GetValidToken returns a usable access token plus the tenant id. A token
// more than refreshLeeway from expiry is returned as-is; otherwise a
// refresh-token exchange runs first. A failed refresh marks the credential
// revoked (kept, not deleted).
func (s *TokenService) GetValidToken(ctx context.Context) (string, string, error) {
	cred, err := s.Store.Latest()
	if err != nil {
		return "", "", err
	}

	if time.Until(cred.CredentialExpiresAt) > refreshLeeway {
		return cred.CredentialAccessToken, cred.CredentialTenantID, nil
	}

	log.Printf("[TOKEN] refreshing accounting credential %s (expires %s)",
		cred.CredentialID, cred.CredentialExpiresAt.Format(time.RFC3339))

	tok, err := s.exchange(ctx, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {cred.CredentialRefreshToken},
	})
	if err != nil {
		cred.CredentialRevoked = true
		if saveErr := s.Store.Save(cred); saveErr != nil {
			log.Printf("[TOKEN] failed to flag credential revoked: %v", saveErr)
		}
		log.Printf("[TOKEN] refresh failed, credential revoked: %v", err)
		return "", "", fmt.Errorf("%w: %v", ErrCredentialExpired, err)
	}

	cred.CredentialAccessToken = tok.AccessToken
	cred.CredentialRefreshToken = tok.RefreshToken
	cred.CredentialExpiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second).UTC()
	if err := s.Store.Save(cred); err != nil {
		return "", "", err
	}

	return cred.CredentialAccessToken, cred.CredentialTenantID, nil
}

// StoreAuthorizationCode completes the authorization-code flow: exchanges
// the code, resolves the first connected tenant and persists a fresh
// credential row.
func (s *TokenService) StoreAuthorizationCode(ctx context.Context, code, redirectURI, connectionsURL string, sandbox bool) (*model.XeroCredential, error) {
	tok, err := s.exchange(ctx, url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"redirect_uri": {redirectURI},
	})
	if err != nil {
		return nil, err
	}

	tenantID, err := s.firstTenant(ctx, connectionsURL, tok.AccessToken)
	if err != nil {
		return nil, err
	}

	cred := &model.XeroCredential{
		CredentialAccessToken:  tok.AccessToken,
		CredentialRefreshToken: tok.RefreshToken,
		CredentialExpiresAt:    time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second).UTC(),
		CredentialTenantID:     tenantID,
		CredentialSandbox:      sandbox,
	}
	if err := s.Store.Save(cred); err != nil {
		return nil, err
	}
	log.Printf("[TOKEN] accounting connected, tenant %s", tenantID)
	return cred, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

func (s *TokenService) exchange(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.ClientID, s.ClientSecret)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint responded %d: %s", resp.StatusCode, string(raw))
	}

	var tok tokenResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, errors.New("token endpoint returned empty access_token")
	}
	return &tok, nil
}

func (s *TokenService) firstTenant(ctx context.Context, connectionsURL, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, connectionsURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var connections []struct {
		TenantID string `json:"tenantId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&connections); err != nil {
		return "", err
	}
	if len(connections) == 0 {
		return "", errors.New("no connected tenant")
	}
	return connections[0].TenantID, nil
}
