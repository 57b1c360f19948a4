// file: internals/features/accounting/xero/model/credential_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// XeroCredential is the OAuth credential for the accounting platform.
// Mutated only by the token service; a failed refresh sets the revoked flag
// instead of deleting the row, so the connection history survives.
type XeroCredential struct {
	CredentialID uuid.UUID `json:"credential_id" gorm:"column:credential_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	CredentialAccessToken  string    `json:"-" gorm:"column:credential_access_token;type:text;not null"`
	CredentialRefreshToken string    `json:"-" gorm:"column:credential_refresh_token;type:text;not null"`
	CredentialExpiresAt    time.Time `json:"credential_expires_at" gorm:"column:credential_expires_at;type:timestamptz;not null"`

	CredentialTenantID string `json:"credential_tenant_id" gorm:"column:credential_tenant_id;type:text;not null"`
	CredentialSandbox  bool   `json:"credential_sandbox"   gorm:"column:credential_sandbox;not null;default:false"`
	CredentialRevoked  bool   `json:"credential_revoked"   gorm:"column:credential_revoked;not null;default:false"`

	CredentialCreatedAt time.Time `json:"credential_created_at" gorm:"column:credential_created_at;type:timestamptz;not null;default:now()"`
	CredentialUpdatedAt time.Time `json:"credential_updated_at" gorm:"column:credential_updated_at;type:timestamptz;not null;default:now()"`
}

func (XeroCredential) TableName() string { return "xero_credentials" }

func (x *XeroCredential) BeforeSave(tx *gorm.DB) error {
	x.CredentialUpdatedAt = time.Now().UTC()
	return nil
}
