// file: internals/features/accounting/xero/controller/connect_controller.go
package controller

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	service "tutorku_backend/internals/features/accounting/xero/service"
	helper "tutorku_backend/internals/helpers"
)

type ConnectController struct {
	DB     *gorm.DB
	Tokens *service.TokenService
}

func NewConnectController(db *gorm.DB) *ConnectController {
	return &ConnectController{
		DB: db,
		Tokens: service.NewTokenService(db,
			configs.XeroTokenURL, configs.XeroClientID, configs.XeroClientSecret),
	}
}

// ========== Authorize URL ==========
func (ctl *ConnectController) Connect(c *fiber.Ctx) error {
	if configs.XeroClientID == "" {
		return helper.Error(c, fiber.StatusServiceUnavailable, "Accounting app is not configured")
	}

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", configs.XeroClientID)
	q.Set("redirect_uri", configs.XeroRedirectURI)
	q.Set("scope", "openid offline_access accounting.transactions accounting.contacts payroll.employees payroll.timesheets")

	return helper.Success(c, "OK", fiber.Map{
		"authorize_url": "https://login.xero.com/identity/connect/authorize?" + q.Encode(),
	})
}

// ========== OAuth callback (public) ==========
func (ctl *ConnectController) Callback(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		return helper.Error(c, fiber.StatusBadRequest, "code is required")
	}

	sandbox := configs.GetEnv("XERO_SANDBOX", "false") == "true"
	cred, err := ctl.Tokens.StoreAuthorizationCode(c.UserContext(), code,
		configs.XeroRedirectURI, configs.XeroAPIBaseURL+"/connections", sandbox)
	if err != nil {
		return helper.Error(c, fiber.StatusBadGateway, err.Error())
	}

	return helper.Success(c, "Accounting connected", fiber.Map{
		"tenant_id": cred.CredentialTenantID,
		"expires":   cred.CredentialExpiresAt,
	})
}

// ========== Connection status ==========
func (ctl *ConnectController) Status(c *fiber.Ctx) error {
	cred, err := (&service.GormCredentialStore{DB: ctl.DB}).Latest()
	if err != nil {
		if errors.Is(err, service.ErrNoCredential) {
			return helper.Success(c, "OK", fiber.Map{"connected": false})
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{
		"connected": true,
		"tenant_id": cred.CredentialTenantID,
		"expires":   cred.CredentialExpiresAt,
		"sandbox":   cred.CredentialSandbox,
	})
}
