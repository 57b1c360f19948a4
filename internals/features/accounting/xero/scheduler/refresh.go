package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	service "tutorku_backend/internals/features/accounting/xero/service"
)

// StartCredentialRefreshSweeper keeps the accounting credential warm so an
// export run does not pay the refresh round-trip. Runs daily.
func StartCredentialRefreshSweeper(db *gorm.DB) {
	go func() {
		tokens := service.NewTokenService(db,
			configs.XeroTokenURL, configs.XeroClientID, configs.XeroClientSecret)

		for {
			time.Sleep(24 * time.Hour)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			_, _, err := tokens.GetValidToken(ctx)
			cancel()

			switch {
			case err == nil:
				log.Println("[SWEEPER] accounting credential healthy")
			case errors.Is(err, service.ErrNoCredential):
				// nothing connected, nothing to refresh
			default:
				log.Printf("[SWEEPER] credential refresh failed: %v", err)
			}
		}
	}()
}
