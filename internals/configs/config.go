package configs

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret        string
	XeroClientID     string
	XeroClientSecret string
	XeroRedirectURI  string
	XeroTokenURL     string
	XeroAPIBaseURL   string
	BusinessTZ       *time.Location
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded!")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	XeroClientID = GetEnv("XERO_CLIENT_ID")
	XeroClientSecret = GetEnv("XERO_CLIENT_SECRET")
	XeroRedirectURI = GetEnv("XERO_REDIRECT_URI")
	XeroTokenURL = GetEnv("XERO_TOKEN_URL", "https://identity.xero.com/connect/token")
	XeroAPIBaseURL = GetEnv("XERO_API_BASE_URL", "https://api.xero.com")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if XeroClientID == "" || XeroClientSecret == "" {
		log.Println("⚠️ XERO_CLIENT_ID/XERO_CLIENT_SECRET not set, accounting export disabled until connected")
	}

	// All week/day boundaries are computed in the business's fixed local zone.
	tzName := GetEnv("BUSINESS_TIMEZONE", "Australia/Sydney")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("❌ Invalid BUSINESS_TIMEZONE %q, falling back to UTC: %v", tzName, err)
		loc = time.UTC
	}
	BusinessTZ = loc
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Info,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
