package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/slpe/agentpay/config"
	"github.com/slpe/agentpay/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory database with all migrations applied
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Subject{},
		&models.KycRecord{},
		&models.OtpTransaction{},
		&models.BankAccount{},
		&models.PaymentMode{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestSubject creates a test subject with default or custom values
func CreateTestSubject(db *gorm.DB, overrides map[string]interface{}) (*models.Subject, error) {
	payload := map[string]interface{}{
		"tier":  5,
		"phone": "9876543210",
	}
	for key, value := range overrides {
		payload[key] = value
	}

	subject := &models.Subject{
		Tier:  payload["tier"].(int),
		Phone: payload["phone"].(string),
	}
	if id, ok := payload["id"].(string); ok {
		subject.ID = id
	}

	if err := db.Create(subject).Error; err != nil {
		return nil, err
	}
	return subject, nil
}

// AccessToken mints a signed JWT for the given subject
func AccessToken(subjectID string, tier int) (string, error) {
	conf := config.AuthConfig()

	claims := jwt.MapClaims{
		"sub":  subjectID,
		"tier": tier,
		"exp":  time.Now().Add(conf.JwtAccessLifespan).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(conf.Secret))
}

// PerformRequest performs an HTTP request against the router and returns the
// recorded response
func PerformRequest(t *testing.T, method, path string, payload interface{}, headers map[string]string, router *gin.Engine) (*httptest.ResponseRecorder, error) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res, nil
}
