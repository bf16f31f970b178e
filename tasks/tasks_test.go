package tasks

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/slpe/agentpay/models"
	"github.com/slpe/agentpay/storage"
	"github.com/slpe/agentpay/utils/test"
	"github.com/stretchr/testify/assert"
)

func TestPurgeStaleOtpTransactions(t *testing.T) {
	storage.Client = test.SetupTestDB(t)

	stale := models.OtpTransaction{
		RefID:           uuid.NewString(),
		SubjectID:       uuid.NewString(),
		IdentifierValue: "123456789012",
	}
	assert.NoError(t, storage.Client.Create(&stale).Error)
	// age the record past the validity window
	assert.NoError(t, storage.Client.Model(&stale).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	fresh := models.OtpTransaction{
		RefID:           uuid.NewString(),
		SubjectID:       uuid.NewString(),
		IdentifierValue: "123456789012",
	}
	assert.NoError(t, storage.Client.Create(&fresh).Error)

	assert.NoError(t, PurgeStaleOtpTransactions())

	var remaining []models.OtpTransaction
	assert.NoError(t, storage.Client.Find(&remaining).Error)
	assert.Len(t, remaining, 1)
	assert.Equal(t, fresh.RefID, remaining[0].RefID)
}
