package tasks

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/slpe/agentpay/config"
	"github.com/slpe/agentpay/models"
	"github.com/slpe/agentpay/services/catalog"
	"github.com/slpe/agentpay/storage"
	"github.com/slpe/agentpay/utils/logger"
)

// PurgeStaleOtpTransactions deletes OTP transactions that have outlived the
// provider's validity window. Consumed or not, they can never be replayed.
func PurgeStaleOtpTransactions() error {
	conf := config.ProviderConfig()
	cutoff := time.Now().Add(-conf.OtpValidity)

	result := storage.GetClient().
		Where("created_at < ?", cutoff).
		Delete(&models.OtpTransaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		logger.Infof("Purged %d stale OTP transactions", result.RowsAffected)
	}
	return nil
}

// RefreshPaymentModeCatalog pulls the latest catalog from upstream
func RefreshPaymentModeCatalog(service *catalog.CatalogService) error {
	return service.Refresh(context.Background())
}

// StartCronJobs starts cron jobs
func StartCronJobs() {
	scheduler := gocron.NewScheduler(time.Local)

	// one catalog service for the lifetime of the scheduler, so successive
	// refreshes share the generation counter and a slow superseded fetch is
	// discarded
	catalogService := catalog.NewCatalogService(storage.GetClient())

	_, err := scheduler.Every(10).Minutes().Do(func() {
		if err := PurgeStaleOtpTransactions(); err != nil {
			logger.Errorf("PurgeStaleOtpTransactions: %v", err)
		}
	})
	if err != nil {
		logger.Errorf("StartCronJobs for PurgeStaleOtpTransactions: %v", err)
	}

	_, err = scheduler.Every(1).Hour().Do(func() {
		if err := RefreshPaymentModeCatalog(catalogService); err != nil {
			logger.Errorf("RefreshPaymentModeCatalog: %v", err)
		}
	})
	if err != nil {
		logger.Errorf("StartCronJobs for RefreshPaymentModeCatalog: %v", err)
	}

	scheduler.StartAsync()
}
