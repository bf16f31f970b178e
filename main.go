package main

import (
	"context"
	"fmt"
	"time"

	"github.com/slpe/agentpay/config"
	"github.com/slpe/agentpay/routers"
	"github.com/slpe/agentpay/services/catalog"
	"github.com/slpe/agentpay/storage"
	"github.com/slpe/agentpay/tasks"
	"github.com/slpe/agentpay/utils/logger"
)

func main() {
	// Set timezone
	conf := config.ServerConfig()
	loc, _ := time.LoadLocation(conf.Timezone)
	time.Local = loc

	// Connect to the database
	DSN := config.DBConfig()
	if err := storage.DBConnection(DSN); err != nil {
		logger.Fatalf("database DBConnection: %s", err)
	}

	// Seed the payment mode catalog
	catalogService := catalog.NewCatalogService(storage.GetClient())
	if err := catalogService.Seed(context.Background()); err != nil {
		logger.Fatalf("catalog Seed: %v", err)
	}

	// Start cron jobs
	tasks.StartCronJobs()

	// Run the server
	router := routers.Routes()

	appServer := fmt.Sprintf("%s:%s", conf.Host, conf.Port)
	logger.Infof("Server Running at :%v", appServer)

	logger.Fatalf("%v", router.Run(appServer))
}
