package main

import (
	"context"
	"fmt"
	"time"

	"leads-service/aggregate"
	"leads-service/config"
	"leads-service/database"
	"leads-service/handlers"
	"leads-service/leads"
	"leads-service/metrics"
	"leads-service/middleware"
	"leads-service/services"
	"leads-service/version"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	EndPointHealth           = "/health"
	EndPointCaptureGeneral   = "/captura-imovel-geral"
	EndPointCaptureLaunch    = "/captura-lancamento"
	EndPointDashboardData    = "/dados-dashboard"
	EndPointDashboardSummary = "/dashboard/summary"
	EndPointDashboardExport  = "/dashboard/export"
	EndPointLeadFeed         = "/ws/leads"
	EndPointFeedHealth       = "/ws/health"
	EndPointMetrics          = "/metrics"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Info(".env file not found, using system environment variables")
	}

	cfg := config.Load()

	log.Info("Starting the leads service...")

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store := database.NewLeadStore(db, cfg.PartitionCandidates)
	if err := store.Resolve(context.Background()); err != nil {
		log.Fatalf("Failed to resolve lead partition: %v", err)
	}

	metrics.Register()

	loc := cfg.Location()
	builder := leads.NewBuilder(cfg.Campaigns, loc)
	aggregator := aggregate.New(cfg.Campaigns, loc)

	hub := services.NewLeadFeedHub()
	go hub.Start()
	defer hub.Stop()

	leadsHandler := handlers.NewLeadsHandler(cfg, builder, aggregator, store, hub)
	feedHandler := handlers.NewLeadFeedHandler(hub)

	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, version.Get("leads-service"))
	})

	router.GET("/", leadsHandler.Root)
	router.GET(EndPointHealth, leadsHandler.HealthCheck)
	router.GET(EndPointMetrics, gin.WrapH(promhttp.Handler()))

	capture := router.Group("/")
	capture.Use(middleware.RateLimitMiddleware(60, time.Minute))
	{
		capture.POST(EndPointCaptureGeneral, leadsHandler.CaptureGeneral)
		capture.POST(EndPointCaptureLaunch, leadsHandler.CaptureLaunch)
	}

	router.GET(EndPointDashboardData, leadsHandler.DashboardData)
	router.GET(EndPointDashboardSummary, leadsHandler.DashboardSummary)
	router.GET(EndPointDashboardExport, leadsHandler.DashboardExport)
	router.GET(EndPointLeadFeed, feedHandler.Listen)
	router.GET(EndPointFeedHealth, feedHandler.HealthCheck)

	log.Infof("Leads service starting on %s:%s (partition %s)", cfg.Host, cfg.Port, store.Partition())
	if err := router.Run(fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
