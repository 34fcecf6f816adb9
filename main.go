package main

import (
	"context"
	"log"

	"github.com/techagentng/cleancity/config"
	"github.com/techagentng/cleancity/db"
	"github.com/techagentng/cleancity/server"
	"github.com/techagentng/cleancity/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := config.NewLogger(conf)
	defer func() { _ = logger.Sync() }()
	ctx := context.Background()

	gormDB := db.GetDB(conf)
	// Seed roles
	if err := db.SeedRoles(gormDB.DB); err != nil {
		logger.Fatalw("error seeding roles", "error", err)
	}
	reportRepo := db.NewReportRepo(gormDB)
	voteRepo := db.NewVoteRepo(gormDB)
	locationRepo := db.NewWorkerLocationRepo(gormDB)
	userRepo := db.NewUserRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)

	hub := services.NewHub()
	channels := []services.Channel{hub}
	if conf.GoogleApplicationCredentials != "" {
		push, err := services.NewPushChannel(ctx, conf.GoogleApplicationCredentials)
		if err != nil {
			logger.Fatalw("error initializing push notifications", "error", err)
		}
		channels = append(channels, push)
	} else {
		logger.Warn("CITIZENX_GOOGLE_APPLICATION_CREDENTIALS not set; push notifications disabled")
	}
	if conf.MgDomain != "" && conf.MailgunApiKey != "" {
		channels = append(channels, services.NewEmailChannel(conf.MgDomain, conf.MailgunApiKey, conf.MgEmailFrom))
	}
	notifier := services.NewNotificationService(notificationRepo, userRepo, logger, channels...)

	lifecycleService, err := services.NewLifecycleService(reportRepo, voteRepo, locationRepo, userRepo, notifier, conf, logger)
	if err != nil {
		logger.Fatalw("error creating lifecycle service", "error", err)
	}

	var mediaService services.MediaService
	if conf.EvidenceBucket != "" {
		mediaRepo, err := db.NewMediaRepo(ctx, conf)
		if err != nil {
			logger.Fatalw("error creating s3 client", "error", err)
		}
		mediaService = services.NewMediaService(mediaRepo, conf)
	}

	s := &server.Server{
		Config:           conf,
		LifecycleService: lifecycleService,
		UserRepository:   userRepo,
		MediaService:     mediaService,
		Hub:              hub,
		Logger:           logger,
	}
	s.Start()
}
