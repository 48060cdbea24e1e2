package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"greenloop/internal/database"
	"greenloop/internal/mailer"
	"greenloop/internal/models"
	"greenloop/internal/realtime"
	"greenloop/internal/storage"
)

type Server struct {
	port   int
	db     database.Service
	models *models.DB
	s3     *storage.S3Service
	mail   *mailer.Service
	events *realtime.Service
	logger *zap.Logger
}

func (s *Server) GetDB() database.Service {
	return s.db
}

func (s *Server) GetModels() *models.DB {
	return s.models
}

func (s *Server) GetS3Service() *storage.S3Service {
	return s.s3
}

func (s *Server) GetMailer() *mailer.Service {
	return s.mail
}

func (s *Server) GetEvents() *realtime.Service {
	return s.events
}

func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

func NewServer(logger *zap.Logger) *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	s3Service, err := storage.NewS3Service()
	if err != nil {
		logger.Fatal("failed to initialize S3 service", zap.Error(err))
	}

	mailService, err := mailer.NewService(context.Background(), logger)
	if err != nil {
		logger.Fatal("failed to initialize mail service", zap.Error(err))
	}

	events, err := realtime.NewService(logger)
	if err != nil {
		logger.Fatal("failed to initialize realtime service", zap.Error(err))
	}
	if err := events.Listen(context.Background()); err != nil {
		// The console falls back to manual refresh without the change stream.
		logger.Warn("failed to start realtime listener", zap.Error(err))
	}

	modelDB, err := models.NewDB()
	if err != nil {
		logger.Fatal("failed to initialize model layer", zap.Error(err))
	}

	NewServer := &Server{
		port:   port,
		db:     database.New(),
		models: modelDB,
		s3:     s3Service,
		mail:   mailService,
		events: events,
		logger: logger,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewServer.port),
		Handler:      NewServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
