package server

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"anoa.com/lifesaver/internal/config"
	"anoa.com/lifesaver/internal/middleware"
	"anoa.com/lifesaver/pkg/storage"

	alertHttp "anoa.com/lifesaver/internal/modules/alert/delivery/http"
	alertRepo "anoa.com/lifesaver/internal/modules/alert/repository"
	alertService "anoa.com/lifesaver/internal/modules/alert/service"

	chatHttp "anoa.com/lifesaver/internal/modules/chat/delivery/http"
	chatService "anoa.com/lifesaver/internal/modules/chat/service"

	contactHttp "anoa.com/lifesaver/internal/modules/contact/delivery/http"
	contactRepo "anoa.com/lifesaver/internal/modules/contact/repository"
	contactService "anoa.com/lifesaver/internal/modules/contact/service"

	medicalHttp "anoa.com/lifesaver/internal/modules/medical/delivery/http"
	medicalRepo "anoa.com/lifesaver/internal/modules/medical/repository"
	medicalService "anoa.com/lifesaver/internal/modules/medical/service"

	notifHttp "anoa.com/lifesaver/internal/modules/notification/delivery/http"
	notifRepo "anoa.com/lifesaver/internal/modules/notification/repository"
	notifService "anoa.com/lifesaver/internal/modules/notification/service"

	searchService "anoa.com/lifesaver/internal/modules/search/service"

	sessionHttp "anoa.com/lifesaver/internal/modules/session/delivery/http"
	sessionService "anoa.com/lifesaver/internal/modules/session/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	cron        *cron.Cron
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	// Contact module, with optional Meilisearch-backed name search.
	var searchSvc searchService.ContactSearchService
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = searchService.NewContactSearchService(meiliClient)
	}

	contactRepository := contactRepo.NewContactRepository(db)
	contactSvc := contactService.NewContactService(contactRepository, searchSvc)
	contactHandler := contactHttp.NewContactHandler(contactSvc)

	// Medical module, with optional Cloudinary document storage.
	var docStorage storage.DocumentStorage
	if ds, err := storage.NewCloudinaryStorage(); err != nil {
		log.Printf("Document storage disabled: %v", err)
	} else {
		docStorage = ds
	}

	medicalRepository := medicalRepo.NewMedicalRepository(db)
	medicalSvc := medicalService.NewMedicalService(medicalRepository, docStorage, cfg.CloudinaryUploadFolder, cfg.OrphanCutoff)
	medicalHandler := medicalHttp.NewMedicalHandler(medicalSvc)

	// Notification module: fanout engine + inbox.
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, contactRepository, redisClient)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, redisClient)

	// Alert module: write-once SOS store, fans out synchronously.
	alertRepository := alertRepo.NewAlertRepository(db)
	alertSvc := alertService.NewAlertService(alertRepository, notificationSvc)
	alertHandler := alertHttp.NewAlertHandler(alertSvc)

	// Device sessions bind a phone to a token so inbox identity is explicit.
	sessionSvc := sessionService.NewSessionService(cfg.JWTSecret, cfg.SessionTTL)
	sessionHandler := sessionHttp.NewSessionHandler(sessionSvc)

	// Chat assistant; stays disabled without a Gemini key.
	var llmProvider chatService.LLMProvider
	if provider, err := chatService.NewGeminiProvider(context.Background(), cfg.GeminiModel); err != nil {
		log.Printf("Chat assistant disabled: %v", err)
	} else {
		llmProvider = provider
	}
	chatSvc := chatService.NewChatService(llmProvider, redisClient, cfg.ChatRateLimit)
	chatHandler := chatHttp.NewChatHandler(chatSvc)

	// Scheduled sweep for uploads that never got linked to a medical card.
	c := cron.New()
	if _, err := c.AddFunc(cfg.AttachmentSweepSpec, func() {
		log.Println("Running orphan attachment cleanup...")
		if err := medicalSvc.CleanupOrphanAttachments(context.Background()); err != nil {
			log.Printf("Error cleaning up orphan attachments: %v", err)
		}
	}); err != nil {
		log.Printf("Failed to schedule attachment sweep: %v", err)
	}
	c.Start()

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	deviceAuth := middleware.NewDeviceAuth(cfg.JWTSecret)

	api := router.Group("/api")

	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "LifeSaver API is running"})
	})

	// SOS pipeline
	api.POST("/sos-alert", alertHandler.CreateAlert)
	api.GET("/sos-alerts", alertHandler.GetAlerts)

	// Inbox. The second path segment is a phone for the inbox reads and a
	// notification id for acknowledge; gin requires a single param name
	// per position, so it is registered as :key.
	api.GET("/notifications/:key", notificationHandler.ListUnread)
	api.GET("/notifications/:key/unread-count", notificationHandler.UnreadCount)
	api.PUT("/notifications/:key/read", notificationHandler.MarkRead)
	api.PUT("/notifications/:key/read-all", notificationHandler.MarkAllRead)

	// Device sessions
	api.POST("/session", sessionHandler.CreateSession)

	me := api.Group("/me")
	me.Use(deviceAuth.RequireSession())
	{
		me.GET("/notifications", notificationHandler.ListUnreadMe)
		me.PUT("/notifications/read-all", notificationHandler.MarkAllReadMe)
		me.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	// Contact directory
	api.POST("/emergency-contacts", contactHandler.CreateContact)
	api.GET("/emergency-contacts", contactHandler.GetAllContacts)
	api.GET("/emergency-contacts/search", contactHandler.SearchContacts)
	api.DELETE("/emergency-contacts/:id", contactHandler.DeleteContact)

	// Medical card
	api.POST("/medical-info", medicalHandler.CreateMedicalInfo)
	api.GET("/medical-info", medicalHandler.GetAllMedicalInfo)
	api.GET("/medical-info/:id", medicalHandler.GetMedicalInfoByID)
	api.PUT("/medical-info/:id", medicalHandler.UpdateMedicalInfo)
	api.DELETE("/medical-info/:id", medicalHandler.DeleteMedicalInfo)
	api.POST("/medical-info/:id/attachments", medicalHandler.UploadAttachment)

	// Assistant
	api.POST("/chat", chatHandler.Chat)

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		cron:        c,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
