package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/parishlabs/tdrms/internal/auth"
	authdomain "github.com/parishlabs/tdrms/internal/auth/domain"
	"github.com/parishlabs/tdrms/internal/auth/session"
	"github.com/parishlabs/tdrms/internal/authorization"
	"github.com/parishlabs/tdrms/internal/clock"
	"github.com/parishlabs/tdrms/internal/config"
	"github.com/parishlabs/tdrms/internal/db"
	"github.com/parishlabs/tdrms/internal/notification"
	notificationdomain "github.com/parishlabs/tdrms/internal/notification/domain"
	"github.com/parishlabs/tdrms/internal/observability"
	obsmiddleware "github.com/parishlabs/tdrms/internal/observability/logger"
	obstracing "github.com/parishlabs/tdrms/internal/observability/tracing"
	"github.com/parishlabs/tdrms/internal/providers/pdf"
	"github.com/parishlabs/tdrms/internal/receipt"
	receiptdomain "github.com/parishlabs/tdrms/internal/receipt/domain"
	"github.com/parishlabs/tdrms/internal/report"
	reportdomain "github.com/parishlabs/tdrms/internal/report/domain"
	"github.com/parishlabs/tdrms/internal/seed"
	"github.com/parishlabs/tdrms/internal/template"
	templatedomain "github.com/parishlabs/tdrms/internal/template/domain"
	"github.com/parishlabs/tdrms/internal/user"
	userdomain "github.com/parishlabs/tdrms/internal/user/domain"
	"github.com/parishlabs/tdrms/internal/verification"
	verificationdomain "github.com/parishlabs/tdrms/internal/verification/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	clock.Module,
	db.Module,
	observability.Module,
	fx.Provide(registerGin),
	authorization.Module,
	auth.Module,
	notification.Module,
	receipt.Module,
	verification.Module,
	report.Module,
	template.Module,
	user.Module,
	pdf.Module,
	seed.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.ListenAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	sessions        *session.Manager
	authsvc         authdomain.Service
	authzSvc        authorization.Service
	receiptSvc      receiptdomain.Service
	verificationSvc verificationdomain.Service
	reportSvc       reportdomain.Service
	templateSvc     templatedomain.Service
	userSvc         userdomain.Service
	notificationSvc notificationdomain.Service
	pdfProvider     pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	Sessions        *session.Manager
	Authsvc         authdomain.Service
	AuthzSvc        authorization.Service
	ReceiptSvc      receiptdomain.Service
	VerificationSvc verificationdomain.Service
	ReportSvc       reportdomain.Service
	TemplateSvc     templatedomain.Service
	UserSvc         userdomain.Service
	NotificationSvc notificationdomain.Service
	PDFProvider     pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		sessions:        p.Sessions,
		authsvc:         p.Authsvc,
		authzSvc:        p.AuthzSvc,
		receiptSvc:      p.ReceiptSvc,
		verificationSvc: p.VerificationSvc,
		reportSvc:       p.ReportSvc,
		templateSvc:     p.TemplateSvc,
		userSvc:         p.UserSvc,
		notificationSvc: p.NotificationSvc,
		pdfProvider:     p.PDFProvider,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/api/auth")

	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.Logout)
	authGroup.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	receipts := api.Group("/receipts")
	{
		receipts.GET("", s.RequirePermission(authorization.ObjectReceipt, authorization.ActionReceiptView), s.ListReceipts)
		receipts.POST("", s.RequirePermission(authorization.ObjectReceipt, authorization.ActionReceiptCreate), s.IssueReceipt)
		receipts.GET("/:id", s.RequirePermission(authorization.ObjectReceipt, authorization.ActionReceiptView), s.GetReceipt)
		receipts.GET("/:id/pdf", s.RequirePermission(authorization.ObjectReceipt, authorization.ActionReceiptView), s.DownloadReceiptPDF)
	}

	verify := api.Group("/verify", s.RequirePermission(authorization.ObjectVerification, authorization.ActionVerificationVerify))
	{
		verify.POST("", s.VerifyReceipt)
		verify.POST("/payload", s.VerifyReceiptPayload)
	}

	api.POST("/reports", s.RequirePermission(authorization.ObjectReport, authorization.ActionReportGenerate), s.GenerateReport)

	templates := api.Group("/templates")
	{
		templates.GET("", s.RequirePermission(authorization.ObjectTemplate, authorization.ActionTemplateView), s.ListTemplates)
		templates.GET("/:id", s.RequirePermission(authorization.ObjectTemplate, authorization.ActionTemplateView), s.GetTemplate)
		templates.POST("", s.RequirePermission(authorization.ObjectTemplate, authorization.ActionTemplateCreate), s.CreateTemplate)
		templates.PUT("/:id", s.RequirePermission(authorization.ObjectTemplate, authorization.ActionTemplateUpdate), s.UpdateTemplate)
		templates.DELETE("/:id", s.RequirePermission(authorization.ObjectTemplate, authorization.ActionTemplateDelete), s.DeleteTemplate)
	}

	users := api.Group("/users")
	{
		users.GET("", s.RequirePermission(authorization.ObjectUser, authorization.ActionUserView), s.ListUsers)
		users.PUT("/:id/role", s.RequirePermission(authorization.ObjectUser, authorization.ActionUserUpdateRole), s.UpdateUserRole)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", s.RequirePermission(authorization.ObjectNotification, authorization.ActionNotificationView), s.ListNotifications)
		notifications.PUT("/:id/read", s.RequirePermission(authorization.ObjectNotification, authorization.ActionNotificationView), s.MarkNotificationRead)
		notifications.PUT("/read-all", s.RequirePermission(authorization.ObjectNotification, authorization.ActionNotificationManage), s.MarkAllNotificationsRead)
	}
}
