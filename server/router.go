package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	// By default gin.DefaultWriter = os.Stdout
	// The query string is left out so websocket tokens never reach the log.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Request.URL.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := s.Config.AccessControlAllowOrigin; origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	apirouter := router.Group("/api/v1")

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())

	authorized.POST("/reports", s.handleCreateReport())
	authorized.GET("/reports/:id", s.handleGetReport())
	authorized.DELETE("/reports/:id", s.handleWithdrawReport())
	authorized.POST("/reports/:id/votes", limitVoteRate(s.Config.VotesPerMinute), s.handleCastVote())

	authorized.POST("/reports/:id/assign", s.handleAssignWorker())
	authorized.PUT("/workers/me/location", s.handleUpdateWorkerLocation())

	authorized.POST("/reports/:id/evidence", s.handleUploadEvidence())
	authorized.POST("/reports/:id/resolve", s.handleMarkResolved())
	authorized.POST("/reports/:id/confirm", s.handleConfirmResolution())
	authorized.POST("/reports/:id/start-working", s.handleStartWorking())

	apirouter.GET("/notifications/ws", s.AuthorizeWebsocket(), s.handleNotificationFeed())
}
