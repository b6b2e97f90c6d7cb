package ui

import (
	"github.com/gin-gonic/gin"

	"gridsage/adapters/stats/engine"
	"gridsage/app"
	"gridsage/domain/core"
)

// Server is the analysis API. All routes are plain request→response: the
// transport layer validates the selected range and hands the core a dataset.
type Server struct {
	router  *gin.Engine
	service *app.AnalysisService
	engine  *engine.Engine
}

// NewServer creates the API server around the analysis service.
func NewServer(service *app.AnalysisService, eng *engine.Engine) *Server {
	s := &Server{
		router:  gin.Default(),
		service: service,
		engine:  eng,
	}
	s.setupRoutes()
	return s
}

// requestID tags every response so a failing analysis call can be matched to
// its server logs.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := core.RequestID(core.NewID())
		c.Set("requestID", id)
		c.Header("X-Request-ID", id.String())
		c.Next()
	}
}

func (s *Server) setupRoutes() {
	s.router.Use(requestID())
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		analyze := api.Group("/analyze")
		{
			analyze.POST("/statistics", s.handleStatistics)
			analyze.POST("/correlations", s.handleCorrelations)
			analyze.POST("/outliers", s.handleOutliers)
			analyze.POST("/trends", s.handleTrends)
			analyze.POST("/forecast", s.handleForecast)
			analyze.POST("/scenarios", s.handleScenarios)
			analyze.POST("/sensitivity", s.handleSensitivity)
			analyze.POST("/quality", s.handleQuality)
			analyze.POST("/deep", s.handleDeepAnalysis)
		}

		api.GET("/reports/:id", s.handleGetReport)
		api.GET("/reports/:id/html", s.handleReportHTML)
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
