package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Arch-4ng3l/TimetableGenerator/internal/app"
)

// Server exposes the pipeline over HTTP.
type Server struct {
	pipeline  *app.Pipeline
	outputDir string
	engine    *gin.Engine
}

func New(pipeline *app.Pipeline, outputDir string, corsOrigins []string) *Server {
	r := gin.Default()
	r.Use(cors.New(corsConfig(corsOrigins)))

	s := &Server{
		pipeline:  pipeline,
		outputDir: outputDir,
		engine:    r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.health)
	s.engine.POST("/generate", s.generate)
	s.engine.POST("/generate-ics", s.generateICS)
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// corsConfig allows any origin for "*"; credentials are only allowed for an
// explicit origin list.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
