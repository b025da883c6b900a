// Package web exposes the simulation over HTTP: a small REST API for state
// and configuration plus a WebSocket stream for renderers.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/12dit152/solarsim/core/model"
	"github.com/12dit152/solarsim/infra/logger"
)

// Config holds the web server settings.
type Config struct {
	Enabled        bool     `json:"enabled" yaml:"enabled"`
	Addr           string   `json:"addr" yaml:"addr"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}

// Simulation is the surface the web layer needs from the host. It is
// implemented by app.Service.
type Simulation interface {
	Snapshot() model.Snapshot
	Config() model.SystemConfig
	SetConfig(model.SystemConfig) error
	Controls() model.Controls
	SetControls(model.Controls)
	SetControlAngle(angleDeg float64)
	SessionID() string
}

// Server serves the REST API and the WebSocket stream.
type Server struct {
	cfg      Config
	sim      Simulation
	hub      *Hub
	log      logger.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a Server around the given simulation.
func NewServer(cfg Config, sim Simulation) *Server {
	cfg.SetDefaults()
	log := logger.New("web")
	return &Server{
		cfg: cfg,
		sim: sim,
		hub: NewHub(log),
		log: log,
		upgrader: websocket.Upgrader{
			// Origin filtering is handled by the CORS layer.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Hub returns the WebSocket hub so the host can broadcast snapshots.
func (s *Server) Hub() *Hub { return s.hub }

// Run serves until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	s.routes(router)

	handler := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	srv := &http.Server{Addr: s.cfg.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("shutdown: %v", err)
		}
	}()
	s.log.Infof("web server listening on %s", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) routes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.GET("/state", s.getState)
	api.GET("/config", s.getConfig)
	api.PUT("/config", s.putConfig)
	api.GET("/controls", s.getControls)
	api.PUT("/controls", s.putControls)
	api.POST("/sizing", s.postSizing)
	router.GET("/ws", s.serveWS)
}

func (s *Server) serveWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Errorf("ws upgrade: %v", err)
		return
	}
	cl := &client{hub: s.hub, conn: conn, send: make(chan []byte, 16)}
	s.hub.register(cl)
	go cl.writePump()
	go cl.readPump()
}
