package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"dailyquest/internal/engine"
)

// Server exposes the engine to the surrounding application as a JSON API.
// Business outcomes (capped, blocked, not eligible, ...) are 200 responses
// with discriminator fields; only malformed requests and genuine faults map
// to HTTP error codes.
type Server struct {
	svc    *engine.Service
	router *mux.Router
}

func NewServer(svc *engine.Service) *Server {
	s := &Server{svc: svc, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router.PathPrefix("/api").Subrouter()

	r.HandleFunc("/players", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/players/{id:[0-9]+}", s.handleGetPlayer).Methods(http.MethodGet)
	r.HandleFunc("/players/{id:[0-9]+}/tasks", s.handleAddTask).Methods(http.MethodPost)
	r.HandleFunc("/players/{id:[0-9]+}/tasks", s.handleListTasks).Methods(http.MethodGet)
	r.HandleFunc("/players/{id:[0-9]+}/reset-check", s.handleResetCheck).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id:[0-9]+}/complete", s.handleCompleteTask).Methods(http.MethodPost)
	r.HandleFunc("/attack", s.handleAttack).Methods(http.MethodPost)
	r.HandleFunc("/potions/use", s.handleUsePotion).Methods(http.MethodPost)
	r.HandleFunc("/names/use", s.handleUseNameScroll).Methods(http.MethodPost)
	r.HandleFunc("/shop", s.handleListShop).Methods(http.MethodGet)
	r.HandleFunc("/shop/buy", s.handleBuy).Methods(http.MethodPost)
	r.HandleFunc("/leaderboard", s.handleLeaderboard).Methods(http.MethodGet)
}

// ListenAndServe runs the API on addr until the process exits.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	log.Printf("dailyquest api listening on %s", addr)
	return srv.ListenAndServe()
}
