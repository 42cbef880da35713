package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/dpowrelay/relay/src/node"
	"github.com/dpowrelay/relay/src/store"
	"github.com/sirupsen/logrus"
)

// Node is the part of a relay node exposed by the service.
type Node interface {
	GetStats() map[string]string
	GetNotaries() ([]*store.Notary, error)
	GossipToggle() *node.Toggle
}

// Service ...
type Service struct {
	sync.Mutex

	bindAddress string
	node        Node
	mux         *http.ServeMux
	server      *http.Server
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, n Node, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		node:        n,
		mux:         http.NewServeMux(),
		logger:      logger,
	}

	service.registerHandlers()

	service.server = &http.Server{
		Addr:    bindAddress,
		Handler: service.mux,
	}

	return &service
}

func (s *Service) registerHandlers() {
	s.logger.Debug("Registering relay API handlers")
	s.mux.HandleFunc("/", s.makeHandler(s.HandleRPC))
	s.mux.HandleFunc("/stats", s.makeHandler(s.GetStats))
	s.mux.HandleFunc("/notaries", s.makeHandler(s.GetNotaries))
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Handler returns the http handler serving the API.
func (s *Service) Handler() http.Handler {
	return s.mux
}

// Serve calls ListenAndServe. This is a blocking call.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving relay API")

	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error(err)
	}
}

// Shutdown stops the server gracefully.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// GetStats ...
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats := s.node.GetStats()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(stats)
}

// NotaryView is the JSON form of a roster slot.
type NotaryView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LastSeen int64  `json:"last_seen"`
}

// GetNotaries ...
func (s *Service) GetNotaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	notaries, err := s.node.GetNotaries()
	if err != nil {
		s.logger.WithError(err).Error("Retrieving notaries")

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	res := make([]NotaryView, 0, len(notaries))
	for _, n := range notaries {
		res = append(res, NotaryView{
			ID:       n.ID,
			Name:     n.Name,
			LastSeen: n.LastSeen,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(res)
}
