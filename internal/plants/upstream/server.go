// Package upstream serves the plant catalogue the network client consumes.
// It backs cmd/plantapi for local development and the client tests.
package upstream

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sunflower/internal/plants/models"
)

//go:embed data/*.json
var seed embed.FS

// Server holds the catalogue and sort order it serves.
type Server struct {
	mu        sync.RWMutex
	plants    []models.Plant
	sortOrder models.SortOrder
	latency   time.Duration
	failNext  int
	hits      map[string]int
	logger    *slog.Logger
}

// New returns a Server seeded with the embedded catalogue.
func New(logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{logger: logger, hits: make(map[string]int)}
	if err := decodeSeed("data/plants.json", &s.plants); err != nil {
		return nil, err
	}
	if err := decodeSeed("data/custom_plant_sort_order.json", &s.sortOrder); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeSeed(name string, dst any) error {
	raw, err := seed.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode seed %s: %w", name, err)
	}
	return nil
}

// Router exposes the catalogue endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.simulate)
	r.Get("/plants.json", s.handlePlants)
	r.Get("/custom_plant_sort_order.json", s.handleSortOrder)
	return r
}

// SetPlants replaces the served catalogue.
func (s *Server) SetPlants(plants []models.Plant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plants = append([]models.Plant(nil), plants...)
}

// SetSortOrder replaces the served sort order.
func (s *Server) SetSortOrder(order models.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortOrder = append(models.SortOrder(nil), order...)
}

// SetLatency delays every response by d.
func (s *Server) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// FailNext makes the next n requests answer 503.
func (s *Server) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// Hits returns how many requests reached path, including failed ones.
func (s *Server) Hits(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits[path]
}

func (s *Server) simulate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		latency := s.latency
		fail := s.failNext > 0
		if fail {
			s.failNext--
		}
		s.mu.Unlock()

		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-r.Context().Done():
				return
			}
		}
		if fail {
			s.logger.Info("simulated plant api failure", "path", r.URL.Path)
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handlePlants(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	plants := s.plants
	s.mu.RUnlock()
	writeJSON(w, plants)
}

func (s *Server) handleSortOrder(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	order := s.sortOrder
	s.mu.RUnlock()
	writeJSON(w, order)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
