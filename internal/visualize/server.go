// Package visualize serves the SSE stream §6's visualization hook needs:
// each connection gets its own fresh World (same config, same seed) so
// concurrent viewers never share or race on simulation state, generalizing
// the teacher's server.Server (server/server.go) per-connection bus clone
// to a per-connection world clone, routed with gorilla/mux instead of the
// default ServeMux.
package visualize

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/lokhei/Ridesharing-Simulation/engine"
	"github.com/lokhei/Ridesharing-Simulation/internal/telemetry"
)

// Server exposes the current run's configuration and a live event stream.
type Server struct {
	Config   engine.Config
	TickRate time.Duration
	Log      logrus.FieldLogger
}

// New builds a Server for cfg, streaming one tick every tickRate.
func New(cfg engine.Config, tickRate time.Duration, log logrus.FieldLogger) *Server {
	return &Server{Config: cfg, TickRate: tickRate, Log: log}
}

// Router builds the mux.Router serving /api/config, /api/stream, /metrics
// and /healthz — the Prometheus registry rides the same router as the rest
// of the visualization server, per §10.6.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/api/config", s.handleConfig).Methods(http.MethodGet)
	r.HandleFunc("/api/stream", s.handleStream).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Config)
}

type frame struct {
	Tick    int                `json:"tick"`
	RunID   string             `json:"run_id"`
	Drivers []driverPortrayal  `json:"drivers"`
	Riders  []requestPortrayal `json:"riders"`
}

type driverPortrayal struct {
	ID     int             `json:"id"`
	Loc    engine.Location `json:"loc"`
	Shape  string          `json:"shape"`
	Color  string          `json:"color"`
	Layer  int             `json:"layer"`
	Onboard int            `json:"onboard"`
}

type requestPortrayal struct {
	ID    int             `json:"id"`
	Loc   engine.Location `json:"loc"`
	State string          `json:"state"`
	Shape string          `json:"shape"`
	Color string          `json:"color"`
	Layer int             `json:"layer"`
}

// handleStream creates a fresh World for this connection alone and pushes
// one SSE frame per tick until the client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}

	world, err := engine.NewWorld(s.Config, s.Log)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ticker := time.NewTicker(s.TickRate)
	defer ticker.Stop()

	obs := &telemetry.Observer{}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			world.Step()
			obs.Observe(world)
			f := buildFrame(world)
			b, _ := json.Marshal(f)
			fmt.Fprintf(w, "event: tick\ndata: %s\n\n", b)
			flusher.Flush()
		}
	}
}

func buildFrame(w *engine.World) frame {
	f := frame{Tick: w.Tick, RunID: w.RunID.String()}
	for _, d := range w.Drivers {
		p := engine.DefaultPortrayal(engine.AgentRef{Kind: engine.KindDriver, ID: d.ID})
		f.Drivers = append(f.Drivers, driverPortrayal{ID: d.ID, Loc: d.Current, Shape: p.Shape, Color: p.Color, Layer: p.Layer, Onboard: len(d.Manifest)})
	}
	for _, req := range w.Requests {
		loc, ok := w.Grid.LocationOf(engine.AgentRef{Kind: engine.KindRequest, ID: req.ID})
		if !ok {
			loc = req.Src
		}
		p := engine.DefaultPortrayal(engine.AgentRef{Kind: engine.KindRequest, ID: req.ID})
		f.Riders = append(f.Riders, requestPortrayal{ID: req.ID, Loc: loc, State: req.State.String(), Shape: p.Shape, Color: p.Color, Layer: p.Layer})
	}
	return f
}
