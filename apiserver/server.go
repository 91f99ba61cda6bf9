package apiserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bitforms/numeric/explorer"
)

// Server is the HTTP+websocket API surface over the cfloat evaluator.
type Server struct {
	broadcaster *Broadcaster
	mux         *http.ServeMux
	server      *http.Server
	port        int
}

// NewServer builds a Server listening on port once Start is called.
func NewServer(port int) *Server {
	s := &Server{
		broadcaster: NewBroadcaster(),
		mux:         http.NewServeMux(),
		port:        port,
	}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler with CORS middleware applied.
func (s *Server) Handler() http.Handler { return s.corsMiddleware(s.mux) }

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/ws", s.handleWebSocket)
	s.mux.HandleFunc("/api/v1/evaluate", s.handleEvaluate)
}

// Start runs the HTTP server until it errors or is shut down.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Printf("apiserver starting on http://127.0.0.1:%d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and closes the broadcaster.
func (s *Server) Shutdown(ctx context.Context) error {
	s.broadcaster.Close()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if isAllowedOrigin(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isAllowedOrigin(origin string) bool {
	if origin == "" {
		return true
	}
	if strings.HasPrefix(origin, "file://") {
		return true
	}
	return strings.HasPrefix(origin, "http://localhost") ||
		strings.HasPrefix(origin, "https://localhost") ||
		strings.HasPrefix(origin, "http://127.0.0.1") ||
		strings.HasPrefix(origin, "https://127.0.0.1")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Subscriptions: s.broadcaster.SubscriptionCount()})
}

// handleEvaluate evaluates one binary operation and broadcasts the
// result to any subscribed websocket client before responding.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EvaluateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	resp, err := evaluate(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.broadcaster.Broadcast(BroadcastEvent{Type: EventEvaluate, Data: resp})
	writeJSON(w, http.StatusOK, resp)
}

// evaluate builds the two operands per req's shape and policy,
// dispatches to the requested operator, and views each operand (and
// the result) the same way Session.describe does for the TUI.
func evaluate(req EvaluateRequest) (EvaluateResponse, error) {
	a, err := explorer.NewCfloatValue(req.Policy, req.NBits, req.ES, req.A)
	if err != nil {
		return EvaluateResponse{}, fmt.Errorf("operand a: %w", err)
	}
	b, err := explorer.NewCfloatValue(req.Policy, req.NBits, req.ES, req.B)
	if err != nil {
		return EvaluateResponse{}, fmt.Errorf("operand b: %w", err)
	}

	var result explorer.CfloatValue
	switch req.Op {
	case "add":
		result, err = a.Add(b)
	case "mul":
		result, err = a.Mul(b)
	default:
		return EvaluateResponse{}, fmt.Errorf("unsupported op %q (want add or mul)", req.Op)
	}
	if err != nil {
		return EvaluateResponse{}, err
	}

	return EvaluateResponse{A: viewOf(a), B: viewOf(b), Result: viewOf(result)}, nil
}

func viewOf(v explorer.CfloatValue) OperandView {
	return OperandView{
		Decimal:       v.String(),
		Binary:        v.Binary(),
		Raw:           v.Raw(),
		IsZero:        v.IsZero(),
		IsInf:         v.IsInf(),
		IsNaN:         v.IsNaN(),
		IsNormal:      v.IsNormal(),
		IsSubnormal:   v.IsSubnormal(),
		IsSupernormal: v.IsSupernormal(),
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("error encoding json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: http.StatusText(status), Message: message, Code: status})
}

func readJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1024*1024))
	return decoder.Decode(v)
}
