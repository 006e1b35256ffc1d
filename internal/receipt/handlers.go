package receipt

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

const (
	maxBodySize = 1 << 20 // 1MB

	invalidReceiptMessage = "The receipt is invalid."
	notFoundMessage       = "No receipt found for that ID."
)

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// errorResponse is the body of every non-2xx JSON response
type errorResponse struct {
	Message    string      `json:"message"`
	Violations []Violation `json:"violations,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleProcessReceipt validates, scores and stores a submitted receipt
func (s *Server) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&sub); err != nil {
		slog.Warn("Error decoding receipt", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: invalidReceiptMessage})
		return
	}

	id, err := s.service.Submit(&sub)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			resp := errorResponse{Message: invalidReceiptMessage}
			if s.options.ExposeViolations {
				resp.Violations = verr.Violations
			}
			writeJSON(w, http.StatusBadRequest, resp)
			return
		}
		slog.Error("Error processing receipt", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleGetPoints returns the points awarded to a receipt
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.service.Points(r.PathValue("id"))
	if err != nil {
		s.lookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"points": points})
}

// handleGetReceipt returns a stored receipt with its points
func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	scored, err := s.service.Receipt(r.PathValue("id"))
	if err != nil {
		s.lookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, scored)
}

func (s *Server) lookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: notFoundMessage})
		return
	}
	slog.Error("Error looking up receipt", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
}
