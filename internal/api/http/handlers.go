package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	v "github.com/asaskevich/govalidator"

	"github.com/silentpro/dashboard/internal/calendar"
	"github.com/silentpro/dashboard/internal/entity"
)

type reportResponse struct {
	Success bool `json:"success"`
	*entity.Report
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("can't encode response",
			slog.String("err", err.Error()),
		)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !s.limiter.Allow(r.RemoteAddr) {
		writeError(w, http.StatusTooManyRequests, "too many report requests, please slow down")
		return
	}

	var req entity.ReportRequest
	req.ProductSKU = entity.FilterAll
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "can't decode report request")
		return
	}
	if _, err := v.ValidateStruct(req); err != nil {
		slog.Default().ErrorContext(ctx, "validation of report request failed",
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductSKU == "" {
		req.ProductSKU = entity.FilterAll
	}

	report, err := s.reports.Run(ctx, req)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Default().ErrorContext(ctx, "report run failed",
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{Success: true, Report: report})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cat.Entries())
}
