package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"moneta/internal/core"
)

type recordRequest struct {
	ProfileID  int64       `json:"profileId"`
	CategoryID int64       `json:"categoryId"`
	Name       string      `json:"name"`
	Icon       string      `json:"icon"`
	Amount     json.Number `json:"amount"`
	Date       string      `json:"date"`
}

type recordResponse struct {
	ID         int64       `json:"id"`
	ProfileID  int64       `json:"profileId"`
	CategoryID int64       `json:"categoryId,omitempty"`
	Category   string      `json:"category,omitempty"`
	Name       string      `json:"name"`
	Icon       string      `json:"icon,omitempty"`
	Amount     core.Rupees `json:"amount"`
	Date       string      `json:"date,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

func toRecordResponse(rec core.LedgerRecord) recordResponse {
	resp := recordResponse{
		ID:         rec.ID,
		ProfileID:  rec.ProfileID,
		CategoryID: rec.CategoryID,
		Category:   rec.CategoryName,
		Name:       rec.Name,
		Icon:       rec.Icon,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.Amount != nil {
		resp.Amount = core.Rupees(rec.Amount.Cents)
	}
	if !rec.Date.IsZero() {
		resp.Date = rec.Date.Format("2006-01-02")
	}
	return resp
}

// handleLedger serves create, list, and delete for one record kind.
func (s *Server) handleLedger(kind core.LedgerKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.createRecord(w, r, kind)
		case http.MethodGet:
			s.listRecords(w, r, kind)
		case http.MethodDelete:
			s.deleteRecord(w, r, kind)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
		}
	}
}

func (s *Server) createRecord(w http.ResponseWriter, r *http.Request, kind core.LedgerKind) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProfileID <= 0 {
		writeError(w, http.StatusBadRequest, "missing profileId")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount.String())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	rec := core.LedgerRecord{
		ProfileID:  req.ProfileID,
		CategoryID: req.CategoryID,
		Name:       sanitizeInput(req.Name),
		Icon:       sanitizeInput(req.Icon),
		Amount:     &core.Money{Cents: cents},
		Date:       date,
	}
	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateRecord(r.Context(), kind, rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Record creation failed",
			"kind", string(kind), "profile_id", req.ProfileID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create record")
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(created))
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request, kind core.LedgerKind) {
	profileID, err := queryInt64(r, "profileId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var records []core.LedgerRecord
	if r.URL.Query().Get("month") != "" || r.URL.Query().Get("year") != "" {
		year, month := queryYearMonth(r)
		records, err = s.store.RecordsByMonth(r.Context(), profileID, kind, year, month)
	} else {
		records, err = s.store.RecordsByProfile(r.Context(), profileID, kind)
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Record listing failed",
			"kind", string(kind), "profile_id", profileID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	total, err := s.store.TotalByProfile(r.Context(), profileID, kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "Total query failed",
			"kind", string(kind), "profile_id", profileID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute total")
		return
	}

	items := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, toRecordResponse(rec))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": core.Rupees(total),
	})
}

func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request, kind core.LedgerKind) {
	profileID, err := queryInt64(r, "profileId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := queryInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.DeleteRecord(r.Context(), kind, profileID, id); err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		slog.ErrorContext(r.Context(), "Record deletion failed",
			"kind", string(kind), "record_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete record")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
