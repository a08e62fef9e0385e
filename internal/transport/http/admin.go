package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnxs304/aniarchive-api/internal/app"
	"github.com/bnxs304/aniarchive-api/internal/clock"
	"github.com/bnxs304/aniarchive-api/internal/domain"
)

// EntrantLister is the minimal interface for the admin entrant list.
type EntrantLister interface {
	ListEntrants(ctx context.Context) ([]domain.Entrant, error)
}

// Drawer is the minimal interface for drawing winners.
type Drawer interface {
	Draw(ctx context.Context, k int) ([]domain.Entrant, error)
}

// Summarizer is the minimal interface for the stats view.
type Summarizer interface {
	Summarize(ctx context.Context) (app.Summary, error)
}

// HandleAdminEntrants returns an HTTP handler listing all entrants.
func HandleAdminEntrants(svc EntrantLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		entrants, err := svc.ListEntrants(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]entrantResponse, 0, len(entrants))
		for _, e := range entrants {
			resp = append(resp, toEntrantResponse(e))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleDraw returns an HTTP handler performing a winner draw. The
// requested count is capped at app.MaxWinnersPerDraw; omitting it
// draws a single winner.
func HandleDraw(svc Drawer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		req := drawRequest{Count: 1}
		if r.Body != nil && r.ContentLength != 0 {
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
		}
		if req.Count < 1 {
			writeError(w, http.StatusBadRequest, codeInvalidDrawCount, domain.ErrInvalidDrawCount.Error())
			return
		}
		if req.Count > app.MaxWinnersPerDraw {
			req.Count = app.MaxWinnersPerDraw
		}

		winners, err := svc.Draw(r.Context(), req.Count)
		if err != nil {
			switch err {
			case domain.ErrNoEntrants:
				writeError(w, http.StatusConflict, codeNoEntrants, err.Error())
			case domain.ErrInvalidDrawCount:
				writeError(w, http.StatusBadRequest, codeInvalidDrawCount, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := drawResponse{Winners: make([]winnerResponse, 0, len(winners))}
		for rank, e := range winners {
			resp.Winners = append(resp.Winners, winnerResponse{
				Rank:            rank + 1,
				entrantResponse: toEntrantResponse(e),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleStats returns an HTTP handler for the entrant count summary.
func HandleStats(svc Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		summary, err := svc.Summarize(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(statsResponse{
			Total:    summary.Total,
			Today:    summary.Today,
			ThisWeek: summary.ThisWeek,
		})
	}
}

// HandleExport returns an HTTP handler serving CSV downloads. The kind
// query parameter selects the column set: "entrants" exports the full
// pool; "winners" exports the result of a draw, identified by the ids
// query parameter carrying the winner entrant IDs from the draw
// response, in rank order.
func HandleExport(lister EntrantLister, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		kind := r.URL.Query().Get("kind")
		if kind == "" {
			kind = "entrants"
		}

		var (
			records []domain.Entrant
			columns []app.ExportColumn
		)
		switch kind {
		case "entrants":
			pool, err := lister.ListEntrants(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			records = pool
			columns = app.EntrantColumns
		case "winners":
			ids := splitIDs(r.URL.Query().Get("ids"))
			if len(ids) == 0 {
				writeError(w, http.StatusBadRequest, codeInvalidSelection, "winners export requires the ids of a draw result")
				return
			}
			if len(ids) > app.MaxWinnersPerDraw {
				writeError(w, http.StatusBadRequest, codeInvalidSelection, "selection exceeds the draw size")
				return
			}

			pool, err := lister.ListEntrants(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			byID := make(map[string]domain.Entrant, len(pool))
			for _, e := range pool {
				byID[e.ID] = e
			}
			seen := make(map[string]bool, len(ids))
			for _, id := range ids {
				e, ok := byID[id]
				if !ok || seen[id] {
					writeError(w, http.StatusBadRequest, codeInvalidSelection, "selection does not match the entrant pool")
					return
				}
				seen[id] = true
				records = append(records, e)
			}
			columns = app.WinnerColumns
		default:
			writeError(w, http.StatusBadRequest, codeInvalidExportKind, "unknown export kind")
			return
		}

		filename := app.ExportFilename(kind, clk.Now())
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := app.WriteCSV(w, records, columns); err != nil {
			// Headers already sent; nothing more to do than log upstream.
			return
		}
	}
}

type drawRequest struct {
	Count int `json:"count"`
}

type drawResponse struct {
	Winners []winnerResponse `json:"winners"`
}

type winnerResponse struct {
	Rank int `json:"rank"`
	entrantResponse
}

type entrantResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	RaffleCode   string    `json:"raffle_code"`
	EventTitle   string    `json:"event_title"`
	EventDate    string    `json:"event_date"`
	RegisteredAt time.Time `json:"registered_at"`
}

type statsResponse struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	ThisWeek int `json:"this_week"`
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func toEntrantResponse(e domain.Entrant) entrantResponse {
	return entrantResponse{
		ID:           e.ID,
		Email:        e.Email,
		RaffleCode:   e.RaffleCode,
		EventTitle:   e.EventTitle,
		EventDate:    e.EventDate,
		RegisteredAt: e.CreatedAt,
	}
}
