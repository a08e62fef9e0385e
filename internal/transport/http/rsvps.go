package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bnxs304/aniarchive-api/internal/app"
	"github.com/bnxs304/aniarchive-api/internal/domain"
)

// Registrar is the minimal interface needed to register an entrant.
type Registrar interface {
	Register(ctx context.Context, in app.RegisterInput) (domain.Entrant, error)
}

// HandleCreateRSVP returns an HTTP handler for giveaway registrations.
func HandleCreateRSVP(svc Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createRSVPRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		entrant, err := svc.Register(r.Context(), app.RegisterInput{Email: req.Email})
		if err != nil {
			switch err {
			case domain.ErrInvalidEmail:
				writeError(w, http.StatusBadRequest, codeInvalidEmail, err.Error())
			case domain.ErrDuplicateEntrant:
				// Expected business condition, not a fault.
				writeError(w, http.StatusConflict, codeDuplicateEntrant, err.Error())
			case domain.ErrCodeSpaceExhausted:
				writeError(w, http.StatusServiceUnavailable, codeCodeSpaceExhausted, "registration unavailable, try again later")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := createRSVPResponse{
			RaffleCode:   entrant.RaffleCode,
			EventTitle:   entrant.EventTitle,
			EventDate:    entrant.EventDate,
			RegisteredAt: entrant.CreatedAt,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type createRSVPRequest struct {
	Email string `json:"email"`
}

type createRSVPResponse struct {
	RaffleCode   string    `json:"raffle_code"`
	EventTitle   string    `json:"event_title"`
	EventDate    string    `json:"event_date"`
	RegisteredAt time.Time `json:"registered_at"`
}
