package handlers

import (
	"delivery-emissions-service/internal/api/dto"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/session"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type SessionHandler struct {
	Registry *session.Registry
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.Registry.Create()
	writeJSON(w, r, http.StatusCreated, dto.SessionResponse{
		SessionID: s.ID,
		CreatedAt: s.CreatedAt,
	})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r, h.Registry)
	if !ok {
		return
	}

	res := dto.SessionResponse{SessionID: s.ID, CreatedAt: s.CreatedAt}
	_ = s.With(func(l *domain.SessionLedger) error {
		res.Deliveries = l.Len()
		return nil
	})
	writeJSON(w, r, http.StatusOK, res)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Registry.Delete(chi.URLParam(r, "sessionID")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sessionFrom resolves the {sessionID} path parameter, writing a 404 on miss.
func sessionFrom(w http.ResponseWriter, r *http.Request, reg *session.Registry) (*session.Session, bool) {
	s, err := reg.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeDomainError(w, r, err)
		return nil, false
	}
	return s, true
}
