package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/sleeplog/internal/api"
	"github.com/claude/sleeplog/internal/models"
	"github.com/claude/sleeplog/internal/service"
	"github.com/claude/sleeplog/internal/sleepstats"
)

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"testMessage": "Hello world!"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateSleepLog(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var body api.CreateSleepLogRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	bed, wake, err := body.Times()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	l, err := s.svc.CreateSleepLog(r.Context(), uid, service.CreateSleepLogRequest{
		BedTime:        bed,
		WakeTime:       wake,
		MorningFeeling: body.Feeling(),
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.NewSleepLogResponse(l))
}

func (s *Server) handleLastNight(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	l, err := s.svc.LastNightSleep(r.Context(), uid)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewSleepLogResponse(l))
}

func (s *Server) handleAverages(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	from, to, explicit, err := parseDateRange(r, s.svc.Today())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var avg sleepstats.SleepAverages
	if explicit {
		avg, err = s.svc.AveragesBetween(r.Context(), uid, from, to)
	} else {
		avg, err = s.svc.Averages(r.Context(), uid)
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewSleepAveragesResponse(avg))
}

// writeServiceError maps service sentinels to HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}

// parseDateRange reads the optional from/to query parameters (YYYY-MM-DD).
// explicit is false when neither is given. A lone from runs to today; a lone
// to is an error.
func parseDateRange(r *http.Request, today time.Time) (from, to time.Time, explicit bool, err error) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	if fromStr == "" && toStr == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	if fromStr == "" {
		return time.Time{}, time.Time{}, false, errors.New("to requires from")
	}

	from, err = models.ParseDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if toStr == "" {
		to = today
	} else {
		to, err = models.ParseDate(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
	}
	return from, to, true, nil
}
