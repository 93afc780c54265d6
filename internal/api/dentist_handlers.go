package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/odontosys/clinic-api/internal/dentist"
)

func createDentistHandler(svc *dentist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DentistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		d, err := svc.Create(r.Context(), dentist.CreateRequest{
			Name:      req.Name,
			CRO:       req.CRO,
			Specialty: req.Specialty,
			Phone:     req.Phone,
			Email:     req.Email,
		})
		if err != nil {
			handleDentistError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toDentistResponse(d))
	}
}

func updateDentistHandler(svc *dentist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_dentist_id", "id must be a valid UUID")
			return
		}

		var req UpdateDentistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		d, err := svc.Update(r.Context(), id, dentist.UpdateRequest{
			Name:      req.Name,
			CRO:       req.CRO,
			Specialty: req.Specialty,
			Phone:     req.Phone,
			Email:     req.Email,
		})
		if err != nil {
			handleDentistError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toDentistResponse(d))
	}
}

func getDentistHandler(svc *dentist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_dentist_id", "id must be a valid UUID")
			return
		}

		d, err := svc.Get(r.Context(), id)
		if err != nil {
			handleDentistError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toDentistResponse(d))
	}
}

func deleteDentistHandler(svc *dentist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_dentist_id", "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			handleDentistError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func deactivateDentistHandler(svc *dentist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_dentist_id", "id must be a valid UUID")
			return
		}

		if err := svc.Deactivate(r.Context(), id); err != nil {
			handleDentistError(w, err)
			return
		}

		d, err := svc.Get(r.Context(), id)
		if err != nil {
			handleDentistError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toDentistResponse(d))
	}
}

func listDentistsHandler(svc *dentist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dentists, err := svc.List(r.Context())
		if err != nil {
			handleDentistError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDentistResponses(dentists))
	}
}

func listActiveDentistsHandler(svc *dentist.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dentists, err := svc.ListActive(r.Context())
		if err != nil {
			handleDentistError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDentistResponses(dentists))
	}
}

func handleDentistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dentist.ErrNotFound):
		writeError(w, http.StatusNotFound, "dentist_not_found", err.Error())
	case errors.Is(err, dentist.ErrDuplicateCRO):
		writeError(w, http.StatusConflict, "duplicate_cro", err.Error())
	case errors.Is(err, dentist.ErrNameRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
