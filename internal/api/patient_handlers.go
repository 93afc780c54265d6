package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odontosys/clinic-api/internal/patient"
)

func createPatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.Create(r.Context(), patient.CreateRequest{
			Name:             req.Name,
			Document:         req.Document,
			RG:               req.RG,
			Email:            req.Email,
			Phone:            req.Phone,
			BirthDate:        req.BirthDate,
			Sex:              req.Sex,
			MaritalStatus:    req.MaritalStatus,
			Occupation:       req.Occupation,
			Insurance:        req.Insurance,
			InsuranceCard:    req.InsuranceCard,
			Address:          req.Address,
			EmergencyContact: req.EmergencyContact,
			Guardian:         req.Guardian,
			RecordNumber:     req.RecordNumber,
			ReferredBy:       req.ReferredBy,
			Notes:            req.Notes,
		})
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

func updatePatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		var req UpdatePatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.Update(r.Context(), id, patient.UpdateRequest{
			Name:             req.Name,
			Document:         req.Document,
			RG:               req.RG,
			Email:            req.Email,
			Phone:            req.Phone,
			BirthDate:        req.BirthDate,
			Sex:              req.Sex,
			MaritalStatus:    req.MaritalStatus,
			Occupation:       req.Occupation,
			Insurance:        req.Insurance,
			InsuranceCard:    req.InsuranceCard,
			Address:          req.Address,
			EmergencyContact: req.EmergencyContact,
			Guardian:         req.Guardian,
			RecordNumber:     req.RecordNumber,
			ReferredBy:       req.ReferredBy,
			Notes:            req.Notes,
		})
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func updatePatientStatusHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		var req UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		status, ok := patient.ParseStatus(req.Status)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_status", "status must be active or inactive")
			return
		}

		if err := svc.SetStatus(r.Context(), id, status); err != nil {
			handlePatientError(w, err)
			return
		}

		p, err := svc.Get(r.Context(), id)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func getPatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		p, err := svc.Get(r.Context(), id)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func getPatientByDocumentHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := chi.URLParam(r, "document")
		if doc == "" {
			writeError(w, http.StatusBadRequest, "invalid_document", "document is required")
			return
		}

		p, err := svc.GetByDocument(r.Context(), doc)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func deletePatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			handlePatientError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func listPatientsHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patients, err := svc.List(r.Context())
		if err != nil {
			handlePatientError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponses(patients))
	}
}

func listPatientsPagedHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		result, err := svc.ListPaged(r.Context(), page, size)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, PatientPageResponse{
			Items: toPatientResponses(result.Items),
			Total: result.Total,
			Page:  page,
			Size:  len(result.Items),
		})
	}
}

func searchPatientsHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			writeError(w, http.StatusBadRequest, "invalid_name", "name query parameter is required")
			return
		}

		patients, err := svc.SearchByName(r.Context(), name)
		if err != nil {
			handlePatientError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponses(patients))
	}
}

func saveAnamnesisHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		var req patient.Anamnesis
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		saved, err := svc.SaveAnamnesis(r.Context(), id, req)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, saved)
	}
}

func getAnamnesisHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		a, err := svc.GetAnamnesis(r.Context(), id)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, a)
	}
}

func handlePatientError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, patient.ErrNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, patient.ErrNoAnamnesis):
		writeError(w, http.StatusNotFound, "anamnesis_not_found", err.Error())
	case errors.Is(err, patient.ErrDuplicateDocument):
		writeError(w, http.StatusConflict, "duplicate_document", err.Error())
	case errors.Is(err, patient.ErrNameRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
