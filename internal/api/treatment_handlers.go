package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/odontosys/clinic-api/internal/treatment"
)

func createTreatmentPlanHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		var req TreatmentPlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.Create(r.Context(), patientID, treatment.CreateRequest{
			Tooth:      req.Tooth,
			Procedure:  req.Procedure,
			Value:      req.Value,
			TotalValue: req.TotalValue,
			Notes:      req.Notes,
		})
		if err != nil {
			handleTreatmentError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toTreatmentPlanResponse(p))
	}
}

func updateTreatmentPlanHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_plan_id", "id must be a valid UUID")
			return
		}

		var req UpdateTreatmentPlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.Update(r.Context(), id, treatment.UpdateRequest{
			Tooth:      req.Tooth,
			Procedure:  req.Procedure,
			Value:      req.Value,
			TotalValue: req.TotalValue,
			Notes:      req.Notes,
		})
		if err != nil {
			handleTreatmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTreatmentPlanResponse(p))
	}
}

func updateTreatmentPlanStatusHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_plan_id", "id must be a valid UUID")
			return
		}

		var req UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		status, err := treatment.ParseStatus(req.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
			return
		}

		p, err := svc.UpdateStatus(r.Context(), id, status, req.Reason)
		if err != nil {
			handleTreatmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTreatmentPlanResponse(p))
	}
}

func activateTreatmentPlanHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_plan_id", "id must be a valid UUID")
			return
		}

		p, err := svc.Activate(r.Context(), id)
		if err != nil {
			handleTreatmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTreatmentPlanResponse(p))
	}
}

func completeTreatmentPlanHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_plan_id", "id must be a valid UUID")
			return
		}

		p, err := svc.Complete(r.Context(), id)
		if err != nil {
			handleTreatmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTreatmentPlanResponse(p))
	}
}

func cancelTreatmentPlanHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_plan_id", "id must be a valid UUID")
			return
		}

		var req CancelTreatmentPlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.Cancel(r.Context(), id, req.Reason)
		if err != nil {
			handleTreatmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTreatmentPlanResponse(p))
	}
}

func getTreatmentPlanHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_plan_id", "id must be a valid UUID")
			return
		}

		p, err := svc.Get(r.Context(), id)
		if err != nil {
			handleTreatmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTreatmentPlanResponse(p))
	}
}

func deleteTreatmentPlanHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_plan_id", "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			handleTreatmentError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func listTreatmentPlansByPatientHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		plans, err := svc.ListByPatient(r.Context(), patientID)
		if err != nil {
			handleTreatmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTreatmentPlanResponses(plans))
	}
}

func treatmentSummaryHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		summary, err := svc.PatientSummary(r.Context(), patientID)
		if err != nil {
			handleTreatmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, TreatmentSummaryResponse{
			PatientID:  summary.PatientID,
			Plans:      toTreatmentPlanResponses(summary.Plans),
			GrandTotal: summary.GrandTotal,
		})
	}
}

func listTreatmentPlansHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		procedure := r.URL.Query().Get("procedure")
		if procedure == "" {
			writeError(w, http.StatusBadRequest, "invalid_procedure", "procedure query parameter is required")
			return
		}

		plans, err := svc.SearchByProcedure(r.Context(), procedure)
		if err != nil {
			handleTreatmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTreatmentPlanResponses(plans))
	}
}

func listActiveTreatmentPlansHandler(svc *treatment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plans, err := svc.ListActive(r.Context())
		if err != nil {
			handleTreatmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTreatmentPlanResponses(plans))
	}
}

func handleTreatmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, treatment.ErrNotFound):
		writeError(w, http.StatusNotFound, "treatment_plan_not_found", err.Error())
	case errors.Is(err, treatment.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, treatment.ErrTerminalStatus):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, treatment.ErrNotEditable):
		writeError(w, http.StatusConflict, "plan_not_editable", err.Error())
	case errors.Is(err, treatment.ErrInvalidTooth),
		errors.Is(err, treatment.ErrReasonRequired),
		errors.Is(err, treatment.ErrProcedureRequired),
		errors.Is(err, treatment.ErrUnknownStatus):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
