package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"skywatch/reports"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxSubmissionBytes = 32 << 20 // whole multipart submission

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, errorResp{Message: msg})
}

// engineError maps engine errors to HTTP responses.
func engineError(w http.ResponseWriter, err error) {
	var ve *reports.ValidationError
	if errors.As(err, &ve) {
		errorJSON(w, ve.Msg, http.StatusBadRequest)
		return
	}
	var ue *reports.UploadError
	if errors.As(err, &ue) {
		errorJSON(w, fmt.Sprintf("Image upload failed for %s", ue.Filename), http.StatusInternalServerError)
		return
	}
	switch {
	case errors.Is(err, reports.ErrNotFound):
		errorJSON(w, "Report not found", http.StatusNotFound)
	case errors.Is(err, reports.ErrForbidden):
		errorJSON(w, "Access denied. You can only view your own reports.", http.StatusForbidden)
	default:
		errorJSON(w, "Server error", http.StatusInternalServerError)
	}
}

// reportID parses the {id} route param. A malformed id can never match a
// stored report, so it maps to not-found like any unknown id.
func reportID(r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return oid, err == nil
}

// handleSubmitReport accepts multipart/form-data (with up to 5 "images"
// files) or a plain JSON body for text-only reports.
func (a *App) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)

	in, err := parseSubmission(r)
	if err != nil {
		errorJSON(w, "bad request body", http.StatusBadRequest)
		return
	}

	// Uploads can take a while; give the whole submission a generous window.
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	report, err := a.engine.Submit(ctx, ident.ID, in)
	if err != nil {
		engineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reportResp{Message: "Report submitted successfully", Report: report})
}

// parseSubmission builds a SubmitInput from either body encoding.
// Unparseable coordinates become NaN so the engine rejects them with its
// own validation message.
func parseSubmission(r *http.Request) (reports.SubmitInput, error) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		var req submitReportReq
		if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxSubmissionBytes)).Decode(&req); err != nil {
			return reports.SubmitInput{}, err
		}
		return reports.SubmitInput{
			Title:       req.Title,
			Description: req.Description,
			Lat:         deref(req.Lat),
			Lng:         deref(req.Lng),
			ReportType:  req.ReportType,
		}, nil
	}

	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		return reports.SubmitInput{}, err
	}
	in := reports.SubmitInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Lat:         parseCoord(r.FormValue("lat")),
		Lng:         parseCoord(r.FormValue("lng")),
		ReportType:  r.FormValue("reportType"),
	}
	for _, fh := range r.MultipartForm.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return reports.SubmitInput{}, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return reports.SubmitInput{}, err
		}
		in.Images = append(in.Images, reports.ImageInput{Filename: fh.Filename, Data: data})
	}
	return in, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

func parseCoord(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// handleListOwnReports returns the caller's reports, newest first.
func (a *App) handleListOwnReports(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	out, err := a.engine.ListOwn(ctx, ident.ID)
	if err != nil {
		engineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportsResp{Reports: out})
}

// handleListAllReports returns every report, newest first. Admin only.
func (a *App) handleListAllReports(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	out, err := a.engine.ListAll(ctx, ident)
	if err != nil {
		engineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportsResp{Reports: out})
}

// handleGetReport returns one report: admins see all, users their own.
func (a *App) handleGetReport(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	oid, ok := reportID(r)
	if !ok {
		errorJSON(w, "Report not found", http.StatusNotFound)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report, err := a.engine.GetByID(ctx, ident, oid)
	if err != nil {
		engineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResp{Report: report})
}

// handleUpdateStatus sets the report's status only. Admin only.
func (a *App) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	oid, ok := reportID(r)
	if !ok {
		errorJSON(w, "Report not found", http.StatusNotFound)
		return
	}
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "bad json", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report, err := a.engine.UpdateStatus(ctx, ident, oid, req.Status)
	if err != nil {
		engineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResp{Message: "Report status updated successfully", Report: report})
}

// handleAssignTask writes the drone-task assignment. Admin only.
func (a *App) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	oid, ok := reportID(r)
	if !ok {
		errorJSON(w, "Report not found", http.StatusNotFound)
		return
	}
	var req assignTaskReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "bad json", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report, err := a.engine.AssignTask(ctx, ident, oid, reports.AssignInput{
		AssignedDrone:   req.AssignedDrone,
		Priority:        req.Priority,
		Deadline:        req.Deadline,
		AssignmentNotes: req.AssignmentNotes,
	})
	if err != nil {
		engineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResp{Message: "Task assigned successfully", Report: report})
}
