package main

import "skywatch/models"

// Request/response DTOs. Keep them minimal and explicit.

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResp struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    userPayload `json:"user"`
}

// submitReportReq is the JSON body for text-only submissions. Photo
// submissions arrive as multipart/form-data instead. Lat/Lng are pointers
// so a missing coordinate is distinguishable from 0.
type submitReportReq struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	ReportType  string   `json:"reportType,omitempty"`
}

type updateStatusReq struct {
	Status string `json:"status"`
}

type assignTaskReq struct {
	AssignedDrone   string `json:"assignedDrone"`
	Priority        string `json:"priority,omitempty"`
	Deadline        string `json:"deadline,omitempty"`
	AssignmentNotes string `json:"assignmentNotes,omitempty"`
}

type reportResp struct {
	Message string         `json:"message,omitempty"`
	Report  *models.Report `json:"report"`
}

type reportsResp struct {
	Reports []models.Report `json:"reports"`
}

type errorResp struct {
	Message string `json:"message"`
}
