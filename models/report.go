package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportStatus is the review state of a report.
type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusReviewed ReportStatus = "reviewed"
	StatusResolved ReportStatus = "resolved"
)

// Valid reports whether s is one of the enumerated statuses.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusResolved:
		return true
	}
	return false
}

// ReportType distinguishes text-only reports from ones with photo evidence.
type ReportType string

const (
	ReportTypeText  ReportType = "text"
	ReportTypePhoto ReportType = "photo"
)

func (t ReportType) Valid() bool {
	return t == ReportTypeText || t == ReportTypePhoto
}

// Priority of a drone task assignment.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Image is one uploaded photo: the public URL plus the storage file id,
// kept together so insertion order is preserved.
type Image struct {
	URL    string `bson:"url"    json:"url"`
	FileID string `bson:"fileId" json:"fileId"`
}

// Location is the report's coordinates. Both values are required and finite.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Assignment is the drone-task sub-document attached by an admin.
// It is written as a whole: if AssignedDrone is set, AssignedAt and
// AssignedBy are set too. Re-assignment replaces the previous value.
type Assignment struct {
	AssignedDrone   string             `bson:"assignedDrone"             json:"assignedDrone"`
	Priority        Priority           `bson:"priority"                  json:"priority"`
	Deadline        *time.Time         `bson:"deadline,omitempty"        json:"deadline,omitempty"`
	AssignmentNotes string             `bson:"assignmentNotes,omitempty" json:"assignmentNotes,omitempty"`
	AssignedAt      time.Time          `bson:"assignedAt"                json:"assignedAt"`
	AssignedBy      primitive.ObjectID `bson:"assignedBy"                json:"assignedBy"`
}

// Report — a citizen-submitted observation with location and optional photos.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"        json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId"              json:"ownerId"`
	Title       string             `bson:"title"                json:"title"`
	Description string             `bson:"description"          json:"description"`
	Images      []Image            `bson:"images,omitempty"     json:"images,omitempty"`
	ReportType  ReportType         `bson:"reportType"           json:"reportType"`
	Location    Location           `bson:"location"             json:"location"`
	Status      ReportStatus       `bson:"status"               json:"status"`
	Assignment  *Assignment        `bson:"assignment,omitempty" json:"assignment,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"            json:"createdAt"`

	// Injected-only (NOT stored in Mongo): display details resolved from
	// the users collection on single-report reads.
	Owner          *UserRef `bson:"-" json:"owner,omitempty"`
	AssignedByUser *UserRef `bson:"-" json:"assignedByUser,omitempty"`
}
