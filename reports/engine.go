package reports

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"skywatch/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxImages  = 5
	titleLimit = 50
)

// UploadResult is the stable location assigned to an uploaded image.
type UploadResult struct {
	URL    string
	FileID string
}

// Uploader stores raw image bytes under the given name. Invoked only
// during submission; a failure aborts the whole submission.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (UploadResult, error)
}

// Identity is the resolved caller passed explicitly into every operation.
type Identity struct {
	ID   primitive.ObjectID
	Role models.Role
}

func (id Identity) IsAdmin() bool { return id.Role == models.RoleAdmin }

// Engine owns the report lifecycle: submission, status transitions and
// drone-task assignment, with the authorization and validation gates
// around each. It holds no mutable state of its own; everything lives in
// the Store.
type Engine struct {
	Store     Store
	Uploader  Uploader
	Directory Directory
	Now       func() time.Time
}

func NewEngine(store Store, up Uploader, dir Directory) *Engine {
	return &Engine{Store: store, Uploader: up, Directory: dir, Now: time.Now}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// ImageInput is one attached photo from a submission request.
type ImageInput struct {
	Filename string
	Data     []byte
}

// SubmitInput is the payload of a report submission.
type SubmitInput struct {
	Title       string
	Description string
	Lat         float64
	Lng         float64
	ReportType  string
	Images      []ImageInput
}

// Submit validates the payload, uploads any images and creates the report
// with status pending. Images are uploaded sequentially in input order so a
// failure is attributed to one file; the report is only inserted after
// every upload has succeeded, so a failed submission persists nothing.
func (e *Engine) Submit(ctx context.Context, ownerID primitive.ObjectID, in SubmitInput) (*models.Report, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, invalidf("Description is required")
	}
	if !finite(in.Lat) || !finite(in.Lng) {
		return nil, invalidf("Location lat and lng must be valid numbers")
	}
	kind := models.ReportTypeText
	if in.ReportType != "" {
		kind = models.ReportType(in.ReportType)
		if !kind.Valid() {
			return nil, invalidf("Invalid reportType. Must be one of: text, photo")
		}
	}
	if len(in.Images) > maxImages {
		return nil, invalidf("At most %d images are allowed per report", maxImages)
	}

	var images []models.Image
	for _, img := range in.Images {
		name := uuid.NewString() + "-" + img.Filename
		res, err := e.Uploader.Upload(ctx, img.Data, name)
		if err != nil {
			return nil, &UploadError{Filename: img.Filename, Err: err}
		}
		images = append(images, models.Image{URL: res.URL, FileID: res.FileID})
	}

	title := in.Title
	if title == "" {
		title = truncate(in.Description, titleLimit)
	}

	r := &models.Report{
		OwnerID:     ownerID,
		Title:       title,
		Description: in.Description,
		Images:      images,
		ReportType:  kind,
		Location:    models.Location{Lat: in.Lat, Lng: in.Lng},
		Status:      models.StatusPending,
		CreatedAt:   e.now(),
	}
	created, err := e.Store.Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return created, nil
}

// ListOwn returns the caller's reports, newest first.
func (e *Engine) ListOwn(ctx context.Context, callerID primitive.ObjectID) ([]models.Report, error) {
	out, err := e.Store.FindByOwner(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list own reports: %w", err)
	}
	return out, nil
}

// ListAll returns every report, newest first. Admin only.
func (e *Engine) ListAll(ctx context.Context, caller Identity) ([]models.Report, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	out, err := e.Store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return out, nil
}

// GetByID returns one report. Admins see every report; other callers only
// their own. This ownership check must hold for any future extension of
// report visibility.
func (e *Engine) GetByID(ctx context.Context, caller Identity, id primitive.ObjectID) (*models.Report, error) {
	r, err := e.Store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	if r == nil {
		return nil, ErrNotFound
	}
	if !caller.IsAdmin() && r.OwnerID != caller.ID {
		return nil, ErrForbidden
	}
	e.resolveUsers(ctx, r)
	return r, nil
}

// UpdateStatus sets the report's status and nothing else. Any status may
// move to any other status; resolved is not a terminal state.
func (e *Engine) UpdateStatus(ctx context.Context, caller Identity, id primitive.ObjectID, status string) (*models.Report, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	st := models.ReportStatus(status)
	if !st.Valid() {
		return nil, invalidf("Invalid status. Must be one of: pending, reviewed, resolved")
	}
	r, err := e.Store.SetStatus(ctx, id, st)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

// AssignInput is the payload of a drone-task assignment.
type AssignInput struct {
	AssignedDrone   string
	Priority        string
	Deadline        string
	AssignmentNotes string
}

// AssignTask writes the assignment sub-document as a whole, leaving status
// untouched. Re-assignment overwrites the previous assignment. The
// deadline's calendar day (server local time) must not precede today's.
func (e *Engine) AssignTask(ctx context.Context, caller Identity, id primitive.ObjectID, in AssignInput) (*models.Report, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(in.AssignedDrone) == "" {
		return nil, invalidf("Assigned drone is required")
	}
	priority := models.PriorityMedium
	if in.Priority != "" {
		priority = models.Priority(in.Priority)
		if !priority.Valid() {
			return nil, invalidf("Invalid priority. Must be one of: low, medium, high, urgent")
		}
	}

	var deadline *time.Time
	if in.Deadline != "" {
		d, err := parseDeadline(in.Deadline)
		if err != nil {
			return nil, invalidf("Invalid deadline date format")
		}
		if dayBefore(d, e.now()) {
			return nil, invalidf("Deadline cannot be before today")
		}
		deadline = &d
	}

	a := models.Assignment{
		AssignedDrone:   in.AssignedDrone,
		Priority:        priority,
		Deadline:        deadline,
		AssignmentNotes: in.AssignmentNotes,
		AssignedAt:      e.now(),
		AssignedBy:      caller.ID,
	}
	r, err := e.Store.SetAssignment(ctx, id, a)
	if err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}
	if r == nil {
		return nil, ErrNotFound
	}
	e.resolveUsers(ctx, r)
	return r, nil
}

// resolveUsers attaches owner and assigner display details. Best effort:
// a lookup failure leaves the raw ids in place.
func (e *Engine) resolveUsers(ctx context.Context, r *models.Report) {
	if e.Directory == nil {
		return
	}
	if ref, err := e.Directory.Lookup(ctx, r.OwnerID); err == nil && ref != nil {
		r.Owner = ref
	}
	if r.Assignment != nil {
		if ref, err := e.Directory.Lookup(ctx, r.Assignment.AssignedBy); err == nil && ref != nil {
			r.AssignedByUser = ref
		}
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDeadline accepts RFC3339 timestamps or plain dates. Date-only
// values are interpreted in server local time so the calendar-day check
// below matches what the admin meant.
func parseDeadline(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range deadlineLayouts {
		d, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return d, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// dayBefore reports whether d's calendar day precedes ref's, both taken
// in ref's location. A deadline later today is allowed.
func dayBefore(d, ref time.Time) bool {
	dy, dm, dd := d.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	day := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	refDay := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	return day.Before(refDay)
}
