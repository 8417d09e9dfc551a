package containers

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/billed-app/billed/internal/dom"
	"github.com/billed-app/billed/internal/models"
	"github.com/billed-app/billed/internal/routes"
	"github.com/billed-app/billed/internal/session"
	"github.com/billed-app/billed/internal/store"
)

// ErrNoUpload is returned when the form is submitted before a receipt upload
// has produced a bill key.
var ErrNoUpload = errors.New("no uploaded receipt to attach")

// WorkflowState tracks the two-phase new-bill submission.
type WorkflowState int

const (
	StateEmpty WorkflowState = iota
	StateFileSelected
	StateUploading
	StateUploaded
	StateSubmitting
	StateSubmitted
	// StateFailed is recoverable: the user may pick a file again or
	// resubmit.
	StateFailed
)

func (s WorkflowState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFileSelected:
		return "file-selected"
	case StateUploading:
		return "uploading"
	case StateUploaded:
		return "uploaded"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// FormValues are the new-bill form fields as entered. Required-field
// enforcement is the surrounding form's job; only the file extension rule
// and the upload-before-submit ordering are enforced here.
type FormValues struct {
	Type       string
	Name       string
	Date       string
	Amount     float64
	VAT        string
	Pct        string
	Commentary string
}

// NewBill drives the upload-then-finalize workflow for one form instance.
// Each instance owns its upload state exclusively; nothing is shared across
// instances.
type NewBill struct {
	store      store.Store
	sessions   *session.Manager
	onNavigate func(routes.ID)
	doc        dom.Document

	state    WorkflowState
	fileURL  string
	fileName string
	billID   string
}

// NewNewBill creates the new-bill container. st may be nil; the upload then
// fails with ErrNoStore and the workflow never reaches a submittable state.
func NewNewBill(st store.Store, sessions *session.Manager, onNavigate func(routes.ID), doc dom.Document) *NewBill {
	return &NewBill{store: st, sessions: sessions, onNavigate: onNavigate, doc: doc, state: StateEmpty}
}

// State returns the current workflow state.
func (n *NewBill) State() WorkflowState {
	return n.state
}

// HandleFileChange validates the selected receipt and uploads it right away.
// Only jpg, jpeg and png files are accepted (extension compared
// case-insensitively); anything else clears the file input and notifies the
// user without touching the store. An upload rejection leaves the workflow
// in StateFailed with no bill key recorded.
func (n *NewBill) HandleFileChange(ctx context.Context, fileName string, content []byte) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		if n.doc != nil {
			n.doc.SetField("file", "")
			n.doc.Alert("Seuls les fichiers jpg, jpeg et png sont acceptés.")
		}
		return nil
	}
	n.state = StateFileSelected

	if n.store == nil {
		return ErrNoStore
	}

	email := ""
	if user, ok := n.sessions.User(); ok {
		email = user.Email
	}

	n.state = StateUploading
	upload, err := n.store.Bills().UploadReceipt(ctx, store.Receipt{
		FileName: fileName,
		Content:  content,
		Email:    email,
	})
	if err != nil {
		slog.Error("receipt upload failed", "file", fileName, "error", err)
		n.state = StateFailed
		return err
	}

	n.fileURL = upload.FileURL
	n.fileName = fileName
	n.billID = upload.Key
	n.state = StateUploaded
	return nil
}

// HandleSubmit finalizes the bill from the form values plus the stored
// upload result and the session email, then navigates back to the bill
// list. Submitting before a successful upload does nothing but return
// ErrNoUpload. A store rejection keeps the user on the form; the uploaded
// file is not rolled back.
func (n *NewBill) HandleSubmit(ctx context.Context, form FormValues) error {
	if n.billID == "" {
		slog.Warn("bill submit ignored, no receipt uploaded yet")
		return ErrNoUpload
	}

	email := ""
	if user, ok := n.sessions.User(); ok {
		email = user.Email
	}
	pct := form.Pct
	if pct == "" {
		pct = "20"
	}

	bill := models.Bill{
		ID:         n.billID,
		Email:      email,
		Type:       form.Type,
		Name:       form.Name,
		Date:       form.Date,
		Amount:     form.Amount,
		VAT:        form.VAT,
		Pct:        pct,
		Commentary: form.Commentary,
		FileURL:    n.fileURL,
		FileName:   n.fileName,
		Status:     models.StatusPending,
	}

	n.state = StateSubmitting
	if _, err := n.store.Bills().FinalizeBill(ctx, bill); err != nil {
		slog.Error("bill submission failed", "bill_id", n.billID, "error", err)
		n.state = StateFailed
		return err
	}

	n.state = StateSubmitted
	if n.onNavigate != nil {
		n.onNavigate(routes.Bills)
	}
	return nil
}
