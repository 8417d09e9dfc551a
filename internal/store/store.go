// Package store defines the document-store client capability the page
// containers consume. The store itself is remote and out of scope; this
// package only fixes the contract, with implementations under memstore
// (in-memory, seeded) and httpstore (REST).
package store

import (
	"context"

	"github.com/billed-app/billed/internal/models"
)

// Receipt is the file handed to UploadReceipt together with its owner.
type Receipt struct {
	FileName string
	Content  []byte
	Email    string
}

// Upload is the result of a successful receipt upload: where the file landed
// and the identifier the finalized bill must be keyed by.
type Upload struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// BillsClient is the bills collection of the document store.
//
// Bill submission is two-phase and not atomic: UploadReceipt first, then
// FinalizeBill keyed by the upload. A crash between the phases leaves an
// orphaned uploaded file with no bill record; no compensating transaction
// exists and callers must not invent one.
type BillsClient interface {
	// List returns every bill record visible to the authenticated user.
	List(ctx context.Context) ([]models.Bill, error)

	// UploadReceipt stores the receipt file and returns its location plus
	// the key for the finalize phase.
	UploadReceipt(ctx context.Context, receipt Receipt) (Upload, error)

	// FinalizeBill persists the completed bill record under the key obtained
	// at upload time and returns the stored record.
	FinalizeBill(ctx context.Context, bill models.Bill) (models.Bill, error)
}

// Store is the document store client injected into containers.
//
// All operations may fail with an error carrying a human-readable message
// ("Erreur 404", "Erreur 500", ...). Containers surface the message verbatim
// and never interpret codes.
type Store interface {
	Bills() BillsClient

	// Login exchanges credentials for a signed session token.
	Login(ctx context.Context, email, password string) (string, error)
}
