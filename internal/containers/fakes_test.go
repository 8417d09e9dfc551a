package containers

import (
	"context"

	"github.com/billed-app/billed/internal/models"
	"github.com/billed-app/billed/internal/routes"
	"github.com/billed-app/billed/internal/store"
)

// fakeBillsClient records calls and returns whatever the test configured.
type fakeBillsClient struct {
	bills   []models.Bill
	listErr error

	upload     store.Upload
	uploadErr  error
	uploadReqs []store.Receipt

	finalized   []models.Bill
	finalizeErr error
}

func (f *fakeBillsClient) List(ctx context.Context) ([]models.Bill, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.bills, nil
}

func (f *fakeBillsClient) UploadReceipt(ctx context.Context, receipt store.Receipt) (store.Upload, error) {
	f.uploadReqs = append(f.uploadReqs, receipt)
	if f.uploadErr != nil {
		return store.Upload{}, f.uploadErr
	}
	return f.upload, nil
}

func (f *fakeBillsClient) FinalizeBill(ctx context.Context, bill models.Bill) (models.Bill, error) {
	if f.finalizeErr != nil {
		return models.Bill{}, f.finalizeErr
	}
	f.finalized = append(f.finalized, bill)
	return bill, nil
}

// fakeStore wraps a fakeBillsClient into a store.Store.
type fakeStore struct {
	billsClient *fakeBillsClient
	loginToken  string
	loginErr    error
}

func (f *fakeStore) Bills() store.BillsClient {
	return f.billsClient
}

func (f *fakeStore) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

// navRecorder captures navigation requests.
type navRecorder struct {
	ids []routes.ID
}

func (n *navRecorder) navigate(id routes.ID) {
	n.ids = append(n.ids, id)
}
