package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secops-lab/incidentdesk/pkg/domain/interfaces"
	"github.com/secops-lab/incidentdesk/pkg/repository/firestore"
)

// newFirestoreRepo builds a Firestore-backed repository for integration tests.
// Skipped unless FIRESTORE_PROJECT_ID is set. Each call gets its own
// collection prefix so parallel runs against a shared project stay isolated.
func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("FIRESTORE_DATABASE_ID")

	prefix := fmt.Sprintf("test-%d-", time.Now().UnixNano())
	repo, err := firestore.New(context.Background(), projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()

	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Logf("failed to close firestore client: %v", err)
		}
	})

	return repo
}
