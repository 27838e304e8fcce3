package domain

import (
	"context"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
)

var testNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// seqIDs returns a generator producing prefix-1, prefix-2, ...
func seqIDs(prefix string) func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("%s-%d", prefix, n), nil
	}
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	svc := NewService(store, fixedClock, seqIDs("project"), seqIDs("request"))
	return svc, store
}

// openProject is a visible project whose window surrounds testNow.
func openProject(id string) Project {
	return Project{
		ID:            id,
		Name:          "Acacia Breeze " + id,
		Neighborhoods: []string{"Yishun"},
		Units:         map[FlatType]int{FlatTypeTwoRoom: 2, FlatTypeThreeRoom: 3},
		Prices:        map[FlatType]int{FlatTypeTwoRoom: 350000, FlatTypeThreeRoom: 450000},
		OpenDate:      testNow.AddDate(0, 0, -5),
		CloseDate:     testNow.AddDate(0, 0, 5),
		ManagerID:     "mgr-1",
		OfficerSlots:  3,
		Visible:       true,
	}
}

func marriedApplicant(id string) Applicant {
	return Applicant{UserID: id, Name: "Applicant " + id, Age: 30, MaritalStatus: MaritalMarried}
}

func singleApplicant(id string) Applicant {
	return Applicant{UserID: id, Name: "Applicant " + id, Age: 40, MaritalStatus: MaritalSingle}
}

func mustPut(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
}

func wantCode(t *testing.T, err error, code apperrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("want error code %s, got nil", code)
	}
	if got := apperrors.GetCode(err); got != code {
		t.Fatalf("want error code %s, got %s (%v)", code, got, err)
	}
}

func getApplicant(t *testing.T, store *memStore, userID string) Applicant {
	t.Helper()
	a, err := store.GetApplicant(context.Background(), userID)
	if err != nil {
		t.Fatalf("get applicant %s: %v", userID, err)
	}
	return a
}

func getProject(t *testing.T, store *memStore, projectID string) Project {
	t.Helper()
	p, err := store.GetProject(context.Background(), projectID)
	if err != nil {
		t.Fatalf("get project %s: %v", projectID, err)
	}
	return p
}

func getOfficer(t *testing.T, store *memStore, userID string) Officer {
	t.Helper()
	o, err := store.GetOfficer(context.Background(), userID)
	if err != nil {
		t.Fatalf("get officer %s: %v", userID, err)
	}
	return o
}

func getRequest(t *testing.T, store *memStore, requestID string) Request {
	t.Helper()
	r, err := store.GetRequest(context.Background(), requestID)
	if err != nil {
		t.Fatalf("get request %s: %v", requestID, err)
	}
	return r
}
