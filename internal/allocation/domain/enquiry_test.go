package domain

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
)

func TestSubmitEnquiry(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	mustPut(t, store.PutProject(ctx, openProject("p1")))

	enquiry, err := svc.SubmitEnquiry(ctx, "u1", "p1", "  is there a childcare centre nearby?  ")
	if err != nil {
		t.Fatalf("SubmitEnquiry: %v", err)
	}
	if enquiry.Type != RequestTypeEnquiry {
		t.Errorf("request type = %s, want %s", enquiry.Type, RequestTypeEnquiry)
	}
	if enquiry.Query != "is there a childcare centre nearby?" {
		t.Errorf("query = %q, want trimmed text", enquiry.Query)
	}
	if enquiry.State != RequestPending {
		t.Errorf("state = %s, want %s", enquiry.State, RequestPending)
	}
}

func TestSubmitEnquiryHiddenProject(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	p := openProject("p1")
	p.Visible = false
	mustPut(t, store.PutProject(ctx, p))

	_, err := svc.SubmitEnquiry(ctx, "u1", "p1", "anyone home?")
	wantCode(t, err, apperrors.CodeProjectNotVisible)
}

func TestEditEnquiry(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	mustPut(t, store.PutProject(ctx, openProject("p1")))

	enquiry, err := svc.SubmitEnquiry(ctx, "u1", "p1", "original question")
	if err != nil {
		t.Fatalf("SubmitEnquiry: %v", err)
	}
	edited, err := svc.EditEnquiry(ctx, "u1", enquiry.ID, "revised question")
	if err != nil {
		t.Fatalf("EditEnquiry: %v", err)
	}
	if edited.Query != "revised question" {
		t.Errorf("query = %q, want revised question", edited.Query)
	}

	_, err = svc.EditEnquiry(ctx, "u2", enquiry.ID, "hijacked")
	wantCode(t, err, apperrors.CodeEnquiryNotOwned)
}

func TestAnswerEnquiry(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	mustPut(t, store.PutProject(ctx, openProject("p1")))

	enquiry, err := svc.SubmitEnquiry(ctx, "u1", "p1", "when do keys arrive?")
	if err != nil {
		t.Fatalf("SubmitEnquiry: %v", err)
	}
	answered, err := svc.AnswerEnquiry(ctx, enquiry.ID, "estimated 2029 Q2")
	if err != nil {
		t.Fatalf("AnswerEnquiry: %v", err)
	}
	if answered.Answer != "estimated 2029 Q2" {
		t.Errorf("answer = %q", answered.Answer)
	}
	if answered.State != RequestDone {
		t.Errorf("state = %s, want %s", answered.State, RequestDone)
	}

	// Answered enquiries are frozen for everyone.
	_, err = svc.AnswerEnquiry(ctx, enquiry.ID, "second answer")
	wantCode(t, err, apperrors.CodeEnquiryAlreadyProcessed)
	_, err = svc.EditEnquiry(ctx, "u1", enquiry.ID, "too late")
	wantCode(t, err, apperrors.CodeEnquiryAlreadyProcessed)
	err = svc.DeleteEnquiry(ctx, "u1", enquiry.ID)
	wantCode(t, err, apperrors.CodeEnquiryAlreadyProcessed)
}

func TestDeleteEnquiry(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	mustPut(t, store.PutProject(ctx, openProject("p1")))

	enquiry, err := svc.SubmitEnquiry(ctx, "u1", "p1", "scrap this")
	if err != nil {
		t.Fatalf("SubmitEnquiry: %v", err)
	}

	err = svc.DeleteEnquiry(ctx, "u2", enquiry.ID)
	wantCode(t, err, apperrors.CodeEnquiryNotOwned)

	if err := svc.DeleteEnquiry(ctx, "u1", enquiry.ID); err != nil {
		t.Fatalf("DeleteEnquiry: %v", err)
	}
	if _, err := store.GetRequest(ctx, enquiry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("enquiry should be gone, got %v", err)
	}
}
