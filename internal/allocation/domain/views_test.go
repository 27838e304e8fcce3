package domain

import (
	"context"
	"testing"
)

func TestEligibleProjects(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	mustPut(t, store.PutProject(ctx, openProject("p1")))

	hidden := openProject("p2")
	hidden.Name = "Hidden Haven"
	hidden.Visible = false
	mustPut(t, store.PutProject(ctx, hidden))

	closed := openProject("p3")
	closed.Name = "Closed Corner"
	closed.OpenDate = testNow.AddDate(0, 1, 0)
	closed.CloseDate = testNow.AddDate(0, 2, 0)
	mustPut(t, store.PutProject(ctx, closed))

	mustPut(t, store.PutApplicant(ctx, singleApplicant("u1")))

	eligible, err := svc.EligibleProjects(ctx, "u1", Criteria{})
	if err != nil {
		t.Fatalf("EligibleProjects: %v", err)
	}
	if len(eligible) != 1 {
		t.Fatalf("eligible projects = %d, want 1", len(eligible))
	}
	if eligible[0].Project.ID != "p1" {
		t.Errorf("eligible project = %s, want p1", eligible[0].Project.ID)
	}
	if eligible[0].Eligible != FlatTypeTwoRoom {
		t.Errorf("eligible flat = %s, want %s for a single applicant", eligible[0].Eligible, FlatTypeTwoRoom)
	}
}

func TestUserRequests(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	mustPut(t, store.PutProject(ctx, openProject("p1")))
	mustPut(t, store.PutApplicant(ctx, marriedApplicant("u1")))
	mustPut(t, store.PutApplicant(ctx, marriedApplicant("u2")))

	if _, err := svc.SubmitApplication(ctx, "u1", "p1", FlatTypeTwoRoom); err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}
	if _, err := svc.SubmitEnquiry(ctx, "u1", "p1", "carpark ratio?"); err != nil {
		t.Fatalf("SubmitEnquiry: %v", err)
	}
	if _, err := svc.SubmitApplication(ctx, "u2", "p1", FlatTypeTwoRoom); err != nil {
		t.Fatalf("SubmitApplication u2: %v", err)
	}

	requests, err := svc.UserRequests(ctx, "u1")
	if err != nil {
		t.Fatalf("UserRequests: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(requests))
	}
	for _, r := range requests {
		if r.UserID != "u1" {
			t.Errorf("request %s belongs to %s", r.ID, r.UserID)
		}
	}
}

func TestProjectEnquiries(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	mustPut(t, store.PutProject(ctx, openProject("p1")))
	mustPut(t, store.PutApplicant(ctx, marriedApplicant("u1")))

	if _, err := svc.SubmitApplication(ctx, "u1", "p1", FlatTypeTwoRoom); err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}
	enquiry, err := svc.SubmitEnquiry(ctx, "u2", "p1", "any east-facing units?")
	if err != nil {
		t.Fatalf("SubmitEnquiry: %v", err)
	}

	enquiries, err := svc.ProjectEnquiries(ctx, "p1")
	if err != nil {
		t.Fatalf("ProjectEnquiries: %v", err)
	}
	if len(enquiries) != 1 || enquiries[0].ID != enquiry.ID {
		t.Fatalf("enquiries = %v, want only %s", enquiries, enquiry.ID)
	}
}

func TestBookingReceipts(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedApproved(t, svc, store, FlatTypeThreeRoom)

	if err := svc.BookFlat(ctx, "off-1", "u1"); err != nil {
		t.Fatalf("BookFlat: %v", err)
	}

	receipts, err := svc.BookingReceipts(ctx, "off-1")
	if err != nil {
		t.Fatalf("BookingReceipts: %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("receipts = %d, want 1", len(receipts))
	}
	r := receipts[0]
	if r.ApplicantID != "u1" || r.ProjectID != "p1" {
		t.Errorf("receipt for %s/%s, want u1/p1", r.ApplicantID, r.ProjectID)
	}
	if r.FlatType != FlatTypeThreeRoom {
		t.Errorf("receipt flat = %s, want %s", r.FlatType, FlatTypeThreeRoom)
	}
	if r.Price != 450000 {
		t.Errorf("receipt price = %d, want 450000", r.Price)
	}
	if r.MaritalStatus != MaritalMarried || r.Age != 30 {
		t.Errorf("receipt profile = %s/%d", r.MaritalStatus, r.Age)
	}
}
