package notify

import (
	"strings"
	"testing"

	"flamtunes/model"
)

func sampleSubmission() *model.Submission {
	return &model.Submission{
		ID:           5,
		ArtistName:   "The Test Pilots",
		ContactEmail: "sam@example.com",
		TrackTitle:   "Night Drive",
	}
}

func TestSubmissionStatusMessageApproved(t *testing.T) {
	msg, ok := SubmissionStatusMessage(sampleSubmission(), model.StatusApproved, "", "https://flamtunes.com")
	if !ok {
		t.Fatal("expected a message for APPROVED")
	}

	if msg.To != "sam@example.com" {
		t.Errorf("to = %q", msg.To)
	}
	if msg.Subject != "Your Track Has Been Approved!" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Night Drive") || !strings.Contains(msg.Text, "Night Drive") {
		t.Error("track title missing from body")
	}
	if !strings.Contains(msg.HTML, "https://flamtunes.com/artist/dashboard") {
		t.Error("dashboard link missing")
	}
}

func TestSubmissionStatusMessageNotes(t *testing.T) {
	msg, ok := SubmissionStatusMessage(sampleSubmission(), model.StatusRejected, "vocals clip at 1:32", "https://flamtunes.com")
	if !ok {
		t.Fatal("expected a message for REJECTED")
	}
	if !strings.Contains(msg.HTML, "vocals clip at 1:32") || !strings.Contains(msg.Text, "vocals clip at 1:32") {
		t.Error("admin notes missing from body")
	}
}

func TestSubmissionStatusMessageEscapesHTML(t *testing.T) {
	sub := sampleSubmission()
	sub.ArtistName = "<script>alert(1)</script>"

	msg, ok := SubmissionStatusMessage(sub, model.StatusUnderReview, "<b>bold</b>", "https://flamtunes.com")
	if !ok {
		t.Fatal("expected a message for UNDER_REVIEW")
	}
	if strings.Contains(msg.HTML, "<script>") || strings.Contains(msg.HTML, "<b>bold</b>") {
		t.Error("user input not escaped in HTML body")
	}
}

func TestSubmissionStatusMessageSkipsPending(t *testing.T) {
	if _, ok := SubmissionStatusMessage(sampleSubmission(), model.StatusPending, "", ""); ok {
		t.Error("PENDING should not produce a notification")
	}
}
