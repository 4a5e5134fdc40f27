package notify

import (
	"fmt"
	"html"

	"flamtunes/model"
)

// statusCopy is the per-decision subject line and lead paragraph.
var statusCopy = map[model.SubmissionStatus]struct {
	subject string
	message string
}{
	model.StatusApproved: {
		subject: "Your Track Has Been Approved!",
		message: `Great news! Your track %q has been approved and is now in rotation on Flam Tunes!`,
	},
	model.StatusRejected: {
		subject: "Update on Your Track Submission",
		message: `Unfortunately, your track %q was not approved for rotation at this time.`,
	},
	model.StatusUnderReview: {
		subject: "Your Track is Under Review",
		message: `Your track %q is currently being reviewed by our team.`,
	},
}

const emailFrame = `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1>Flam Tunes</h1>
      <h2>%s</h2>
      <p>Hi %s,</p>
      <p>%s</p>
      %s
      <p>You can view all your submissions and their status in your <a href="%s/artist/dashboard">artist dashboard</a>.</p>
      <p>Thank you for sharing your music with Flam Tunes!</p>
      <p>Best regards,<br>The Flam Tunes Team</p>
    </div>
  </body>
</html>`

// SubmissionStatusMessage builds the notification sent to an artist when a
// reviewer changes their submission's status. Returns false for statuses that
// carry no notification.
func SubmissionStatusMessage(sub *model.Submission, status model.SubmissionStatus, adminNotes, siteURL string) (Message, bool) {
	c, ok := statusCopy[status]
	if !ok {
		return Message{}, false
	}

	lead := fmt.Sprintf(c.message, sub.TrackTitle)

	notesHTML := ""
	notesText := ""
	if adminNotes != "" {
		notesHTML = fmt.Sprintf("<p><strong>Admin Notes:</strong> %s</p>", html.EscapeString(adminNotes))
		notesText = fmt.Sprintf("Admin Notes: %s\n\n", adminNotes)
	}

	htmlBody := fmt.Sprintf(emailFrame,
		c.subject, html.EscapeString(sub.ArtistName), html.EscapeString(lead), notesHTML, siteURL)
	textBody := fmt.Sprintf("%s\n\n%sView your dashboard: %s/artist/dashboard", lead, notesText, siteURL)

	return Message{
		To:      sub.ContactEmail,
		Subject: c.subject,
		HTML:    htmlBody,
		Text:    textBody,
	}, true
}
