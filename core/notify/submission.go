package notify

import (
	"flamtunes/model"
)

// SubmissionNotifier turns submission review outcomes into queued emails.
type SubmissionNotifier struct {
	Dispatcher *Dispatcher
	SiteURL    string
}

// StatusChanged queues the status email for the submitter. Statuses without
// copy (e.g. a reset to pending) are silently skipped.
func (n *SubmissionNotifier) StatusChanged(sub *model.Submission, status model.SubmissionStatus, adminNotes string) {
	msg, ok := SubmissionStatusMessage(sub, status, adminNotes, n.SiteURL)
	if !ok {
		return
	}
	n.Dispatcher.Dispatch(msg)
}
