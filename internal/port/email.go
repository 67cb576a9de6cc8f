package port

import "context"

// EmailSender abstracts outbound email delivery.
type EmailSender interface {
	// SendTripReport delivers a generated trip report as a PDF attachment.
	SendTripReport(ctx context.Context, toEmail, toName, tripName string, reportPDF []byte) error
}
