package domain

// EmailAttachment is a file attached to an outgoing email.
type EmailAttachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EmailMessage is a rendered email ready for dispatch.
type EmailMessage struct {
	To          string
	Subject     string
	HTMLBody    string
	TextBody    string
	Attachments []EmailAttachment
}
