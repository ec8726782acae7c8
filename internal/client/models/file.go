package models

// SentFile is one row of the sender's transfer history.
type SentFile struct {
	FileID         string `json:"file_id"`
	FileName       string `json:"file_name"`
	RecipientEmail string `json:"recipient_email"`
	ExpirationDate string `json:"expiration_date"`
	CreatedAt      string `json:"created_at"`
}

// PendingFile is a share addressed to the current user that has not been
// accepted yet (access password not supplied). SharedID identifies the
// share grant, not the file itself.
type PendingFile struct {
	FileID         string `json:"file_id"`
	SharedID       string `json:"shared_id"`
	FileName       string `json:"file_name"`
	SenderEmail    string `json:"sender_email"`
	ExpirationDate string `json:"expiration_date"`
	CreatedAt      string `json:"created_at"`
}

// ReceivedFile is an accepted share, available for download.
type ReceivedFile struct {
	FileID         string `json:"file_id"`
	SharedID       string `json:"shared_id"`
	FileName       string `json:"file_name"`
	SenderEmail    string `json:"sender_email"`
	ExpirationDate string `json:"expiration_date"`
	CreatedAt      string `json:"created_at"`
}
