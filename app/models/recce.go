package models

import "time"

// RecceUpload is a site-reconnaissance file attached to an optional project.
type RecceUpload struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Project      string    `json:"project,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	FileRef      string    `json:"file_ref"`
	OriginalName string    `json:"original_name"`
}
