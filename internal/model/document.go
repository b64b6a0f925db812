package model

import "time"

// Document is an uploaded plain-text file together with its extracted content.
// It carries no persistence tags and is shared by the HTTP, service and repository layers.
type Document struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	Content     string    `json:"content"`
	StoragePath string    `json:"storage_path,omitempty"`
	UploadDate  time.Time `json:"upload_date"`
}
