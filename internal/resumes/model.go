package resumes

import "time"

// Resume is an uploaded file owned by a user.
type Resume struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	FileURL    string    `json:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// NewResume is the input to Repo.Create.
type NewResume struct {
	UserID  int64
	FileURL string
}

// Upload is a file received by the intake endpoint.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}
