package documents

import "time"

// Item is the read-only projection of one stored object returned by listings.
// It is computed on every request and never cached.
type Item struct {
	Key               string        `json:"key"`
	Size              int64         `json:"size"`
	LastModified      *time.Time    `json:"lastModified"`
	Type              Kind          `json:"type"`
	FileName          string        `json:"fileName"`
	DownloadURL       string        `json:"downloadUrl"`
	SignedDownloadURL string        `json:"signedDownloadUrl"`
	Metadata          *ItemMetadata `json:"metadata,omitempty"`
}

// ItemMetadata is the projection read from a JSON artifact's body.
type ItemMetadata struct {
	OriginalFileName string `json:"originalFileName,omitempty"`
	CompanyName      string `json:"companyName,omitempty"`
	RoleTitle        string `json:"roleTitle,omitempty"`
	UploadedAt       string `json:"uploadedAt,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

// Listing is an aggregated listing. HasMore is set when any scanned prefix was truncated.
type Listing struct {
	Items   []Item
	HasMore bool
}

// ClearResult reports the outcome of deleting every object.
type ClearResult struct {
	DeletedCount int
	Errors       []DeleteFailure
}

// DeleteFailure names one object a batch delete left behind.
type DeleteFailure struct {
	Key     string `json:"key"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
