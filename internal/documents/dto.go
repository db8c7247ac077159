package documents

type listResponse struct {
	Documents []Item `json:"documents"`
	Total     int    `json:"total"`
	HasMore   bool   `json:"hasMore"`
	Message   string `json:"message,omitempty"`
}

type clearAllResponse struct {
	Message      string          `json:"message"`
	DeletedCount int             `json:"deletedCount"`
	Errors       []DeleteFailure `json:"errors,omitempty"`
}

// NotConfiguredMessage is shown when listings degrade to empty without storage.
const NotConfiguredMessage = "Object storage is not configured; no documents are available."
