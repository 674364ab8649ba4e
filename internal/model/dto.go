package model

// RunResult is the aggregate outcome of one import run, returned to the
// caller as the import response body.
type RunResult struct {
	Message         string         `json:"message"`
	Total           int            `json:"total"`
	Success         int            `json:"success"`
	Failed          int            `json:"failed"`
	Errors          []RowError     `json:"errors"`
	AccountsCreated int            `json:"accountsCreated"`
	AccountsFailed  int            `json:"accountsFailed"`
	AccountErrors   []AccountError `json:"accountErrors"`
	RequiresAuth    bool           `json:"requiresAuth"`
	TotalRecords    int            `json:"totalRecords"`
	EmailsSent      int            `json:"emailsSent,omitempty"`
}

// RetryRecord identifies one previously failed provisioning attempt.
type RetryRecord struct {
	RecordID string `json:"recordId"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RetryRequest struct {
	Records  []RetryRecord `json:"records"`
	Category string        `json:"category"`
}

type RetryResult struct {
	Message string         `json:"message"`
	Success int            `json:"success"`
	Failed  int            `json:"failed"`
	Errors  []AccountError `json:"errors"`
}

// CredentialJob is the payload enqueued for the notification worker after an
// account is provisioned. Delivery is fire-and-forget.
type CredentialJob struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	UserType   string `json:"user_type"`
	SchoolName string `json:"school_name"`
	LoginURL   string `json:"login_url"`
}

type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}
