package jobs

// IntakeRequest is the body of a job intake call.
type IntakeRequest struct {
	JobURL  string `json:"jobUrl"`
	JobText string `json:"jobText"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

// IntakeResponse is the payload returned after a successful intake.
type IntakeResponse struct {
	JobID          string `json:"jobId"`
	Title          string `json:"title,omitempty"`
	Company        string `json:"company,omitempty"`
	URL            string `json:"url,omitempty"`
	ContentPreview string `json:"contentPreview"`
}
