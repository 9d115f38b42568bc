package dto

type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Company     string   `json:"company" validate:"required,max=255"`
	Location    string   `json:"location" validate:"max=255"`
	Type        string   `json:"type" validate:"max=50"`
	Salary      *float64 `json:"salary" validate:"omitempty,gte=0"`
	Description string   `json:"description"`
}

// JobSearchQuery mirrors the /api/jobs/search query string. Absent filters
// impose no constraint.
type JobSearchQuery struct {
	Title     string   `query:"title"`
	Company   string   `query:"company"`
	Location  string   `query:"location"`
	Type      string   `query:"type"`
	MinSalary *float64 `query:"minSalary"`
	MaxSalary *float64 `query:"maxSalary"`
}

// ExternalJob is a record from the external search API mapped into the local
// job shape.
type ExternalJob struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Salary      *float64 `json:"salary"`
	Description string   `json:"description"`
	RedirectURL string   `json:"redirect_url"`
}
