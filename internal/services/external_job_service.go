package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/intrackhq/intrack-backend/internal/config"
	"github.com/intrackhq/intrack-backend/internal/dto"
)

const externalResultsPerPage = 10

// ExternalJobService queries the Adzuna job-search API and maps its records
// into the local job shape.
type ExternalJobService struct {
	cfg    *config.Config
	client *http.Client
}

func NewExternalJobService(cfg *config.Config) *ExternalJobService {
	return &ExternalJobService{
		cfg:    cfg,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

type adzunaResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Company struct {
			DisplayName string `json:"display_name"`
		} `json:"company"`
		Location struct {
			DisplayName string `json:"display_name"`
		} `json:"location"`
		ContractTime string  `json:"contract_time"`
		SalaryMin    float64 `json:"salary_min"`
		Description  string  `json:"description"`
		RedirectURL  string  `json:"redirect_url"`
	} `json:"results"`
}

// Search fetches one page of listings. The catalog has always been
// Ireland-only, so the country segment is fixed.
func (s *ExternalJobService) Search(what, where string, page int) ([]dto.ExternalJob, error) {
	if s.cfg.AdzunaAppID == "" || s.cfg.AdzunaAppKey == "" {
		return nil, fmt.Errorf("external job search credentials not configured")
	}
	if where == "" {
		where = "ireland"
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("app_id", s.cfg.AdzunaAppID)
	params.Set("app_key", s.cfg.AdzunaAppKey)
	params.Set("results_per_page", fmt.Sprintf("%d", externalResultsPerPage))
	params.Set("what", what)
	params.Set("where", where)

	apiURL := fmt.Sprintf("%s/jobs/ie/search/%d?%s", s.cfg.AdzunaBaseURL, page, params.Encode())

	resp, err := s.client.Get(apiURL)
	if err != nil {
		return nil, fmt.Errorf("external job search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("external job search returned HTTP %d", resp.StatusCode)
	}

	var parsed adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode external job response: %w", err)
	}

	jobs := make([]dto.ExternalJob, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		job := dto.ExternalJob{
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			Type:        r.ContractTime,
			Description: r.Description,
			RedirectURL: r.RedirectURL,
		}
		if job.Type == "" {
			job.Type = "N/A"
		}
		if r.SalaryMin > 0 {
			salary := r.SalaryMin
			job.Salary = &salary
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
