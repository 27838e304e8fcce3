package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kaijietay/btoflow/internal/allocation/domain"
)

const dateLayout = "2006-01-02"

type projectPayload struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Neighborhoods      []string       `json:"neighborhoods"`
	Units              map[string]int `json:"units"`
	Prices             map[string]int `json:"prices"`
	OpenDate           string         `json:"open_date"`
	CloseDate          string         `json:"close_date"`
	ManagerID          string         `json:"manager_id"`
	OfficerSlots       int            `json:"officer_slots"`
	OfficerIDs         []string       `json:"officer_ids"`
	BookedApplicantIDs []string       `json:"booked_applicant_ids"`
	Visible            bool           `json:"visible"`
}

func toProjectPayload(p domain.Project) projectPayload {
	units := make(map[string]int, len(p.Units))
	for flat, count := range p.Units {
		units[string(flat)] = count
	}
	prices := make(map[string]int, len(p.Prices))
	for flat, price := range p.Prices {
		prices[string(flat)] = price
	}
	return projectPayload{
		ID:                 p.ID,
		Name:               p.Name,
		Neighborhoods:      p.Neighborhoods,
		Units:              units,
		Prices:             prices,
		OpenDate:           p.OpenDate.UTC().Format(dateLayout),
		CloseDate:          p.CloseDate.UTC().Format(dateLayout),
		ManagerID:          p.ManagerID,
		OfficerSlots:       p.OfficerSlots,
		OfficerIDs:         p.OfficerIDs,
		BookedApplicantIDs: p.BookedApplicantIDs,
		Visible:            p.Visible,
	}
}

type requestPayload struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`
	State     string `json:"state"`
	Approval  string `json:"approval,omitempty"`
	FlatType  string `json:"flat_type,omitempty"`
	Query     string `json:"query,omitempty"`
	Answer    string `json:"answer,omitempty"`
	CreatedAt string `json:"created_at"`
}

func toRequestPayload(r domain.Request) requestPayload {
	return requestPayload{
		ID:        r.ID,
		Type:      string(r.Type),
		UserID:    r.UserID,
		ProjectID: r.ProjectID,
		State:     string(r.State),
		Approval:  string(r.Approval),
		FlatType:  string(r.FlatType),
		Query:     r.Query,
		Answer:    r.Answer,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toRequestPayloads(requests []domain.Request) []requestPayload {
	out := make([]requestPayload, 0, len(requests))
	for _, r := range requests {
		out = append(out, toRequestPayload(r))
	}
	return out
}

type projectParamsPayload struct {
	Name          string         `json:"name"`
	Neighborhoods []string       `json:"neighborhoods"`
	Units         map[string]int `json:"units"`
	Prices        map[string]int `json:"prices"`
	OpenDate      string         `json:"open_date"`
	CloseDate     string         `json:"close_date"`
	OfficerSlots  int            `json:"officer_slots"`
	Visible       bool           `json:"visible"`
}

func (p projectParamsPayload) toDomain() (domain.ProjectParams, error) {
	openDate, err := time.Parse(dateLayout, p.OpenDate)
	if err != nil {
		return domain.ProjectParams{}, err
	}
	closeDate, err := time.Parse(dateLayout, p.CloseDate)
	if err != nil {
		return domain.ProjectParams{}, err
	}
	units := make(map[domain.FlatType]int, len(p.Units))
	for flat, count := range p.Units {
		units[domain.FlatType(flat)] = count
	}
	prices := make(map[domain.FlatType]int, len(p.Prices))
	for flat, price := range p.Prices {
		prices[domain.FlatType(flat)] = price
	}
	return domain.ProjectParams{
		Name:          p.Name,
		Neighborhoods: p.Neighborhoods,
		Units:         units,
		Prices:        prices,
		OpenDate:      openDate.UTC(),
		CloseDate:     closeDate.UTC(),
		OfficerSlots:  p.OfficerSlots,
		Visible:       p.Visible,
	}, nil
}

func parsePrice(raw string) (int, error) {
	return strconv.Atoi(raw)
}

// criteriaFromQuery decodes the filter and sort settings from URL parameters.
func criteriaFromQuery(r *http.Request) (domain.Criteria, error) {
	q := r.URL.Query()
	criteria := domain.Criteria{
		Locations: q["location"],
		SortKey:   domain.SortKey(q.Get("sort")),
	}
	if raw := q.Get("flat_type"); raw != "" {
		flat := domain.FlatType(raw)
		criteria.FlatType = &flat
	}
	if raw := q.Get("min_price"); raw != "" {
		value, err := parsePrice(raw)
		if err != nil {
			return domain.Criteria{}, err
		}
		criteria.MinPrice = &value
	}
	if raw := q.Get("max_price"); raw != "" {
		value, err := parsePrice(raw)
		if err != nil {
			return domain.Criteria{}, err
		}
		criteria.MaxPrice = &value
	}
	if raw := q.Get("open_after"); raw != "" {
		value, err := time.Parse(dateLayout, raw)
		if err != nil {
			return domain.Criteria{}, err
		}
		value = value.UTC()
		criteria.OpenAfter = &value
	}
	if raw := q.Get("close_before"); raw != "" {
		value, err := time.Parse(dateLayout, raw)
		if err != nil {
			return domain.Criteria{}, err
		}
		value = value.UTC()
		criteria.CloseBefore = &value
	}
	return criteria, nil
}
