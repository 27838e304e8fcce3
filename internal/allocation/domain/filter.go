package domain

import (
	"sort"
	"time"
)

// SortKey selects the ordering applied to a filtered project list.
type SortKey string

const (
	// SortByName orders projects by name.
	SortByName SortKey = "NAME"
	// SortByPrice orders projects by price of the criteria flat type
	// (two-room when no flat type filter is set).
	SortByPrice SortKey = "PRICE"
	// SortByDate orders projects by open date.
	SortByDate SortKey = "DATE"
)

// Criteria is one set of project filter and sort settings. Nil pointer fields
// mean the corresponding filter is off.
type Criteria struct {
	// Locations keeps projects whose neighborhood set contains at least one
	// of the given names.
	Locations []string
	// MinPrice and MaxPrice bound the prices of every flat type.
	MinPrice *int
	MaxPrice *int
	// FlatType keeps projects with available units of this type; when nil,
	// projects with no units of any type are dropped instead.
	FlatType *FlatType
	// OpenAfter keeps projects opening on or after this date.
	OpenAfter *time.Time
	// CloseBefore keeps projects closing on or before this date.
	CloseBefore *time.Time
	SortKey     SortKey
}

// FilterProjects applies the criteria to the project list and returns a new
// sorted slice; the input is not modified.
func FilterProjects(projects []Project, c Criteria) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if matches(&p, c) {
			out = append(out, p)
		}
	}
	sortProjects(out, c)
	return out
}

func matches(p *Project, c Criteria) bool {
	if c.FlatType != nil {
		if p.UnitsFor(*c.FlatType) == 0 {
			return false
		}
	} else {
		any := false
		for _, flat := range FlatTypes() {
			if p.UnitsFor(flat) > 0 {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}

	if len(c.Locations) > 0 && !containsAny(p.Neighborhoods, c.Locations) {
		return false
	}

	for _, flat := range FlatTypes() {
		price := p.PriceFor(flat)
		if c.MinPrice != nil && price < *c.MinPrice {
			return false
		}
		if c.MaxPrice != nil && price > *c.MaxPrice {
			return false
		}
	}

	if c.OpenAfter != nil && p.OpenDate.Before(*c.OpenAfter) {
		return false
	}
	if c.CloseBefore != nil && p.CloseDate.After(*c.CloseBefore) {
		return false
	}
	return true
}

func containsAny(haystack, needles []string) bool {
	for _, n := range needles {
		for _, h := range haystack {
			if h == n {
				return true
			}
		}
	}
	return false
}

func sortProjects(projects []Project, c Criteria) {
	key := c.SortKey
	if key == "" {
		key = SortByName
	}
	sort.SliceStable(projects, func(i, j int) bool {
		switch key {
		case SortByPrice:
			flat := FlatTypeTwoRoom
			if c.FlatType != nil {
				flat = *c.FlatType
			}
			return projects[i].PriceFor(flat) < projects[j].PriceFor(flat)
		case SortByDate:
			return projects[i].OpenDate.Before(projects[j].OpenDate)
		default:
			return projects[i].Name < projects[j].Name
		}
	})
}
