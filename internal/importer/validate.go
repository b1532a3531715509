package importer

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/pathfinder/internal/domain"
)

const dateLayout = "2006-01-02"

var validRecordStatuses = map[string]bool{
	string(domain.RecordActive):   true,
	string(domain.RecordDraft):    true,
	string(domain.RecordArchived): true,
}

// ValidateSeed checks the seed for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateSeed(seed *SeedFile) []error {
	var errs []error

	if seed.Version != 0 && seed.Version != 1 {
		errs = append(errs, fmt.Errorf("version: unsupported value %d", seed.Version))
	}

	countries := make(map[string]bool)
	errs = append(errs, validateCountries(seed.Countries, countries)...)

	if len(seed.Pathways) == 0 {
		errs = append(errs, fmt.Errorf("pathways: at least one pathway is required"))
	}

	ids := make(map[string]bool)
	for i := range seed.Pathways {
		errs = append(errs, validatePathway(i, &seed.Pathways[i], ids, countries)...)
	}
	return errs
}

func validateCountries(cs []CountrySeed, seen map[string]bool) []error {
	var errs []error
	for i, c := range cs {
		prefix := fmt.Sprintf("countries[%d]", i)
		if c.Code == "" {
			errs = append(errs, fmt.Errorf("%s.code is required", prefix))
			continue
		}
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if seen[c.Code] {
			errs = append(errs, fmt.Errorf("%s.code: duplicate %q", prefix, c.Code))
		}
		seen[c.Code] = true
	}
	return errs
}

func validatePathway(i int, p *PathwaySeed, ids, countries map[string]bool) []error {
	var errs []error
	prefix := fmt.Sprintf("pathways[%d]", i)

	switch {
	case p.ID == "":
		errs = append(errs, fmt.Errorf("%s.id is required", prefix))
	case p.ID != strings.ToLower(p.ID) || strings.ContainsAny(p.ID, " \t"):
		errs = append(errs, fmt.Errorf("%s.id %q must be lowercase without spaces", prefix, p.ID))
	case ids[p.ID]:
		errs = append(errs, fmt.Errorf("%s.id: duplicate %q", prefix, p.ID))
	}
	ids[p.ID] = true

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if p.Status != "" && !validRecordStatuses[p.Status] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, p.Status))
	}
	if p.Country != "" && !countries[p.Country] {
		errs = append(errs, fmt.Errorf("%s.country %q is not declared in countries", prefix, p.Country))
	}

	names := make(map[string]bool)
	for j := range p.Milestones {
		errs = append(errs, validateMilestone(fmt.Sprintf("%s.milestones[%d]", prefix, j), &p.Milestones[j], names)...)
	}
	return errs
}

func validateMilestone(prefix string, m *MilestoneSeed, names map[string]bool) []error {
	var errs []error

	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	} else {
		key := strings.ToLower(m.Name)
		if names[key] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate %q within pathway", prefix, m.Name))
		}
		names[key] = true
	}

	if m.Category != "" && !domain.ValidCategories[m.Category] {
		errs = append(errs, fmt.Errorf("%s.category: invalid value %q", prefix, m.Category))
	}
	if m.Order != nil && *m.Order < 0 {
		errs = append(errs, fmt.Errorf("%s.order must be non-negative", prefix))
	}
	if m.Status != "" && !validRecordStatuses[m.Status] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, m.Status))
	}
	if m.LastVerified != "" {
		if _, err := time.Parse(dateLayout, m.LastVerified); err != nil {
			errs = append(errs, fmt.Errorf("%s.last_verified: invalid date format %q (expected YYYY-MM-DD)", prefix, m.LastVerified))
		}
	}
	if m.ResourceURL != "" {
		u, err := url.Parse(m.ResourceURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s.resource_url %q must be an http(s) URL", prefix, m.ResourceURL))
		}
	}
	for k, alt := range m.Alternatives {
		if strings.TrimSpace(alt) == "" {
			errs = append(errs, fmt.Errorf("%s.alternatives[%d] is empty", prefix, k))
		}
	}
	return errs
}
