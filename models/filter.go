package models

import "strings"

// specialtyAliases maps a lower-cased service type to the extra specialty
// fragments it should also match.
var specialtyAliases = map[string][]string{
	"massage therapy":      {"massage"},
	"acupuncture":          {"acupuncturist"},
	"naturopathy":          {"naturopathic"},
	"chiropractic":         {"chiropractor", "chiropractic"},
	"herbal medicine":      {"herbalist", "herbal"},
	"reiki":                {"reiki"},
	"ayurveda":             {"ayurvedic"},
	"homeopathy":           {"homeopathic"},
	"reflexology":          {"reflexologist"},
	"aromatherapy":         {"aromatherapist"},
	"craniosacral therapy": {"craniosacral"},
	"meditation":           {"meditation"},
}

// ProviderFilter is a conjunction of optional predicates. A nil flag or an
// empty string places no constraint.
type ProviderFilter struct {
	ServiceType         string
	Location            string
	AcceptsInsurance    *bool
	NewPatientsWelcome  *bool
	TelehealthAvailable *bool
	EveningHours        *bool
}

// SpecialtyTerms returns the lower-cased fragments a provider's specialty is
// matched against, or nil when the service type does not constrain.
func (f ProviderFilter) SpecialtyTerms() []string {
	serviceType := strings.ToLower(strings.TrimSpace(f.ServiceType))
	if serviceType == "" || serviceType == "all" || serviceType == "all services" {
		return nil
	}
	terms := []string{serviceType}
	for _, alias := range specialtyAliases[serviceType] {
		if alias != serviceType {
			terms = append(terms, alias)
		}
	}
	return terms
}

// LocationTerm is the lower-cased location fragment, empty when unset.
func (f ProviderFilter) LocationTerm() string {
	return strings.ToLower(strings.TrimSpace(f.Location))
}

func (f ProviderFilter) Matches(p *Provider) bool {
	if terms := f.SpecialtyTerms(); terms != nil {
		specialty := strings.ToLower(p.Specialty)
		matched := false
		for _, term := range terms {
			if strings.Contains(specialty, term) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if loc := f.LocationTerm(); loc != "" {
		if !strings.Contains(strings.ToLower(p.City), loc) &&
			!strings.Contains(strings.ToLower(p.State), loc) &&
			!strings.Contains(strings.ToLower(p.ZipCode), loc) {
			return false
		}
	}

	return flagMatches(f.AcceptsInsurance, p.AcceptsInsurance) &&
		flagMatches(f.NewPatientsWelcome, p.NewPatientsWelcome) &&
		flagMatches(f.TelehealthAvailable, p.TelehealthAvailable) &&
		flagMatches(f.EveningHours, p.EveningHours)
}

func flagMatches(want *bool, got bool) bool {
	return want == nil || *want == got
}
