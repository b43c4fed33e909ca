package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyReview(t *testing.T) {
	p := &Provider{Rating: decimal.RequireFromString("4.9"), ReviewCount: 127}
	p.ApplyReview(1)

	assert.Equal(t, 128, p.ReviewCount)
	assert.Equal(t, "4.87", p.Rating.StringFixed(2))

	empty := &Provider{}
	empty.ApplyReview(4)
	assert.Equal(t, 1, empty.ReviewCount)
	assert.True(t, empty.Rating.Equal(decimal.NewFromInt(4)))
}

func TestIsFeatured(t *testing.T) {
	assert.True(t, (&Provider{Rating: decimal.RequireFromString("4.7")}).IsFeatured())
	assert.False(t, (&Provider{Rating: decimal.RequireFromString("4.69")}).IsFeatured())
}

func TestProviderFilterMatches(t *testing.T) {
	providers := map[string]*Provider{}
	fixtures := Fixtures(time.Now())
	for i := range fixtures.Providers {
		providers[fixtures.Providers[i].ID] = &fixtures.Providers[i]
	}
	yes, no := true, false

	tests := []struct {
		name   string
		filter ProviderFilter
		want   []string
	}{
		{"empty", ProviderFilter{}, []string{"provider-1", "provider-2", "provider-3", "provider-4"}},
		{"all sentinel", ProviderFilter{ServiceType: "All"}, []string{"provider-1", "provider-2", "provider-3", "provider-4"}},
		{"alias", ProviderFilter{ServiceType: "Massage Therapy"}, []string{"provider-3"}},
		{"naturopathy alias", ProviderFilter{ServiceType: "naturopathy"}, []string{"provider-2"}},
		{"zip", ProviderFilter{Location: "787"}, []string{"provider-4"}},
		{"state", ProviderFilter{Location: "or"}, []string{"provider-2"}},
		{"no insurance", ProviderFilter{AcceptsInsurance: &no}, []string{"provider-2"}},
		{"evening and insurance", ProviderFilter{AcceptsInsurance: &yes, EveningHours: &yes, Location: "CA"}, []string{"provider-3"}},
		{"nothing", ProviderFilter{ServiceType: "reiki"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, id := range []string{"provider-1", "provider-2", "provider-3", "provider-4"} {
				if tt.filter.Matches(providers[id]) {
					got = append(got, id)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecialtyTerms(t *testing.T) {
	assert.Nil(t, ProviderFilter{ServiceType: "  "}.SpecialtyTerms())
	assert.Nil(t, ProviderFilter{ServiceType: "all services"}.SpecialtyTerms())
	assert.Equal(t, []string{"chiropractic", "chiropractor"}, ProviderFilter{ServiceType: "Chiropractic"}.SpecialtyTerms())
	assert.Equal(t, []string{"yoga"}, ProviderFilter{ServiceType: "Yoga"}.SpecialtyTerms())
}
