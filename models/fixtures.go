package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixtureSet is the directory data a fresh install starts with.
type FixtureSet struct {
	Categories []ServiceCategory
	Providers  []Provider
	Services   []Service
	Reviews    []Review
}

func strPtr(s string) *string { return &s }

func weekdayHours(weekday, thursday, friday, saturday, sunday string) JSONList[OfficeHours] {
	return JSONList[OfficeHours]{
		{Day: "Monday", Hours: weekday},
		{Day: "Tuesday", Hours: weekday},
		{Day: "Wednesday", Hours: weekday},
		{Day: "Thursday", Hours: thursday},
		{Day: "Friday", Hours: friday},
		{Day: "Saturday", Hours: saturday},
		{Day: "Sunday", Hours: sunday},
	}
}

// Fixtures builds the seed data. Review timestamps are relative to now.
func Fixtures(now time.Time) FixtureSet {
	day := 24 * time.Hour
	acupuncture, naturopathy, massage, chiropractic := "acupuncture", "naturopathy", "massage", "chiropractic"

	return FixtureSet{
		Categories: []ServiceCategory{
			{ID: acupuncture, Name: "Acupuncture", Description: "Traditional Chinese medicine technique using thin needles", Icon: "fas fa-leaf", ProviderCount: 234},
			{ID: naturopathy, Name: "Naturopathy", Description: "Natural medicine focusing on the body's healing ability", Icon: "fas fa-seedling", ProviderCount: 156},
			{ID: massage, Name: "Massage Therapy", Description: "Therapeutic manipulation of muscles and soft tissues", Icon: "fas fa-hands", ProviderCount: 189},
			{ID: chiropractic, Name: "Chiropractic", Description: "Spinal adjustment and musculoskeletal treatment", Icon: "fas fa-bone", ProviderCount: 298},
		},
		Providers: []Provider{
			{
				ID:                  "provider-1",
				Name:                "Dr. Sarah Chen",
				Specialty:           "Licensed Acupuncturist",
				Title:               "LAc",
				Bio:                 "Dr. Sarah Chen brings over 15 years of experience in Traditional Chinese Medicine and acupuncture. She specializes in pain management, stress reduction, and fertility support.",
				Experience:          "15+ years experience • Traditional Chinese Medicine",
				Philosophy:          strPtr("Her treatment philosophy combines ancient wisdom with modern understanding, creating personalized treatment plans that address the root cause of health issues while promoting overall wellness and balance."),
				Phone:               "(206) 555-0123",
				Email:               "info@sarahchenacupuncture.com",
				Address:             "Downtown Wellness Center, 123 Health Street, Suite 205",
				City:                "Seattle",
				State:               "WA",
				ZipCode:             "98101",
				Rating:              decimal.RequireFromString("4.9"),
				ReviewCount:         127,
				ImageURL:            strPtr("https://images.unsplash.com/photo-1559757148-5c350d0d3c56?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
				AcceptsInsurance:    true,
				NewPatientsWelcome:  true,
				TelehealthAvailable: false,
				EveningHours:        true,
				OfficeHours:         weekdayHours("9:00 AM - 6:00 PM", "9:00 AM - 8:00 PM", "9:00 AM - 5:00 PM", "10:00 AM - 3:00 PM", "Closed"),
				NextAvailable:       strPtr("Today 2:30 PM"),
			},
			{
				ID:                  "provider-2",
				Name:                "Dr. Michael Torres",
				Specialty:           "Naturopathic Doctor",
				Title:               "ND",
				Bio:                 "Dr. Michael Torres is a licensed naturopathic doctor with over 12 years of experience in functional medicine and natural healing.",
				Experience:          "12+ years experience • Functional Medicine",
				Philosophy:          strPtr("Focuses on treating the whole person and addressing root causes of illness through natural therapies."),
				Phone:               "(503) 555-0456",
				Email:               "info@naturalhealthpdx.com",
				Address:             "Natural Health Clinic, 456 Wellness Ave",
				City:                "Portland",
				State:               "OR",
				ZipCode:             "97201",
				Rating:              decimal.RequireFromString("4.8"),
				ReviewCount:         89,
				ImageURL:            strPtr("https://images.unsplash.com/photo-1612349317150-e413f6a5b16d?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
				AcceptsInsurance:    false,
				NewPatientsWelcome:  true,
				TelehealthAvailable: true,
				EveningHours:        false,
				OfficeHours:         weekdayHours("8:00 AM - 5:00 PM", "8:00 AM - 5:00 PM", "8:00 AM - 4:00 PM", "Closed", "Closed"),
				NextAvailable:       strPtr("Tomorrow 10:00 AM"),
			},
			{
				ID:                  "provider-3",
				Name:                "Lisa Wang",
				Specialty:           "Licensed Massage Therapist",
				Title:               "LMT",
				Bio:                 "Lisa Wang is a licensed massage therapist specializing in deep tissue and Swedish massage techniques.",
				Experience:          "8+ years experience • Deep Tissue & Swedish",
				Philosophy:          strPtr("Believes in the healing power of therapeutic touch to restore balance and promote wellness."),
				Phone:               "(415) 555-0789",
				Email:               "lisa@tranquilspa.com",
				Address:             "Tranquil Spa, 789 Serenity Blvd",
				City:                "San Francisco",
				State:               "CA",
				ZipCode:             "94102",
				Rating:              decimal.RequireFromString("5.0"),
				ReviewCount:         64,
				ImageURL:            strPtr("https://images.unsplash.com/photo-1544161515-4ab6ce6db874?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
				AcceptsInsurance:    true,
				NewPatientsWelcome:  true,
				TelehealthAvailable: false,
				EveningHours:        true,
				OfficeHours:         weekdayHours("9:00 AM - 8:00 PM", "9:00 AM - 8:00 PM", "9:00 AM - 6:00 PM", "10:00 AM - 6:00 PM", "10:00 AM - 4:00 PM"),
				NextAvailable:       strPtr("Today 4:00 PM"),
			},
			{
				ID:                  "provider-4",
				Name:                "Dr. Jennifer Martinez",
				Specialty:           "Chiropractic Doctor",
				Title:               "DC",
				Bio:                 "Dr. Jennifer Martinez specializes in sports injuries, spinal adjustment, and preventive care with 10+ years experience.",
				Experience:          "10+ years experience • Sports Medicine",
				Philosophy:          strPtr("Focuses on restoring proper spinal alignment and movement to optimize overall health and performance."),
				Phone:               "(512) 555-0321",
				Email:               "info@spinehealthatx.com",
				Address:             "Spine Health Center, 321 Athletic Way",
				City:                "Austin",
				State:               "TX",
				ZipCode:             "78701",
				Rating:              decimal.RequireFromString("4.9"),
				ReviewCount:         156,
				ImageURL:            strPtr("https://images.unsplash.com/photo-1582750433449-648ed127bb54?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
				AcceptsInsurance:    true,
				NewPatientsWelcome:  true,
				TelehealthAvailable: false,
				EveningHours:        true,
				OfficeHours:         weekdayHours("7:00 AM - 7:00 PM", "7:00 AM - 7:00 PM", "7:00 AM - 5:00 PM", "8:00 AM - 2:00 PM", "Closed"),
				NextAvailable:       strPtr("Today 3:15 PM"),
			},
		},
		Services: []Service{
			{ID: "service-1", ProviderID: "provider-1", Name: "Traditional Acupuncture", Description: "Classical needle therapy for pain, stress, and wellness", Price: decimal.RequireFromString("120.00"), Duration: 90, CategoryID: &acupuncture},
			{ID: "service-2", ProviderID: "provider-1", Name: "Cupping Therapy", Description: "Ancient technique for muscle tension and circulation", Price: decimal.RequireFromString("80.00"), Duration: 60, CategoryID: &acupuncture},
			{ID: "service-3", ProviderID: "provider-1", Name: "Herbal Consultation", Description: "Personalized herbal medicine prescriptions", Price: decimal.RequireFromString("150.00"), Duration: 75, CategoryID: &acupuncture},
			{ID: "service-4", ProviderID: "provider-1", Name: "Fertility Support", Description: "Specialized acupuncture for reproductive health", Price: decimal.RequireFromString("140.00"), Duration: 90, CategoryID: &acupuncture},
			{ID: "service-5", ProviderID: "provider-2", Name: "Naturopathic Consultation", Description: "Comprehensive health assessment and natural treatment plan", Price: decimal.RequireFromString("200.00"), Duration: 90, CategoryID: &naturopathy},
			{ID: "service-6", ProviderID: "provider-3", Name: "Deep Tissue Massage", Description: "Therapeutic massage for muscle tension and pain relief", Price: decimal.RequireFromString("130.00"), Duration: 90, CategoryID: &massage},
			{ID: "service-7", ProviderID: "provider-4", Name: "Chiropractic Adjustment", Description: "Spinal manipulation to restore proper alignment", Price: decimal.RequireFromString("85.00"), Duration: 30, CategoryID: &chiropractic},
		},
		Reviews: []Review{
			{ID: "review-1", ProviderID: "provider-1", PatientName: "Jennifer M.", Rating: 5, Content: "Dr. Chen helped me tremendously with my chronic back pain. After just a few sessions, I noticed significant improvement. She's very knowledgeable and takes time to explain the treatment process. Highly recommend!", CreatedAt: now.Add(-21 * day), Verified: true},
			{ID: "review-2", ProviderID: "provider-1", PatientName: "Michael R.", Rating: 5, Content: "Professional, caring, and effective treatment. Dr. Chen's acupuncture sessions have significantly reduced my stress levels and improved my sleep quality. The office is clean and peaceful too.", CreatedAt: now.Add(-30 * day), Verified: true},
			{ID: "review-3", ProviderID: "provider-2", PatientName: "Sarah K.", Rating: 5, Content: "Dr. Torres took the time to really understand my health concerns and created a comprehensive treatment plan. I've seen improvements in my energy levels and digestion.", CreatedAt: now.Add(-14 * day), Verified: true},
			{ID: "review-4", ProviderID: "provider-3", PatientName: "David L.", Rating: 5, Content: "Lisa is an amazing massage therapist. Her deep tissue work has helped me recover from sports injuries faster than I expected. Highly skilled and professional.", CreatedAt: now.Add(-7 * day), Verified: true},
		},
	}
}
