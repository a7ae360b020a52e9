package domain

import "time"

// SeedComplaints returns the demo dataset used when no snapshot exists yet.
// Timestamps are anchored to the current clock so the dashboard shows a
// plausible recent history on first boot.
func SeedComplaints() []Complaint {
	now := time.Now()
	resolvedYesterday := now.Add(-24 * time.Hour)
	resolvedRecently := now.Add(-6 * time.Hour)
	hours18 := 18.0
	hours42 := 42.0

	return []Complaint{
		{
			ID:              "CMP-IND-8821",
			Title:           "Water Pipe Burst near Brigade Road",
			Description:     "A main water pipe broke right outside the Metro Station. Lots of water is flooding the road and making it hard for people to walk.",
			Status:          StatusInProgress,
			Priority:        PriorityCritical,
			PriorityMetrics: PriorityMetrics{Urgency: 10, Impact: 9, FinalScore: 9.6, Level: PriorityCritical},
			Department:      DepartmentUtilities,
			CitizenName:     "Aditya Rao",
			CitizenID:       "CIT-123",
			CreatedAt:       now.Add(-5 * time.Hour),
			UpdatedAt:       now,
			Tags:            []string{"utilities (water/electric)", "report"},
			Summary:         "Major water leak causing problems for travelers near the station.",
			Location:        "Brigade Road Metro, Bangalore",
			ActionPlan:      []string{"Turn off main water valve", "Send repair team immediately", "Tell Metro security about the flood"},
			CitizenMessage:  "Our repair team is already on Brigade Road. We expect it to be fixed by tonight.",
		},
		{
			ID:                  "CMP-IND-4412",
			Title:               "Garbage Dumped on Marine Drive Walkway",
			Description:         "Someone left a lot of construction waste on the seaside walking path.",
			Status:              StatusResolved,
			Priority:            PriorityMedium,
			PriorityMetrics:     PriorityMetrics{Urgency: 4, Impact: 6, FinalScore: 4.8, Level: PriorityMedium},
			Department:          DepartmentSanitation,
			CitizenName:         "Sanya Malhotra",
			CitizenID:           "CIT-456",
			CreatedAt:           now.Add(-42 * time.Hour),
			UpdatedAt:           resolvedYesterday,
			ResolvedAt:          &resolvedYesterday,
			ResolutionTimeHours: &hours18,
			Tags:                []string{"sanitation", "report"},
			Summary:             "Waste cleared from the popular walking path.",
			Location:            "Marine Drive Promenade, Mumbai",
			ActionPlan:          []string{"Clear waste using a truck", "Clean the path", "Check cameras to see who dumped it"},
			CitizenMessage:      "The waste has been cleared. The path is clean and safe to use again.",
		},
		{
			ID:              "CMP-IND-1022",
			Title:           "Street Lights are Off in Salt Lake",
			Description:     "The lights are not working on the main road. It is very dark and unsafe for people coming home from work.",
			Status:          StatusPending,
			Priority:        PriorityHigh,
			PriorityMetrics: PriorityMetrics{Urgency: 7, Impact: 8, FinalScore: 7.4, Level: PriorityHigh},
			Department:      DepartmentUtilities,
			CitizenName:     "Rohan Gupta",
			CitizenID:       "CIT-123",
			CreatedAt:       now.Add(-12 * time.Hour),
			UpdatedAt:       now.Add(-12 * time.Hour),
			Tags:            []string{"utilities (water/electric)", "report"},
			Summary:         "Main road is dark because street lights failed.",
			Location:        "Sector V, Salt Lake, Kolkata",
			ActionPlan:      []string{"Find where the fuse broke", "Check underground wires", "Change the light bulbs"},
			CitizenMessage:  "We know about the dark street. An electrician will fix it within 12 hours.",
		},
		{
			ID:              "CMP-IND-3307",
			Title:           "Deep Pothole on Anna Salai",
			Description:     "There is a very deep pothole near the signal. Two scooters already fell because of it.",
			Status:          StatusUnderReview,
			Priority:        PriorityHigh,
			PriorityMetrics: PriorityMetrics{Urgency: 8, Impact: 7, FinalScore: 7.6, Level: PriorityHigh},
			Department:      DepartmentRoads,
			CitizenName:     "Meena Iyer",
			CitizenID:       "CIT-789",
			CreatedAt:       now.Add(-30 * time.Hour),
			UpdatedAt:       now.Add(-20 * time.Hour),
			Tags:            []string{"roads & transport", "report"},
			Summary:         "Dangerous pothole causing two-wheeler accidents near a busy signal.",
			Location:        "Anna Salai, Chennai",
			ActionPlan:      []string{"Put a warning board at the spot", "Fill the pothole with fresh tar", "Check the rest of the road for damage"},
			CitizenMessage:  "Thank you for telling us. Our road team will inspect the spot today.",
		},
		{
			ID:                  "CMP-IND-5590",
			Title:               "Mosquitoes Breeding in Open Drain",
			Description:         "The drain behind our colony is open and full of still water. Many children are falling sick.",
			Status:              StatusResolved,
			Priority:            PriorityHigh,
			PriorityMetrics:     PriorityMetrics{Urgency: 7, Impact: 9, FinalScore: 7.8, Level: PriorityHigh},
			Department:          DepartmentHealth,
			CitizenName:         "Farhan Ali",
			CitizenID:           "CIT-456",
			CreatedAt:           now.Add(-48 * time.Hour),
			UpdatedAt:           resolvedRecently,
			ResolvedAt:          &resolvedRecently,
			ResolutionTimeHours: &hours42,
			Tags:                []string{"public health", "report"},
			Summary:             "Open drain with stagnant water causing a health risk for the colony.",
			Location:            "Jubilee Hills, Hyderabad",
			ActionPlan:          []string{"Spray the drain to kill mosquitoes", "Drain out the still water", "Cover the drain with a slab"},
			CitizenMessage:      "The drain has been sprayed and covered. The health team will visit again next week.",
		},
		{
			ID:              "CMP-IND-6274",
			Title:           "Broken Footpath Slabs near City Park",
			Description:     "The footpath slabs outside the park gate are broken and loose. Old people find it hard to walk there.",
			Status:          StatusPending,
			Priority:        PriorityMedium,
			PriorityMetrics: PriorityMetrics{Urgency: 5, Impact: 6, FinalScore: 5.4, Level: PriorityMedium},
			Department:      DepartmentPublicWorks,
			CitizenName:     "Lakshmi Narayan",
			CitizenID:       "CIT-789",
			CreatedAt:       now.Add(-8 * time.Hour),
			UpdatedAt:       now.Add(-8 * time.Hour),
			Tags:            []string{"public works", "report"},
			Summary:         "Loose footpath slabs near the park gate are a tripping hazard.",
			Location:        "Cubbon Park East Gate, Bangalore",
			ActionPlan:      []string{"Mark the broken slabs", "Replace them with new slabs", "Level the sand below the path"},
			CitizenMessage:  "We have noted the broken path. A repair team will visit within two days.",
		},
		{
			ID:              "CMP-IND-7718",
			Title:           "Street Dogs Chasing Delivery Riders",
			Description:     "A pack of street dogs near the market chases bikes at night. Someone may get hurt soon.",
			Status:          StatusRejected,
			Priority:        PriorityLow,
			PriorityMetrics: PriorityMetrics{Urgency: 3, Impact: 4, FinalScore: 3.4, Level: PriorityLow},
			Department:      DepartmentOther,
			CitizenName:     "Kabir Shah",
			CitizenID:       "CIT-123",
			CreatedAt:       now.Add(-72 * time.Hour),
			UpdatedAt:       now.Add(-60 * time.Hour),
			Tags:            []string{"general administration", "report"},
			Summary:         "Street dogs near the night market are chasing two-wheeler riders.",
			Location:        "Sarojini Market, Delhi",
			ActionPlan:      []string{"Ask the animal welfare team to visit", "Put up caution boards", "Arrange safe feeding away from the road"},
			CitizenMessage:  "Animal control matters are handled by the welfare board. We have passed your report to them.",
		},
	}
}
