package store

import (
	"time"

	"urbanreport-be/models"
)

// SampleIssues returns the demo reports shown on a fresh admin panel.
func SampleIssues() []models.Issue {
	return []models.Issue{
		{
			ID:            "1",
			Title:         "Large Pothole on Main Street",
			Description:   "Deep pothole causing traffic issues and potential vehicle damage.",
			Category:      models.Traffic,
			Status:        models.Pending,
			Location:      "Main St & Oak Ave",
			Coordinates:   models.Coordinates{-74.006, 40.7128},
			ImageURL:      "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=300&fit=crop",
			ReportedBy:    "John Smith",
			ReportedAt:    day(2024, time.January, 15),
			CommentsCount: 12,
			LikesCount:    8,
			Priority:      models.High,
		},
		{
			ID:            "2",
			Title:         "Broken Street Light",
			Description:   "Street light has been out for a week, making the area unsafe.",
			Category:      models.Lighting,
			Status:        models.InProgress,
			Location:      "Pine Street",
			Coordinates:   models.Coordinates{-74.008, 40.7148},
			ReportedBy:    "Sarah Johnson",
			ReportedAt:    day(2024, time.January, 14),
			CommentsCount: 5,
			LikesCount:    15,
			Priority:      models.Medium,
		},
		{
			ID:            "3",
			Title:         "Illegal Dumping Site",
			Description:   "Large amount of construction waste dumped illegally.",
			Category:      models.Waste,
			Status:        models.Resolved,
			Location:      "Community Center",
			Coordinates:   models.Coordinates{-74.004, 40.7108},
			ImageURL:      "https://images.unsplash.com/photo-1532996122724-e3c354a0b15b?w=400&h=300&fit=crop",
			ReportedBy:    "Mike Chen",
			ReportedAt:    day(2024, time.January, 12),
			CommentsCount: 8,
			LikesCount:    22,
			Priority:      models.Low,
		},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
