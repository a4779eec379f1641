// internal/scoring/rating.go
package scoring

import "jobmatch-workers/internal/models"

// Rate maps an overall score onto a rating band.
func Rate(score int) models.Rating {
	switch {
	case score >= 80:
		return models.RatingExcellent
	case score >= 60:
		return models.RatingGood
	case score >= 40:
		return models.RatingFair
	case score >= 20:
		return models.RatingPoor
	default:
		return models.RatingNone
	}
}
