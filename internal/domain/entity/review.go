package entity

import "time"

// Review is a product review document served by the review service.
type Review struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"productId"`
	UserID           string    `json:"userId,omitempty"`
	Rating           int       `json:"rating"`
	Title            string    `json:"title"`
	Comment          string    `json:"comment,omitempty"`
	Photos           []string  `json:"photos,omitempty"`
	VerifiedPurchase bool      `json:"verifiedPurchase"`
	HelpfulVotes     int       `json:"helpfulVotes"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ReviewPage is a page of reviews plus the aggregates the review service
// computes alongside it.
type ReviewPage struct {
	Reviews            []Review    `json:"reviews"`
	AverageRating      float64     `json:"averageRating"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
	Total              int         `json:"total"`
}
