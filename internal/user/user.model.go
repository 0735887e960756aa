package user

import "time"

type User struct {
	ID           string     `json:"id"`
	ClerkID      string     `json:"clerkId"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	WeightKg     *float64   `json:"peso_kg,omitempty"`
	DailyGoalMl  int        `json:"meta_diaria_ml"`
	IsPremium    bool       `json:"is_premium"`
	PremiumUntil *time.Time `json:"premiumUntil,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
