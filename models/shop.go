package models

import "time"

// DaysPerWeek is the number of weekday entries a shop schedule carries (index 0 = Sunday).
const DaysPerWeek = 7

// Weekday is one day of a shop's declared schedule.
type Weekday struct {
	Open  bool     `json:"open" bson:"open" firestore:"open"`
	Hours []string `json:"hours" bson:"hours" firestore:"hours"` // "H:MM" strings, e.g. "9:00", "14:30"
}

// Shop is a barbershop owned by a single Owner.
type Shop struct {
	ID          string    `json:"id" bson:"-" firestore:"-"`
	OwnerID     string    `json:"ownerId" bson:"ownerId" firestore:"ownerId"`
	Name        string    `json:"name" bson:"name" firestore:"name"`
	PhoneNumber string    `json:"phoneNumber" bson:"phoneNumber" firestore:"phoneNumber"`
	Week        []Weekday `json:"week" bson:"week" firestore:"week"`
	Rating      float64   `json:"rating" bson:"rating" firestore:"rating"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

// Day returns the schedule for weekday (0 = Sunday); a missing entry reads as closed.
func (s *Shop) Day(weekday time.Weekday) Weekday {
	idx := int(weekday)
	if idx < 0 || idx >= len(s.Week) {
		return Weekday{}
	}
	return s.Week[idx]
}

// ShopInput carries the owner-editable fields of a shop.
type ShopInput struct {
	Name        string    `json:"name" binding:"required"`
	PhoneNumber string    `json:"phoneNumber"`
	Week        []Weekday `json:"week" binding:"required"`
}

// Service is something a shop sells, e.g. a haircut.
type Service struct {
	ID        string    `json:"id" bson:"-" firestore:"-"`
	ShopID    string    `json:"shopId" bson:"shopId" firestore:"shopId"`
	Name      string    `json:"name" bson:"name" firestore:"name"`
	Price     float64   `json:"price" bson:"price" firestore:"price"`
	Duration  int       `json:"duration" bson:"duration" firestore:"duration"` // minutes
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

// ServiceInput carries the owner-editable fields of a service.
type ServiceInput struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}
