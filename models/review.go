package models

import "time"

// Review is a customer's rating of a shop. A customer has at most one review per shop.
type Review struct {
	ID         string    `json:"id" bson:"-" firestore:"-"`
	ShopID     string    `json:"shopId" bson:"shopId" firestore:"shopId"`
	CustomerID string    `json:"customerId" bson:"customerId" firestore:"customerId"`
	Rating     int       `json:"rating" bson:"rating" firestore:"rating"`
	Body       string    `json:"review" bson:"review" firestore:"review"`
	FirstName  string    `json:"firstName" bson:"firstName" firestore:"firstName"`
	LastName   string    `json:"lastName" bson:"lastName" firestore:"lastName"`
	CreatedAt  time.Time `json:"timestamp" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

// ReviewInput is the customer-supplied part of a review.
type ReviewInput struct {
	ShopID    string `json:"shopId"`
	Rating    int    `json:"rating"`
	Body      string `json:"review"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
