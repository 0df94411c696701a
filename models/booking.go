package models

import "time"

// BookingDisplay is a snapshot of display names taken when the booking is written.
// It is not a live reference: later renames of the shop or the user are not reflected here.
type BookingDisplay struct {
	ShopName     string `json:"shopName" bson:"shopName" firestore:"shopName"`
	StaffName    string `json:"staffName" bson:"staffName" firestore:"staffName"`
	CustomerName string `json:"customerName" bson:"customerName" firestore:"customerName"`
}

// Booking is a customer's reservation of one slot at a shop.
type Booking struct {
	ID         string         `json:"id" bson:"-" firestore:"-"`
	ShopID     string         `json:"shopId" bson:"shopId" firestore:"shopId"`
	ServiceID  string         `json:"serviceId" bson:"serviceId" firestore:"serviceId"`
	CustomerID string         `json:"customerId" bson:"customerId" firestore:"customerId"`
	Date       string         `json:"date" bson:"date" firestore:"date"` // "DD-MM-YYYY HH:mm", shop-local
	Display    BookingDisplay `json:"display" bson:"display" firestore:"display"`
	CreatedAt  time.Time      `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt" bson:"updatedAt" firestore:"updatedAt"`
}

// BookingRequest is the customer-supplied part of a create or update.
type BookingRequest struct {
	ShopID    string         `json:"shopId" binding:"required"`
	ServiceID string         `json:"serviceId" binding:"required"`
	Date      string         `json:"date" binding:"required"`
	Display   BookingDisplay `json:"display"`
}

// SlotClaim marks a (shop, instant) pair as taken; its document ID is derived from both.
type SlotClaim struct {
	ShopID    string `json:"shopId" bson:"shopId" firestore:"shopId"`
	Date      string `json:"date" bson:"date" firestore:"date"`
	BookingID string `json:"bookingId" bson:"bookingId" firestore:"bookingId"`
}

// SlotAvailability pairs a configured hour with whether it can still be booked.
type SlotAvailability struct {
	Hour      string `json:"hour"`
	Available bool   `json:"available"`
}
