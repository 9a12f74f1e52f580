package model

import (
	"context"
	"time"
)

// ListingStore persists adoption, missing animal and donation posts.
type ListingStore interface {
	CreateAdoptionPost(ctx context.Context, post AdoptionPost) (AdoptionPost, error)
	CreateMissingPost(ctx context.Context, post MissingPost) (MissingPost, error)
	CreateDonationPost(ctx context.Context, post DonationPost) (DonationPost, error)
}

// AdoptionPost advertises an animal available for adoption.
type AdoptionPost struct {
	ID                int64
	OwnerID           int64
	Name              string
	Type              string
	Breed             string
	Gender            string
	Color             string
	Training          string
	Vaccine           string
	PhysicalCondition string
	Behaviour         string
	Food              string
	Description       string
	Location          string
	Mobile            string
	Images            []string
	Available         bool
	PostedOn          time.Time
}

// MissingPost reports a missing animal.
type MissingPost struct {
	ID                  int64
	CreatorID           int64
	Name                string
	Type                string
	Breed               string
	Gender              string
	Color               string
	Vaccine             string
	SpecificAttribute   string
	AccessoriesLastWorn string
	Location            string
	Reward              string
	Image               string
	DateMissing         time.Time
	StillMissing        bool
}

// DonationPost is a fundraising campaign.
type DonationPost struct {
	ID              int64
	Name            string
	Type            string
	Description     string
	Location        string
	Image           string
	TargetAmount    int64
	RemainingAmount int64
	PeopleDonated   int64
	CreatedOn       time.Time
}
