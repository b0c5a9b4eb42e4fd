// internal/domain/models/campaign.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign is a community environmental initiative proposed by an organizer.
//
// NOTE:
//   - Status only changes through the lifecycle (see system/lifecycle);
//     content updates never touch it.
//   - CurrentParticipants only changes through an atomic $inc in the
//     campaign store. There is no per-user membership ledger.
type Campaign struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	DescriptionText  string             `bson:"description_text,omitempty" json:"-"`
	ShortDescription string             `bson:"short_description,omitempty" json:"shortDescription,omitempty"`
	Category         string             `bson:"category" json:"category"`
	Tags             []string           `bson:"tags" json:"tags"`

	OrganizerID   primitive.ObjectID `bson:"organizer_id" json:"organizer"`
	OrganizerName string             `bson:"organizer_name" json:"organizerName"`

	Location GeoPoint `bson:"location" json:"location"`
	Address  Address  `bson:"address,omitempty" json:"address,omitempty"`

	StartDate time.Time `bson:"start_date" json:"startDate"`
	EndDate   time.Time `bson:"end_date" json:"endDate"`

	Images []CampaignImage `bson:"images" json:"images"`

	Status string `bson:"status" json:"status"`

	TargetParticipants  *int `bson:"target_participants,omitempty" json:"targetParticipants,omitempty"`
	CurrentParticipants int  `bson:"current_participants" json:"currentParticipants"`

	ImpactMetrics ImpactMetrics  `bson:"impact_metrics" json:"impactMetrics"`
	Requirements  []string       `bson:"requirements" json:"requirements"`
	Resources     []ResourceNeed `bson:"resources" json:"resources"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude]
// so the field can back a 2dsphere index directly.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint returns a GeoJSON point for the given longitude/latitude.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Lng returns the longitude, or 0 for a malformed point.
func (p GeoPoint) Lng() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

// Lat returns the latitude, or 0 for a malformed point.
func (p GeoPoint) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Address is free-text location detail shown alongside the point.
type Address struct {
	Street string `bson:"street,omitempty" json:"street,omitempty"`
	City   string `bson:"city,omitempty" json:"city,omitempty"`
	State  string `bson:"state,omitempty" json:"state,omitempty"`
}

type CampaignImage struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id,omitempty" json:"publicId,omitempty"`
	Caption  string `bson:"caption,omitempty" json:"caption,omitempty"`
}

type ImpactMetrics struct {
	PlasticCollected float64 `bson:"plastic_collected" json:"plasticCollected"`
	PeopleReached    int     `bson:"people_reached" json:"peopleReached"`
	TreesPlanted     int     `bson:"trees_planted" json:"treesPlanted"`
}

type ResourceNeed struct {
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// HasCapacityLimit reports whether the campaign caps participation.
func (c Campaign) HasCapacityLimit() bool {
	return c.TargetParticipants != nil && *c.TargetParticipants > 0
}

// IsFull reports whether a capped campaign has reached its target.
func (c Campaign) IsFull() bool {
	return c.HasCapacityLimit() && c.CurrentParticipants >= *c.TargetParticipants
}
