// internal/app/store/campaigns/content.go
package campaignstore

import (
	"time"

	"github.com/dalemusser/ecohub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Content is a partial content edit. Nil fields are left unchanged.
// Status, organizer and participant count are not content and cannot be
// changed through it.
type Content struct {
	Title              *string
	Description        *string
	ShortDescription   *string
	Category           *string
	Tags               *[]string
	Location           *models.GeoPoint
	Address            *models.Address
	StartDate          *time.Time
	EndDate            *time.Time
	Images             *[]models.CampaignImage
	TargetParticipants *int
	ImpactMetrics      *models.ImpactMetrics
	Requirements       *[]string
	Resources          *[]models.ResourceNeed
}

// Empty reports whether the edit changes nothing.
func (u Content) Empty() bool {
	return len(u.setDoc()) == 0
}

func (u Content) setDoc() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
		set["description_text"] = htmlsanitize.PlainText(*u.Description)
	}
	if u.ShortDescription != nil {
		set["short_description"] = *u.ShortDescription
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Tags != nil {
		set["tags"] = *u.Tags
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	if u.StartDate != nil {
		set["start_date"] = u.StartDate.UTC()
	}
	if u.EndDate != nil {
		set["end_date"] = u.EndDate.UTC()
	}
	if u.Images != nil {
		set["images"] = *u.Images
	}
	if u.TargetParticipants != nil {
		set["target_participants"] = *u.TargetParticipants
	}
	if u.ImpactMetrics != nil {
		set["impact_metrics"] = *u.ImpactMetrics
	}
	if u.Requirements != nil {
		set["requirements"] = *u.Requirements
	}
	if u.Resources != nil {
		set["resources"] = *u.Resources
	}
	return set
}

// Apply returns c with the edit applied, for checks that need the
// resulting document (such as endDate >= startDate).
func (u Content) Apply(c models.Campaign) models.Campaign {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Description != nil {
		c.Description = *u.Description
		c.DescriptionText = htmlsanitize.PlainText(*u.Description)
	}
	if u.ShortDescription != nil {
		c.ShortDescription = *u.ShortDescription
	}
	if u.Category != nil {
		c.Category = *u.Category
	}
	if u.Tags != nil {
		c.Tags = *u.Tags
	}
	if u.Location != nil {
		c.Location = *u.Location
	}
	if u.Address != nil {
		c.Address = *u.Address
	}
	if u.StartDate != nil {
		c.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		c.EndDate = *u.EndDate
	}
	if u.Images != nil {
		c.Images = *u.Images
	}
	if u.TargetParticipants != nil {
		v := *u.TargetParticipants
		c.TargetParticipants = &v
	}
	if u.ImpactMetrics != nil {
		c.ImpactMetrics = *u.ImpactMetrics
	}
	if u.Requirements != nil {
		c.Requirements = *u.Requirements
	}
	if u.Resources != nil {
		c.Resources = *u.Resources
	}
	return c
}
