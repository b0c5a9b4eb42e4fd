// internal/app/features/campaigns/types.go
package campaigns

import (
	"time"

	campaignstore "github.com/dalemusser/ecohub/internal/app/store/campaigns"
	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	"github.com/dalemusser/ecohub/internal/app/system/geo"
	"github.com/dalemusser/ecohub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ecohub/internal/app/system/inputval"
	"github.com/dalemusser/ecohub/internal/domain/models"
)

// locationInput is the GeoJSON point plus the free-text address parts,
// sent together the way clients already build it.
type locationInput struct {
	Type        string    `json:"type" validate:"omitempty,eq=Point"`
	Coordinates []float64 `json:"coordinates" validate:"required,len=2"`
	Address     string    `json:"address" validate:"max=300"`
	City        string    `json:"city" validate:"max=100"`
	State       string    `json:"state" validate:"max=100"`
}

type imageInput struct {
	URL      string `json:"url" validate:"required,http_url,max=2048"`
	PublicID string `json:"publicId" validate:"max=200"`
	Caption  string `json:"caption" validate:"max=300"`
}

type impactInput struct {
	PlasticCollected float64 `json:"plasticCollected" validate:"min=0"`
	PeopleReached    int     `json:"peopleReached" validate:"min=0"`
	TreesPlanted     int     `json:"treesPlanted" validate:"min=0"`
}

type resourceInput struct {
	Name     string `json:"name" validate:"nonblank,max=100"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

// createRequest is the body of POST /campaigns. Status, organizer and
// participant count are not accepted from clients.
type createRequest struct {
	Title              string          `json:"title" validate:"nonblank,max=200"`
	Description        string          `json:"description" validate:"nonblank,max=20000"`
	ShortDescription   string          `json:"shortDescription" validate:"max=300"`
	Category           string          `json:"category" validate:"campaigncategory"`
	Tags               []string        `json:"tags" validate:"max=20,dive,max=50"`
	Location           locationInput   `json:"location"`
	StartDate          time.Time       `json:"startDate" validate:"required"`
	EndDate            time.Time       `json:"endDate" validate:"required,gtefield=StartDate"`
	Images             []imageInput    `json:"images" validate:"max=20,dive"`
	TargetParticipants *int            `json:"targetParticipants" validate:"omitempty,min=1"`
	ImpactMetrics      impactInput     `json:"impactMetrics"`
	Requirements       []string        `json:"requirements" validate:"max=50,dive,max=300"`
	Resources          []resourceInput `json:"resources" validate:"max=50,dive"`
}

// updateRequest is the body of PUT /campaigns/{id}. Absent fields are left
// unchanged. Status, when present, is a lifecycle transition and needs
// expectedStatus.
type updateRequest struct {
	Title              *string          `json:"title" validate:"omitempty,nonblank,max=200"`
	Description        *string          `json:"description" validate:"omitempty,nonblank,max=20000"`
	ShortDescription   *string          `json:"shortDescription" validate:"omitempty,max=300"`
	Category           *string          `json:"category" validate:"omitempty,campaigncategory"`
	Tags               *[]string        `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Location           *locationInput   `json:"location"`
	StartDate          *time.Time       `json:"startDate"`
	EndDate            *time.Time       `json:"endDate"`
	Images             *[]imageInput    `json:"images" validate:"omitempty,max=20,dive"`
	TargetParticipants *int             `json:"targetParticipants" validate:"omitempty,min=1"`
	ImpactMetrics      *impactInput     `json:"impactMetrics"`
	Requirements       *[]string        `json:"requirements" validate:"omitempty,max=50,dive,max=300"`
	Resources          *[]resourceInput `json:"resources" validate:"omitempty,max=50,dive"`

	Status         *string `json:"status"`
	ExpectedStatus *string `json:"expectedStatus"`
}

// statusRequest is the body of POST /campaigns/{id}/status.
type statusRequest struct {
	From string `json:"from" validate:"nonblank"`
	To   string `json:"to" validate:"nonblank"`
}

// validate runs struct rules and returns the first failure as a
// Validation error.
func validate(s any) error {
	if res := inputval.Validate(s); res.HasErrors() {
		return apperr.NewValidation(res.First())
	}
	return nil
}

func (l locationInput) point() (models.GeoPoint, models.Address, error) {
	lng, lat := l.Coordinates[0], l.Coordinates[1]
	if !geo.ValidPoint(lng, lat) {
		return models.GeoPoint{}, models.Address{}, apperr.NewValidation("location.coordinates must be [longitude, latitude] within range.")
	}
	addr := models.Address{
		Street: htmlsanitize.PlainText(l.Address),
		City:   htmlsanitize.PlainText(l.City),
		State:  htmlsanitize.PlainText(l.State),
	}
	return models.NewGeoPoint(lng, lat), addr, nil
}

func (in *createRequest) sanitize() {
	in.Title = htmlsanitize.PlainText(in.Title)
	in.Description = htmlsanitize.Sanitize(in.Description)
	in.ShortDescription = htmlsanitize.PlainText(in.ShortDescription)
	in.Tags = htmlsanitize.PlainTexts(in.Tags)
	in.Requirements = htmlsanitize.PlainTexts(in.Requirements)
	for i := range in.Images {
		in.Images[i].Caption = htmlsanitize.PlainText(in.Images[i].Caption)
	}
	for i := range in.Resources {
		in.Resources[i].Name = htmlsanitize.PlainText(in.Resources[i].Name)
	}
}

// campaign validates the request and builds the unsaved campaign.
func (in createRequest) campaign() (models.Campaign, error) {
	in.sanitize()
	if err := validate(in); err != nil {
		return models.Campaign{}, err
	}
	loc, addr, err := in.Location.point()
	if err != nil {
		return models.Campaign{}, err
	}
	return models.Campaign{
		Title:              in.Title,
		Description:        in.Description,
		ShortDescription:   in.ShortDescription,
		Category:           in.Category,
		Tags:               in.Tags,
		Location:           loc,
		Address:            addr,
		StartDate:          in.StartDate.UTC(),
		EndDate:            in.EndDate.UTC(),
		Images:             images(in.Images),
		TargetParticipants: in.TargetParticipants,
		ImpactMetrics:      in.ImpactMetrics.model(),
		Requirements:       in.Requirements,
		Resources:          resources(in.Resources),
	}, nil
}

func (in *updateRequest) sanitize() {
	plain := func(p *string) {
		if p != nil {
			*p = htmlsanitize.PlainText(*p)
		}
	}
	plain(in.Title)
	plain(in.ShortDescription)
	if in.Description != nil {
		*in.Description = htmlsanitize.Sanitize(*in.Description)
	}
	if in.Tags != nil {
		*in.Tags = htmlsanitize.PlainTexts(*in.Tags)
	}
	if in.Requirements != nil {
		*in.Requirements = htmlsanitize.PlainTexts(*in.Requirements)
	}
	if in.Images != nil {
		for i := range *in.Images {
			(*in.Images)[i].Caption = htmlsanitize.PlainText((*in.Images)[i].Caption)
		}
	}
	if in.Resources != nil {
		for i := range *in.Resources {
			(*in.Resources)[i].Name = htmlsanitize.PlainText((*in.Resources)[i].Name)
		}
	}
}

// content validates the request and builds the partial edit. fields lists
// the JSON names that were set, for the audit log.
func (in updateRequest) content() (campaignstore.Content, []string, error) {
	in.sanitize()
	if err := validate(in); err != nil {
		return campaignstore.Content{}, nil, err
	}

	var (
		upd    campaignstore.Content
		fields []string
	)
	set := func(name string) { fields = append(fields, name) }

	if in.Title != nil {
		upd.Title = in.Title
		set("title")
	}
	if in.Description != nil {
		upd.Description = in.Description
		set("description")
	}
	if in.ShortDescription != nil {
		upd.ShortDescription = in.ShortDescription
		set("shortDescription")
	}
	if in.Category != nil {
		upd.Category = in.Category
		set("category")
	}
	if in.Tags != nil {
		upd.Tags = in.Tags
		set("tags")
	}
	if in.Location != nil {
		loc, addr, err := in.Location.point()
		if err != nil {
			return campaignstore.Content{}, nil, err
		}
		upd.Location, upd.Address = &loc, &addr
		set("location")
	}
	if in.StartDate != nil {
		t := in.StartDate.UTC()
		upd.StartDate = &t
		set("startDate")
	}
	if in.EndDate != nil {
		t := in.EndDate.UTC()
		upd.EndDate = &t
		set("endDate")
	}
	if in.Images != nil {
		imgs := images(*in.Images)
		upd.Images = &imgs
		set("images")
	}
	if in.TargetParticipants != nil {
		upd.TargetParticipants = in.TargetParticipants
		set("targetParticipants")
	}
	if in.ImpactMetrics != nil {
		m := in.ImpactMetrics.model()
		upd.ImpactMetrics = &m
		set("impactMetrics")
	}
	if in.Requirements != nil {
		upd.Requirements = in.Requirements
		set("requirements")
	}
	if in.Resources != nil {
		res := resources(*in.Resources)
		upd.Resources = &res
		set("resources")
	}
	return upd, fields, nil
}

func images(in []imageInput) []models.CampaignImage {
	out := make([]models.CampaignImage, 0, len(in))
	for _, img := range in {
		out = append(out, models.CampaignImage{URL: img.URL, PublicID: img.PublicID, Caption: img.Caption})
	}
	return out
}

func resources(in []resourceInput) []models.ResourceNeed {
	out := make([]models.ResourceNeed, 0, len(in))
	for _, r := range in {
		out = append(out, models.ResourceNeed{Name: r.Name, Quantity: r.Quantity})
	}
	return out
}

func (m impactInput) model() models.ImpactMetrics {
	return models.ImpactMetrics{
		PlasticCollected: m.PlasticCollected,
		PeopleReached:    m.PeopleReached,
		TreesPlanted:     m.TreesPlanted,
	}
}
