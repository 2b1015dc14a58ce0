package listings

import (
	"regexp"
	"strings"

	"github.com/venuehub/venuehub-backend/pkg/enums"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/types"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Venue kinds accepted on VenueDetails.
const (
	VenueTypeBanquetHall = "banquet_hall"
	VenueTypeMarquee     = "marquee"
	VenueTypeLawn        = "lawn"
	VenueTypeRooftop     = "rooftop"
)

// Photography services accepted on PhotographyDetails.
const (
	ShootPhoto = "photo"
	ShootVideo = "video"
	ShootDrone = "drone"
)

// details is implemented by every category-specific attribute set.
type details interface {
	category() enums.ListingCategory
	validate(fields pkgerrors.Fields)
}

type VenueDetails struct {
	VenueType       string `json:"venue_type"`
	IndoorCapacity  int    `json:"indoor_capacity"`
	OutdoorCapacity int    `json:"outdoor_capacity"`
	ParkingSpaces   int    `json:"parking_spaces"`
	InHouseCatering bool   `json:"in_house_catering"`
	DecorIncluded   bool   `json:"decor_included"`
}

func (VenueDetails) category() enums.ListingCategory { return enums.ListingCategoryVenue }

func (d VenueDetails) validate(fields pkgerrors.Fields) {
	switch d.VenueType {
	case VenueTypeBanquetHall, VenueTypeMarquee, VenueTypeLawn, VenueTypeRooftop:
	default:
		fields.Add("details.venue_type", "must be banquet_hall, marquee, lawn or rooftop")
	}
	if d.IndoorCapacity < 0 || d.OutdoorCapacity < 0 {
		fields.Add("details.capacity", "must not be negative")
	} else if d.IndoorCapacity+d.OutdoorCapacity == 0 {
		fields.Add("details.capacity", "indoor or outdoor capacity is required")
	}
	if d.ParkingSpaces < 0 {
		fields.Add("details.parking_spaces", "must not be negative")
	}
}

type FarmhouseDetails struct {
	Bedrooms      int    `json:"bedrooms"`
	HasPool       bool   `json:"has_pool"`
	OvernightStay bool   `json:"overnight_stay"`
	CheckIn       string `json:"check_in,omitempty"`
	CheckOut      string `json:"check_out,omitempty"`
}

func (FarmhouseDetails) category() enums.ListingCategory { return enums.ListingCategoryFarmhouse }

func (d FarmhouseDetails) validate(fields pkgerrors.Fields) {
	if d.Bedrooms < 0 {
		fields.Add("details.bedrooms", "must not be negative")
	}
	if d.CheckIn != "" && !clockPattern.MatchString(d.CheckIn) {
		fields.Add("details.check_in", "must be HH:MM")
	}
	if d.CheckOut != "" && !clockPattern.MatchString(d.CheckOut) {
		fields.Add("details.check_out", "must be HH:MM")
	}
	if d.OvernightStay && (d.CheckIn == "" || d.CheckOut == "") {
		fields.Add("details.check_in", "check-in and check-out are required for overnight stays")
	}
}

type CateringDetails struct {
	Cuisines      types.StringList `json:"cuisines"`
	MenuItems     types.StringList `json:"menu_items"`
	MinPlates     int              `json:"min_plates"`
	StaffIncluded bool             `json:"staff_included"`
}

func (CateringDetails) category() enums.ListingCategory { return enums.ListingCategoryCatering }

func (d CateringDetails) validate(fields pkgerrors.Fields) {
	if len(d.Cuisines.Normalize()) == 0 {
		fields.Add("details.cuisines", "at least one cuisine is required")
	}
	if len(d.MenuItems.Normalize()) == 0 {
		fields.Add("details.menu_items", "at least one menu item is required")
	}
	if d.MinPlates <= 0 {
		fields.Add("details.min_plates", "must be greater than 0")
	}
}

type PhotographyDetails struct {
	Services      types.StringList `json:"services"`
	CoverageHours int              `json:"coverage_hours"`
	Photographers int              `json:"photographers"`
	DeliveryDays  int              `json:"delivery_days"`
	AlbumIncluded bool             `json:"album_included"`
}

func (PhotographyDetails) category() enums.ListingCategory { return enums.ListingCategoryPhotography }

func (d PhotographyDetails) validate(fields pkgerrors.Fields) {
	services := d.Services.Normalize()
	if len(services) == 0 {
		fields.Add("details.services", "at least one service is required")
	}
	for _, s := range services {
		switch strings.ToLower(s) {
		case ShootPhoto, ShootVideo, ShootDrone:
		default:
			fields.Add("details.services", "must be photo, video or drone")
		}
	}
	if d.CoverageHours <= 0 {
		fields.Add("details.coverage_hours", "must be greater than 0")
	}
	if d.Photographers <= 0 {
		fields.Add("details.photographers", "must be greater than 0")
	}
	if d.DeliveryDays < 0 {
		fields.Add("details.delivery_days", "must not be negative")
	}
}

// normalize tidies list fields before storage.
func normalize(d details) details {
	switch v := d.(type) {
	case CateringDetails:
		v.Cuisines = v.Cuisines.Normalize()
		v.MenuItems = v.MenuItems.Normalize()
		return v
	case PhotographyDetails:
		services := v.Services.Normalize()
		for i := range services {
			services[i] = strings.ToLower(services[i])
		}
		v.Services = services
		return v
	case FarmhouseDetails:
		v.CheckIn = strings.TrimSpace(v.CheckIn)
		v.CheckOut = strings.TrimSpace(v.CheckOut)
		return v
	}
	return d
}
