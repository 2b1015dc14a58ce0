package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/venuehub/venuehub-backend/internal/listings"
	"github.com/venuehub/venuehub-backend/pkg/enums"
)

type userSeed struct {
	Email     string
	FirstName string
	LastName  string
	Role      enums.UserRole
}

type vendorSeed struct {
	User         userSeed
	BusinessName string
	City         string
	Category     enums.ListingCategory
	Status       enums.VendorStatus
	Verified     bool
	Bookings     int
	Revenue      string
	Rating       float64
	Description  string
}

type listingSeed struct {
	VendorEmail string
	Title       string
	City        string
	MinGuests   int
	MaxGuests   int
	BasePrice   string
	Amenities   []string
	Details     any
	Status      enums.ListingStatus
}

type voucherSeed struct {
	Code        string
	Title       string
	Type        enums.DiscountType
	Value       string
	MinOrder    string
	MaxDiscount string
	VendorEmail string
	Active      bool
	Public      bool
	// Offsets from the seed time.
	From, Until time.Duration
	Used, Limit int64
}

type preferenceSeed struct {
	Name        string
	Type        enums.PreferenceType
	Description string
	Visible     bool
	Order       int
}

const day = 24 * time.Hour

var customers = []userSeed{
	{Email: "ayesha.malik@example.com", FirstName: "Ayesha", LastName: "Malik", Role: enums.UserRoleCustomer},
	{Email: "hamza.qureshi@example.com", FirstName: "Hamza", LastName: "Qureshi", Role: enums.UserRoleCustomer},
	{Email: "sara.iqbal@example.com", FirstName: "Sara", LastName: "Iqbal", Role: enums.UserRoleCustomer},
}

var vendorsData = []vendorSeed{
	{
		User:         userSeed{Email: "bookings@royalbanquet.pk", FirstName: "Bilal", LastName: "Ahmed", Role: enums.UserRoleVendor},
		BusinessName: "Royal Banquet Hall",
		City:         "Lahore",
		Category:     enums.ListingCategoryVenue,
		Status:       enums.VendorStatusApproved,
		Verified:     true,
		Bookings:     128,
		Revenue:      "4850000",
		Rating:       4.7,
		Description:  "Grand banquet halls on MM Alam Road for weddings and receptions.",
	},
	{
		User:         userSeed{Email: "hello@greenacres.pk", FirstName: "Zainab", LastName: "Hussain", Role: enums.UserRoleVendor},
		BusinessName: "Green Acres Farmhouse",
		City:         "Islamabad",
		Category:     enums.ListingCategoryFarmhouse,
		Status:       enums.VendorStatusApproved,
		Verified:     false,
		Bookings:     42,
		Revenue:      "1260000",
		Rating:       4.4,
		Description:  "Private farmhouse with pool and lawns off Bhara Kahu.",
	},
	{
		User:         userSeed{Email: "orders@spiceroute.pk", FirstName: "Kamran", LastName: "Sheikh", Role: enums.UserRoleVendor},
		BusinessName: "Spice Route Catering",
		City:         "Karachi",
		Category:     enums.ListingCategoryCatering,
		Status:       enums.VendorStatusPending,
		Description:  "Desi and continental menus for 50 to 2000 guests.",
	},
	{
		User:         userSeed{Email: "studio@lensandlight.pk", FirstName: "Mehwish", LastName: "Tariq", Role: enums.UserRoleVendor},
		BusinessName: "Lens & Light Studio",
		City:         "Lahore",
		Category:     enums.ListingCategoryPhotography,
		Status:       enums.VendorStatusSuspended,
		Verified:     true,
		Bookings:     67,
		Revenue:      "980000",
		Rating:       3.9,
	},
}

var listingsData = []listingSeed{
	{
		VendorEmail: "bookings@royalbanquet.pk",
		Title:       "Crystal Hall",
		City:        "Lahore",
		MinGuests:   200,
		MaxGuests:   800,
		BasePrice:   "450000",
		Amenities:   []string{"Air Conditioning", "Valet Parking", "Bridal Room"},
		Details: listings.VenueDetails{
			VenueType:       listings.VenueTypeBanquetHall,
			IndoorCapacity:  800,
			ParkingSpaces:   150,
			InHouseCatering: true,
			DecorIncluded:   true,
		},
		Status: enums.ListingStatusPublished,
	},
	{
		VendorEmail: "bookings@royalbanquet.pk",
		Title:       "Garden Marquee",
		City:        "Lahore",
		MinGuests:   100,
		MaxGuests:   500,
		BasePrice:   "300000",
		Amenities:   []string{"Generator Backup", "Lighting"},
		Details: listings.VenueDetails{
			VenueType:       listings.VenueTypeMarquee,
			OutdoorCapacity: 500,
			ParkingSpaces:   80,
		},
		Status: enums.ListingStatusDraft,
	},
	{
		VendorEmail: "hello@greenacres.pk",
		Title:       "Green Acres Poolside Farmhouse",
		City:        "Islamabad",
		MinGuests:   20,
		MaxGuests:   150,
		BasePrice:   "85000",
		Amenities:   []string{"Swimming Pool", "BBQ Area", "Parking"},
		Details: listings.FarmhouseDetails{
			Bedrooms:      5,
			HasPool:       true,
			OvernightStay: true,
			CheckIn:       "14:00",
			CheckOut:      "12:00",
		},
		Status: enums.ListingStatusPublished,
	},
	{
		VendorEmail: "orders@spiceroute.pk",
		Title:       "Shahi Wedding Menu",
		City:        "Karachi",
		MinGuests:   100,
		MaxGuests:   2000,
		BasePrice:   "2200",
		Details: listings.CateringDetails{
			Cuisines:      []string{"Pakistani", "Mughlai"},
			MenuItems:     []string{"Mutton Biryani", "Chicken Karahi", "Kheer"},
			MinPlates:     100,
			StaffIncluded: true,
		},
		Status: enums.ListingStatusDraft,
	},
	{
		VendorEmail: "studio@lensandlight.pk",
		Title:       "Full Day Wedding Coverage",
		City:        "Lahore",
		BasePrice:   "150000",
		Details: listings.PhotographyDetails{
			Services:      []string{listings.ShootPhoto, listings.ShootVideo, listings.ShootDrone},
			CoverageHours: 10,
			Photographers: 3,
			DeliveryDays:  30,
			AlbumIncluded: true,
		},
		Status: enums.ListingStatusArchived,
	},
}

var vouchersData = []voucherSeed{
	{Code: "SAVE20", Title: "20% off your first booking", Type: enums.DiscountTypePercentage, Value: "20", MinOrder: "50000", MaxDiscount: "25000", Active: true, Public: true, From: -30 * day, Until: 60 * day, Used: 50, Limit: 200},
	{Code: "FIXED10", Title: "Rs 10,000 off catering", Type: enums.DiscountTypeFixed, Value: "10000", MinOrder: "100000", Active: true, Public: true, From: -10 * day, Until: 20 * day, Used: 10, Limit: 40},
	{Code: "EXPIRED15", Title: "Eid special 15%", Type: enums.DiscountTypePercentage, Value: "15", MinOrder: "0", Active: false, Public: false, From: -90 * day, Until: -1 * day, Used: 30, Limit: 30},
	{Code: "ROYAL5K", Title: "Royal Banquet weekday offer", Type: enums.DiscountTypeFixed, Value: "5000", MinOrder: "200000", VendorEmail: "bookings@royalbanquet.pk", Active: true, Public: false, From: -5 * day, Until: 25 * day, Used: 3, Limit: 0},
}

var preferencesData = []preferenceSeed{
	{Name: "Wedding", Type: enums.PreferenceTypeEventType, Description: "Baraat, walima and nikkah events", Visible: true, Order: 1},
	{Name: "Mehndi", Type: enums.PreferenceTypeEventType, Visible: true, Order: 2},
	{Name: "Birthday", Type: enums.PreferenceTypeEventType, Visible: true, Order: 3},
	{Name: "Corporate", Type: enums.PreferenceTypeEventType, Visible: false, Order: 4},
	{Name: "Parking", Type: enums.PreferenceTypeAmenity, Visible: true, Order: 1},
	{Name: "Generator Backup", Type: enums.PreferenceTypeAmenity, Visible: true, Order: 2},
	{Name: "Pakistani", Type: enums.PreferenceTypeCuisine, Visible: true, Order: 1},
	{Name: "BBQ", Type: enums.PreferenceTypeCuisine, Visible: true, Order: 2},
	{Name: "Traditional", Type: enums.PreferenceTypeStyle, Visible: true, Order: 1},
	{Name: "Modern", Type: enums.PreferenceTypeStyle, Description: "Minimal decor and lighting", Visible: false, Order: 2},
}

func mustDecimal(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	return decimal.RequireFromString(value)
}
