// Package listing provides the rental advertisement domain model and data access.
package listing

import (
	"strconv"
	"strings"
	"time"
)

// HouseType classifies a listed property. The stored value is the
// enum key; display names are derived at read time.
type HouseType string

const (
	Detached HouseType = "detached"
	Flat     HouseType = "flat"
	Loft     HouseType = "loft"
	Villa    HouseType = "villa"
)

// ValidTypes is the set of allowed house types.
var ValidTypes = []HouseType{Detached, Flat, Loft, Villa}

// IsValid checks if a house type is recognized.
func (t HouseType) IsValid() bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// DisplayName returns the localized name for the house type.
func (t HouseType) DisplayName() string {
	switch t {
	case Detached:
		return "Casa indipendente"
	case Flat:
		return "Appartamento"
	case Loft:
		return "Loft"
	case Villa:
		return "Villa"
	default:
		return string(t)
	}
}

// MaxImages is the most pictures a listing may carry.
const MaxImages = 5

// Listing is the stored advertisement record, undecorated.
type Listing struct {
	ID          int64     `json:"id"`
	Address     string    `json:"address"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Rooms       int       `json:"rooms"`
	Type        HouseType `json:"type"`
	Furnished   bool      `json:"furnished"`
	Rent        float64   `json:"rent"`
	Available   bool      `json:"available"`
	Landlord    string    `json:"landlord"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// View is a listing decorated for display: derived fields are computed
// from the stored record, never persisted.
type View struct {
	ID           int64  `json:"id"`
	Address      string `json:"address"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Rooms        string `json:"rooms"`
	Type         string `json:"type"`
	Furniture    string `json:"furniture"`
	Rent         string `json:"rent"`
	Landlord     string `json:"landlord"`
	LandlordName string `json:"landlord_name"`
	Image        string `json:"image,omitempty"`
}

// RoomLabel renders a room count for display, clamped at "5+".
func RoomLabel(rooms int) string {
	if rooms > 5 {
		return "5+"
	}
	return strconv.Itoa(rooms)
}

// FurnitureLabel renders the furnishing status as a localized phrase.
// The adjective takes a feminine suffix for detached houses and
// villas, masculine otherwise, and a negative prefix when unfurnished.
func FurnitureLabel(furnished bool, t HouseType) string {
	var b strings.Builder
	if !furnished {
		b.WriteString("non ")
	}
	if t == Detached || t == Villa {
		b.WriteString("arredata")
	} else {
		b.WriteString("arredato")
	}

	phrase := b.String()
	return strings.ToUpper(phrase[:1]) + phrase[1:]
}

// RentLabel renders a monthly rent with two decimals and a comma
// decimal separator.
func RentLabel(rent float64) string {
	return strings.Replace(strconv.FormatFloat(rent, 'f', 2, 64), ".", ",", 1)
}

// decorate builds the display view for a stored listing.
func decorate(l *Listing, landlordName, image string) *View {
	return &View{
		ID:           l.ID,
		Address:      l.Address,
		Title:        l.Title,
		Description:  l.Description,
		Rooms:        RoomLabel(l.Rooms),
		Type:         l.Type.DisplayName(),
		Furniture:    FurnitureLabel(l.Furnished, l.Type),
		Rent:         RentLabel(l.Rent),
		Landlord:     l.Landlord,
		LandlordName: landlordName,
		Image:        image,
	}
}
