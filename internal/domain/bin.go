package domain

import (
	"strings"
	"time"
)

// Bin is a storage slot addressed by section, sub-section and bin label.
type Bin struct {
	ID         uint      `json:"id"`
	Warehouse  string    `json:"warehouse"`
	Section    string    `json:"section"`
	SubSection string    `json:"sub_section"`
	Label      string    `json:"bin"`
	Code       string    `json:"code"`
	Capacity   int       `json:"capacity"`
	Active     bool      `json:"active"`
	OnHand     int       `json:"on_hand"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func BinCode(section, subSection, label string) string {
	return strings.Join([]string{section, subSection, label}, "-")
}

// Fits reports whether qty more units can be placed in the bin. Zero capacity is unlimited.
func (b Bin) Fits(qty int) bool {
	return b.Capacity == 0 || b.OnHand+qty <= b.Capacity
}

type BinFilter struct {
	Warehouse string
	Section   string
}

type BinUpdate struct {
	Capacity *int
	Active   *bool
}
