package domain

import (
	"fmt"
	"strings"
	"time"
)

// DisplayOption controls where the storefront widget is rendered
type DisplayOption string

const (
	DisplayCart    DisplayOption = "cart"
	DisplayProduct DisplayOption = "product"
	DisplayBoth    DisplayOption = "both"
)

// Valid reports whether d is one of the supported placements
func (d DisplayOption) Valid() bool {
	switch d {
	case DisplayCart, DisplayProduct, DisplayBoth:
		return true
	}
	return false
}

const (
	DefaultProductTitle = "Gift Wrap"
	DefaultGiftTitle    = "Add a Gift Wrap to your Order"
	DefaultPrice        = int64(2000)
	DefaultIcon         = "https://cdn-icons-png.flaticon.com/512/3534/3534140.png"

	maxTitleLength = 255
)

// Settings is the per-shop gift wrap configuration. Price is in minor currency units.
type Settings struct {
	ID            string        `json:"id"`
	Shop          string        `json:"shop"`
	IsEnabled     bool          `json:"isEnabled"`
	DisplayOption DisplayOption `json:"displayOption"`
	ProductTitle  string        `json:"productTitle"`
	GiftTitle     string        `json:"giftTitle"`
	Price         int64         `json:"price"`
	EnableNotes   bool          `json:"enableNotes"`
	IsIcon        bool          `json:"isIcon"`
	Icon          string        `json:"icon"`
	IsImage       bool          `json:"isImage"`
	Image         string        `json:"image"`
	CustomCSS     string        `json:"customCss"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// SettingsInput is the parsed admin form payload
type SettingsInput struct {
	IsEnabled     bool          `json:"isEnabled"`
	DisplayOption DisplayOption `json:"displayOption"`
	ProductTitle  string        `json:"productTitle"`
	GiftTitle     string        `json:"giftTitle"`
	Price         *int64        `json:"price"`
	EnableNotes   *bool         `json:"enableNotes"`
	IsIcon        bool          `json:"isIcon"`
	Icon          string        `json:"icon"`
	IsImage       bool          `json:"isImage"`
	Image         string        `json:"image"`
	CustomCSS     string        `json:"customCss"`
}

// Validate checks the payload without touching any stored record
func (in SettingsInput) Validate() error {
	if in.DisplayOption != "" && !in.DisplayOption.Valid() {
		return fmt.Errorf("invalid display option %q", in.DisplayOption)
	}
	if in.Price != nil && *in.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if len(strings.TrimSpace(in.ProductTitle)) > maxTitleLength {
		return fmt.Errorf("product title exceeds %d characters", maxTitleLength)
	}
	return nil
}

// NewSettings builds the first settings record for a shop, filling defaults for omitted values
func NewSettings(shop string, in SettingsInput) (*Settings, error) {
	if shop == "" {
		return nil, fmt.Errorf("shop is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Settings{
		Shop:          shop,
		DisplayOption: DisplayBoth,
		ProductTitle:  DefaultProductTitle,
		GiftTitle:     DefaultGiftTitle,
		Price:         DefaultPrice,
		EnableNotes:   true,
		CreatedAt:     now,
	}
	s.apply(in, now)
	if s.Icon == "" {
		s.Icon = DefaultIcon
	}
	return s, nil
}

// Update applies a new payload to an existing record, keeping its identity. Icon and Image
// always take the submitted value, so an empty one clears the stored asset.
func (s *Settings) Update(in SettingsInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	s.apply(in, time.Now())
	return nil
}

func (s *Settings) apply(in SettingsInput, now time.Time) {
	s.IsEnabled = in.IsEnabled
	s.IsIcon = in.IsIcon
	s.IsImage = in.IsImage
	s.Icon = in.Icon
	s.Image = in.Image
	s.CustomCSS = in.CustomCSS

	if in.DisplayOption != "" {
		s.DisplayOption = in.DisplayOption
	}
	if title := strings.TrimSpace(in.ProductTitle); title != "" {
		s.ProductTitle = title
	}
	if gift := strings.TrimSpace(in.GiftTitle); gift != "" {
		s.GiftTitle = gift
	}
	if in.Price != nil {
		s.Price = *in.Price
	}
	if in.EnableNotes != nil {
		s.EnableNotes = *in.EnableNotes
	}
	s.UpdatedAt = now
}
