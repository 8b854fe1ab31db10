package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettingsAppliesDefaults(t *testing.T) {
	s, err := NewSettings("gifts.myshopify.com", SettingsInput{})
	require.NoError(t, err)

	assert.Equal(t, "gifts.myshopify.com", s.Shop)
	assert.Equal(t, DefaultProductTitle, s.ProductTitle)
	assert.Equal(t, DefaultGiftTitle, s.GiftTitle)
	assert.Equal(t, DefaultPrice, s.Price)
	assert.Equal(t, DisplayBoth, s.DisplayOption)
	assert.True(t, s.EnableNotes)
	assert.Equal(t, DefaultIcon, s.Icon)
	assert.False(t, s.IsEnabled)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestNewSettingsKeepsProvidedValues(t *testing.T) {
	price := int64(0)
	notes := false
	s, err := NewSettings("gifts.myshopify.com", SettingsInput{
		IsEnabled:     true,
		DisplayOption: DisplayCart,
		ProductTitle:  "  Wrap  ",
		Price:         &price,
		EnableNotes:   &notes,
		CustomCSS:     ".x{}",
	})
	require.NoError(t, err)

	assert.True(t, s.IsEnabled)
	assert.Equal(t, DisplayCart, s.DisplayOption)
	assert.Equal(t, "Wrap", s.ProductTitle)
	assert.Equal(t, int64(0), s.Price, "zero is a valid price")
	assert.False(t, s.EnableNotes)
	assert.Equal(t, ".x{}", s.CustomCSS)
}

func TestSettingsUpdateKeepsIdentity(t *testing.T) {
	s, err := NewSettings("gifts.myshopify.com", SettingsInput{ProductTitle: "First"})
	require.NoError(t, err)
	s.ID = "abc"
	created := s.CreatedAt

	price := int64(1299)
	require.NoError(t, s.Update(SettingsInput{Price: &price}))

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, created, s.CreatedAt)
	assert.Equal(t, "First", s.ProductTitle, "omitted title keeps the stored one")
	assert.Equal(t, int64(1299), s.Price)
	assert.True(t, s.EnableNotes)
}

func TestSettingsUpdateClearsIconAndImage(t *testing.T) {
	s, err := NewSettings("gifts.myshopify.com", SettingsInput{
		IsIcon: true,
		Icon:   "https://cdn.example.com/bow.png",
		Image:  "https://cdn.example.com/paper.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/bow.png", s.Icon)

	require.NoError(t, s.Update(SettingsInput{}))

	assert.Empty(t, s.Icon)
	assert.Empty(t, s.Image)
	assert.False(t, s.IsIcon)
}

func TestSettingsInputValidate(t *testing.T) {
	negative := int64(-5)
	tests := []struct {
		name    string
		input   SettingsInput
		wantErr string
	}{
		{name: "empty is valid", input: SettingsInput{}},
		{name: "bad display option", input: SettingsInput{DisplayOption: "footer"}, wantErr: "invalid display option"},
		{name: "negative price", input: SettingsInput{Price: &negative}, wantErr: "price"},
		{name: "long title", input: SettingsInput{ProductTitle: strings.Repeat("a", 256)}, wantErr: "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := NewSettings("", SettingsInput{})
	assert.Error(t, err)
}

func TestGiftWrapViewJSONShape(t *testing.T) {
	s, err := NewSettings("gifts.myshopify.com", SettingsInput{})
	require.NoError(t, err)

	view := NewGiftWrapView(s, nil)
	assert.Nil(t, view.Product)

	view = NewGiftWrapView(s, &ProductLink{ProductID: "p", VariantID: "v"})
	assert.Equal(t, &ProductRef{ProductID: "p", VariantID: "v"}, view.Product)
}
