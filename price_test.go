package menuscan_test

import (
	"testing"

	"github.com/jwalczak/menuscan"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePrices_SinglePrice(t *testing.T) {
	t.Parallel()

	entries, unresolved := menuscan.NormalizePrices([]string{"$14.00"}, menuscan.DefaultPriceLocale(), false)

	require.Len(t, entries, 1)
	assert.False(t, unresolved)
	assert.Empty(t, entries[0].Label)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("14.00")))
	assert.Equal(t, "USD", entries[0].Currency)
	assert.False(t, entries[0].IsAddon)
}

func TestNormalizePrices_MultiSize(t *testing.T) {
	t.Parallel()

	entries, unresolved := menuscan.NormalizePrices([]string{"Small 5", "Large 8"}, menuscan.DefaultPriceLocale(), false)

	require.Len(t, entries, 2)
	assert.False(t, unresolved)
	assert.Equal(t, "Small", entries[0].Label)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "Large", entries[1].Label)
	assert.True(t, entries[1].Amount.Equal(decimal.NewFromInt(8)))
}

func TestNormalizePrices_MultiSizeSingleFragment(t *testing.T) {
	t.Parallel()

	// Vision responses arrive as one labeled fragment.
	entries, _ := menuscan.NormalizePrices([]string{"Cup - $6.99 / Bowl - $9.99"}, menuscan.DefaultPriceLocale(), false)

	require.Len(t, entries, 2)
	assert.Equal(t, "Cup", entries[0].Label)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("6.99")))
	assert.Equal(t, "Bowl", entries[1].Label)
	assert.True(t, entries[1].Amount.Equal(decimal.RequireFromString("9.99")))
}

func TestNormalizePrices_AddonPrefix(t *testing.T) {
	t.Parallel()

	entries, _ := menuscan.NormalizePrices([]string{"add chicken 7"}, menuscan.DefaultPriceLocale(), false)

	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsAddon)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(7)))
}

func TestNormalizePrices_AddonSectionHint(t *testing.T) {
	t.Parallel()

	entries, _ := menuscan.NormalizePrices([]string{"$2.00"}, menuscan.DefaultPriceLocale(), true)

	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsAddon)
}

func TestNormalizePrices_Unresolvable(t *testing.T) {
	t.Parallel()

	for _, fragment := range []string{"Market Price", "MP", "ASK YOUR SERVER"} {
		entries, unresolved := menuscan.NormalizePrices([]string{fragment}, menuscan.DefaultPriceLocale(), false)
		assert.Empty(t, entries, "fragment %q", fragment)
		assert.True(t, unresolved, "fragment %q", fragment)
	}
}

func TestNormalizePrices_RejectsPhoneNumbers(t *testing.T) {
	t.Parallel()

	entries, _ := menuscan.NormalizePrices([]string{"584-1234"}, menuscan.DefaultPriceLocale(), false)

	assert.Empty(t, entries)
}

func TestNormalizePrices_NoFragments(t *testing.T) {
	t.Parallel()

	entries, unresolved := menuscan.NormalizePrices(nil, menuscan.DefaultPriceLocale(), false)

	assert.Empty(t, entries)
	assert.False(t, unresolved)
}

func TestNormalizePrices_SymbolOnlyLocale(t *testing.T) {
	t.Parallel()

	loc := menuscan.PriceLocale{Symbol: "€"}

	entries, _ := menuscan.NormalizePrices([]string{"Call 518 587 2278"}, loc, false)
	assert.Empty(t, entries, "bare numbers are not currency-marked")

	entries, _ = menuscan.NormalizePrices([]string{"€14"}, loc, false)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(14)))
	assert.Equal(t, "EUR", entries[0].Currency)
}

func TestNormalizePrices_DecimalCommaLocale(t *testing.T) {
	t.Parallel()

	loc := menuscan.PriceLocale{Symbol: "€", Code: "EUR", DecimalComma: true}
	entries, _ := menuscan.NormalizePrices([]string{"€12,50"}, loc, false)

	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, "EUR", entries[0].Currency)
}

func TestNormalizePrices_QuantityLabel(t *testing.T) {
	t.Parallel()

	entries, _ := menuscan.NormalizePrices([]string{"5 for $12 / 10 for $18"}, menuscan.DefaultPriceLocale(), false)

	require.Len(t, entries, 2)
	assert.Equal(t, "5 for", entries[0].Label)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, "10 for", entries[1].Label)
	assert.True(t, entries[1].Amount.Equal(decimal.NewFromInt(18)))
}

func TestIsAddonSection(t *testing.T) {
	t.Parallel()

	assert.True(t, menuscan.IsAddonSection("Add-Ons"))
	assert.True(t, menuscan.IsAddonSection("EXTRAS"))
	assert.True(t, menuscan.IsAddonSection("Toppings"))
	assert.False(t, menuscan.IsAddonSection("Entrees"))
	assert.False(t, menuscan.IsAddonSection(""))
}
