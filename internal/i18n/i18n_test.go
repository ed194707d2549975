package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBundle(t *testing.T) {
	bundle, err := LoadBundle(Arabic)
	require.NoError(t, err)

	assert.Equal(t, []string{Arabic, English}, bundle.Languages())
	assert.Equal(t, Arabic, bundle.DefaultLanguage())
}

func TestLoadBundle_UnknownDefault(t *testing.T) {
	_, err := LoadBundle("fr")
	assert.Error(t, err)
}

func TestLocalizer_Translates(t *testing.T) {
	bundle, err := LoadBundle(Arabic)
	require.NoError(t, err)

	en := bundle.Localizer(English)
	assert.Equal(t, "Grand Total", en.T("grandTotal2"))
	assert.Equal(t, "EGP", en.T("currency"))
	assert.Equal(t, "ltr", en.Dir())

	ar := bundle.Localizer(Arabic)
	assert.Equal(t, "جنيه", ar.T("currency"))
	assert.Equal(t, "rtl", ar.Dir())
}

func TestLocalizer_MissingKeyFallsBackToKey(t *testing.T) {
	bundle, err := LoadBundle(English)
	require.NoError(t, err)

	l := bundle.Localizer(English)
	assert.Equal(t, "11th", l.T("11th"))
	assert.Equal(t, "50% tinted", l.T("50% tinted"))
}

func TestBundle_UnknownLanguageUsesDefault(t *testing.T) {
	bundle, err := LoadBundle(Arabic)
	require.NoError(t, err)

	l := bundle.Localizer("de")
	assert.Equal(t, Arabic, l.Lang())
	assert.Equal(t, "فاتورة طلب", l.T("invoice"))

	assert.Equal(t, English, bundle.Localizer(" EN ").Lang())
	assert.Equal(t, Arabic, bundle.Localizer("").Lang())
}

func TestLocalizer_Category(t *testing.T) {
	bundle, err := LoadBundle(English)
	require.NoError(t, err)

	l := bundle.Localizer(English)
	assert.Equal(t, "Window Frames", l.Category("windows2"))
	assert.Equal(t, "Uncategorized", l.Category(""))
	assert.Equal(t, "shower cabin", l.Category("shower cabin"))
}

func TestLocalizer_Format(t *testing.T) {
	bundle, err := LoadBundle(Arabic)
	require.NoError(t, err)

	en := bundle.Localizer(English)
	assert.Equal(t, "First Payment", en.Format("paymentLabel", en.T("first")))
	assert.Equal(t, "Page 2 of 3", en.Format("pageOf", "2", "3"))

	ar := bundle.Localizer(Arabic)
	assert.Equal(t, "الدفعة الأولى", ar.Format("paymentLabel", ar.T("first")))
	assert.Equal(t, "صفحة 2 من 3", ar.Format("pageOf", "2", "3"))
}
