package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hudlab/hudlab-ops/internal/entity"
)

func TestNormalizeDate(t *testing.T) {
	t.Run("MM/DD/YYYY do ActiveCampaign", func(t *testing.T) {
		got := NormalizeDate("03/15/2025")
		assert.NotNil(t, got)
		assert.Equal(t, "2025-03-15", *got)
	})

	t.Run("ISO ja normalizado passa direto", func(t *testing.T) {
		got := NormalizeDate("2025-03-15")
		assert.NotNil(t, got)
		assert.Equal(t, "2025-03-15", *got)
	})

	t.Run("RFC3339 com hora vira so a data", func(t *testing.T) {
		got := NormalizeDate("2025-03-15T10:30:00Z")
		assert.NotNil(t, got)
		assert.Equal(t, "2025-03-15", *got)
	})

	t.Run("lixo vira nil, nunca erro", func(t *testing.T) {
		assert.Nil(t, NormalizeDate("nao-e-data"))
		assert.Nil(t, NormalizeDate("15/45/2025"))
		assert.Nil(t, NormalizeDate(""))
		assert.Nil(t, NormalizeDate("   "))
	})
}

func TestParseMoneyCents(t *testing.T) {
	assert.Equal(t, int64(123456), ParseMoneyCents("1234.56"))
	assert.Equal(t, int64(123456), ParseMoneyCents("1234,56")) // vírgula decimal BR
	assert.Equal(t, int64(100000), ParseMoneyCents("1000"))
	assert.Equal(t, int64(0), ParseMoneyCents(""))
	assert.Equal(t, int64(0), ParseMoneyCents("abc"))

	// arredondamento, não truncamento
	assert.Equal(t, int64(10), ParseMoneyCents("0.099"))
}

func TestNormalizeDealStatus(t *testing.T) {
	assert.Equal(t, entity.DealStatusWon, entity.NormalizeDealStatus("1"))
	assert.Equal(t, entity.DealStatusWon, entity.NormalizeDealStatus("won"))
	assert.Equal(t, entity.DealStatusWon, entity.NormalizeDealStatus(" Won "))
	assert.Equal(t, entity.DealStatusLost, entity.NormalizeDealStatus("2"))
	assert.Equal(t, entity.DealStatusLost, entity.NormalizeDealStatus("LOST"))
	assert.Equal(t, entity.DealStatusOpen, entity.NormalizeDealStatus("0"))
	assert.Equal(t, entity.DealStatusOpen, entity.NormalizeDealStatus(""))
	assert.Equal(t, entity.DealStatusOpen, entity.NormalizeDealStatus("qualquer-coisa"))
}

func TestParseIntOrNil(t *testing.T) {
	got := ParseIntOrNil("42")
	assert.NotNil(t, got)
	assert.Equal(t, 42, *got)

	assert.Nil(t, ParseIntOrNil(""))
	assert.Nil(t, ParseIntOrNil("abc"))
}
