package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEstimateFound(t *testing.T) {
	raw := `{"name":"Borscht","weight_g":350,"calories":250,"protein_g":8.5,"fat_g":10.2,"carbs_g":30,"calories_per_100g":71}`

	got, err := ParseEstimate(raw)
	require.NoError(t, err)
	assert.Equal(t, "Borscht", got.Name)
	assert.Equal(t, 250, got.Calories)
	assert.Equal(t, 8.5, got.ProteinGrams)
	require.NotNil(t, got.WeightGrams)
	assert.Equal(t, 350.0, *got.WeightGrams)
	require.NotNil(t, got.CaloriesPer100)
	assert.Equal(t, 71.0, *got.CaloriesPer100)
}

func TestParseEstimateOptionalFieldsAbsent(t *testing.T) {
	got, err := ParseEstimate(`{"name":"Tea","calories":2,"protein_g":0,"fat_g":0,"carbs_g":0.5}`)
	require.NoError(t, err)
	assert.Nil(t, got.WeightGrams)
	assert.Nil(t, got.CaloriesPer100)
}

func TestParseEstimateSentinel(t *testing.T) {
	for _, raw := range []string{
		SentinelNotFound,
		"  " + SentinelNotFound + "\n",
		"Sorry. Dish not found.",
	} {
		_, err := ParseEstimate(raw)
		assert.ErrorIs(t, err, ErrDishNotFound, "raw=%q", raw)
		assert.NotErrorIs(t, err, ErrMalformedResponse, "raw=%q", raw)
	}
}

func TestParseEstimateSentinelIsCaseSensitive(t *testing.T) {
	_, err := ParseEstimate("dish not found")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseEstimateMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"I think this is a salad",
		`{"name":"Borscht"}`,
		`{"calories":250}`,
		`{"name":"","calories":250}`,
		`{"name": broken json`,
	} {
		_, err := ParseEstimate(raw)
		assert.ErrorIs(t, err, ErrMalformedResponse, "raw=%q", raw)
	}
}

func TestParseEstimateTrimsCodeFence(t *testing.T) {
	raw := "```json\n{\"name\":\"Salad\",\"calories\":120,\"protein_g\":2,\"fat_g\":7,\"carbs_g\":11}\n```"

	got, err := ParseEstimate(raw)
	require.NoError(t, err)
	assert.Equal(t, "Salad", got.Name)
	assert.Equal(t, 120, got.Calories)
}

func TestParseEstimateClampsNegativeCalories(t *testing.T) {
	got, err := ParseEstimate(`{"name":"Water","calories":-5,"protein_g":0,"fat_g":0,"carbs_g":0}`)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Calories)
}
