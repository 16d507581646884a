package cli

import (
	"errors"
	"testing"

	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLevel(t *testing.T) {
	doc := testutil.NewTestDocument()

	tests := []struct {
		ref  string
		want int
	}{
		{"1", 0},
		{"7", 6},
		{"hard-limit", 6},
		{"will try", 4},
		{"WILL TRY", 4},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := resolveLevel(doc, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := resolveLevel(doc, "8")
	var nf *domain.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestResolveCategoryAndEntry(t *testing.T) {
	doc := testutil.NewTestDocument(
		testutil.WithCategory(testutil.FoodCategory()),
		testutil.WithCategory(testutil.ActivitiesCategory()),
	)

	c, i, err := resolveCategory(doc, "activities")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, "cat_activities", c.ID)

	c, _, err = resolveCategory(doc, "cat_food")
	require.NoError(t, err)

	e, i, err := resolveEntry(c, "2")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, "Sushi", e.Name)

	_, _, err = resolveEntry(c, "Ramen")
	assert.EqualError(t, err, "entry not found: Ramen")
}

func TestResolvePosition_PrefersPositionOverName(t *testing.T) {
	doc := testutil.NewTestDocument(
		testutil.WithCategory(testutil.NewTestCategory("cat_a", "2", nil)),
		testutil.WithCategory(testutil.NewTestCategory("cat_b", "Other", nil)),
	)

	c, _, err := resolveCategory(doc, "2")
	require.NoError(t, err)
	assert.Equal(t, "cat_b", c.ID)
}

func TestParseProperty(t *testing.T) {
	p, err := parseProperty("Taste")
	require.NoError(t, err)
	assert.Equal(t, testutil.LevelProp("Taste"), p)

	p, err = parseProperty(" Energy : Scale ")
	require.NoError(t, err)
	assert.Equal(t, testutil.ScaleProp("Energy"), p)

	_, err = parseProperty("Energy:stars")
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "property", ve.Field)
}

func TestParseValue(t *testing.T) {
	doc := testutil.NewTestDocument()

	tests := []struct {
		name    string
		prop    domain.Property
		raw     string
		want    domain.Value
		wantErr bool
	}{
		{"level by name", testutil.LevelProp("T"), "liked", domain.LevelValue("liked"), false},
		{"level by position", testutil.LevelProp("T"), "2", domain.LevelValue("favorite"), false},
		{"unknown level", testutil.LevelProp("T"), "meh", domain.Value{}, true},
		{"scale", testutil.ScaleProp("E"), "7", domain.ScaleValue(7), false},
		{"scale zero", testutil.ScaleProp("E"), "0", domain.ScaleValue(0), false},
		{"scale too high", testutil.ScaleProp("E"), "11", domain.Value{}, true},
		{"scale not a number", testutil.ScaleProp("E"), "lots", domain.Value{}, true},
		{"binary yes", testutil.BinaryProp("B"), "Yes", domain.BinaryValue(true), false},
		{"binary 0", testutil.BinaryProp("B"), "0", domain.BinaryValue(false), false},
		{"binary other", testutil.BinaryProp("B"), "maybe", domain.Value{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValue(doc, tt.prop, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAssignments(t *testing.T) {
	doc := testutil.NewTestDocument()
	c := testutil.ActivitiesCategory()

	values, err := parseAssignments(doc, c, []string{"energy=3", "TRIED=no"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Value{
		"Energy": domain.ScaleValue(3),
		"Tried":  domain.BinaryValue(false),
	}, values)

	_, err = parseAssignments(doc, c, []string{"Energy"})
	assert.ErrorContains(t, err, "expected Property=value")

	_, err = parseAssignments(doc, c, []string{"Mood=1"})
	assert.EqualError(t, err, "property not found: Mood")
}
