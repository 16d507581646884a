package codec

import (
	"encoding/json"
	"testing"

	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *domain.Document {
	food := testutil.FoodCategory()
	food.Entries[0].Comment = "thin crust"
	return testutil.NewTestDocument(
		testutil.WithUsername("sam"),
		testutil.WithExportTitle("Sam's List"),
		testutil.WithCategory(food),
		testutil.WithCategory(testutil.ActivitiesCategory()),
		testutil.WithCategory(testutil.NewTestCategory("cat_empty", "Empty", []domain.Property{testutil.ScaleProp("Score")})),
	)
}

func TestSerialize_RoundTrip(t *testing.T) {
	doc := sampleDocument()
	data, err := Serialize(doc)
	require.NoError(t, err)

	got, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestSerialize_Shape(t *testing.T) {
	data, err := Serialize(sampleDocument())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "sam", raw["username"])
	assert.Equal(t, "Sam's List", raw["exportTitle"])

	cats := raw["categories"].([]any)
	acts := cats[1].(map[string]any)
	props := acts["properties"].([]any)
	assert.Equal(t, map[string]any{"name": "Energy", "type": "scale"}, props[1])

	hiking := acts["entries"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"Interest": "favorite", "Energy": float64(8), "Tried": true}, hiking["levels"])
	assert.NotContains(t, hiking, "comment")
}

func TestDeserialize_LegacyProperties(t *testing.T) {
	data := []byte(`{
		"levels": [{"id": "none", "name": "None", "color": "#ffffff"}],
		"categories": [{
			"id": "cat_1", "name": "Food",
			"properties": ["Taste", {"name": "Spice", "type": "scale"}, {"name": "Odd", "type": "weird"}],
			"entries": [{"id": "e1", "name": "Pizza", "levels": {"Taste": "liked", "Spice": 12.4, "Stale": "x"}}]
		}]
	}`)
	doc, err := Deserialize(data)
	require.NoError(t, err)

	assert.Equal(t, "", doc.Username)
	assert.Equal(t, domain.DefaultExportTitle, doc.ExportTitle)

	cat := doc.Categories[0]
	assert.Equal(t, []domain.Property{
		{Name: "Taste", Type: domain.PropertyLevel},
		{Name: "Spice", Type: domain.PropertyScale},
		{Name: "Odd", Type: domain.PropertyLevel},
	}, cat.Properties)

	pizza := cat.Entries[0]
	assert.True(t, pizza.Values["Taste"].Is("liked"))
	spice, _ := pizza.Values["Spice"].Scale()
	assert.Equal(t, 10, spice)
	assert.True(t, pizza.Values["Odd"].Is(domain.NoneLevelID))
	assert.NotContains(t, pizza.Values, "Stale")
	assert.Empty(t, testutil.AssertValuesMatchProperties(doc))
}

func TestDeserialize_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"not json", `{levels:`, "malformed JSON"},
		{"missing levels", `{"categories": []}`, "levels is required"},
		{"missing categories", `{"levels": []}`, "categories is required"},
		{"null levels", `{"levels": null, "categories": []}`, "levels is required"},
		{"duplicate level", `{"levels": [{"id":"a"},{"id":"a"}], "categories": []}`, "duplicate id"},
		{"duplicate entry", `{"levels": [], "categories": [{"id":"c","entries":[{"id":"e"},{"id":"e"}]}]}`, "entries[1].id: duplicate id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Deserialize([]byte(tt.data))
			assert.Nil(t, doc)
			var fErr *domain.FormatError
			require.ErrorAs(t, err, &fErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDeserialize_EmptyCollections(t *testing.T) {
	doc, err := Deserialize([]byte(`{"levels": [], "categories": []}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Levels)
	assert.Empty(t, doc.Categories)
	assert.Equal(t, domain.DefaultExportTitle, doc.ExportTitle)
}

func TestDeserialize_SameEntryIDInTwoCategories(t *testing.T) {
	doc, err := Deserialize([]byte(`{"levels": [], "categories": [
		{"id": "a", "name": "A", "properties": ["P"], "entries": [{"id": "e", "name": "X"}]},
		{"id": "b", "name": "B", "properties": ["P"], "entries": [{"id": "e", "name": "X"}]}
	]}`))
	require.NoError(t, err)
	assert.Len(t, doc.Categories, 2)
}

func TestSerialize_RoundTripKeepsBlankTitle(t *testing.T) {
	doc := testutil.NewTestDocument(testutil.WithExportTitle(""))

	data, err := Serialize(doc)
	require.NoError(t, err)
	got, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, "", got.ExportTitle)
	assert.Equal(t, doc, got)

	yamlData, err := SerializeYAML(doc)
	require.NoError(t, err)
	got, err = DeserializeYAML(yamlData)
	require.NoError(t, err)
	assert.Equal(t, "", got.ExportTitle)
}

func TestYAML_RoundTrip(t *testing.T) {
	doc := sampleDocument()
	data, err := SerializeYAML(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "exportTitle: Sam's List")

	got, err := DeserializeYAML(data)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestDeserializeYAML_Errors(t *testing.T) {
	_, err := DeserializeYAML([]byte("levels: [\n"))
	var fErr *domain.FormatError
	require.ErrorAs(t, err, &fErr)

	_, err = DeserializeYAML([]byte("username: x\n"))
	require.ErrorAs(t, err, &fErr)
	assert.Contains(t, err.Error(), "levels is required")
}
