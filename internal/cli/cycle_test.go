package cli

import (
	"testing"

	"github.com/prefyhq/prefy/internal/domain"
	"github.com/prefyhq/prefy/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCycleValue_Scale(t *testing.T) {
	doc := testutil.NewTestDocument()
	p := testutil.ScaleProp("Energy")

	assert.Equal(t, domain.ScaleValue(5), cycleValue(doc, p, domain.ScaleValue(4), 1))
	assert.Equal(t, domain.ScaleValue(0), cycleValue(doc, p, domain.ScaleValue(10), 1))
	assert.Equal(t, domain.ScaleValue(10), cycleValue(doc, p, domain.ScaleValue(0), -1))
	assert.Equal(t, domain.ScaleValue(1), cycleValue(doc, p, domain.Value{}, 1))
}

func TestCycleValue_Binary(t *testing.T) {
	doc := testutil.NewTestDocument()
	p := testutil.BinaryProp("Tried")

	assert.Equal(t, domain.BinaryValue(true), cycleValue(doc, p, domain.BinaryValue(false), 1))
	assert.Equal(t, domain.BinaryValue(false), cycleValue(doc, p, domain.BinaryValue(true), -1))
	assert.Equal(t, domain.BinaryValue(true), cycleValue(doc, p, domain.BinaryValue(true), 2))
}

func TestCycleValue_Level(t *testing.T) {
	doc := testutil.NewTestDocument()
	p := testutil.LevelProp("Taste")

	assert.Equal(t, domain.LevelValue("liked"), cycleValue(doc, p, domain.LevelValue("favorite"), 1))
	assert.Equal(t, domain.LevelValue(domain.NoneLevelID), cycleValue(doc, p, domain.LevelValue("hard-limit"), 1))
	assert.Equal(t, domain.LevelValue("hard-limit"), cycleValue(doc, p, domain.LevelValue(domain.NoneLevelID), -1))
	assert.Equal(t, domain.LevelValue("favorite"), cycleValue(doc, p, domain.LevelValue("deleted"), 1),
		"dangling ids step from the first level")
}

func TestCycleValue_LevelWithoutLevels(t *testing.T) {
	doc := testutil.NewTestDocument(testutil.WithLevels())
	v := domain.LevelValue("liked")

	assert.Equal(t, v, cycleValue(doc, testutil.LevelProp("Taste"), v, 1))
}

func TestDirectValue(t *testing.T) {
	doc := testutil.NewTestDocument()

	v, ok := directValue(doc, testutil.ScaleProp("E"), 0)
	assert.True(t, ok)
	assert.Equal(t, domain.ScaleValue(10), v)

	v, ok = directValue(doc, testutil.ScaleProp("E"), 6)
	assert.True(t, ok)
	assert.Equal(t, domain.ScaleValue(6), v)

	v, ok = directValue(doc, testutil.BinaryProp("B"), 1)
	assert.True(t, ok)
	assert.Equal(t, domain.BinaryValue(true), v)

	_, ok = directValue(doc, testutil.BinaryProp("B"), 2)
	assert.False(t, ok)

	v, ok = directValue(doc, testutil.LevelProp("T"), 3)
	assert.True(t, ok)
	assert.Equal(t, domain.LevelValue("liked"), v)

	_, ok = directValue(doc, testutil.LevelProp("T"), 8)
	assert.False(t, ok)

	_, ok = directValue(doc, testutil.LevelProp("T"), 0)
	assert.False(t, ok)
}
