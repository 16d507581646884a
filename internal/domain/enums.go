package domain

// PropertyType selects the value domain of a property column.
type PropertyType string

const (
	PropertyLevel  PropertyType = "level"
	PropertyScale  PropertyType = "scale"
	PropertyBinary PropertyType = "binary"
)

// ValidPropertyTypes is the canonical set of accepted property type strings.
var ValidPropertyTypes = map[string]bool{
	"level": true, "scale": true, "binary": true,
}

// ParsePropertyType coerces s to a known PropertyType. Unknown or empty
// values become PropertyLevel.
func ParsePropertyType(s string) PropertyType {
	if ValidPropertyTypes[s] {
		return PropertyType(s)
	}
	return PropertyLevel
}

const (
	// NoneLevelID is the conventional id of the level at position 0.
	NoneLevelID = "none"

	// DefaultExportTitle is used when a document carries no export title.
	DefaultExportTitle = "My Prefy List"

	MinScale = 0
	MaxScale = 10
)
