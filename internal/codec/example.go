package codec

import _ "embed"

// Example is a sample compact-text document.
//
//go:embed example.prefy
var Example string

// ExampleFilename is the name the sample is written under.
const ExampleFilename = "example.prefy"
