package shapes

import (
	"time"

	yaml "gopkg.in/yaml.v3"
)

// NotFound is returned when a shape is missing.
//
//synth:exception PropertyName=Code PropertyType=int
//synth:exception PropertyName=Since PropertyType=time.Duration IsReadOnly=false
type NotFound struct {
	notFoundFields
}

type (
	// Circle is a round shape.
	//
	//synth:display Method=Describe
	Circle struct {
		Radius float64
		label  string
		*Meta
	}

	Meta struct {
		Node yaml.Node
	}
)

//synth:display
var Default = Circle{}

const answer, _ = 42, 0

// Area is not a candidate.
//
//synth:display
func Area(c Circle) float64 { return c.Radius * c.Radius }

func (c Circle) Scale(f float64) {}

type Box[T any] struct {
	Item T
}
