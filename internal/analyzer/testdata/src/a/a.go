package a

//synth:display
type Person struct { // want `display: generated file Person.display.g.go is missing`
	Name string
	Age  int
}

//synth:exception PropertyName=Error PropertyType=string
type Broken struct{} // want `exception: a\.Broken: property Error: reserved name`

// Plain has no marker.
type Plain struct {
	Name string
}
