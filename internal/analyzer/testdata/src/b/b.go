package b

//synth:display
type Person struct { // want `display: generated file Person.display.g.go is out of date`
	Name string
}
