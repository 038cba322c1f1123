package shapes

//synth:display
type fixture struct{}
