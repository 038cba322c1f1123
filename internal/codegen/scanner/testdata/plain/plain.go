package plain

//synth:exception PropertyName=Reason PropertyType=string
type Failed struct {
	failedFields
}

type failedFields struct{}
