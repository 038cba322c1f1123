package meta

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func settings(name, typ string, mutate ...func(*Settings)) Result[Settings] {
	s := NewSettings()
	s.PropertyName = name
	s.PropertyType = typ
	for _, m := range mutate {
		m(&s)
	}
	return Ok(s)
}

func TestMergeKeepsFirstSeenOrder(t *testing.T) {
	got := Merge([]Result[Settings]{
		settings("Alpha", "int"),
		settings("Bravo", "uuid.UUID"),
	})

	assert.Equal(t, []Property{
		{Name: "Alpha", Type: "int", IsReadOnly: true},
		{Name: "Bravo", Type: "uuid.UUID", IsReadOnly: true},
	}, got)
}

func TestMergeLaterRecordReplaces(t *testing.T) {
	got := Merge([]Result[Settings]{
		settings("X", "int", func(s *Settings) { s.PropertyDescription = "first" }),
		settings("Y", "bool"),
		settings("X", "string", func(s *Settings) { s.IsReadOnly = false }),
	})

	assert.Equal(t, []Property{
		{Name: "X", Type: "string", IsReadOnly: false},
		{Name: "Y", Type: "bool", IsReadOnly: true},
	}, got)
}

func TestMergeDropsInvalid(t *testing.T) {
	got := Merge([]Result[Settings]{
		settings("", "int"),
		settings("NoType", ""),
		Fail[Settings](errors.New("bad marker")),
		settings("Ok", "int"),
	})

	assert.Equal(t, []Property{{Name: "Ok", Type: "int", IsReadOnly: true}}, got)
}

func TestMergeInvalidDoesNotReplace(t *testing.T) {
	got := Merge([]Result[Settings]{
		settings("X", "int"),
		settings("X", ""),
	})

	assert.Equal(t, []Property{{Name: "X", Type: "int", IsReadOnly: true}}, got)
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge(nil))
}
