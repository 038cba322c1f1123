package meta

// Settings is the decoded form of one marker annotation.
type Settings struct {
	PropertyName        string
	PropertyType        string
	PropertyDescription string
	DefaultValue        string
	IsReadOnly          bool
	Method              string

	set map[Option]bool
}

// NewSettings returns settings holding the option defaults.
func NewSettings() Settings {
	return Settings{IsReadOnly: true}
}

// Has reports whether the option was given explicitly.
func (s Settings) Has(o Option) bool {
	return s.set[o]
}

func (s *Settings) mark(o Option) {
	if s.set == nil {
		s.set = make(map[Option]bool)
	}
	s.set[o] = true
}

// Property converts the settings into a property record.
func (s Settings) Property() Property {
	return Property{
		Name:         s.PropertyName,
		Type:         s.PropertyType,
		Description:  s.PropertyDescription,
		DefaultValue: s.DefaultValue,
		IsReadOnly:   s.IsReadOnly,
	}
}
