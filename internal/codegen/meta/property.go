package meta

// Property is one synthesized accessor.
type Property struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Description  string `json:"description,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty"` // empty means no default
	IsReadOnly   bool   `json:"isReadOnly"`
}

// HasDefault reports whether the property carries a default value.
func (p Property) HasDefault() bool {
	return p.DefaultValue != ""
}

// Valid reports whether the record has both a name and a type.
func (p Property) Valid() bool {
	return p.Name != "" && p.Type != ""
}
