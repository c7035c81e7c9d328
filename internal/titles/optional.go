package titles

// Optional is a title id that may be absent. The zero value is None.
type Optional struct {
	id    string
	valid bool
}

func Some(id string) Optional {
	return Optional{id: id, valid: true}
}

func None() Optional {
	return Optional{}
}

// Get returns the id and whether one is present.
func (o Optional) Get() (string, bool) {
	return o.id, o.valid
}

func (o Optional) IsSome() bool {
	return o.valid
}

func (o Optional) String() string {
	if !o.valid {
		return "<none>"
	}
	return o.id
}
