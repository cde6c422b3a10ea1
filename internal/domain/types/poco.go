package types

// Poco is a portable-contacts record. Only displayName and nickname carry
// meaning for identity handling; everything else is passed through as-is.
//
// Values come back from peek or verify as encoding/json decodes them into
// any: numbers are float64, objects map[string]any and arrays []any. A Poco
// built with Go ints is therefore not reflect.DeepEqual to its decoded
// form; compare attributes, or build it from JSON types.
type Poco map[string]any

const (
	pocoDisplayName = "displayName"
	pocoNickname    = "nickname"
)

// DisplayName returns the displayName attribute, if it is a string.
func (p Poco) DisplayName() string { return p.stringAttr(pocoDisplayName) }

// Nickname returns the nickname attribute, if it is a string.
func (p Poco) Nickname() string { return p.stringAttr(pocoNickname) }

// Clone returns a shallow copy of the record.
func (p Poco) Clone() Poco {
	if p == nil {
		return nil
	}
	out := make(Poco, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (p Poco) stringAttr(key string) string {
	s, _ := p[key].(string)
	return s
}
