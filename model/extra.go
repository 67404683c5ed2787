package model

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Settings and business edits are client documents: fields this service does
// not model are kept in Extra and written back unchanged.

func (s *Settings) UnmarshalJSON(data []byte) error {
	type plain Settings
	return unmarshalWithExtra(data, (*plain)(s), &s.Extra)
}

func (s Settings) MarshalJSON() ([]byte, error) {
	type plain Settings
	return marshalWithExtra(plain(s), s.Extra)
}

func (e *BusinessEdit) UnmarshalJSON(data []byte) error {
	type plain BusinessEdit
	return unmarshalWithExtra(data, (*plain)(e), &e.Extra)
}

func (e BusinessEdit) MarshalJSON() ([]byte, error) {
	type plain BusinessEdit
	return marshalWithExtra(plain(e), e.Extra)
}

// unmarshalWithExtra decodes data into known, a pointer to a struct, and
// collects the object keys known does not declare into extra.
func unmarshalWithExtra(data []byte, known any, extra *map[string]json.RawMessage) error {
	if err := json.Unmarshal(data, known); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	fields := jsonFields(reflect.TypeOf(known).Elem())
	for key := range all {
		if fields[key] {
			delete(all, key)
		}
	}
	if len(all) == 0 {
		all = nil
	}
	*extra = all
	return nil
}

func marshalWithExtra(known any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	fields := jsonFields(reflect.TypeOf(known))
	for key, value := range extra {
		if !fields[key] {
			out[key] = value
		}
	}
	return json.Marshal(out)
}

// jsonFields returns the JSON names of t's fields.
func jsonFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		fields[name] = true
	}
	return fields
}
