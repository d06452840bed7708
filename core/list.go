package core

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// StringList is an ordered list of strings persisted as a JSON array.
// On input it accepts a JSON array, a string holding a JSON array, or a comma separated string.
// Arrays are kept as sent; only the comma separated form is trimmed and loses its blank items.
type StringList []string

var (
	_ json.Marshaler   = StringList(nil)
	_ json.Unmarshaler = (*StringList)(nil)
	_ driver.Valuer    = StringList(nil)
)

// ParseStringList parses a form value into a StringList.
func ParseStringList(s string) (StringList, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return StringList{}, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		return decodeArray([]byte(trimmed))
	}
	return splitCSV(trimmed), nil
}

func decodeArray(data []byte) (StringList, error) {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(err, "decoding list")
	}
	if list == nil {
		return StringList{}, nil
	}
	return list, nil
}

func splitCSV(s string) StringList {
	items := strings.Split(s, ",")
	list := make(StringList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// UnmarshalParam binds a form or query value.
func (l *StringList) UnmarshalParam(param string) error {
	list, err := ParseStringList(param)
	if err != nil {
		return err
	}
	*l = list
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = StringList{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		list, err := ParseStringList(s)
		if err != nil {
			return err
		}
		*l = list
		return nil
	}
	list, err := decodeArray(data)
	if err != nil {
		return err
	}
	*l = list
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("cannot scan %T into StringList", src)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		*l = StringList{}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.Wrap(err, "scanning list")
	}
	*l = list
	return nil
}
