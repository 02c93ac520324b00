package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Int64List is a JSON-encoded array column. The product cache stores its
// category membership as an array of external catalog ids rather than a
// foreign key, so category names are resolved in application code.
type Int64List []int64

func (l Int64List) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *Int64List) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// StringList is a JSON-encoded array of strings (image URLs).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("models: cannot scan %T into JSON column", src)
	}
}
