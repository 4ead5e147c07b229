package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DispatchKind distinguishes the full three-stage dispatch from the
// send-only notification variant.
type DispatchKind int

const (
	DispatchKindFull   DispatchKind = 0
	DispatchKindNotify DispatchKind = 1
)

func (k DispatchKind) String() string {
	return [...]string{"Full", "Notify"}[k]
}

func (k DispatchKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *DispatchKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = DispatchKind(i)
		return nil
	}
	switch str {
	case "Notify":
		*k = DispatchKindNotify
	default:
		*k = DispatchKindFull
	}
	return nil
}

func (k DispatchKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *DispatchKind) Scan(value interface{}) error {
	if value == nil {
		*k = DispatchKindFull
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = DispatchKind(v)
	case int:
		*k = DispatchKind(v)
	}
	return nil
}
