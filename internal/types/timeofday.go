package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date, stored as
// seconds since midnight. It is used for quiet hours windows.
type TimeOfDay int

// NewTimeOfDay returns the TimeOfDay for the given hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60)
}

// TimeOfDayOf returns the TimeOfDay of the instant t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// ParseTimeOfDay parses a "HH:MM" or "HH:MM:SS" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, err
	}

	return TimeOfDayOf(t), nil
}

// String returns the time formatted as HH:MM:SS.
func (d TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(d)/3600, int(d)%3600/60, int(d)%60)
}

// MarshalJSON implements the json.Marshaler interface.
func (d TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *TimeOfDay) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	parsed, err := ParseTimeOfDay(value)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Scan reads the value from the database.
func (d *TimeOfDay) Scan(value interface{}) error {
	var s string

	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", value)
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (d TimeOfDay) Value() (driver.Value, error) {
	return d.String(), nil
}

// GormDataType defines the data type used by gorm for the type.
func (TimeOfDay) GormDataType() string {
	return "text"
}
