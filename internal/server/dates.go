package server

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the boundary format for birthdays: day.month.year.
const dateLayout = "02.01.2006"

// apiDate is a calendar date serialized as "dd.mm.yyyy" in JSON.
type apiDate struct {
	time.Time
}

func (d apiDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *apiDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("date must be in dd.mm.yyyy format")
	}
	d.Time = t
	return nil
}
