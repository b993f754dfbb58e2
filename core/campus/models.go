package campus

import (
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-admin/core"
)

type Location struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

func (l Location) EntityID() string { return strconv.Itoa(l.ID) }

type SportType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (st SportType) EntityID() string { return strconv.Itoa(st.ID) }

type Facility struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	LocationID  int    `json:"location_id"`
	SportTypeID int    `json:"sport_type_id"`
	Capacity    int    `json:"capacity"`
}

func (f Facility) EntityID() string { return strconv.Itoa(f.ID) }

// Schedule is a recurring opening slot of a facility. The schedules endpoint
// returns server-sorted pages; a created slot's page cannot be determined
// locally, so the store requires a re-fetch after create.
type Schedule struct {
	ID         int    `json:"id"`
	FacilityID int    `json:"facility_id"`
	Weekday    int    `json:"weekday"` // 0 = Sunday
	Opens      string `json:"opens"`   // "08:00"
	Closes     string `json:"closes"`  // "17:30"
}

func (s Schedule) EntityID() string { return strconv.Itoa(s.ID) }

type NewLocation struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
}

func (nl *NewLocation) Validate() error {
	nl.Name = core.CleanString(nl.Name)
	return core.TranslateError(core.Validate.Struct(nl))
}

type UpdateLocation struct {
	Name    null.String `json:"name,omitempty"`
	Address null.String `json:"address,omitempty"`
	City    null.String `json:"city,omitempty"`
}

func (ul *UpdateLocation) Validate() error {
	if ul.Name.Valid {
		ul.Name.String = core.CleanString(ul.Name.String)
	}
	return core.TranslateError(core.Validate.Struct(ul))
}

type NewFacility struct {
	Name        string `json:"name" validate:"required"`
	LocationID  int    `json:"location_id" validate:"required"`
	SportTypeID int    `json:"sport_type_id" validate:"required"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
}

func (nf *NewFacility) Validate() error {
	nf.Name = core.CleanString(nf.Name)
	return core.TranslateError(core.Validate.Struct(nf))
}

type NewSchedule struct {
	FacilityID int    `json:"facility_id" validate:"required"`
	Weekday    int    `json:"weekday" validate:"gte=0,lte=6"`
	Opens      string `json:"opens" validate:"required"`
	Closes     string `json:"closes" validate:"required"`
}

func (ns *NewSchedule) Validate() error {
	return core.TranslateError(core.Validate.Struct(ns))
}

// ScheduleFilter narrows schedule fetches (the "filtered schedules" screen).
type ScheduleFilter struct {
	FacilityID  string
	SportTypeID string
	Weekday     string
}

func (f ScheduleFilter) Map() map[string]string {
	return map[string]string{
		"facility_id":   f.FacilityID,
		"sport_type_id": f.SportTypeID,
		"weekday":       f.Weekday,
	}
}
