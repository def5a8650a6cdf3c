package dto

import (
	"database/sql"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"hotelier/internal/domains/room/model"
)

const (
	msgNameRequired  = "Room name is required."
	msgTypeRequired  = "Room type is required."
	msgNameEmpty     = "Room name cannot be empty."
	msgTypeEmpty     = "Room type cannot be empty."
	msgRatePositive  = "Nightly rate must be a positive number."
	msgStatusInvalid = "Status is invalid."
)

// OptionalString is a JSON string field that remembers whether the key was
// present at all, and whether it carried an explicit null. Presence drives
// the sparse-update semantics: an absent key never touches the stored value.
type OptionalString struct {
	Set   bool
	Null  bool
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true

	if string(data) == "null" {
		o.Null = true

		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		// Present but not a string; callers treat it as unusable.
		return nil
	}

	o.Valid = true
	o.Value = value

	return nil
}

// trimmed returns the whitespace-trimmed value when the field holds a string.
func (o OptionalString) trimmed() string {
	if !o.Valid {
		return ""
	}

	return strings.TrimSpace(o.Value)
}

// OptionalRate coerces a JSON number or numeric string into a float. A key
// that is present but does not coerce to a finite number stays invalid.
type OptionalRate struct {
	Set   bool
	Valid bool
	Value float64
}

func (o *OptionalRate) UnmarshalJSON(data []byte) error {
	o.Set = true

	var number float64
	if err := json.Unmarshal(data, &number); err == nil && string(data) != "null" {
		o.Valid = true
		o.Value = number

		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return nil
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}

	o.Valid = true
	o.Value = parsed

	return nil
}

type CreateRoomRequest struct {
	Name        OptionalString `json:"name"`
	RoomType    OptionalString `json:"roomType"`
	NightlyRate OptionalRate   `json:"nightlyRate"`
	Status      OptionalString `json:"status"`
	Notes       OptionalString `json:"notes"`
}

// Validate checks every field eagerly and collects all messages so the
// caller sees every problem at once. A missing status is not an error: it
// defaults to available. An explicitly invalid status always is.
func (c *CreateRoomRequest) Validate() []string {
	var errs []string

	if c.Name.trimmed() == "" {
		errs = append(errs, msgNameRequired)
	}

	if c.RoomType.trimmed() == "" {
		errs = append(errs, msgTypeRequired)
	}

	if !c.NightlyRate.Valid || c.NightlyRate.Value <= 0 {
		errs = append(errs, msgRatePositive)
	}

	if status, defaulted := c.status(); !defaulted && !model.ValidStatus(status) {
		errs = append(errs, msgStatusInvalid)
	}

	return errs
}

// ToModel builds the room to insert. Call only after Validate returned no
// messages.
func (c *CreateRoomRequest) ToModel() model.Room {
	status, defaulted := c.status()
	if defaulted {
		status = model.StatusAvailable
	}

	var notes *string
	if trimmedNotes := c.Notes.trimmed(); trimmedNotes != "" {
		notes = &trimmedNotes
	}

	return model.Room{
		Name:        c.Name.trimmed(),
		RoomType:    c.RoomType.trimmed(),
		NightlyRate: model.NightlyRate(c.NightlyRate.Value),
		Status:      status,
		Notes:       notes,
	}
}

func (c *CreateRoomRequest) status() (string, bool) {
	if !c.Status.Set || c.Status.Null {
		return "", true
	}

	if !c.Status.Valid {
		return "", false
	}

	return c.Status.Value, false
}

type UpdateRoomRequest struct {
	Name        OptionalString `json:"name"`
	RoomType    OptionalString `json:"roomType"`
	NightlyRate OptionalRate   `json:"nightlyRate"`
	Status      OptionalString `json:"status"`
	Notes       OptionalString `json:"notes"`
}

// Changes validates only the fields that were present in the payload and
// builds the sparse change set from the ones that pass. Absent fields are
// left untouched; no defaulting applies here.
func (u *UpdateRoomRequest) Changes() (model.Changes, []string) {
	var (
		changes model.Changes
		errs    []string
	)

	if u.Name.Set {
		if value := u.Name.trimmed(); value == "" {
			errs = append(errs, msgNameEmpty)
		} else {
			changes.Name = &value
		}
	}

	if u.RoomType.Set {
		if value := u.RoomType.trimmed(); value == "" {
			errs = append(errs, msgTypeEmpty)
		} else {
			changes.RoomType = &value
		}
	}

	if u.NightlyRate.Set {
		if !u.NightlyRate.Valid || u.NightlyRate.Value <= 0 {
			errs = append(errs, msgRatePositive)
		} else {
			rate := u.NightlyRate.Value
			changes.NightlyRate = &rate
		}
	}

	if u.Status.Set {
		if !u.Status.Valid || !model.ValidStatus(u.Status.Value) {
			errs = append(errs, msgStatusInvalid)
		} else {
			status := u.Status.Value
			changes.Status = &status
		}
	}

	if u.Notes.Set {
		if value := u.Notes.trimmed(); value != "" {
			changes.Notes = &sql.NullString{String: value, Valid: true}
		} else {
			// Blank or non-string notes clear the column.
			changes.Notes = &sql.NullString{}
		}
	}

	return changes, errs
}

type RoomResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	RoomType    string  `json:"roomType"`
	NightlyRate float64 `json:"nightlyRate"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes"`
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.RoomType = mod.RoomType
	r.NightlyRate = float64(mod.NightlyRate)
	r.Status = mod.Status
	r.Notes = mod.Notes
}

// FromModels maps the stored rows in order, keeping a non-nil slice so an
// empty listing serializes as [] instead of null.
func FromModels(models []model.Room) []RoomResponse {
	rooms := make([]RoomResponse, len(models))
	for i, mod := range models {
		rooms[i].FromModel(mod)
	}

	return rooms
}
