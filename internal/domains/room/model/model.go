package model

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strconv"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldRoomType    = "room_type"
	FieldNightlyRate = "nightly_rate"
	FieldStatus      = "status"
	FieldNotes       = "notes"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

// ValidStatus reports whether the given value is one of the room statuses.
func ValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return true
	default:
		return false
	}
}

// NightlyRate is stored as NUMERIC and scanned back as text by the driver.
// The custom scanner coerces it to a float so API consumers always see a
// number on the wire, never a string.
type NightlyRate float64

func (r *NightlyRate) Scan(src any) error {
	switch value := src.(type) {
	case float64:
		*r = NightlyRate(value)
	case int64:
		*r = NightlyRate(value)
	case []byte:
		parsed, err := strconv.ParseFloat(string(value), 64)
		if err != nil {
			return fmt.Errorf("failed to parse nightly rate %q: %w", string(value), err)
		}

		*r = NightlyRate(parsed)
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("failed to parse nightly rate %q: %w", value, err)
		}

		*r = NightlyRate(parsed)
	case nil:
		*r = 0
	default:
		return fmt.Errorf("unsupported nightly rate type %T", src)
	}

	return nil
}

func (r NightlyRate) Value() (driver.Value, error) {
	return float64(r), nil
}

type Room struct {
	ID          int64       `db:"id"`
	Name        string      `db:"name"`
	RoomType    string      `db:"room_type"`
	NightlyRate NightlyRate `db:"nightly_rate"`
	Status      string      `db:"status"`
	Notes       *string     `db:"notes"`
}

// Changes is the sparse-update set for a room. A nil field is left untouched
// by the write; Notes distinguishes "untouched" (nil) from "set NULL"
// (non-nil with Valid false).
type Changes struct {
	Name        *string
	RoomType    *string
	NightlyRate *float64
	Status      *string
	Notes       *sql.NullString
}

// Empty reports whether the change set carries no field at all.
func (c Changes) Empty() bool {
	return c.Name == nil && c.RoomType == nil && c.NightlyRate == nil && c.Status == nil && c.Notes == nil
}
