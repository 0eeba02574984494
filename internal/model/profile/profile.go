// Package profile holds the birth facts collected from a conversation.
package profile

import (
	"fmt"
	"strings"
	"time"
)

// Field names one piece of the profile.
type Field string

const (
	FieldNone  Field = ""
	FieldName  Field = "name"
	FieldDate  Field = "date"
	FieldPlace Field = "place"
	FieldTime  Field = "time"
)

// Priority orders fields for clarifying questions.
var Priority = []Field{FieldName, FieldDate, FieldPlace, FieldTime}

// Date is a calendar date; only values passing Valid are produced by NewDate.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewDate validates and builds a Date.
func NewDate(day, month, year int) (Date, error) {
	d := Date{Day: day, Month: month, Year: year}
	if !d.Valid() {
		return Date{}, fmt.Errorf("invalid calendar date %02d/%02d/%04d", day, month, year)
	}
	return d, nil
}

// ParseDate parses DD/MM/YYYY and rejects dates that do not exist.
func ParseDate(raw string) (Date, error) {
	var day, month, year int
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%d/%d/%d", &day, &month, &year); err != nil {
		return Date{}, fmt.Errorf("date %q is not DD/MM/YYYY: %w", raw, err)
	}
	return NewDate(day, month, year)
}

// Valid checks the date against the Gregorian calendar, leap years included.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= DaysIn(d.Month, d.Year)
}

// String renders the date as DD/MM/YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days of month in year.
func DaysIn(month, year int) int {
	switch month {
	case 2:
		if IsLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// IsLeap reports Gregorian leap years.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Clock is a 24-hour time of day.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// NewClock validates and builds a Clock.
func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("invalid time %02d:%02d", hour, minute)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// String renders the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// DecimalHour returns hour plus the minute fraction.
func (c Clock) DecimalHour() float64 {
	return float64(c.Hour) + float64(c.Minute)/60
}

// Profile accumulates the facts needed for a report. A nil field was not found.
type Profile struct {
	Name  *string `json:"name"`
	Date  *Date   `json:"date"`
	Time  *Clock  `json:"time"`
	Place *string `json:"place"`
}

// Has reports whether the field is present.
func (p Profile) Has(f Field) bool {
	switch f {
	case FieldName:
		return p.Name != nil
	case FieldDate:
		return p.Date != nil
	case FieldTime:
		return p.Time != nil
	case FieldPlace:
		return p.Place != nil
	default:
		return false
	}
}

// Summary lists the collected fields in Portuguese, for restating to the user.
func (p Profile) Summary() []string {
	var parts []string
	if p.Name != nil {
		parts = append(parts, "nome: "+*p.Name)
	}
	if p.Date != nil {
		parts = append(parts, "data de nascimento: "+p.Date.String())
	}
	if p.Time != nil {
		parts = append(parts, "hora: "+p.Time.String())
	}
	if p.Place != nil {
		parts = append(parts, "cidade: "+*p.Place)
	}
	return parts
}
