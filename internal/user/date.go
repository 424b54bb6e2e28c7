package user

import "cloud.google.com/go/civil"

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time of day. It marshals as DateLayout.
type Date = civil.Date

// yearsBetween returns the number of whole years elapsed from from to to,
// taking month and day into account. Negative when to is before from.
func yearsBetween(from, to Date) int {
	years := to.Year - from.Year
	if to.Month < from.Month || (to.Month == from.Month && to.Day < from.Day) {
		years--
	}
	return years
}
