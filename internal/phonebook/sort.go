package phonebook

import (
	"cmp"
	"slices"
)

// SortByName orders records by last name, first name, patronymic and
// organization, in place. Ties keep storage order.
func SortByName(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return cmp.Or(
			cmp.Compare(a.LastName, b.LastName),
			cmp.Compare(a.FirstName, b.FirstName),
			cmp.Compare(a.Patronymic, b.Patronymic),
			cmp.Compare(a.Organization, b.Organization),
		)
	})
}
