package models

// SortField names a user list ordering understood by the backend.
// Unrecognized values are rejected server-side; the client only ever sends
// values from SortFields.
type SortField string

const (
	SortByID      SortField = "id"
	SortByName    SortField = "name"
	SortByEmail   SortField = "email"
	SortByCreated SortField = "createdAt"
)

// SortFields lists the selectable orderings in display order. The list view
// cycles through them.
var SortFields = []SortField{SortByID, SortByName, SortByEmail, SortByCreated}

// Next returns the sort field following s in SortFields, wrapping around.
// Unknown values reset to SortByID.
func (s SortField) Next() SortField {
	for i, f := range SortFields {
		if f == s {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return SortByID
}
