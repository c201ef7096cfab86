package entity

// AvailabilityFilter is a domain-level filter for querying open slots.
// Used by repository layer to avoid coupling with delivery DTOs.
type AvailabilityFilter struct {
	Date           string // Format: YYYY-MM-DD (required)
	DoctorName     string // Filter by doctor name (ILIKE)
	Specialization string // Filter by specialization (ILIKE)
}
