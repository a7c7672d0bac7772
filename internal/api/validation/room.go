package validation

// RoomRequest mirrors the fields needed for room validation.
type RoomRequest struct {
	NamePT             string
	NameEN             string
	Capacity           int
	PriceCentsPerNight int
}

// ValidateRoomRequest validates the fields of a create or update room request.
func ValidateRoomRequest(req RoomRequest) []FieldError {
	errs := validateBilingualName(req.NamePT, req.NameEN)

	if req.Capacity < 1 {
		errs = append(errs, FieldError{Field: "capacity", Message: "capacity must be at least 1"})
	}

	if req.PriceCentsPerNight < 0 {
		errs = append(errs, FieldError{Field: "priceCentsPerNight", Message: "priceCentsPerNight must not be negative"})
	}

	return errs
}
