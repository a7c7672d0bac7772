package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beiramar/pousada/internal/api/validation"
)

func fieldNames(errs []validation.FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

// ===== Menu items =====

func TestValidateMenuItemRequest_Valid(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateMenuItemRequest(validation.MenuItemRequest{
		NamePT:     "Caldo Verde",
		NameEN:     "Green Soup",
		Category:   "starters",
		PriceCents: 450,
	})

	assert.Empty(t, errs)
}

func TestValidateMenuItemRequest_MissingFields(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateMenuItemRequest(validation.MenuItemRequest{
		NamePT:     "   ",
		NameEN:     "",
		Category:   "",
		PriceCents: -1,
	})

	names := fieldNames(errs)
	assert.Contains(t, names, "namePt")
	assert.Contains(t, names, "nameEn")
	assert.Contains(t, names, "category")
	assert.Contains(t, names, "priceCents")
}

func TestValidateMenuItemRequest_UnknownCategory(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateMenuItemRequest(validation.MenuItemRequest{
		NamePT:     "Caldo Verde",
		NameEN:     "Green Soup",
		Category:   "sushi",
		PriceCents: 450,
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "category", errs[0].Field)
}

// ===== Posts =====

func TestValidatePostRequest_Valid(t *testing.T) {
	t.Parallel()

	errs := validation.ValidatePostRequest(validation.PostRequest{
		Slug:    "festa-de-sao-joao-2026",
		TitlePT: "Festa de São João",
		TitleEN: "St John's Festival",
	})

	assert.Empty(t, errs)
}

func TestValidatePostRequest_BadSlugs(t *testing.T) {
	t.Parallel()

	for _, slug := range []string{"Com Maiúsculas", "espaço aqui", "-leading", "trailing-", "double--hyphen", "acentuação"} {
		errs := validation.ValidatePostRequest(validation.PostRequest{
			Slug:    slug,
			TitlePT: "t",
			TitleEN: "t",
		})
		require.Len(t, errs, 1, "slug %q", slug)
		assert.Equal(t, "slug", errs[0].Field, "slug %q", slug)
	}
}

// ===== Bookings =====

func TestValidateCreateBookingRequest_ValidTable(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateCreateBookingRequest(validation.CreateBookingRequest{
		Kind:       "table",
		GuestName:  "Maria Santos",
		GuestEmail: "maria@example.com",
		PartySize:  4,
		StartsOn:   "2026-09-12",
	})

	assert.Empty(t, errs)
}

func TestValidateCreateBookingRequest_RoomNeedsRoomAndEnd(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateCreateBookingRequest(validation.CreateBookingRequest{
		Kind:       "room",
		GuestName:  "João Pereira",
		GuestEmail: "joao@example.com",
		PartySize:  2,
		StartsOn:   "2026-09-12",
	})

	names := fieldNames(errs)
	assert.Contains(t, names, "roomId")
	assert.Contains(t, names, "endsOn")
}

func TestValidateCreateBookingRequest_BadEmail(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateCreateBookingRequest(validation.CreateBookingRequest{
		Kind:       "table",
		GuestName:  "Maria Santos",
		GuestEmail: "not-an-email",
		PartySize:  4,
		StartsOn:   "2026-09-12",
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "guestEmail", errs[0].Field)
}

func TestValidateCreateBookingRequest_UnknownKind(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateCreateBookingRequest(validation.CreateBookingRequest{
		Kind:       "spa",
		GuestName:  "Maria Santos",
		GuestEmail: "maria@example.com",
		PartySize:  1,
		StartsOn:   "2026-09-12",
	})

	require.Len(t, errs, 1)
	assert.Equal(t, "kind", errs[0].Field)
}

func TestValidateUpdateBookingStatusRequest(t *testing.T) {
	t.Parallel()

	assert.Empty(t, validation.ValidateUpdateBookingStatusRequest(validation.UpdateBookingStatusRequest{Status: "confirmed"}))
	assert.Empty(t, validation.ValidateUpdateBookingStatusRequest(validation.UpdateBookingStatusRequest{Status: "cancelled"}))

	for _, status := range []string{"", "pending", "done"} {
		errs := validation.ValidateUpdateBookingStatusRequest(validation.UpdateBookingStatusRequest{Status: status})
		assert.Len(t, errs, 1, "status %q", status)
	}
}

// ===== Users =====

func TestValidateUpdateRoleRequest(t *testing.T) {
	t.Parallel()

	assert.Empty(t, validation.ValidateUpdateRoleRequest(validation.UpdateRoleRequest{Role: "admin"}))
	assert.Empty(t, validation.ValidateUpdateRoleRequest(validation.UpdateRoleRequest{Role: "user"}))

	for _, role := range []string{"", "owner", "Admin"} {
		errs := validation.ValidateUpdateRoleRequest(validation.UpdateRoleRequest{Role: role})
		assert.Len(t, errs, 1, "role %q", role)
	}
}
