package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonnelUpdateFieldsFollowDeclarationOrder(t *testing.T) {
	var u PersonnelUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"position":"Lead","email":"a@b.co","first_name":"Ann"}`), &u))

	assert.Equal(t, []string{"first_name", "email", "position"}, u.Fields())
}

func TestPersonnelUpdateNormalize(t *testing.T) {
	u := PersonnelUpdate{FirstName: strp("  Ann "), Phone: strp("   ")}
	u.Normalize()

	require.NotNil(t, u.FirstName)
	assert.Equal(t, "Ann", *u.FirstName)
	assert.Nil(t, u.Phone)
	assert.Equal(t, []string{"first_name"}, u.Fields())
}

func TestVendorInputNormalize(t *testing.T) {
	in := VendorInput{CompanyName: " Acme ", ContactPhone: strp(""), ContractNumber: " C-9 "}
	in.Normalize()

	assert.Equal(t, "Acme", in.CompanyName)
	assert.Equal(t, "C-9", in.ContractNumber)
	assert.Nil(t, in.ContactPhone)
}

func TestVendorUpdateFields(t *testing.T) {
	assert.Empty(t, VendorUpdate{}.Fields())
	assert.Equal(t, []string{"contact_email", "clearance_level"},
		VendorUpdate{ClearanceLevel: strp("NONE"), ContactEmail: strp("x@y.z")}.Fields())
}

func TestUserHidesPasswordHash(t *testing.T) {
	raw, err := json.Marshal(User{ID: 1, Username: "admin", PasswordHash: "secret-hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")
	assert.NotContains(t, string(raw), "password")
}

func TestLiveRecordOmitsDeletedAt(t *testing.T) {
	raw, err := json.Marshal(Personnel{ID: 1})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "deleted_at")
	assert.Contains(t, string(raw), `"phone":null`)
}

func strp(s string) *string { return &s }
