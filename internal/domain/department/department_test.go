package department

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDepartment(t *testing.T) {
	d, err := NewDepartment("  Acme ", "first customer", "")
	require.NoError(t, err)
	assert.Equal(t, "Acme", d.Name())
	assert.Equal(t, CustomerTypeDirect, d.CustomerType())

	_, err = NewDepartment("", "", CustomerTypeDirect)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewDepartment(strings.Repeat("a", 101), "", CustomerTypeDirect)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewDepartment("Acme", "", "partner")
	assert.Error(t, err)

	r, err := NewDepartment("Branch", "", CustomerTypeReseller)
	require.NoError(t, err)
	assert.Equal(t, CustomerTypeReseller, r.CustomerType())
}

func TestDepartment_Update(t *testing.T) {
	d, err := NewDepartment("Acme", "old", CustomerTypeDirect)
	require.NoError(t, err)

	desc := "new"
	require.NoError(t, d.Update(nil, &desc))
	assert.Equal(t, "Acme", d.Name())
	assert.Equal(t, "new", d.Description())

	empty := " "
	assert.ErrorIs(t, d.Update(&empty, nil), ErrInvalidName)
}

func TestNewAssignment(t *testing.T) {
	a, err := NewAssignment(RoleMember, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(3), a.UserID)
	assert.False(t, a.AssignedAt.IsZero())

	_, err = NewAssignment("owner", 3, 7)
	assert.Error(t, err)

	_, err = NewAssignment(RoleAdmin, 0, 7)
	assert.Error(t, err)
}
