package reseller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tenantdesk/internal/domain/shared"
)

func TestNewReseller(t *testing.T) {
	tests := []struct {
		name    string
		rname   string
		rate    shared.Hundredths
		wantErr error
	}{
		{"valid", "Partner Co", 1000, nil},
		{"zero commission", "Partner Co", 0, nil},
		{"full commission", "Partner Co", 10000, nil},
		{"negative commission", "Partner Co", -1, ErrInvalidCommissionRate},
		{"commission above 100", "Partner Co", 10001, ErrInvalidCommissionRate},
		{"empty name", " ", 0, ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReseller(tt.rname, "", tt.rate)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, r.IsActive())
			assert.Equal(t, tt.rate, r.CommissionRate())
		})
	}
}

func TestReseller_Update(t *testing.T) {
	r, err := NewReseller("Partner Co", "", 1000)
	require.NoError(t, err)

	inactive := false
	rate := shared.Hundredths(1250)
	require.NoError(t, r.Update(ResellerUpdate{IsActive: &inactive, CommissionRate: &rate}))
	assert.False(t, r.IsActive())
	assert.Equal(t, "12.50", r.CommissionRate().String())

	bad := shared.Hundredths(20000)
	assert.ErrorIs(t, r.Update(ResellerUpdate{CommissionRate: &bad}), ErrInvalidCommissionRate)
	assert.Equal(t, rate, r.CommissionRate())
}

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer(1, 2)
	require.NoError(t, err)
	assert.True(t, c.IsActive)

	_, err = NewCustomer(0, 2)
	assert.Error(t, err)
}
