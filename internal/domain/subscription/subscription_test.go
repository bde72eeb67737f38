package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewSubscription(t *testing.T) {
	resellerID := uint(9)
	start, end := date(2024, 1, 1), date(2024, 1, 31)

	tests := []struct {
		name       string
		source     Source
		resellerID *uint
		end        time.Time
		wantErr    bool
	}{
		{"direct", SourceDirect, nil, end, false},
		{"reseller", SourceReseller, &resellerID, end, false},
		{"reseller without reseller", SourceReseller, nil, end, true},
		{"end before start", SourceDirect, nil, date(2023, 12, 31), true},
		{"unknown source", Source("marketplace"), nil, end, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSubscription(1, 2, start, tt.end, tt.source, tt.resellerID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusActive, s.Status())
			assert.Equal(t, tt.source, s.Source())
			assert.Equal(t, tt.resellerID, s.ResellerID())
		})
	}
}

func TestNewSubscription_DirectDropsReseller(t *testing.T) {
	rid := uint(4)
	s, err := NewSubscription(1, 2, date(2024, 1, 1), date(2024, 1, 31), SourceDirect, &rid)
	require.NoError(t, err)
	assert.Nil(t, s.ResellerID())
}

func TestSubscription_EffectiveStatus(t *testing.T) {
	s, err := NewSubscription(1, 2, date(2024, 1, 1), date(2024, 1, 31), SourceDirect, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, s.EffectiveStatus(date(2024, 1, 31)))
	assert.Equal(t, StatusExpired, s.EffectiveStatus(date(2024, 2, 1)))
	assert.Equal(t, StatusActive, s.Status(), "stored status is untouched")

	require.NoError(t, s.Cancel())
	assert.Equal(t, StatusCancelled, s.EffectiveStatus(date(2024, 2, 1)))
}

func TestSubscription_Transitions(t *testing.T) {
	tests := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusActive, true},
		{StatusPending, StatusCancelled, true},
		{StatusActive, StatusExpired, true},
		{StatusActive, StatusCancelled, true},
		{StatusExpired, StatusActive, false},
		{StatusCancelled, StatusActive, false},
		{StatusExpired, StatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
	assert.True(t, StatusExpired.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
}

func TestSubscription_MarkAsExpiredTwice(t *testing.T) {
	s, err := ReconstructSubscription(Snapshot{ID: 1, DepartmentID: 1, PackageID: 1, Status: StatusActive, Source: SourceDirect})
	require.NoError(t, err)

	require.NoError(t, s.MarkAsExpired())
	assert.ErrorIs(t, s.MarkAsExpired(), ErrInvalidStatusTransition)
}

func TestNewServiceAccess(t *testing.T) {
	s, err := ReconstructSubscription(Snapshot{ID: 3, DepartmentID: 1, PackageID: 7, Status: StatusActive, Source: SourceDirect})
	require.NoError(t, err)

	a, err := NewServiceAccess(5, s)
	require.NoError(t, err)
	assert.Equal(t, uint(7), a.PackageID)
	assert.Equal(t, uint(3), a.SubscriptionID)

	_, err = NewServiceAccess(5, nil)
	assert.Error(t, err)
}

func TestNewTransaction(t *testing.T) {
	tx, err := NewTransaction(1, 1999, "", "TX-1", PaymentCompleted)
	require.NoError(t, err)
	assert.Equal(t, DefaultPaymentMethod, tx.PaymentMethod)

	_, err = NewTransaction(1, 1999, "card", "TX-1", "settled")
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)

	_, err = NewTransaction(1, -1, "card", "TX-1", PaymentCompleted)
	assert.Error(t, err)

	_, err = NewTransaction(1, 1, "card", " ", PaymentCompleted)
	assert.Error(t, err)
}

func TestScope_IsEmpty(t *testing.T) {
	assert.True(t, Scope{}.IsEmpty())
	assert.False(t, Scope{All: true}.IsEmpty())
	assert.False(t, Scope{DepartmentIDs: []uint{1}}.IsEmpty())
	assert.True(t, Scope{ResellerIDs: []uint{1}}.IsEmpty())
	assert.False(t, Scope{ResellerIDs: []uint{1}, ResellerDepartmentIDs: []uint{2}}.IsEmpty())
}
