package reseller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/tenantdesk/internal/domain/shared"
)

var (
	ErrInvalidName           = errors.New("reseller name is required")
	ErrInvalidCommissionRate = errors.New("commission rate must be between 0 and 100")
)

const maxCommissionRate shared.Hundredths = 100_00

// Reseller is a partner managing a set of customer departments.
type Reseller struct {
	id             uint
	name           string
	description    string
	isActive       bool
	commissionRate shared.Hundredths
	createdAt      time.Time
	updatedAt      time.Time
}

func NewReseller(name, description string, commissionRate shared.Hundredths) (*Reseller, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, ErrInvalidName
	}
	if err := validateCommission(commissionRate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Reseller{
		name:           name,
		description:    strings.TrimSpace(description),
		isActive:       true,
		commissionRate: commissionRate,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructReseller(id uint, name, description string, isActive bool, commissionRate shared.Hundredths, createdAt, updatedAt time.Time) (*Reseller, error) {
	if id == 0 {
		return nil, fmt.Errorf("reseller ID cannot be zero")
	}
	return &Reseller{
		id:             id,
		name:           name,
		description:    description,
		isActive:       isActive,
		commissionRate: commissionRate,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (r *Reseller) ID() uint                          { return r.id }
func (r *Reseller) Name() string                      { return r.name }
func (r *Reseller) Description() string               { return r.description }
func (r *Reseller) IsActive() bool                    { return r.isActive }
func (r *Reseller) CommissionRate() shared.Hundredths { return r.commissionRate }
func (r *Reseller) CreatedAt() time.Time              { return r.createdAt }
func (r *Reseller) UpdatedAt() time.Time              { return r.updatedAt }

func (r *Reseller) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("reseller ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("reseller ID cannot be zero")
	}
	r.id = id
	return nil
}

// ResellerUpdate lists the mutable fields; nil means unchanged.
type ResellerUpdate struct {
	Name           *string
	Description    *string
	IsActive       *bool
	CommissionRate *shared.Hundredths
}

func (r *Reseller) Update(u ResellerUpdate) error {
	if u.Name != nil {
		n := strings.TrimSpace(*u.Name)
		if n == "" || len(n) > 100 {
			return ErrInvalidName
		}
		r.name = n
	}
	if u.CommissionRate != nil {
		if err := validateCommission(*u.CommissionRate); err != nil {
			return err
		}
		r.commissionRate = *u.CommissionRate
	}
	if u.Description != nil {
		r.description = strings.TrimSpace(*u.Description)
	}
	if u.IsActive != nil {
		r.isActive = *u.IsActive
	}
	r.updatedAt = time.Now().UTC()
	return nil
}

func validateCommission(rate shared.Hundredths) error {
	if rate < 0 || rate > maxCommissionRate {
		return ErrInvalidCommissionRate
	}
	return nil
}
