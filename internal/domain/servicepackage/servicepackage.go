package servicepackage

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/orris-inc/tenantdesk/internal/domain/shared"
)

var (
	ErrInvalidName         = errors.New("service package name is required")
	ErrInvalidPrice        = errors.New("price cannot be negative")
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")
)

// Features maps a feature key to its value, e.g. "seats": 10.
type Features map[string]any

// ServicePackage is a purchasable plan definition.
type ServicePackage struct {
	id           uint
	name         string
	description  string
	price        shared.Hundredths
	billingCycle BillingCycle
	features     Features
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewServicePackage(name, description string, price shared.Hundredths, cycle BillingCycle, features Features) (*ServicePackage, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, ErrInvalidName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if !cycle.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBillingCycle, cycle)
	}
	if features == nil {
		features = Features{}
	}

	now := time.Now().UTC()
	return &ServicePackage{
		name:         name,
		description:  description,
		price:        price,
		billingCycle: cycle,
		features:     features,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ServicePackageSnapshot carries persisted state into ReconstructServicePackage.
type ServicePackageSnapshot struct {
	ID           uint
	Name         string
	Description  string
	Price        shared.Hundredths
	BillingCycle BillingCycle
	Features     Features
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReconstructServicePackage does not validate the billing cycle: rows written
// by older code keep working and fall back to the monthly period.
func ReconstructServicePackage(s ServicePackageSnapshot) (*ServicePackage, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("service package ID cannot be zero")
	}
	if s.Features == nil {
		s.Features = Features{}
	}
	return &ServicePackage{
		id:           s.ID,
		name:         s.Name,
		description:  s.Description,
		price:        s.Price,
		billingCycle: s.BillingCycle,
		features:     s.Features,
		isActive:     s.IsActive,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}, nil
}

func (p *ServicePackage) ID() uint                   { return p.id }
func (p *ServicePackage) Name() string               { return p.name }
func (p *ServicePackage) Description() string        { return p.description }
func (p *ServicePackage) Price() shared.Hundredths   { return p.price }
func (p *ServicePackage) BillingCycle() BillingCycle { return p.billingCycle }
func (p *ServicePackage) Features() Features         { return maps.Clone(p.features) }
func (p *ServicePackage) IsActive() bool             { return p.isActive }
func (p *ServicePackage) CreatedAt() time.Time       { return p.createdAt }
func (p *ServicePackage) UpdatedAt() time.Time       { return p.updatedAt }

func (p *ServicePackage) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("service package ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("service package ID cannot be zero")
	}
	p.id = id
	return nil
}

// PeriodEnd returns the end date of a subscription to this package starting on start.
func (p *ServicePackage) PeriodEnd(start time.Time) time.Time {
	return p.billingCycle.EndDate(start)
}

type ServicePackageUpdate struct {
	Name         *string
	Description  *string
	Price        *shared.Hundredths
	BillingCycle *BillingCycle
	Features     Features
	IsActive     *bool
}

func (p *ServicePackage) Update(u ServicePackageUpdate) error {
	if u.Name != nil {
		n := strings.TrimSpace(*u.Name)
		if n == "" || len(n) > 100 {
			return ErrInvalidName
		}
		p.name = n
	}
	if u.Price != nil {
		if *u.Price < 0 {
			return ErrInvalidPrice
		}
		p.price = *u.Price
	}
	if u.BillingCycle != nil {
		if !u.BillingCycle.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidBillingCycle, *u.BillingCycle)
		}
		p.billingCycle = *u.BillingCycle
	}
	if u.Description != nil {
		p.description = *u.Description
	}
	if u.Features != nil {
		p.features = u.Features
	}
	if u.IsActive != nil {
		p.isActive = *u.IsActive
	}
	p.updatedAt = time.Now().UTC()
	return nil
}
