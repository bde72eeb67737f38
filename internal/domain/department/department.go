package department

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidName = errors.New("department name is required")

// CustomerType records whether a department is served directly or through a reseller.
type CustomerType string

const (
	CustomerTypeDirect   CustomerType = "direct"
	CustomerTypeReseller CustomerType = "reseller"
)

func (t CustomerType) IsValid() bool {
	return t == CustomerTypeDirect || t == CustomerTypeReseller
}

// Department is a tenant organizational unit.
type Department struct {
	id           uint
	name         string
	description  string
	customerType CustomerType
	createdAt    time.Time
	updatedAt    time.Time
}

func NewDepartment(name, description string, customerType CustomerType) (*Department, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, ErrInvalidName
	}
	if customerType == "" {
		customerType = CustomerTypeDirect
	}
	if !customerType.IsValid() {
		return nil, fmt.Errorf("invalid customer type: %s", customerType)
	}

	now := time.Now().UTC()
	return &Department{
		name:         name,
		description:  strings.TrimSpace(description),
		customerType: customerType,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructDepartment(id uint, name, description string, customerType CustomerType, createdAt, updatedAt time.Time) (*Department, error) {
	if id == 0 {
		return nil, fmt.Errorf("department ID cannot be zero")
	}
	if !customerType.IsValid() {
		return nil, fmt.Errorf("invalid customer type: %s", customerType)
	}
	return &Department{
		id:           id,
		name:         name,
		description:  description,
		customerType: customerType,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (d *Department) ID() uint                   { return d.id }
func (d *Department) Name() string               { return d.name }
func (d *Department) Description() string        { return d.description }
func (d *Department) CustomerType() CustomerType { return d.customerType }
func (d *Department) CreatedAt() time.Time       { return d.createdAt }
func (d *Department) UpdatedAt() time.Time       { return d.updatedAt }

func (d *Department) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("department ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("department ID cannot be zero")
	}
	d.id = id
	return nil
}

// Update applies the non-nil fields.
func (d *Department) Update(name, description *string) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" || len(n) > 100 {
			return ErrInvalidName
		}
		d.name = n
	}
	if description != nil {
		d.description = strings.TrimSpace(*description)
	}
	d.updatedAt = time.Now().UTC()
	return nil
}
