package subscription

import (
	"fmt"
	"time"
)

// Subscription binds a department to a service package for a date range.
// Dates are calendar dates stored as midnight UTC.
type Subscription struct {
	id           uint
	departmentID uint
	packageID    uint
	startDate    time.Time
	endDate      time.Time
	status       Status
	source       Source
	resellerID   *uint
	createdAt    time.Time
	updatedAt    time.Time

	// storedStatus is the status last read from or written to storage.
	// Updates are conditional on it.
	storedStatus Status
}

// NewSubscription creates an active subscription. A reseller subscription
// must carry the reseller it was sold through; a direct one must not.
func NewSubscription(departmentID, packageID uint, startDate, endDate time.Time, source Source, resellerID *uint) (*Subscription, error) {
	if departmentID == 0 {
		return nil, fmt.Errorf("department ID is required")
	}
	if packageID == 0 {
		return nil, fmt.Errorf("service package ID is required")
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date must not be before start date")
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("invalid subscription source: %s", source)
	}
	if source == SourceReseller && (resellerID == nil || *resellerID == 0) {
		return nil, ErrMissingReseller
	}
	if source == SourceDirect {
		resellerID = nil
	}

	now := time.Now().UTC()
	return &Subscription{
		departmentID: departmentID,
		packageID:    packageID,
		startDate:    startDate,
		endDate:      endDate,
		status:       StatusActive,
		source:       source,
		resellerID:   resellerID,
		createdAt:    now,
		updatedAt:    now,
		storedStatus: StatusActive,
	}, nil
}

type Snapshot struct {
	ID           uint
	DepartmentID uint
	PackageID    uint
	StartDate    time.Time
	EndDate      time.Time
	Status       Status
	Source       Source
	ResellerID   *uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ReconstructSubscription(s Snapshot) (*Subscription, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", s.Status)
	}
	if !s.Source.IsValid() {
		return nil, fmt.Errorf("invalid subscription source: %s", s.Source)
	}
	return &Subscription{
		id:           s.ID,
		departmentID: s.DepartmentID,
		packageID:    s.PackageID,
		startDate:    s.StartDate,
		endDate:      s.EndDate,
		status:       s.Status,
		source:       s.Source,
		resellerID:   s.ResellerID,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		storedStatus: s.Status,
	}, nil
}

func (s *Subscription) ID() uint             { return s.id }
func (s *Subscription) DepartmentID() uint   { return s.departmentID }
func (s *Subscription) PackageID() uint      { return s.packageID }
func (s *Subscription) StartDate() time.Time { return s.startDate }
func (s *Subscription) EndDate() time.Time   { return s.endDate }
func (s *Subscription) Status() Status       { return s.status }
func (s *Subscription) Source() Source       { return s.source }
func (s *Subscription) ResellerID() *uint    { return s.resellerID }
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time { return s.updatedAt }

// StoredStatus is the status the row had when this entity was loaded or
// last saved.
func (s *Subscription) StoredStatus() Status { return s.storedStatus }

// MarkStored records that the current status has been persisted.
func (s *Subscription) MarkStored() { s.storedStatus = s.status }

func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// EffectiveStatus is the status as of today: an active subscription whose
// end date has passed reads as expired even before the sweep persists it.
func (s *Subscription) EffectiveStatus(today time.Time) Status {
	if s.status == StatusActive && s.endDate.Before(today) {
		return StatusExpired
	}
	return s.status
}

func (s *Subscription) IsActiveOn(today time.Time) bool {
	return s.EffectiveStatus(today) == StatusActive
}

func (s *Subscription) MarkAsExpired() error {
	return s.transition(StatusExpired)
}

func (s *Subscription) Cancel() error {
	return s.transition(StatusCancelled)
}

func (s *Subscription) transition(next Status) error {
	if !s.status.CanTransitionTo(next) {
		return errTransition(s.status, next)
	}
	s.status = next
	s.updatedAt = time.Now().UTC()
	return nil
}
