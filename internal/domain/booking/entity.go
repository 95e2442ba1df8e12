package booking

import (
	"errors"
	"time"
)

var (
	ErrWrongDates      = errors.New("wrong dates")
	ErrAlreadyApproved = errors.New("booking is already approved")
	ErrUnknownState    = errors.New("unknown state")
	ErrInvalidStatus   = errors.New("invalid booking status")
)

// Booking is the central entity: a request by a booker to borrow an item
// over a time window. It is created WAITING and resolved exactly once by
// the item's owner.
type Booking struct {
	id        int64
	itemID    int64
	bookerID  int64
	timeRange TimeRange
	status    Status
	createdAt time.Time
}

// NewBooking builds a pending booking. Date sanity is enforced by the
// TimeRange constructor against the injected "now".
func NewBooking(itemID, bookerID int64, start, end, now time.Time) (*Booking, error) {
	tr, err := NewTimeRange(start, end, now)
	if err != nil {
		return nil, err
	}
	return &Booking{
		itemID:    itemID,
		bookerID:  bookerID,
		timeRange: tr,
		status:    StatusWaiting,
	}, nil
}

// ReconstructBooking rebuilds a persisted booking from storage.
func ReconstructBooking(id, itemID, bookerID int64, start, end time.Time, status Status, createdAt time.Time) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	tr, err := ReconstructTimeRange(start, end)
	if err != nil {
		return nil, err
	}
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		timeRange: tr,
		status:    status,
		createdAt: createdAt,
	}, nil
}

// Approve moves the booking to APPROVED. Re-approving an approved booking
// is rejected; the guard is asymmetric on purpose, see Reject.
func (b *Booking) Approve() error {
	if b.status == StatusApproved {
		return ErrAlreadyApproved
	}
	b.status = StatusApproved
	return nil
}

// Reject moves the booking to REJECTED. An owner may still reject a
// booking that was approved earlier; only double-approval is blocked.
func (b *Booking) Reject() {
	b.status = StatusRejected
}

// Resolve applies the owner's decision.
func (b *Booking) Resolve(approved bool) error {
	if approved {
		return b.Approve()
	}
	b.Reject()
	return nil
}

func (b *Booking) IsWaiting() bool {
	return b.status == StatusWaiting
}

func (b *Booking) ID() int64            { return b.id }
func (b *Booking) ItemID() int64        { return b.itemID }
func (b *Booking) BookerID() int64      { return b.bookerID }
func (b *Booking) TimeRange() TimeRange { return b.timeRange }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
