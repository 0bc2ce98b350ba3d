package service

import (
    "context"
    "errors"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/experience-booking/internal/model"
    "github.com/iliyamo/experience-booking/internal/repository"
)

// fakeSlotStore keeps slots in memory and mirrors the repository's
// compare-and-swap semantics, including the clamped release.
type fakeSlotStore struct {
    mu    sync.Mutex
    slots map[uint64]*model.Slot
}

func newFakeSlotStore(slots ...*model.Slot) *fakeSlotStore {
    m := make(map[uint64]*model.Slot, len(slots))
    for _, s := range slots {
        m[s.ID] = s
    }
    return &fakeSlotStore{slots: m}
}

func (f *fakeSlotStore) GetByID(_ context.Context, id uint64) (*model.Slot, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    s, ok := f.slots[id]
    if !ok {
        return nil, repository.ErrSlotNotFound
    }
    cp := *s
    return &cp, nil
}

func (f *fakeSlotStore) Reserve(_ context.Context, slotID uint64, quantity, expectedBooked int) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    s, ok := f.slots[slotID]
    if !ok || s.BookedSlots != expectedBooked {
        return repository.ErrSlotConflict
    }
    s.BookedSlots = expectedBooked + quantity
    return nil
}

func (f *fakeSlotStore) Release(_ context.Context, slotID uint64, quantity int) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    s, ok := f.slots[slotID]
    if !ok {
        return nil
    }
    s.BookedSlots -= quantity
    if s.BookedSlots < 0 {
        s.BookedSlots = 0
    }
    return nil
}

func (f *fakeSlotStore) booked(id uint64) int {
    f.mu.Lock()
    defer f.mu.Unlock()
    return f.slots[id].BookedSlots
}

// fakeBookingStore records created bookings and can be told to fail.
type fakeBookingStore struct {
    mu       sync.Mutex
    bookings []*model.Booking
    failWith error
}

func (f *fakeBookingStore) Create(_ context.Context, b *model.Booking) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    if f.failWith != nil {
        return f.failWith
    }
    b.ID = uint64(len(f.bookings) + 1)
    f.bookings = append(f.bookings, b)
    return nil
}

func validRequest() BookingRequest {
    return BookingRequest{
        ExperienceID: 1,
        SlotID:       10,
        UserName:     "Ada Lovelace",
        UserEmail:    "ada@example.com",
        Quantity:     2,
        Subtotal:     1000,
        Taxes:        180,
        Discount:     0,
        TotalPrice:   1180,
    }
}

func newService(slots *fakeSlotStore, bookings *fakeBookingStore) *BookingService {
    return NewBookingService(slots, bookings, nil)
}

func TestConfirmSuccess(t *testing.T) {
    slots := newFakeSlotStore(&model.Slot{ID: 10, ExperienceID: 1, TotalSlots: 5, BookedSlots: 1})
    bookings := &fakeBookingStore{}
    svc := newService(slots, bookings)

    b, err := svc.Confirm(context.Background(), validRequest())
    require.NoError(t, err)
    require.NotNil(t, b)

    assert.Equal(t, model.BookingStatusConfirmed, b.Status)
    assert.Len(t, b.BookingRef, 8)
    assert.Equal(t, int64(1180), b.TotalPrice)
    assert.Equal(t, 3, slots.booked(10), "capacity consumed exactly once")
    assert.Len(t, bookings.bookings, 1)
}

func TestConfirmValidation(t *testing.T) {
    slots := newFakeSlotStore(&model.Slot{ID: 10, TotalSlots: 5, BookedSlots: 0})
    svc := newService(slots, &fakeBookingStore{})

    cases := []struct {
        name   string
        mutate func(*BookingRequest)
        want   error
    }{
        {"missing name", func(r *BookingRequest) { r.UserName = "   " }, ErrMissingFields},
        {"missing email", func(r *BookingRequest) { r.UserEmail = "" }, ErrMissingFields},
        {"zero quantity", func(r *BookingRequest) { r.Quantity = 0 }, ErrMissingFields},
        {"zero total", func(r *BookingRequest) { r.TotalPrice = 0 }, ErrMissingFields},
        {"missing slot id", func(r *BookingRequest) { r.SlotID = 0 }, ErrMissingFields},
        {"bad email", func(r *BookingRequest) { r.UserEmail = "not-an-email" }, ErrInvalidEmail},
        {"email without tld", func(r *BookingRequest) { r.UserEmail = "a@b" }, ErrInvalidEmail},
        {"negative discount", func(r *BookingRequest) { r.Discount = -5 }, ErrInvalidAmount},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            req := validRequest()
            tc.mutate(&req)
            _, err := svc.Confirm(context.Background(), req)
            assert.ErrorIs(t, err, tc.want)
            assert.Equal(t, 0, slots.booked(10), "no slot mutation on rejected input")
        })
    }
}

func TestConfirmUnknownSlot(t *testing.T) {
    svc := newService(newFakeSlotStore(), &fakeBookingStore{})
    req := validRequest()
    _, err := svc.Confirm(context.Background(), req)
    assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestConfirmInsufficientCapacity(t *testing.T) {
    // total 5, booked 3: only 2 remain, quantity 3 must be rejected.
    slots := newFakeSlotStore(&model.Slot{ID: 10, TotalSlots: 5, BookedSlots: 3})
    svc := newService(slots, &fakeBookingStore{})

    req := validRequest()
    req.Quantity = 3
    _, err := svc.Confirm(context.Background(), req)
    assert.ErrorIs(t, err, ErrInsufficientCapacity)
    assert.Equal(t, 3, slots.booked(10))
}

func TestConfirmConflictOnStaleSnapshot(t *testing.T) {
    // Two requests race from the same snapshot with combined quantity
    // above the remaining capacity: exactly one may win the CAS.
    slots := newFakeSlotStore(&model.Slot{ID: 10, TotalSlots: 3, BookedSlots: 0})
    bookings := &fakeBookingStore{}
    svc := newService(slots, bookings)

    first := validRequest()
    first.Quantity = 2
    _, err := svc.Confirm(context.Background(), first)
    require.NoError(t, err)

    // The second request raced the first: its snapshot is stale, the
    // capacity check passes but the guarded update must not.
    stale := &model.Slot{ID: 10, TotalSlots: 3, BookedSlots: 0}
    err = slots.Reserve(context.Background(), stale.ID, 2, stale.BookedSlots)
    assert.ErrorIs(t, err, repository.ErrSlotConflict)

    assert.Equal(t, 2, slots.booked(10))
    assert.LessOrEqual(t, slots.booked(10), 3, "booked never exceeds total")
}

func TestConfirmConcurrent(t *testing.T) {
    // Many goroutines fight over a slot with capacity for only some of
    // them. Invariant: booked_slots never exceeds total_slots and each
    // winner created exactly one booking.
    slots := newFakeSlotStore(&model.Slot{ID: 10, TotalSlots: 4, BookedSlots: 0})
    bookings := &fakeBookingStore{}
    svc := newService(slots, bookings)

    const attempts = 16
    var wg sync.WaitGroup
    var mu sync.Mutex
    succeeded := 0
    for i := 0; i < attempts; i++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            req := validRequest()
            req.Quantity = 1
            if _, err := svc.Confirm(context.Background(), req); err == nil {
                mu.Lock()
                succeeded++
                mu.Unlock()
            }
        }()
    }
    wg.Wait()

    assert.Equal(t, succeeded, slots.booked(10), "one increment per success")
    assert.LessOrEqual(t, slots.booked(10), 4)
    assert.Len(t, bookings.bookings, succeeded)
}

func TestConfirmReleasesOnPersistenceFailure(t *testing.T) {
    slots := newFakeSlotStore(&model.Slot{ID: 10, TotalSlots: 5, BookedSlots: 1})
    bookings := &fakeBookingStore{failWith: errors.New("insert failed")}
    svc := newService(slots, bookings)

    _, err := svc.Confirm(context.Background(), validRequest())
    require.Error(t, err)
    assert.NotErrorIs(t, err, ErrBookingConflict)
    assert.Equal(t, 1, slots.booked(10), "reservation rolled back to pre-reservation value")
}

func TestReserveReleaseRoundTrip(t *testing.T) {
    slots := newFakeSlotStore(&model.Slot{ID: 10, TotalSlots: 10, BookedSlots: 4})
    require.NoError(t, slots.Reserve(context.Background(), 10, 3, 4))
    assert.Equal(t, 7, slots.booked(10))
    require.NoError(t, slots.Release(context.Background(), 10, 3))
    assert.Equal(t, 4, slots.booked(10))
}
