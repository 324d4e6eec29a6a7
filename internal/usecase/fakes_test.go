package usecase

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore backs every fake repository. A fake transaction holds mu for its
// whole duration, which stands in for row locks, and restores a snapshot
// on error.
type memStore struct {
	mu sync.Mutex

	users     map[uuid.UUID]*entity.User
	rooms     map[uuid.UUID]*entity.Room
	inventory map[uuid.UUID]*entity.InventoryRecord
	rates     []*entity.Rate
	bookings  map[uuid.UUID]*entity.Booking
	lines     []*entity.BookingRoom
	payments  []*entity.Payment
	invoices  map[uuid.UUID]*entity.Invoice

	lockCalls    int
	rateLookups  int
	failLinesErr error
}

type snapshot struct {
	inventory map[uuid.UUID]entity.InventoryRecord
	bookings  map[uuid.UUID]entity.Booking
	lines     []entity.BookingRoom
	payments  []entity.Payment
	invoices  map[uuid.UUID]entity.Invoice
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]*entity.User{},
		rooms:     map[uuid.UUID]*entity.Room{},
		inventory: map[uuid.UUID]*entity.InventoryRecord{},
		bookings:  map[uuid.UUID]*entity.Booking{},
		invoices:  map[uuid.UUID]*entity.Invoice{},
	}
}

func (m *memStore) snapshot() snapshot {
	s := snapshot{
		inventory: make(map[uuid.UUID]entity.InventoryRecord, len(m.inventory)),
		bookings:  make(map[uuid.UUID]entity.Booking, len(m.bookings)),
		invoices:  make(map[uuid.UUID]entity.Invoice, len(m.invoices)),
	}
	for id, rec := range m.inventory {
		s.inventory[id] = *rec
	}
	for id, b := range m.bookings {
		s.bookings[id] = *b
	}
	for id, inv := range m.invoices {
		s.invoices[id] = *inv
	}
	for _, line := range m.lines {
		s.lines = append(s.lines, *line)
	}
	for _, p := range m.payments {
		s.payments = append(s.payments, *p)
	}
	return s
}

func (m *memStore) restore(s snapshot) {
	m.inventory = map[uuid.UUID]*entity.InventoryRecord{}
	for id, rec := range s.inventory {
		rec := rec
		m.inventory[id] = &rec
	}
	m.bookings = map[uuid.UUID]*entity.Booking{}
	for id, b := range s.bookings {
		b := b
		m.bookings[id] = &b
	}
	m.invoices = map[uuid.UUID]*entity.Invoice{}
	for id, inv := range s.invoices {
		inv := inv
		m.invoices[id] = &inv
	}
	m.lines = nil
	for _, line := range s.lines {
		line := line
		m.lines = append(m.lines, &line)
	}
	m.payments = nil
	for _, p := range s.payments {
		p := p
		m.payments = append(m.payments, &p)
	}
}

type memTxKey struct{}

func inMemTx(ctx context.Context) bool {
	return ctx.Value(memTxKey{}) != nil
}

// guard locks the store for calls made outside a fake transaction.
func (m *memStore) guard(ctx context.Context) func() {
	if inMemTx(ctx) {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

type memTransactor struct {
	store *memStore
}

func (t *memTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inMemTx(ctx) {
		return fn(ctx)
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// ==================== repositories ====================

type fakeUserRepo struct{ s *memStore }

func (r fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	defer r.s.guard(ctx)()
	u, ok := r.s.users[id]
	if !ok || !u.IsActive {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	defer r.s.guard(ctx)()
	return int64(len(r.s.users)), nil
}

type fakeRoomRepo struct{ s *memStore }

func (r fakeRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	defer r.s.guard(ctx)()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	c := *room
	return &c, nil
}

func (r fakeRoomRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Room, error) {
	defer r.s.guard(ctx)()
	seen := map[uuid.UUID]bool{}
	var rooms []*entity.Room
	for _, id := range ids {
		room, ok := r.s.rooms[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		c := *room
		rooms = append(rooms, &c)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	return rooms, nil
}

func (r fakeRoomRepo) CountAll(ctx context.Context) (int64, error) {
	defer r.s.guard(ctx)()
	return int64(len(r.s.rooms)), nil
}

func (r fakeRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	defer r.s.guard(ctx)()
	for _, existing := range r.s.rooms {
		if existing.Number == room.Number {
			return fmt.Errorf("create room %s: %w", room.Number, repository.ErrDuplicate)
		}
	}
	c := *room
	r.s.rooms[room.ID] = &c
	return nil
}

func (r fakeRoomRepo) Update(ctx context.Context, room *entity.Room) error {
	defer r.s.guard(ctx)()
	if _, ok := r.s.rooms[room.ID]; !ok {
		return repository.ErrNotUpdated
	}
	for id, existing := range r.s.rooms {
		if id != room.ID && existing.Number == room.Number {
			return fmt.Errorf("update room %s: %w", room.ID, repository.ErrDuplicate)
		}
	}
	c := *room
	c.Type = r.s.rooms[room.ID].Type
	r.s.rooms[room.ID] = &c
	return nil
}

func (r fakeRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.guard(ctx)()
	if _, ok := r.s.rooms[id]; !ok {
		return repository.ErrNotUpdated
	}
	for _, line := range r.s.lines {
		if line.RoomID == id {
			return fmt.Errorf("delete room %s: %w", id, repository.ErrReferenced)
		}
	}
	delete(r.s.rooms, id)
	for recID, rec := range r.s.inventory {
		if rec.RoomID == id {
			delete(r.s.inventory, recID)
		}
	}
	return nil
}

type fakeInventoryRepo struct{ s *memStore }

func (r fakeInventoryRepo) FindRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*entity.InventoryRecord, error) {
	defer r.s.guard(ctx)()
	var records []*entity.InventoryRecord
	for _, rec := range r.s.inventory {
		if rec.RoomID == roomID && !rec.NightDate.Before(from) && rec.NightDate.Before(to) {
			c := *rec
			records = append(records, &c)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].NightDate.Before(records[j].NightDate) })
	return records, nil
}

func (r fakeInventoryRepo) LockRange(ctx context.Context, roomIDs []uuid.UUID, from, to time.Time) ([]*entity.InventoryRecord, error) {
	if !inMemTx(ctx) {
		return nil, fmt.Errorf("lock inventory: no transaction in context")
	}
	r.s.lockCalls++

	wanted := map[uuid.UUID]bool{}
	for _, id := range roomIDs {
		wanted[id] = true
	}

	var records []*entity.InventoryRecord
	for _, rec := range r.s.inventory {
		if wanted[rec.RoomID] && !rec.NightDate.Before(from) && rec.NightDate.Before(to) {
			c := *rec
			records = append(records, &c)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if cmp := bytes.Compare(records[i].RoomID[:], records[j].RoomID[:]); cmp != 0 {
			return cmp < 0
		}
		return records[i].NightDate.Before(records[j].NightDate)
	})
	return records, nil
}

func (r fakeInventoryRepo) AdjustBooked(ctx context.Context, recordID uuid.UUID, delta int) error {
	defer r.s.guard(ctx)()
	rec, ok := r.s.inventory[recordID]
	if !ok {
		return fmt.Errorf("adjust inventory %s: %w", recordID, repository.ErrNotUpdated)
	}
	next := rec.BookedCount + delta
	if next < 0 || next > rec.Allotment {
		return fmt.Errorf("adjust inventory %s by %d: %w", recordID, delta, repository.ErrInventoryGuard)
	}
	rec.BookedCount = next
	return nil
}

func (r fakeInventoryRepo) FindAvailableRoomIDs(ctx context.Context, roomType string, from, to time.Time) ([]uuid.UUID, error) {
	defer r.s.guard(ctx)()
	nights := len(entity.Nights(from, to))

	free := map[uuid.UUID]int{}
	for _, rec := range r.s.inventory {
		if !rec.NightDate.Before(from) && rec.NightDate.Before(to) && rec.BookedCount < rec.Allotment {
			free[rec.RoomID]++
		}
	}

	var ids []uuid.UUID
	for id, room := range r.s.rooms {
		if equalFold(room.Type, roomType) && free[id] == nights {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func equalFold(a, b string) bool {
	return bytes.EqualFold([]byte(a), []byte(b))
}

type fakeRateRepo struct{ s *memStore }

func (r fakeRateRepo) FindByRoomType(ctx context.Context, roomType string) ([]*entity.Rate, error) {
	defer r.s.guard(ctx)()
	r.s.rateLookups++

	var rates []*entity.Rate
	for _, rate := range r.s.rates {
		if rate.RoomType == roomType {
			c := *rate
			rates = append(rates, &c)
		}
	}
	sort.SliceStable(rates, func(i, j int) bool {
		wi, wj := rates[i].EndDate.Sub(rates[i].StartDate), rates[j].EndDate.Sub(rates[j].StartDate)
		if wi != wj {
			return wi < wj
		}
		return rates[i].CreatedAt.After(rates[j].CreatedAt)
	})
	return rates, nil
}

type fakeBookingRepo struct{ s *memStore }

func (r fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	defer r.s.guard(ctx)()
	c := *booking
	r.s.bookings[booking.ID] = &c
	return nil
}

func (r fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	defer r.s.guard(ctx)()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (r fakeBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if !inMemTx(ctx) {
		return nil, fmt.Errorf("lock booking %s: no transaction in context", id)
	}
	return r.FindByID(ctx, id)
}

func (r fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	defer r.s.guard(ctx)()
	var bookings []*entity.Booking
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			c := *b
			bookings = append(bookings, &c)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.After(bookings[j].CreatedAt) })
	if offset >= len(bookings) {
		return nil, nil
	}
	end := offset + limit
	if end > len(bookings) {
		end = len(bookings)
	}
	return bookings[offset:end], nil
}

func (r fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	defer r.s.guard(ctx)()
	var n int64
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	defer r.s.guard(ctx)()
	if _, ok := r.s.bookings[booking.ID]; !ok {
		return repository.ErrNotUpdated
	}
	c := *booking
	r.s.bookings[booking.ID] = &c
	return nil
}

func (r fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.guard(ctx)()
	if _, ok := r.s.bookings[id]; !ok {
		return repository.ErrNotUpdated
	}
	delete(r.s.bookings, id)
	delete(r.s.invoices, id)
	kept := r.s.lines[:0]
	for _, line := range r.s.lines {
		if line.BookingID != id {
			kept = append(kept, line)
		}
	}
	r.s.lines = kept
	return nil
}

func (r fakeBookingRepo) FindStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	defer r.s.guard(ctx)()
	var ids []uuid.UUID
	for id, b := range r.s.bookings {
		if b.Status == entity.BookingStatusPendingPayment && b.CreatedAt.Before(createdBefore) && len(ids) < limit {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r fakeBookingRepo) CountAll(ctx context.Context) (int64, error) {
	defer r.s.guard(ctx)()
	return int64(len(r.s.bookings)), nil
}

func (r fakeBookingRepo) SumBookedNights(ctx context.Context) (int64, error) {
	defer r.s.guard(ctx)()
	var nights int64
	for _, line := range r.s.lines {
		b := r.s.bookings[line.BookingID]
		if b != nil && b.Status != entity.BookingStatusCancelled {
			nights += int64(len(b.Nights()))
		}
	}
	return nights, nil
}

type fakeBookingRoomRepo struct{ s *memStore }

func (r fakeBookingRoomRepo) CreateBatch(ctx context.Context, lines []*entity.BookingRoom) error {
	defer r.s.guard(ctx)()
	if r.s.failLinesErr != nil {
		return r.s.failLinesErr
	}
	for _, line := range lines {
		c := *line
		r.s.lines = append(r.s.lines, &c)
	}
	return nil
}

func (r fakeBookingRoomRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingRoom, error) {
	defer r.s.guard(ctx)()
	var lines []*entity.BookingRoom
	for _, line := range r.s.lines {
		if line.BookingID == bookingID {
			c := *line
			lines = append(lines, &c)
		}
	}
	return lines, nil
}

type fakePaymentRepo struct{ s *memStore }

func (r fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	defer r.s.guard(ctx)()
	c := *payment
	r.s.payments = append(r.s.payments, &c)
	return nil
}

func (r fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	defer r.s.guard(ctx)()
	var payments []*entity.Payment
	for _, p := range r.s.payments {
		if p.BookingID == bookingID {
			c := *p
			payments = append(payments, &c)
		}
	}
	return payments, nil
}

func (r fakePaymentRepo) FindByBookingAndRef(ctx context.Context, bookingID uuid.UUID, providerRef string) (*entity.Payment, error) {
	defer r.s.guard(ctx)()
	for i := len(r.s.payments) - 1; i >= 0; i-- {
		p := r.s.payments[i]
		if p.BookingID == bookingID && p.ProviderRef == providerRef {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r fakePaymentRepo) SumCompleted(ctx context.Context) (int64, error) {
	defer r.s.guard(ctx)()
	var total int64
	for _, p := range r.s.payments {
		if p.Status == entity.PaymentStatusCompleted {
			total += p.Amount
		}
	}
	return total, nil
}

type fakeInvoiceRepo struct{ s *memStore }

func (r fakeInvoiceRepo) CreateIfAbsent(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error) {
	defer r.s.guard(ctx)()
	if _, ok := r.s.invoices[invoice.BookingID]; !ok {
		c := *invoice
		r.s.invoices[invoice.BookingID] = &c
	}
	c := *r.s.invoices[invoice.BookingID]
	return &c, nil
}

func (r fakeInvoiceRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Invoice, error) {
	defer r.s.guard(ctx)()
	inv, ok := r.s.invoices[bookingID]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

func (r fakeInvoiceRepo) byID(id uuid.UUID) *entity.Invoice {
	for _, inv := range r.s.invoices {
		if inv.ID == id {
			return inv
		}
	}
	return nil
}

func (r fakeInvoiceRepo) MarkRequested(ctx context.Context, id uuid.UUID, at time.Time) error {
	defer r.s.guard(ctx)()
	inv := r.byID(id)
	if inv == nil {
		return repository.ErrNotUpdated
	}
	inv.Status = entity.InvoiceStatusRequested
	inv.RequestedAt = &at
	inv.Attempts++
	inv.ClaimedUntil = nil
	return nil
}

func claimLive(inv *entity.Invoice, now time.Time) bool {
	return inv.ClaimedUntil != nil && inv.ClaimedUntil.After(now)
}

func (r fakeInvoiceRepo) Claim(ctx context.Context, id uuid.UUID, now, until time.Time) (bool, error) {
	defer r.s.guard(ctx)()
	inv := r.byID(id)
	if inv == nil || inv.Status != entity.InvoiceStatusPending || claimLive(inv, now) {
		return false, nil
	}
	inv.ClaimedUntil = &until
	return true, nil
}

func (r fakeInvoiceRepo) ReleaseClaim(ctx context.Context, id uuid.UUID) error {
	defer r.s.guard(ctx)()
	if inv := r.byID(id); inv != nil {
		inv.Attempts++
		inv.ClaimedUntil = nil
	}
	return nil
}

func (r fakeInvoiceRepo) FindPending(ctx context.Context, now time.Time, limit int) ([]*entity.Invoice, error) {
	defer r.s.guard(ctx)()
	var invoices []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.Status == entity.InvoiceStatusPending && !claimLive(inv, now) && len(invoices) < limit {
			c := *inv
			invoices = append(invoices, &c)
		}
	}
	return invoices, nil
}

// ==================== publisher ====================

type publishedMessage struct {
	key     string
	payload any
}

type fakePublisher struct {
	mu       sync.Mutex
	err      error
	messages []publishedMessage

	// onPublish runs once, before the message is recorded.
	onPublish func()
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	hook := p.onPublish
	p.onPublish = nil
	p.mu.Unlock()
	if hook != nil {
		hook()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, publishedMessage{key: routingKey, payload: payload})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, len(p.messages))
	for i, m := range p.messages {
		keys[i] = m.key
	}
	return keys
}

func (p *fakePublisher) count(key string) int {
	n := 0
	for _, k := range p.keys() {
		if k == key {
			n++
		}
	}
	return n
}

// ==================== environment ====================

type testEnv struct {
	t      *testing.T
	store  *memStore
	events *fakePublisher
	clock  time.Time

	pricing   PricingService
	inventory InventoryService
	booking   BookingService
	admin     AdminBookingService
	payment   PaymentService
	invoice   InvoiceService
	room      RoomService
	dashboard DashboardService
}

var baseNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	env := &testEnv{t: t, store: store, events: &fakePublisher{}, clock: baseNow}

	repo := &repository.Repository{
		User:        fakeUserRepo{store},
		Room:        fakeRoomRepo{store},
		Inventory:   fakeInventoryRepo{store},
		Rate:        fakeRateRepo{store},
		Booking:     fakeBookingRepo{store},
		BookingRoom: fakeBookingRoomRepo{store},
		Payment:     fakePaymentRepo{store},
		Invoice:     fakeInvoiceRepo{store},
	}
	tx := &memTransactor{store: store}
	settings := Settings{
		Location: time.UTC,
		Currency: "USD",
		Now:      func() time.Time { return env.clock },
	}
	log := zap.NewNop()

	env.pricing = NewPricingService(repo, log)
	env.inventory = NewInventoryService(repo, log)
	env.invoice = NewInvoiceService(repo, tx, env.events, settings, log)
	env.booking = NewBookingService(repo, tx, env.inventory, env.pricing, env.events, settings, log)
	env.admin = NewAdminBookingService(repo, tx, env.inventory, env.pricing, env.events, settings, log)
	env.payment = NewPaymentService(repo, tx, env.invoice, env.events, settings, log)
	env.room = NewRoomService(repo, env.inventory, env.pricing, settings, log)
	env.dashboard = NewDashboardService(repo, log)
	return env
}

func (e *testEnv) addUser() uuid.UUID {
	id := uuid.New()
	e.store.users[id] = &entity.User{
		Base:     entity.Base{ID: id, CreatedAt: baseNow, UpdatedAt: baseNow},
		Username: "guest-" + id.String()[:4],
		Email:    "guest@example.com",
		Role:     entity.RoleGuest,
		IsActive: true,
	}
	return id
}

func (e *testEnv) addRoom(number, roomType string) uuid.UUID {
	id := uuid.New()
	e.store.rooms[id] = &entity.Room{
		ID:       id,
		Number:   number,
		Name:     roomType + " " + number,
		Type:     roomType,
		Capacity: 2,
		Status:   entity.RoomStatusAvailable,
	}
	return id
}

// addInventory provisions one record per night of [from, to).
func (e *testEnv) addInventory(roomID uuid.UUID, from, to time.Time, allotment int) {
	for _, night := range entity.Nights(from, to) {
		id := uuid.New()
		e.store.inventory[id] = &entity.InventoryRecord{
			ID:        id,
			RoomID:    roomID,
			NightDate: night,
			Allotment: allotment,
		}
	}
}

func (e *testEnv) addRate(roomType string, start, end time.Time, price int64, createdAt time.Time) {
	e.store.rates = append(e.store.rates, &entity.Rate{
		ID:        uuid.New(),
		RoomType:  roomType,
		StartDate: start,
		EndDate:   end,
		Price:     price,
		CreatedAt: createdAt,
	})
}

func (e *testEnv) booked(roomID uuid.UUID, night time.Time) int {
	for _, rec := range e.store.inventory {
		if rec.RoomID == roomID && rec.NightDate.Equal(night) {
			return rec.BookedCount
		}
	}
	return -1
}

func (e *testEnv) totalBooked() int {
	total := 0
	for _, rec := range e.store.inventory {
		total += rec.BookedCount
	}
	return total
}

// standardRoom seeds a bookable STANDARD room priced 100.00 a night in June 2025.
func (e *testEnv) standardRoom(number string, allotment int) uuid.UUID {
	id := e.addRoom(number, "STANDARD")
	e.addInventory(id, date("2025-06-01"), date("2025-07-01"), allotment)
	if len(e.store.rates) == 0 {
		e.addRate("STANDARD", date("2025-06-01"), date("2025-06-30"), 10000, baseNow.Add(-time.Hour))
	}
	return id
}

func (e *testEnv) createCmd(userID uuid.UUID, checkIn, checkOut string, rooms ...uuid.UUID) CreateBookingCmd {
	adults := make([]int, len(rooms))
	children := make([]int, len(rooms))
	for i := range rooms {
		adults[i] = 2
	}
	return CreateBookingCmd{
		UserID:   userID,
		CheckIn:  date(checkIn),
		CheckOut: date(checkOut),
		RoomIDs:  rooms,
		Adults:   adults,
		Children: children,
	}
}
