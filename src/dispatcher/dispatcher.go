package dispatcher

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"liftsim/src/config"
	"liftsim/src/timer"
	"liftsim/src/types"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"
)

// Dispatcher owns the fleet and serializes every access to it through a single goroutine.
type Dispatcher struct {
	cfg      config.Building
	clock    timer.Clock
	log      *slog.Logger
	observer Observer // only touched on the dispatcher goroutine

	cmds      chan fleetCmd
	done      chan struct{}
	closeOnce sync.Once
}

type Option func(d *Dispatcher)

func WithClock(clock timer.Clock) Option {
	return func(d *Dispatcher) { d.clock = clock }
}

func WithObserver(o Observer) Option {
	return func(d *Dispatcher) { d.observer = o }
}

func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// New builds one car per configured car, all idle at floor 1, and starts the dispatcher goroutine.
// cfg is expected to be validated by the loader.
func New(cfg config.Building, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:   cfg,
		clock: timer.Real{},
		log:   slog.Default(),
		cmds:  make(chan fleetCmd),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}

	f := &fleet{
		cars:  make([]types.Car, 0, len(cfg.Cars)),
		slots: make(map[types.CarID]int, len(cfg.Cars)),
	}
	for i, c := range cfg.Cars {
		f.cars = append(f.cars, types.Car{
			ID:           types.CarID(c.ID),
			Owner:        c.Owner,
			MaxWeight:    c.MaxWeight,
			CurrentFloor: config.StartFloor,
		})
		f.slots[types.CarID(c.ID)] = i
	}

	go func() {
		for {
			select {
			case cmd := <-d.cmds:
				cmd.exec(f)
			case <-d.done:
				return
			}
		}
	}()
	d.log.Debug("Dispatcher started", "floors", cfg.FloorCount, "cars", len(f.cars))
	return d
}

// Close stops the dispatcher goroutine. Moves still in flight never commit.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
		d.log.Debug("Dispatcher closed")
	})
}

// do runs exec on the dispatcher goroutine and waits for it to finish.
func (d *Dispatcher) do(exec func(f *fleet)) error {
	finished := make(chan struct{})
	cmd := fleetCmd{exec: func(f *fleet) {
		defer close(finished)
		exec(f)
	}}
	select {
	case d.cmds <- cmd:
	case <-d.done:
		return ErrClosed
	}
	<-finished
	return nil
}

// SetObserver replaces the observer. A nil observer drops notifications.
func (d *Dispatcher) SetObserver(o Observer) error {
	return d.do(func(*fleet) { d.observer = o })
}

// Fleet returns a deep copy of the current fleet state in fleet order.
func (d *Dispatcher) Fleet() ([]types.Car, error) {
	var snapshot []types.Car
	var copyErr error
	err := d.do(func(f *fleet) {
		copyErr = deepcopy.Copy(&snapshot, f.cars)
	})
	if err != nil {
		return nil, err
	}
	return snapshot, copyErr
}

// RequestFloor assigns the nearest idle car to floor and starts moving it.
// The will-arrive notification has fired by the time RequestFloor returns; arrival is asynchronous.
func (d *Dispatcher) RequestFloor(floor int) (types.Assignment, error) {
	var (
		assignment types.Assignment
		reqErr     error
	)
	err := d.do(func(f *fleet) {
		if floor < 1 || floor > d.cfg.FloorCount {
			reqErr = fmt.Errorf("%w: %d not in 1-%d", ErrInvalidFloor, floor, d.cfg.FloorCount)
			return
		}
		slot := nearestIdle(f.cars, floor)
		if slot == -1 {
			reqErr = fmt.Errorf("%w: floor %d", ErrAllCarsBusy, floor)
			return
		}
		assignment, reqErr = d.moveCar(f, f.cars[slot].ID, floor)
	})
	if err != nil {
		return types.Assignment{}, err
	}
	if reqErr != nil {
		d.log.Info("Floor request rejected", "floor", floor, "err", reqErr)
		return types.Assignment{}, reqErr
	}
	return assignment, nil
}

// moveCar marks the car busy, emits will-arrive and schedules the arrival commit.
// Must run on the dispatcher goroutine.
func (d *Dispatcher) moveCar(f *fleet, id types.CarID, toFloor int) (types.Assignment, error) {
	slot, ok := f.slots[id]
	if !ok {
		d.log.Error("Move requested for unknown car", "car", id, "floor", toFloor)
		return types.Assignment{}, fmt.Errorf("%w: %d", ErrCarNotFound, id)
	}
	car := &f.cars[slot]
	car.IsMoving = true

	distance := abs(car.CurrentFloor - toFloor)
	travelTime := time.Duration(distance) * d.cfg.TravelPerFloor()
	assignment := types.Assignment{
		RequestID:  uuid.New(),
		Car:        id,
		From:       car.CurrentFloor,
		To:         toFloor,
		TravelTime: travelTime,
	}

	d.notifyWillArrive(*car, toFloor)
	d.log.Info("Car departing",
		"car", id,
		"from", assignment.From,
		"to", toFloor,
		"travelTime", travelTime,
		"request", assignment.RequestID)

	d.clock.AfterFunc(travelTime, func() {
		// Runs on a timer goroutine; the commit itself goes through the command queue.
		if err := d.do(func(f *fleet) { d.commitArrival(f, id, toFloor) }); err != nil {
			d.log.Debug("Arrival dropped", "car", id, "floor", toFloor, "err", err)
		}
	})
	return assignment, nil
}

func (d *Dispatcher) commitArrival(f *fleet, id types.CarID, floor int) {
	slot, ok := f.slots[id]
	if !ok {
		d.log.Error("Arrival for unknown car", "car", id, "floor", floor)
		return
	}
	car := &f.cars[slot]
	car.CurrentFloor = floor
	car.IsMoving = false
	d.log.Info("Car arrived", "car", id, "floor", floor)
	d.notifyDidArrive(*car, floor)
}

func (d *Dispatcher) notifyWillArrive(car types.Car, floor int) {
	if d.observer != nil {
		d.observer.OnWillArrive(car, floor)
	}
}

func (d *Dispatcher) notifyDidArrive(car types.Car, floor int) {
	if d.observer != nil {
		d.observer.OnDidArrive(car, floor)
	}
}
