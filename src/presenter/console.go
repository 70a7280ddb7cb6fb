package presenter

import (
	"log/slog"
	"sync"
	"time"

	"liftsim/src/timer"
	"liftsim/src/types"
	"liftsim/src/utils"

	"github.com/tiendc/go-deepcopy"
)

type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpen
)

func (s DoorState) String() string {
	if s == DoorOpen {
		return "open"
	}
	return "closed"
}

// CarView is what the console shows for one car.
type CarView struct {
	Floor     int
	Target    int
	Direction types.Direction
	InTransit bool
	Door      DoorState
}

// Console is the presentation side of the dispatcher. It tracks display state per car and
// runs the door cycle after each arrival. Door timing never feeds back into dispatching.
type Console struct {
	clock     timer.Clock
	doorCycle time.Duration
	log       *slog.Logger

	mu    sync.Mutex
	views map[types.CarID]CarView
	doors map[types.CarID]timer.Timer
	idle  *sync.Cond
}

func NewConsole(clock timer.Clock, doorCycle time.Duration, log *slog.Logger) *Console {
	c := &Console{
		clock:     clock,
		doorCycle: doorCycle,
		log:       log,
		views:     make(map[types.CarID]CarView),
		doors:     make(map[types.CarID]timer.Timer),
	}
	c.idle = sync.NewCond(&c.mu)
	return c
}

func (c *Console) view(id types.CarID) CarView {
	v, ok := c.views[id]
	if !ok {
		v = CarView{Floor: 1}
	}
	return v
}

func (c *Console) OnWillArrive(car types.Car, floor int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.view(car.ID)
	v.Floor = car.CurrentFloor
	v.Target = floor
	v.Direction = types.DirectionOf(car.CurrentFloor, floor)
	v.InTransit = true
	if t, ok := c.doors[car.ID]; ok {
		// Dispatched again during its door cycle.
		t.Stop()
		delete(c.doors, car.ID)
		v.Door = DoorClosed
	}
	c.views[car.ID] = v
	c.log.Info("Car on its way",
		"car", utils.FormatCar(car),
		"to", floor,
		"direction", v.Direction)
}

// OnDidArrive updates the car's floor and opens its doors for one door cycle.
func (c *Console) OnDidArrive(car types.Car, floor int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.view(car.ID)
	v.Floor = floor
	v.Target = floor
	v.Direction = types.DirHere
	v.InTransit = false
	v.Door = DoorOpen
	c.views[car.ID] = v
	c.log.Info("Car arrived, doors opening", "car", utils.FormatCar(car), "floor", floor)

	if t, ok := c.doors[car.ID]; ok {
		t.Stop()
	}
	id := car.ID
	c.doors[id] = c.clock.AfterFunc(c.doorCycle, func() { c.closeDoor(id) })
}

func (c *Console) closeDoor(id types.CarID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.view(id)
	v.Door = DoorClosed
	c.views[id] = v
	delete(c.doors, id)
	c.log.Info("Doors closed", "car", id, "floor", v.Floor)
	c.idle.Broadcast()
}

// Status returns a copy of the display state of every car seen so far.
func (c *Console) Status() map[types.CarID]CarView {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[types.CarID]CarView, len(c.views))
	if err := deepcopy.Copy(&out, c.views); err != nil {
		c.log.Error("Copying console status failed", "err", err)
	}
	return out
}

// WaitSettled blocks until no car seen by the console is in transit or has its doors open.
func (c *Console) WaitSettled() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for !c.settled() {
		c.idle.Wait()
	}
}

func (c *Console) settled() bool {
	for _, v := range c.views {
		if v.InTransit || v.Door == DoorOpen {
			return false
		}
	}
	return true
}
