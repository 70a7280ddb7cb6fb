package dispatcher

import (
	"errors"

	"liftsim/src/types"
)

var (
	ErrInvalidFloor = errors.New("invalid floor")
	ErrAllCarsBusy  = errors.New("all cars are busy")
	ErrCarNotFound  = errors.New("car not found")
	ErrClosed       = errors.New("dispatcher closed")
)

// Observer receives car lifecycle notifications. Calls are made on the dispatcher goroutine,
// so an observer must not call back into the Dispatcher synchronously.
type Observer interface {
	OnWillArrive(car types.Car, floor int)
	OnDidArrive(car types.Car, floor int)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	WillArrive func(car types.Car, floor int)
	DidArrive  func(car types.Car, floor int)
}

func (o ObserverFuncs) OnWillArrive(car types.Car, floor int) {
	if o.WillArrive != nil {
		o.WillArrive(car, floor)
	}
}

func (o ObserverFuncs) OnDidArrive(car types.Car, floor int) {
	if o.DidArrive != nil {
		o.DidArrive(car, floor)
	}
}

// fleet is owned by the dispatcher goroutine. slots maps a car id to its index in cars.
type fleet struct {
	cars  []types.Car
	slots map[types.CarID]int
}

// fleetCmd is executed on the dispatcher goroutine with exclusive access to the fleet.
type fleetCmd struct {
	exec func(f *fleet)
}
