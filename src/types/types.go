package types

import (
	"time"

	"github.com/google/uuid"
)

type CarID int

// Car is the runtime state of one elevator car. Only the dispatcher writes CurrentFloor and IsMoving.
type Car struct {
	ID           CarID
	Owner        string
	MaxWeight    int
	CurrentFloor int
	IsMoving     bool
}

// Is reports whether c and other refer to the same car.
func (c Car) Is(other Car) bool {
	return c.ID == other.ID
}

type Direction int

const (
	DirDown Direction = -1
	DirHere Direction = 0
	DirUp   Direction = 1
)

func DirectionOf(from, to int) Direction {
	switch {
	case to > from:
		return DirUp
	case to < from:
		return DirDown
	}
	return DirHere
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "here"
}

// Assignment is returned when a floor call is accepted.
type Assignment struct {
	RequestID  uuid.UUID
	Car        CarID
	From       int
	To         int
	TravelTime time.Duration
}
