package config

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid building config")

// Validate checks the ranges the dispatcher relies on.
//   - 2 to 4 cars with unique positive ids and positive max weight
//   - 1 to 20 floors
//   - positive travel and door timings
func (b Building) Validate() error {
	if n := len(b.Cars); n < MinCars || n > MaxCars {
		return fmt.Errorf("%w: %d cars, want %d-%d", ErrInvalidConfig, n, MinCars, MaxCars)
	}
	if b.FloorCount < 1 || b.FloorCount > MaxFloors {
		return fmt.Errorf("%w: %d floors, want 1-%d", ErrInvalidConfig, b.FloorCount, MaxFloors)
	}
	if b.TravelTimePerFloor <= 0 {
		return fmt.Errorf("%w: travel time per floor must be positive, got %v", ErrInvalidConfig, b.TravelTimePerFloor)
	}
	if b.DoorOpenCloseDuration <= 0 {
		return fmt.Errorf("%w: door duration must be positive, got %v", ErrInvalidConfig, b.DoorOpenCloseDuration)
	}

	seen := make(map[int]bool, len(b.Cars))
	for i, car := range b.Cars {
		if car.ID <= 0 {
			return fmt.Errorf("%w: car %d has non-positive id %d", ErrInvalidConfig, i, car.ID)
		}
		if seen[car.ID] {
			return fmt.Errorf("%w: duplicate car id %d", ErrInvalidConfig, car.ID)
		}
		seen[car.ID] = true
		if car.MaxWeight <= 0 {
			return fmt.Errorf("%w: car %d has non-positive max weight %d", ErrInvalidConfig, car.ID, car.MaxWeight)
		}
	}
	return nil
}
