package dispatcher

import "liftsim/src/types"

// nearestIdle returns the slot of the idle car closest to floor.
//   - only cars with IsMoving == false are considered
//   - ties go to the car that comes first in fleet order (strict < scan)
//   - returns -1 if every car is moving
func nearestIdle(cars []types.Car, floor int) int {
	best := -1
	bestDist := 0
	for i, car := range cars {
		if car.IsMoving {
			continue
		}
		dist := abs(car.CurrentFloor - floor)
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
