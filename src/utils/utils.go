package utils

import (
	"fmt"
	"strings"

	"liftsim/src/types"
)

// FormatCar renders a car as "Car1(Acme)@3", with a trailing "*" while it is moving.
func FormatCar(car types.Car) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Car%d", car.ID)
	if car.Owner != "" {
		fmt.Fprintf(&b, "(%s)", car.Owner)
	}
	fmt.Fprintf(&b, "@%d", car.CurrentFloor)
	if car.IsMoving {
		b.WriteString("*")
	}
	return b.String()
}

// FormatFleet joins FormatCar for each car, in fleet order.
func FormatFleet(cars []types.Car) string {
	parts := make([]string, len(cars))
	for i, car := range cars {
		parts[i] = FormatCar(car)
	}
	return strings.Join(parts, " | ")
}
