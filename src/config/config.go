package config

import "time"

const (
	MinCars       = 2
	MaxCars       = 4
	MaxFloors     = 20
	StartFloor    = 1
	FetchTimeout  = 5 * time.Second
	DefaultSource = "building.yaml"
	DefaultEnv    = ".env"
)

// CarConfig describes one elevator car. MaxWeight is advisory and never enforced.
type CarConfig struct {
	ID        int    `json:"id" yaml:"id"`
	Owner     string `json:"company" yaml:"company"`
	MaxWeight int    `json:"maxWeight" yaml:"maxWeight"`
}

// Building is the immutable building configuration. Timings are in seconds.
type Building struct {
	TravelTimePerFloor    float64     `json:"timeToElevate" yaml:"timeToElevate"`
	DoorOpenCloseDuration float64     `json:"timeOpenCloseDoor" yaml:"timeOpenCloseDoor"`
	FloorCount            int         `json:"houseLevels" yaml:"houseLevels"`
	Cars                  []CarConfig `json:"lifts" yaml:"lifts"`
}

func (b Building) TravelPerFloor() time.Duration {
	return seconds(b.TravelTimePerFloor)
}

func (b Building) DoorCycle() time.Duration {
	return seconds(b.DoorOpenCloseDuration)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
