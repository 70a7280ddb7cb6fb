package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const buildingJSON = `{
  "timeToElevate": 2,
  "timeOpenCloseDoor": 1.5,
  "houseLevels": 5,
  "lifts": [
    {"id": 1, "company": "Otis", "maxWeight": 400},
    {"id": 2, "company": "Kone", "maxWeight": 630}
  ]
}`

const buildingYAML = `timeToElevate: 2
timeOpenCloseDoor: 1.5
houseLevels: 5
lifts:
  - id: 1
    company: Otis
    maxWeight: 400
  - id: 2
    company: Kone
    maxWeight: 630
`

func validBuilding() Building {
	return Building{
		TravelTimePerFloor:    2,
		DoorOpenCloseDuration: 1.5,
		FloorCount:            5,
		Cars: []CarConfig{
			{ID: 1, Owner: "Otis", MaxWeight: 400},
			{ID: 2, Owner: "Kone", MaxWeight: 630},
		},
	}
}

func checkBuilding(t *testing.T, got Building) {
	t.Helper()
	want := validBuilding()
	if got.TravelTimePerFloor != want.TravelTimePerFloor ||
		got.DoorOpenCloseDuration != want.DoorOpenCloseDuration ||
		got.FloorCount != want.FloorCount ||
		len(got.Cars) != len(want.Cars) {
		t.Fatalf("building = %+v, want %+v", got, want)
	}
	for i := range want.Cars {
		if got.Cars[i] != want.Cars[i] {
			t.Errorf("car %d = %+v, want %+v", i, got.Cars[i], want.Cars[i])
		}
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDurations(t *testing.T) {
	b := validBuilding()
	if b.TravelPerFloor() != 2*time.Second {
		t.Errorf("TravelPerFloor = %v", b.TravelPerFloor())
	}
	if b.DoorCycle() != 1500*time.Millisecond {
		t.Errorf("DoorCycle = %v", b.DoorCycle())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(b *Building)
		ok     bool
	}{
		{"valid", func(b *Building) {}, true},
		{"four cars", func(b *Building) {
			b.Cars = append(b.Cars, CarConfig{ID: 3, MaxWeight: 1}, CarConfig{ID: 4, MaxWeight: 1})
		}, true},
		{"twenty floors", func(b *Building) { b.FloorCount = 20 }, true},
		{"one car", func(b *Building) { b.Cars = b.Cars[:1] }, false},
		{"five cars", func(b *Building) {
			for id := 3; id <= 5; id++ {
				b.Cars = append(b.Cars, CarConfig{ID: id, MaxWeight: 1})
			}
		}, false},
		{"zero floors", func(b *Building) { b.FloorCount = 0 }, false},
		{"21 floors", func(b *Building) { b.FloorCount = 21 }, false},
		{"zero travel", func(b *Building) { b.TravelTimePerFloor = 0 }, false},
		{"negative door", func(b *Building) { b.DoorOpenCloseDuration = -1 }, false},
		{"duplicate id", func(b *Building) { b.Cars[1].ID = 1 }, false},
		{"zero id", func(b *Building) { b.Cars[0].ID = 0 }, false},
		{"zero weight", func(b *Building) { b.Cars[0].MaxWeight = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBuilding()
			tt.modify(&b)
			err := b.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadJSONFile(t *testing.T) {
	b, err := Load(writeFile(t, "building.json", buildingJSON))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	checkBuilding(t, b)
}

func TestLoadYAMLFile(t *testing.T) {
	for _, name := range []string{"building.yaml", "building.YML"} {
		b, err := Load(writeFile(t, name, buildingYAML))
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		checkBuilding(t, b)
	}
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/building.json":
			fmt.Fprint(w, buildingJSON)
		case "/building.yaml":
			fmt.Fprint(w, buildingYAML)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	for _, p := range []string{"/building.json", "/building.yaml?v=2"} {
		b, err := Load(srv.URL + p)
		if err != nil {
			t.Fatalf("Load(%s): %v", p, err)
		}
		checkBuilding(t, b)
	}

	if _, err := Load(srv.URL + "/missing"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Load(missing) err = %v, want 404 status error", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}
	if _, err := Load(writeFile(t, "bad.json", "{not json")); err == nil {
		t.Error("malformed JSON loaded without error")
	}
	oneCar := `{"timeToElevate": 1, "timeOpenCloseDoor": 1, "houseLevels": 3, "lifts": [{"id": 1, "company": "x", "maxWeight": 1}]}`
	if _, err := Load(writeFile(t, "one.json", oneCar)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("one car err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadSettings(t *testing.T) {
	t.Setenv(EnvLogFile, "from-env.log")
	t.Setenv(EnvConfig, "env.yaml")
	envFile := writeFile(t, ".env", "LIFTSIM_CONFIG=https://example.com/building.json\nLIFTSIM_LOG_LEVEL=debug\n")

	s, err := LoadSettings(envFile)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.ConfigSource != "https://example.com/building.json" {
		t.Errorf("ConfigSource = %q, file should win over environment", s.ConfigSource)
	}
	if s.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", s.LogLevel)
	}
	if s.LogFile != "from-env.log" {
		t.Errorf("LogFile = %q, want environment fallback", s.LogFile)
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFile, "")
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.ConfigSource != DefaultSource || s.LogLevel != slog.LevelInfo || s.LogFile != "" {
		t.Errorf("defaults = %+v", s)
	}
}

func TestLoadSettingsBadLevel(t *testing.T) {
	envFile := writeFile(t, ".env", "LIFTSIM_LOG_LEVEL=loud\n")
	if _, err := LoadSettings(envFile); err == nil {
		t.Error("bad log level accepted")
	}
}
