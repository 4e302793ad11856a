package theme

import (
	"slices"
	"strings"
	"testing"
)

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()

	sky, ok := r.Get("Sky")
	if !ok {
		t.Fatal("Get(Sky) not found")
	}
	if sky.Seeds != [2]string{"#38bdf8", "#3b82f6"} {
		t.Errorf("sky seeds = %v", sky.Seeds)
	}

	names := r.Names()
	if !slices.IsSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	if len(names) != len(Builtin()) {
		t.Errorf("Names() = %d entries, want %d", len(names), len(Builtin()))
	}
	if _, ok := r.Get(DefaultName); !ok {
		t.Errorf("default theme %q missing", DefaultName)
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(Theme{Name: " Dusk ", Seeds: [2]string{"F97316", "hsl(240, 100%, 50%)"}}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	dusk, err := r.Lookup("dusk")
	if err != nil {
		t.Fatalf("Lookup(dusk) error = %v", err)
	}
	if dusk.Seeds != [2]string{"#f97316", "#0000ff"} {
		t.Errorf("dusk seeds = %v", dusk.Seeds)
	}

	if err := r.Register(Theme{Name: "", Seeds: [2]string{"#fff", "#000"}}); err == nil {
		t.Error("Register() accepted an empty name")
	}
	if err := r.Register(Theme{Name: "bad", Seeds: [2]string{"#fff", "nope"}}); err == nil {
		t.Error("Register() accepted an invalid seed")
	}
}

func TestRegistryLookupUnknown(t *testing.T) {
	_, err := NewRegistry().Lookup("missing")
	if err == nil || !strings.Contains(err.Error(), "sky") {
		t.Errorf("Lookup(missing) error = %v, want available names listed", err)
	}
}

func TestNormaliseSeeds(t *testing.T) {
	tests := []struct {
		name    string
		picked  []string
		want    [2]string
		wantErr bool
	}{
		{name: "single duplicated", picked: []string{"#38bdf8"}, want: [2]string{"#38bdf8", "#38bdf8"}},
		{name: "pair", picked: []string{"#fff", "000"}, want: [2]string{"#ffffff", "#000000"}},
		{name: "three keeps ends", picked: []string{"#f00", "#0f0", "#00f"}, want: [2]string{"#ff0000", "#0000ff"}},
		{name: "css notation", picked: []string{"rgb(255, 0, 0)"}, want: [2]string{"#ff0000", "#ff0000"}},
		{name: "none", picked: nil, wantErr: true},
		{name: "four", picked: []string{"#fff", "#fff", "#fff", "#fff"}, wantErr: true},
		{name: "invalid", picked: []string{"#12"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormaliseSeeds(tt.picked)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormaliseSeeds() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormaliseSeeds() = %v, want %v", got, tt.want)
			}
		})
	}
}
