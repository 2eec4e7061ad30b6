package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/lumin/internal/game/world"
)

// Validate checks a level for problems that would break the simulation:
// unknown stage kinds, duplicate object ids and negative sizes.
// Every problem found is reported in the joined error.
func Validate(l Level) error {
	var errs []error

	if l.Kind != KindStandard && l.Kind != KindEncounter {
		errs = append(errs, fmt.Errorf("level %d: unknown kind %q", l.ID, l.Kind))
	}
	if l.Width < 0 {
		errs = append(errs, fmt.Errorf("level %d: negative width %v", l.ID, l.Width))
	}

	seen := make(map[int]bool, len(l.Objects))
	for _, obj := range l.Objects {
		id := world.ID(obj)
		if seen[id] {
			errs = append(errs, fmt.Errorf("level %d: duplicate object id %d", l.ID, id))
		}
		seen[id] = true

		if box := world.Box(obj); box.W < 0 || box.H < 0 {
			errs = append(errs, fmt.Errorf("level %d: object %d has negative size %vx%v", l.ID, id, box.W, box.H))
		}
	}

	return errors.Join(errs...)
}

// Warnings lists links that do not resolve. They are not fatal: an
// unresolved link is a no-op at runtime.
func Warnings(l Level) []string {
	ids := make(map[int]bool, len(l.Objects))
	for _, obj := range l.Objects {
		ids[world.ID(obj)] = true
	}

	var warnings []string
	for _, obj := range l.Objects {
		target := 0
		switch v := obj.(type) {
		case *world.PressurePlate:
			target = v.TargetID
		case *world.Teleporter:
			target = v.TargetID
		}
		if target != 0 && !ids[target] {
			warnings = append(warnings, fmt.Sprintf("level %d: %s %d targets missing object %d", l.ID, obj.Kind(), world.ID(obj), target))
		}
	}
	return warnings
}
