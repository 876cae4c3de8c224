package bench

import (
	"fmt"
	"strings"
)

// Scenario is one timed benchmark operation. Setup runs untimed on a fresh
// instance, then Run is timed.
type Scenario struct {
	Name        string
	Description string
	Setup       func(*Store)
	Run         func(*Store) error
}

func dispatch(name string) func(*Store) error {
	return func(s *Store) error { return s.Dispatch(name) }
}

func run1k(s *Store) { s.Run() }

// Scenarios lists the standard scenarios in run order.
var Scenarios = []Scenario{
	{
		Name:        "create",
		Description: "create 1,000 rows",
		Run:         dispatch(ActionRun),
	},
	{
		Name:        "replace",
		Description: "replace all 1,000 rows",
		Setup:       run1k,
		Run:         dispatch(ActionRun),
	},
	{
		Name:        "update",
		Description: "partial update of every 10th row",
		Setup:       run1k,
		Run:         dispatch(ActionUpdate),
	},
	{
		Name:        "select",
		Description: "select a row",
		Setup:       run1k,
		Run: func(s *Store) error {
			s.Select(s.Rows()[1].ID)
			return nil
		},
	},
	{
		Name:        "swap",
		Description: "swap rows 2 and 999",
		Setup:       run1k,
		Run:         dispatch(ActionSwapRows),
	},
	{
		Name:        "remove",
		Description: "remove one row",
		Setup:       run1k,
		Run: func(s *Store) error {
			s.Remove(s.Rows()[1].ID)
			return nil
		},
	},
	{
		Name:        "create-many",
		Description: "create 10,000 rows",
		Run:         dispatch(ActionRunLots),
	},
	{
		Name:        "append",
		Description: "append 1,000 rows to 1,000",
		Setup:       run1k,
		Run:         dispatch(ActionAdd),
	},
	{
		Name:        "clear",
		Description: "clear 1,000 rows",
		Setup:       run1k,
		Run:         dispatch(ActionClear),
	},
}

// Lookup returns the named scenarios in the given order. No names selects
// all of them.
func Lookup(names ...string) ([]Scenario, error) {
	if len(names) == 0 {
		return append([]Scenario(nil), Scenarios...), nil
	}
	out := make([]Scenario, 0, len(names))
	for _, name := range names {
		found := false
		for _, sc := range Scenarios {
			if sc.Name == name {
				out = append(out, sc)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("bench: unknown scenario %q (have %s)", name, strings.Join(ScenarioNames(), ", "))
		}
	}
	return out, nil
}

// ScenarioNames returns the names of the standard scenarios.
func ScenarioNames() []string {
	names := make([]string, len(Scenarios))
	for i, sc := range Scenarios {
		names[i] = sc.Name
	}
	return names
}
