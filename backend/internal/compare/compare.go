// Package compare computes set differences between two record collections.
package compare

import "ghostcheck/backend/internal/extract"

// Result partitions the identities of two collections
type Result struct {
	OnlyInA extract.NamedCollection `json:"only_in_a" yaml:"only_in_a"`
	OnlyInB extract.NamedCollection `json:"only_in_b" yaml:"only_in_b"`
	Both    extract.NamedCollection `json:"both" yaml:"both"`
}

// Compare splits a and b by username. OnlyInA and Both follow a's order and
// hold a's copies; OnlyInB follows b's order.
func Compare(a, b extract.NamedCollection) Result {
	inA := identitySet(a)
	inB := identitySet(b)

	res := Result{
		OnlyInA: extract.NamedCollection{Name: a.Name + " - " + b.Name, Records: []extract.UserRecord{}},
		OnlyInB: extract.NamedCollection{Name: b.Name + " - " + a.Name, Records: []extract.UserRecord{}},
		Both:    extract.NamedCollection{Name: a.Name + " & " + b.Name, Records: []extract.UserRecord{}},
	}

	for _, rec := range a.Records {
		if _, ok := inB[rec.Username]; ok {
			res.Both.Records = append(res.Both.Records, rec)
		} else {
			res.OnlyInA.Records = append(res.OnlyInA.Records, rec)
		}
	}
	for _, rec := range b.Records {
		if _, ok := inA[rec.Username]; !ok {
			res.OnlyInB.Records = append(res.OnlyInB.Records, rec)
		}
	}

	return res
}

func identitySet(c extract.NamedCollection) map[string]struct{} {
	set := make(map[string]struct{}, len(c.Records))
	for _, rec := range c.Records {
		set[rec.Username] = struct{}{}
	}
	return set
}
