package compare

import "ghostcheck/backend/internal/extract"

const (
	GhostsName  = "ghosts"
	FansName    = "fans"
	MutualsName = "mutuals"
)

// Relationships is the follow-graph reading of a comparison
type Relationships struct {
	Ghosts  extract.NamedCollection `json:"ghosts" yaml:"ghosts"` // you follow them, they don't follow back
	Fans    extract.NamedCollection `json:"fans" yaml:"fans"`     // they follow you, you don't follow back
	Mutuals extract.NamedCollection `json:"mutuals" yaml:"mutuals"`
}

// Analyze compares following against followers
func Analyze(following, followers extract.NamedCollection) Relationships {
	res := Compare(following, followers)

	res.OnlyInA.Name = GhostsName
	res.OnlyInB.Name = FansName
	res.Both.Name = MutualsName

	return Relationships{
		Ghosts:  res.OnlyInA,
		Fans:    res.OnlyInB,
		Mutuals: res.Both,
	}
}

// Collections returns the three partitions in display order
func (r Relationships) Collections() []extract.NamedCollection {
	return []extract.NamedCollection{r.Ghosts, r.Fans, r.Mutuals}
}
