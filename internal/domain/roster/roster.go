// Package roster determines a team's starting lineup under a standard
// roster template.
package roster

import (
	"sort"

	"github.com/commishtools/draftgrade/internal/domain/model"
)

// slot pairs a position with the number of starting spots it carries.
type slot struct {
	pos   model.Position
	count int
}

// defaultTemplate is the standard lineup: 1 QB, 2 RB, 2 WR, 1 TE, 1 DST,
// 1 K, plus a single FLEX slot.
var defaultTemplate = []slot{
	{model.QB, 1},
	{model.RB, 2},
	{model.WR, 2},
	{model.TE, 1},
	{model.DST, 1},
	{model.K, 1},
}

// flexEligible lists the positions that may fill the FLEX slot.
var flexEligible = map[model.Position]bool{
	model.RB: true,
	model.WR: true,
	model.TE: true,
}

// Analyzer selects starters from a team's picks.
type Analyzer struct {
	template []slot
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithTemplate overrides the starting-slot counts per position.
func WithTemplate(counts map[model.Position]int) Option {
	return func(a *Analyzer) {
		if len(counts) == 0 {
			return
		}
		template := make([]slot, 0, len(counts))
		for _, s := range defaultTemplate {
			if n, ok := counts[s.pos]; ok && n > 0 {
				template = append(template, slot{s.pos, n})
			}
		}
		a.template = template
	}
}

// NewAnalyzer creates a roster analyzer with configuration options.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{template: defaultTemplate}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Starters returns the picks filling starting slots: the top-N picks per
// templated position by projected points, plus at most one FLEX starter
// chosen from the remaining RB/WR/TE picks. Unfilled slots are simply left
// empty.
func (a *Analyzer) Starters(picks []model.NormalizedPick) []model.NormalizedPick {
	byPos := make(map[model.Position][]model.NormalizedPick)
	for _, p := range picks {
		byPos[p.Position] = append(byPos[p.Position], p)
	}
	for pos := range byPos {
		group := byPos[pos]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ProjectedPoints > group[j].ProjectedPoints
		})
	}

	starters := make([]model.NormalizedPick, 0, len(a.template)+1)
	taken := make(map[int]bool) // overall pick -> already a starter
	for _, s := range a.template {
		group := byPos[s.pos]
		for i := 0; i < s.count && i < len(group); i++ {
			starters = append(starters, group[i])
			taken[group[i].Overall] = true
		}
	}

	// FLEX: best remaining RB/WR/TE not already starting.
	var flex *model.NormalizedPick
	for _, p := range picks {
		if !flexEligible[p.Position] || taken[p.Overall] {
			continue
		}
		if flex == nil || p.ProjectedPoints > flex.ProjectedPoints {
			q := p
			flex = &q
		}
	}
	if flex != nil {
		starters = append(starters, *flex)
	}
	return starters
}

// StarterPoints sums the projected points of the selected starters.
func (a *Analyzer) StarterPoints(picks []model.NormalizedPick) float64 {
	var total float64
	for _, p := range a.Starters(picks) {
		total += p.ProjectedPoints
	}
	return total
}
