package roster_test

import (
	"testing"

	"github.com/commishtools/draftgrade/internal/domain/model"
	"github.com/commishtools/draftgrade/internal/domain/roster"
	"github.com/smartystreets/goconvey/convey"
)

func pick(overall int, pos model.Position, points float64) model.NormalizedPick {
	return model.NormalizedPick{Overall: overall, Position: pos, ProjectedPoints: points}
}

func TestStarters(t *testing.T) {
	convey.Convey("Given a roster analyzer with the default template", t, func() {
		a := roster.NewAnalyzer()

		convey.Convey("When a team drafted more players than slots", func() {
			picks := []model.NormalizedPick{
				pick(1, model.RB, 250),
				pick(2, model.RB, 220),
				pick(3, model.RB, 200), // third RB, FLEX candidate
				pick(4, model.WR, 210),
				pick(5, model.WR, 190),
				pick(6, model.WR, 150), // third WR, weaker FLEX candidate
				pick(7, model.QB, 280),
				pick(8, model.QB, 230), // backup QB, not flex eligible
				pick(9, model.TE, 120),
				pick(10, model.DST, 90),
				pick(11, model.K, 110),
			}

			starters := a.Starters(picks)

			convey.Convey("Then the lineup fills every slot plus FLEX", func() {
				// 1 QB + 2 RB + 2 WR + 1 TE + 1 DST + 1 K + FLEX
				convey.So(len(starters), convey.ShouldEqual, 9)
			})

			convey.Convey("Then the FLEX is the best remaining RB/WR/TE", func() {
				overalls := make(map[int]bool)
				for _, s := range starters {
					overalls[s.Overall] = true
				}
				convey.So(overalls[3], convey.ShouldBeTrue)  // RB3 at 200 starts in FLEX
				convey.So(overalls[6], convey.ShouldBeFalse) // WR3 at 150 sits
				convey.So(overalls[8], convey.ShouldBeFalse) // backup QB never flexes
			})

			convey.Convey("Then starter points sum the selected lineup", func() {
				// 280 + 250 + 220 + 210 + 190 + 120 + 90 + 110 + 200 FLEX
				convey.So(a.StarterPoints(picks), convey.ShouldAlmostEqual, 1670, 0.001)
			})
		})

		convey.Convey("When a team failed to fill a position", func() {
			picks := []model.NormalizedPick{
				pick(1, model.RB, 250),
				pick(2, model.WR, 210),
			}

			starters := a.Starters(picks)

			convey.Convey("Then unfilled slots are left empty", func() {
				convey.So(len(starters), convey.ShouldEqual, 2)
			})

			convey.Convey("Then no pick starts twice", func() {
				seen := make(map[int]int)
				for _, s := range starters {
					seen[s.Overall]++
				}
				for _, n := range seen {
					convey.So(n, convey.ShouldEqual, 1)
				}
			})
		})

		convey.Convey("When a team has no picks", func() {
			convey.So(a.StarterPoints(nil), convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given a custom template", t, func() {
		a := roster.NewAnalyzer(roster.WithTemplate(map[model.Position]int{
			model.QB: 1,
			model.RB: 1,
		}))

		picks := []model.NormalizedPick{
			pick(1, model.QB, 280),
			pick(2, model.RB, 250),
			pick(3, model.RB, 220),
			pick(4, model.WR, 210),
		}

		convey.Convey("Then only templated slots plus FLEX start", func() {
			starters := a.Starters(picks)
			// QB + RB + FLEX (best remaining RB/WR)
			convey.So(len(starters), convey.ShouldEqual, 3)
		})
	})
}
