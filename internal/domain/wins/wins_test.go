package wins_test

import (
	"testing"

	"github.com/commishtools/draftgrade/internal/domain/wins"
	"github.com/smartystreets/goconvey/convey"
)

func TestWinProbability(t *testing.T) {
	convey.Convey("Given the logistic matchup model", t, func() {
		convey.Convey("Then evenly matched teams split", func() {
			convey.So(wins.WinProbability(1500, 1500), convey.ShouldAlmostEqual, 0.5, 0.0001)
		})

		convey.Convey("Then a 20-point edge is roughly 73 percent", func() {
			p := wins.WinProbability(1520, 1500)
			convey.So(p, convey.ShouldAlmostEqual, 0.7311, 0.001)
		})

		convey.Convey("Then probabilities are symmetric", func() {
			p := wins.WinProbability(1520, 1500)
			q := wins.WinProbability(1500, 1520)
			convey.So(p+q, convey.ShouldAlmostEqual, 1.0, 0.0001)
		})

		convey.Convey("Then a huge edge approaches certainty", func() {
			convey.So(wins.WinProbability(2000, 1000), convey.ShouldBeGreaterThan, 0.999)
		})
	})
}

func TestProject(t *testing.T) {
	convey.Convey("Given a league of starter point totals", t, func() {
		convey.Convey("When every team projects identically", func() {
			points := map[string]float64{"a": 1500, "b": 1500, "c": 1500}

			convey.Convey("Then everyone projects a .500 season", func() {
				convey.So(wins.Project("a", points), convey.ShouldEqual, 7.0)
			})
		})

		convey.Convey("When one team towers over the rest", func() {
			points := map[string]float64{"best": 2000, "b": 1000, "c": 1000}

			convey.Convey("Then it projects close to a full season of wins", func() {
				w := wins.Project("best", points)
				convey.So(w, convey.ShouldBeGreaterThan, 13.9)
				convey.So(w, convey.ShouldBeLessThanOrEqualTo, 14)
			})
		})

		convey.Convey("When the league has a single team", func() {
			points := map[string]float64{"only": 1500}

			convey.Convey("Then it projects zero wins", func() {
				convey.So(wins.Project("only", points), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the user is unknown", func() {
			convey.So(wins.Project("ghost", map[string]float64{"a": 1}), convey.ShouldEqual, 0)
		})

		convey.Convey("Then projections are rounded to one decimal", func() {
			points := map[string]float64{"a": 1510, "b": 1500}
			w := wins.Project("a", points)
			convey.So(w*10, convey.ShouldAlmostEqual, float64(int(w*10+0.5)), 0.0001)
		})
	})
}
