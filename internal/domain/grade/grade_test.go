package grade_test

import (
	"testing"
	"time"

	"github.com/commishtools/draftgrade/internal/domain/grade"
	"github.com/commishtools/draftgrade/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestLetter(t *testing.T) {
	convey.Convey("Given the rank-to-letter table", t, func() {
		cases := map[int]model.Letter{
			1: model.APlus, 2: model.A, 3: model.AMinus,
			4: model.BPlus, 5: model.B, 6: model.BMinus,
			7: model.CPlus, 8: model.C, 9: model.CMinus,
			10: model.DPlus, 11: model.D, 12: model.DMinus,
		}
		for rank, want := range cases {
			convey.So(grade.Letter(rank), convey.ShouldEqual, want)
		}

		convey.Convey("Then out-of-table ranks are an F", func() {
			convey.So(grade.Letter(13), convey.ShouldEqual, model.F)
			convey.So(grade.Letter(0), convey.ShouldEqual, model.F)
		})
	})
}

func TestPlayoffProbability(t *testing.T) {
	convey.Convey("Given the playoff odds buckets", t, func() {
		convey.So(grade.PlayoffProbability(1), convey.ShouldEqual, 0.95)
		convey.So(grade.PlayoffProbability(2), convey.ShouldEqual, 0.95)
		convey.So(grade.PlayoffProbability(3), convey.ShouldEqual, 0.80)
		convey.So(grade.PlayoffProbability(5), convey.ShouldEqual, 0.60)
		convey.So(grade.PlayoffProbability(8), convey.ShouldEqual, 0.35)
		convey.So(grade.PlayoffProbability(10), convey.ShouldEqual, 0.20)
		convey.So(grade.PlayoffProbability(12), convey.ShouldEqual, 0.05)
		convey.So(grade.PlayoffProbability(14), convey.ShouldEqual, 0.02)
	})
}

func valuePick(overall int, adp float64, name string) model.NormalizedPick {
	return model.NormalizedPick{Overall: overall, ADP: adp, HasADP: true, PlayerName: name}
}

func TestPickHighlights(t *testing.T) {
	convey.Convey("Given a mix of value and reach picks", t, func() {
		picks := []model.NormalizedPick{
			valuePick(30, 60, "steal1"),  // +30
			valuePick(40, 55, "steal2"),  // +15
			valuePick(50, 70, "steal3"),  // +20
			valuePick(60, 86, "steal4"),  // +26
			valuePick(10, 40, "steal5"),  // +30
			valuePick(20, 5, "reach1"),   // -15
			valuePick(35, 15, "reach2"),  // -20
			valuePick(12, 11, "neutral"), // -1
		}

		convey.Convey("When selecting best picks", func() {
			best := grade.BestPicks(picks)

			convey.Convey("Then at most three values are returned, best first", func() {
				convey.So(len(best), convey.ShouldEqual, 3)
				convey.So(best[0].Reach, convey.ShouldEqual, 30)
				convey.So(best[1].Reach, convey.ShouldEqual, 30)
				convey.So(best[2].Reach, convey.ShouldEqual, 26)
			})
		})

		convey.Convey("When selecting worst picks", func() {
			worst := grade.WorstPicks(picks)

			convey.Convey("Then only true reaches appear, most negative first", func() {
				convey.So(len(worst), convey.ShouldEqual, 2)
				convey.So(worst[0].Player, convey.ShouldEqual, "reach2")
				convey.So(worst[1].Player, convey.ShouldEqual, "reach1")
			})
		})
	})
}

func TestAnalyze(t *testing.T) {
	convey.Convey("Given a team's balance and picks", t, func() {
		balance := map[model.Position]model.PositionStrength{
			model.QB: {Grade: model.A},
			model.RB: {Grade: model.B},
			model.WR: {Grade: model.C},
			model.TE: {Grade: model.F},
		}

		convey.Convey("When the team found several steals", func() {
			picks := []model.NormalizedPick{
				valuePick(30, 60, "s1"),
				valuePick(40, 60, "s2"),
				valuePick(50, 80, "s3"),
			}

			a := grade.Analyze(2, balance, picks)

			convey.Convey("Then strengths mention elite and strong groups", func() {
				convey.So(a.Strengths, convey.ShouldContain, "Elite QB depth")
				convey.So(a.Strengths, convey.ShouldContain, "Strong RB group")
				convey.So(a.Strengths, convey.ShouldContain, "Excellent draft value with 3 steals")
			})

			convey.Convey("Then weaknesses flag the TE hole only", func() {
				convey.So(a.Weaknesses, convey.ShouldContain, "Weak TE depth")
				convey.So(len(a.Weaknesses), convey.ShouldEqual, 1)
			})

			convey.Convey("Then the summary matches the rank bucket", func() {
				convey.So(a.Summary, convey.ShouldContainSubstring, "championship contender")
			})
		})

		convey.Convey("When the team reached repeatedly", func() {
			picks := []model.NormalizedPick{
				valuePick(30, 10, "r1"),
				valuePick(40, 20, "r2"),
				valuePick(50, 30, "r3"),
			}

			a := grade.Analyze(11, balance, picks)

			convey.Convey("Then the reach line appears", func() {
				convey.So(a.Weaknesses, convey.ShouldContain, "Reached on 3 picks")
			})

			convey.Convey("Then the summary matches a rebuilding rank", func() {
				convey.So(a.Summary, convey.ShouldContainSubstring, "rebuilding")
			})
		})

		convey.Convey("Then each rank bucket has its own summary", func() {
			mid := grade.Analyze(5, balance, nil)
			convey.So(mid.Summary, convey.ShouldContainSubstring, "playoff hunt")

			bubble := grade.Analyze(8, balance, nil)
			convey.So(bubble.Summary, convey.ShouldContainSubstring, "bubble")

			waiver := grade.Analyze(13, balance, nil)
			convey.So(waiver.Summary, convey.ShouldContainSubstring, "waiver wire warrior")
		})
	})
}

func TestSynthesize(t *testing.T) {
	convey.Convey("Given a fully ranked team projection", t, func() {
		now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
		tp := model.TeamProjection{
			User:          "user_1",
			StarterPoints: 1480.5,
			Balance: map[model.Position]model.PositionStrength{
				model.QB: {Value: 50, Count: 1, Grade: model.A},
			},
			Rank:               1,
			ProjectedWins:      10.5,
			PlayoffProbability: 0.95,
		}

		g := grade.Synthesize("league_1", tp, now)

		convey.Convey("Then the grade carries all projection fields", func() {
			convey.So(g.LeagueID, convey.ShouldEqual, "league_1")
			convey.So(g.UserID, convey.ShouldEqual, "user_1")
			convey.So(g.Grade, convey.ShouldEqual, model.APlus)
			convey.So(g.ProjectedRank, convey.ShouldEqual, 1)
			convey.So(g.ProjectedPoints, convey.ShouldEqual, 1480.5)
			convey.So(g.ProjectedWins, convey.ShouldEqual, 10.5)
			convey.So(g.PlayoffProbability, convey.ShouldEqual, 0.95)
			convey.So(g.PositionGrades[model.QB], convey.ShouldEqual, model.A)
			convey.So(g.CalculatedAt, convey.ShouldResemble, now)
		})
	})
}
