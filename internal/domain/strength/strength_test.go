package strength_test

import (
	"testing"

	"github.com/commishtools/draftgrade/internal/domain/model"
	"github.com/commishtools/draftgrade/internal/domain/strength"
	"github.com/smartystreets/goconvey/convey"
)

func TestGradeValue(t *testing.T) {
	convey.Convey("Given the positional threshold tables", t, func() {
		convey.Convey("Then QB grades follow the inclusive lower bounds", func() {
			convey.So(strength.GradeValue(model.QB, 40), convey.ShouldEqual, model.A)
			convey.So(strength.GradeValue(model.QB, 39.999), convey.ShouldEqual, model.B)
			convey.So(strength.GradeValue(model.QB, 20), convey.ShouldEqual, model.B)
			convey.So(strength.GradeValue(model.QB, 10), convey.ShouldEqual, model.C)
			convey.So(strength.GradeValue(model.QB, 0), convey.ShouldEqual, model.D)
			convey.So(strength.GradeValue(model.QB, -0.001), convey.ShouldEqual, model.F)
		})

		convey.Convey("Then RB grades use the RB table", func() {
			convey.So(strength.GradeValue(model.RB, 120), convey.ShouldEqual, model.A)
			convey.So(strength.GradeValue(model.RB, 80), convey.ShouldEqual, model.B)
			convey.So(strength.GradeValue(model.RB, 40), convey.ShouldEqual, model.C)
			convey.So(strength.GradeValue(model.RB, 0), convey.ShouldEqual, model.D)
			convey.So(strength.GradeValue(model.RB, -1), convey.ShouldEqual, model.F)
		})

		convey.Convey("Then WR and TE tables hold at their A bounds", func() {
			convey.So(strength.GradeValue(model.WR, 100), convey.ShouldEqual, model.A)
			convey.So(strength.GradeValue(model.TE, 30), convey.ShouldEqual, model.A)
		})

		convey.Convey("Then ungraded positions always come back F", func() {
			convey.So(strength.GradeValue(model.K, 1000), convey.ShouldEqual, model.F)
			convey.So(strength.GradeValue(model.DST, 1000), convey.ShouldEqual, model.F)
		})
	})
}

func TestAnalyze(t *testing.T) {
	convey.Convey("Given a team's picks", t, func() {
		picks := []model.NormalizedPick{
			{Position: model.QB, ReplacementValue: 45},
			{Position: model.RB, ReplacementValue: 70},
			{Position: model.RB, ReplacementValue: 60},
			{Position: model.WR, ReplacementValue: 20},
			{Position: model.K, ReplacementValue: 50}, // not graded
		}

		balance := strength.Analyze(picks)

		convey.Convey("Then each graded position is summed and graded", func() {
			convey.So(balance[model.QB].Value, convey.ShouldEqual, 45)
			convey.So(balance[model.QB].Grade, convey.ShouldEqual, model.A)
			convey.So(balance[model.RB].Value, convey.ShouldEqual, 130)
			convey.So(balance[model.RB].Count, convey.ShouldEqual, 2)
			convey.So(balance[model.RB].Grade, convey.ShouldEqual, model.A)
			convey.So(balance[model.WR].Grade, convey.ShouldEqual, model.D)
		})

		convey.Convey("Then positions with no picks still appear as holes", func() {
			te, ok := balance[model.TE]
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(te.Count, convey.ShouldEqual, 0)
			convey.So(te.Grade, convey.ShouldEqual, model.D)
		})

		convey.Convey("Then kickers and defenses are not graded", func() {
			_, ok := balance[model.K]
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}
