package projection_test

import (
	"context"
	"testing"

	"github.com/commishtools/draftgrade/internal/domain/model"
	"github.com/commishtools/draftgrade/internal/domain/projection"
	"github.com/smartystreets/goconvey/convey"
)

func TestMockProjector(t *testing.T) {
	convey.Convey("Given a mock projector", t, func() {
		ctx := context.Background()

		convey.Convey("When projecting early picks", func() {
			p := projection.NewMockProjector()

			convey.Convey("Then the top three picks are running backs", func() {
				for overall := 1; overall <= 3; overall++ {
					res, err := p.Project(ctx, 1, overall, overall)
					convey.So(err, convey.ShouldBeNil)
					convey.So(res.Position, convey.ShouldEqual, model.RB)
				}
			})

			convey.Convey("Then picks seven through nine are wide receivers", func() {
				for overall := 7; overall <= 9; overall++ {
					res, err := p.Project(ctx, 1, overall, overall)
					convey.So(err, convey.ShouldBeNil)
					convey.So(res.Position, convey.ShouldEqual, model.WR)
				}
			})

			convey.Convey("Then picks four through six are RB or WR", func() {
				for overall := 4; overall <= 6; overall++ {
					res, err := p.Project(ctx, 1, overall, overall)
					convey.So(err, convey.ShouldBeNil)
					convey.So(res.Position, convey.ShouldBeIn, model.RB, model.WR)
				}
			})

			convey.Convey("Then picks ten through twelve are WR or QB", func() {
				for overall := 10; overall <= 12; overall++ {
					res, err := p.Project(ctx, 1, overall, overall)
					convey.So(err, convey.ShouldBeNil)
					convey.So(res.Position, convey.ShouldBeIn, model.WR, model.QB)
				}
			})

			convey.Convey("Then later picks always land on a valid position", func() {
				for overall := 13; overall <= 60; overall++ {
					res, err := p.Project(ctx, overall/12+1, overall%12+1, overall)
					convey.So(err, convey.ShouldBeNil)
					convey.So(res.Position.Valid(), convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When projecting points", func() {
			p := projection.NewMockProjector()

			convey.Convey("Then points stay within the model bounds", func() {
				res, err := p.Project(ctx, 1, 1, 1)
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Points, convey.ShouldBeLessThanOrEqualTo, 300-2-10+20)
				convey.So(res.Points, convey.ShouldBeGreaterThanOrEqualTo, 300-2-10-20)
			})

			convey.Convey("Then very late picks bottom out at the floor", func() {
				res, err := p.Project(ctx, 30, 12, 360)
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Points, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When seeded identically", func() {
			a := projection.NewMockProjector(projection.WithSeed(7))
			b := projection.NewMockProjector(projection.WithSeed(7))

			convey.Convey("Then two projectors produce identical runs", func() {
				for overall := 1; overall <= 48; overall++ {
					round := (overall-1)/12 + 1
					slot := (overall-1)%12 + 1
					ra, errA := a.Project(ctx, round, slot, overall)
					rb, errB := b.Project(ctx, round, slot, overall)
					convey.So(errA, convey.ShouldBeNil)
					convey.So(errB, convey.ShouldBeNil)
					convey.So(ra, convey.ShouldResemble, rb)
				}
			})
		})

		convey.Convey("When the context is cancelled", func() {
			p := projection.NewMockProjector()
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			convey.Convey("Then projection fails", func() {
				_, err := p.Project(cancelled, 1, 1, 1)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestReplacementLevel(t *testing.T) {
	convey.Convey("Given the replacement level table", t, func() {
		convey.So(projection.ReplacementLevel(model.QB), convey.ShouldEqual, 180)
		convey.So(projection.ReplacementLevel(model.RB), convey.ShouldEqual, 80)
		convey.So(projection.ReplacementLevel(model.WR), convey.ShouldEqual, 90)
		convey.So(projection.ReplacementLevel(model.TE), convey.ShouldEqual, 60)
		convey.So(projection.ReplacementLevel(model.DST), convey.ShouldEqual, 50)
		convey.So(projection.ReplacementLevel(model.K), convey.ShouldEqual, 100)

		convey.Convey("Then unknown positions fall back to 50", func() {
			convey.So(projection.ReplacementLevel(model.Position("LB")), convey.ShouldEqual, 50)
		})
	})
}
