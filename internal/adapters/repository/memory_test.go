package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/commishtools/draftgrade/internal/adapters/repository"
	"github.com/commishtools/draftgrade/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func sampleGrades(leagueID string) []model.DraftGrade {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	return []model.DraftGrade{
		{LeagueID: leagueID, UserID: "bob", Grade: model.A, ProjectedRank: 2, CalculatedAt: now},
		{LeagueID: leagueID, UserID: "alice", Grade: model.APlus, ProjectedRank: 1, CalculatedAt: now},
		{LeagueID: leagueID, UserID: "carol", Grade: model.AMinus, ProjectedRank: 3, CalculatedAt: now},
	}
}

func TestMemoryStoreGrades(t *testing.T) {
	convey.Convey("Given an empty in-memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()

		convey.Convey("When a league batch is saved", func() {
			ok, err := store.SaveAll(ctx, "league_1", sampleGrades("league_1"))

			convey.Convey("Then the write succeeds", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(store.Count(ctx), convey.ShouldEqual, 3)
			})

			convey.Convey("Then the league lists grades by projected rank", func() {
				grades, err := store.League(ctx, "league_1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(grades), convey.ShouldEqual, 3)
				convey.So(grades[0].UserID, convey.ShouldEqual, "alice")
				convey.So(grades[1].UserID, convey.ShouldEqual, "bob")
				convey.So(grades[2].UserID, convey.ShouldEqual, "carol")
			})

			convey.Convey("Then single-member lookups resolve", func() {
				g, err := store.Grade(ctx, "league_1", "bob")
				convey.So(err, convey.ShouldBeNil)
				convey.So(g.Grade, convey.ShouldEqual, model.A)
			})

			convey.Convey("When the league is saved a second time", func() {
				ok, err := store.SaveAll(ctx, "league_1", sampleGrades("league_1"))

				convey.Convey("Then the batch is a no-op", func() {
					convey.So(err, convey.ShouldBeNil)
					convey.So(ok, convey.ShouldBeFalse)
					convey.So(store.Count(ctx), convey.ShouldEqual, 3)
				})
			})

			convey.Convey("When the league is cleared", func() {
				convey.So(store.Clear(ctx, "league_1"), convey.ShouldBeNil)

				convey.Convey("Then its grades are gone", func() {
					grades, err := store.League(ctx, "league_1")
					convey.So(err, convey.ShouldBeNil)
					convey.So(len(grades), convey.ShouldEqual, 0)
					convey.So(store.Count(ctx), convey.ShouldEqual, 0)
				})

				convey.Convey("Then a fresh batch is accepted again", func() {
					ok, err := store.SaveAll(ctx, "league_1", sampleGrades("league_1"))
					convey.So(err, convey.ShouldBeNil)
					convey.So(ok, convey.ShouldBeTrue)
				})
			})
		})

		convey.Convey("When looking up a grade that was never written", func() {
			_, err := store.Grade(ctx, "league_x", "nobody")

			convey.Convey("Then the store reports not found", func() {
				convey.So(err, convey.ShouldEqual, repository.ErrNotFound)
			})
		})

		convey.Convey("Then leagues are isolated from each other", func() {
			_, err := store.SaveAll(ctx, "league_a", sampleGrades("league_a"))
			convey.So(err, convey.ShouldBeNil)

			ok, err := store.SaveAll(ctx, "league_b", sampleGrades("league_b"))
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(store.Count(ctx), convey.ShouldEqual, 6)
		})
	})
}

func TestMemoryStoreMembers(t *testing.T) {
	convey.Convey("Given an in-memory member store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()

		convey.Convey("When mappings are registered", func() {
			err := store.PutMembers(ctx, "league_1", map[string]string{
				"ext_1": "alice",
				"ext_2": "bob",
			})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then known ids resolve", func() {
				user, ok := store.Resolve(ctx, "league_1", "ext_1")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(user, convey.ShouldEqual, "alice")
			})

			convey.Convey("Then unknown ids do not", func() {
				_, ok := store.Resolve(ctx, "league_1", "ext_9")
				convey.So(ok, convey.ShouldBeFalse)
			})

			convey.Convey("Then mappings are scoped to the league", func() {
				_, ok := store.Resolve(ctx, "league_2", "ext_1")
				convey.So(ok, convey.ShouldBeFalse)
			})

			convey.Convey("When a mapping is replaced", func() {
				err := store.PutMembers(ctx, "league_1", map[string]string{"ext_1": "alicia"})
				convey.So(err, convey.ShouldBeNil)

				convey.Convey("Then the new handle wins and old ones survive", func() {
					user, ok := store.Resolve(ctx, "league_1", "ext_1")
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(user, convey.ShouldEqual, "alicia")

					user, ok = store.Resolve(ctx, "league_1", "ext_2")
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(user, convey.ShouldEqual, "bob")
				})
			})
		})
	})
}
