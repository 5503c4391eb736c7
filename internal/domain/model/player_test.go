package model_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/sundayfc/matchday/internal/domain/model"
)

func TestParseTags(t *testing.T) {
	convey.Convey("Given comma-separated tag strings", t, func() {
		convey.Convey("When parsing a mixed-case list with spaces", func() {
			tags := model.ParseTags(" playmaker, GK ,def")

			convey.Convey("Then tags are upper-cased and trimmed", func() {
				convey.So(tags, convey.ShouldResemble, []model.Tag{model.TagPlaymaker, model.TagGK, model.TagDef})
			})
		})

		convey.Convey("When parsing an empty string", func() {
			convey.So(model.ParseTags(""), convey.ShouldBeNil)
			convey.So(model.ParseTags("  ,  ,"), convey.ShouldBeNil)
		})

		convey.Convey("When formatting back to the persisted form", func() {
			s := model.FormatTags([]model.Tag{model.TagRunner, model.TagAtk})
			convey.So(s, convey.ShouldEqual, "RUNNER,ATK")
		})
	})
}

func TestNormalizeTags(t *testing.T) {
	convey.Convey("Given a tag list with duplicates and casing noise", t, func() {
		tags := model.NormalizeTags([]model.Tag{"gk", "GK", " def ", ""})

		convey.Convey("Then duplicates and empties are dropped", func() {
			convey.So(tags, convey.ShouldResemble, []model.Tag{model.TagGK, model.TagDef})
		})
	})
}

func TestPlayerHasTag(t *testing.T) {
	convey.Convey("Given a tagged player", t, func() {
		p := model.Player{Name: "Alice", Rating: model.DefaultRating, Tags: []model.Tag{model.TagGK, model.TagDef}}

		convey.So(p.HasTag(model.TagGK), convey.ShouldBeTrue)
		convey.So(p.HasTag(model.TagDef), convey.ShouldBeTrue)
		convey.So(p.HasTag(model.TagRunner), convey.ShouldBeFalse)
	})

	convey.Convey("Given an untagged player", t, func() {
		p := model.Player{Name: "Bob"}
		convey.So(p.HasTag(model.TagGK), convey.ShouldBeFalse)
	})
}

func TestCountTag(t *testing.T) {
	convey.Convey("Given a pool with mixed tags", t, func() {
		pool := []model.Player{
			{Name: "a", Tags: []model.Tag{model.TagDef}},
			{Name: "b", Tags: []model.Tag{model.TagDef, model.TagAtk}},
			{Name: "c"},
		}

		convey.So(model.CountTag(pool, model.TagDef), convey.ShouldEqual, 2)
		convey.So(model.CountTag(pool, model.TagAtk), convey.ShouldEqual, 1)
		convey.So(model.CountTag(pool, model.TagGK), convey.ShouldEqual, 0)
	})
}

func TestDefaultTagWeights(t *testing.T) {
	convey.Convey("Given the default tag weights", t, func() {
		w := model.DefaultTagWeights()

		convey.Convey("Then they match the league defaults", func() {
			convey.So(w[model.TagPlaymaker], convey.ShouldEqual, 100)
			convey.So(w[model.TagRunner], convey.ShouldEqual, 80)
			convey.So(w[model.TagDef], convey.ShouldEqual, 40)
			convey.So(w[model.TagAtk], convey.ShouldEqual, 20)
		})

		convey.Convey("Then GK carries no weight", func() {
			_, ok := w[model.TagGK]
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Then mutating the returned map does not leak", func() {
			w[model.TagPlaymaker] = 1
			convey.So(model.DefaultTagWeights()[model.TagPlaymaker], convey.ShouldEqual, 100)
		})
	})
}
