package schema_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/marquee/internal/domain/schema"
)

func TestSchema(t *testing.T) {
	Convey("Given an ordered feature list", t, func() {
		features := []string{
			schema.FeatureBudget,
			schema.FeatureRuntime,
			schema.FeatureFranchise,
			"genre_Action",
			"season_Holiday_Season",
		}
		s := schema.New(features)

		Convey("Then order and width are preserved exactly", func() {
			So(s.Features(), ShouldResemble, features)
			So(s.Len(), ShouldEqual, 5)
		})

		Convey("Then Index resolves known names and rejects unknown ones", func() {
			i, ok := s.Index("genre_Action")
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 3)

			_, ok = s.Index("genre_Western")
			So(ok, ShouldBeFalse)
		})

		Convey("Then mutating the returned slice never affects the schema", func() {
			got := s.Features()
			got[0] = "tampered"
			So(s.Features()[0], ShouldEqual, schema.FeatureBudget)
		})

		Convey("Then the hash is stable and order-sensitive", func() {
			So(schema.New(features).Hash(), ShouldEqual, s.Hash())

			reordered := []string{features[1], features[0], features[2], features[3], features[4]}
			So(schema.New(reordered).Hash(), ShouldNotEqual, s.Hash())
		})
	})
}

func TestSchemaArtifact(t *testing.T) {
	Convey("Given a schema saved to disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "schema.json")
		s := schema.New([]string{schema.FeatureBudget, "genre_Action"})
		So(s.Save(path), ShouldBeNil)

		Convey("When loaded back", func() {
			loaded, err := schema.Load(path)
			So(err, ShouldBeNil)

			Convey("Then features and hash round-trip", func() {
				So(loaded.Features(), ShouldResemble, s.Features())
				So(loaded.Hash(), ShouldEqual, s.Hash())
			})
		})

		Convey("When the artifact's hash was tampered with", func() {
			broken := filepath.Join(dir, "broken.json")
			So(os.WriteFile(broken, []byte(`{"version":1,"hash":"deadbeef","features":["budget_adj"]}`), 0o644), ShouldBeNil)

			Convey("Then loading fails with a hash mismatch", func() {
				_, err := schema.Load(broken)
				So(errors.Is(err, schema.ErrHashMismatch), ShouldBeTrue)
			})
		})

		Convey("When the file is missing or not JSON", func() {
			_, missErr := schema.Load(filepath.Join(dir, "nope.json"))
			garbage := filepath.Join(dir, "garbage.json")
			So(os.WriteFile(garbage, []byte("not json"), 0o644), ShouldBeNil)
			_, junkErr := schema.Load(garbage)

			Convey("Then both are unreadable-artifact failures", func() {
				So(errors.Is(missErr, schema.ErrArtifactUnreadable), ShouldBeTrue)
				So(errors.Is(junkErr, schema.ErrArtifactUnreadable), ShouldBeTrue)
			})
		})

		Convey("When the artifact version is unsupported", func() {
			future := filepath.Join(dir, "future.json")
			So(os.WriteFile(future, []byte(`{"version":99,"hash":"","features":[]}`), 0o644), ShouldBeNil)

			Convey("Then loading fails", func() {
				_, err := schema.Load(future)
				So(errors.Is(err, schema.ErrArtifactUnreadable), ShouldBeTrue)
			})
		})
	})
}
