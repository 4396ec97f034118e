package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/marquee/internal/adapters/corpus"
	"github.com/okian/marquee/internal/adapters/repository"
	"github.com/okian/marquee/internal/domain/predict"
	"github.com/okian/marquee/internal/domain/schema"
	"github.com/okian/marquee/internal/pipeline"
	"github.com/okian/marquee/internal/testcorpus"
)

func TestPipelineRun(t *testing.T) {
	Convey("Given a synthetic raw corpus on disk", t, func() {
		dir := t.TempDir()
		rawPath := filepath.Join(dir, "data", "raw.csv")
		schemaPath := filepath.Join(dir, "artifacts", "schema.json")
		modelPath := filepath.Join(dir, "artifacts", "model.json")
		rankingsPath := filepath.Join(dir, "artifacts", "rankings.json")

		rows := testcorpus.New(1).Movies(300, 2000, 2015)
		p := pipeline.New(
			pipeline.WithRawCorpusPath(rawPath),
			pipeline.WithArtifactPaths(schemaPath, modelPath, rankingsPath),
			pipeline.WithInflation(map[int]float64{2000: 1.8, 2010: 1.3}),
			pipeline.WithTraining(50, 0.05),
		)
		So(writeRaw(rawPath, rows), ShouldBeNil)

		Convey("When the pipeline runs end to end", func() {
			So(p.Run(context.Background()), ShouldBeNil)

			Convey("Then the schema artifact loads and verifies", func() {
				sch, err := schema.Load(schemaPath)
				So(err, ShouldBeNil)
				So(sch.Len(), ShouldBeGreaterThan, 5)
			})

			Convey("Then the model artifact matches the schema", func() {
				sch, err := schema.Load(schemaPath)
				So(err, ShouldBeNil)
				m, err := predict.Load(modelPath)
				So(err, ShouldBeNil)
				So(m.SchemaHash(), ShouldEqual, sch.Hash())
				So(m.Width(), ShouldEqual, sch.Len())
			})

			Convey("Then the rankings artifact serves both kinds", func() {
				store, err := repository.Load(rankingsPath)
				So(err, ShouldBeNil)
				So(store.Count(context.Background(), repository.KindDirector), ShouldBeGreaterThan, 0)
				So(store.Count(context.Background(), repository.KindActor), ShouldBeGreaterThan, 0)
			})

			Convey("Then a second run regenerates an identical schema", func() {
				first, err := schema.Load(schemaPath)
				So(err, ShouldBeNil)

				again := pipeline.New(
					pipeline.WithRawCorpusPath(rawPath),
					pipeline.WithArtifactPaths(schemaPath, modelPath, rankingsPath),
					pipeline.WithInflation(map[int]float64{2000: 1.8, 2010: 1.3}),
					pipeline.WithTraining(50, 0.05),
				)
				So(again.Run(context.Background()), ShouldBeNil)

				second, err := schema.Load(schemaPath)
				So(err, ShouldBeNil)
				So(second.Hash(), ShouldEqual, first.Hash())
			})
		})

		Convey("When the raw corpus is missing", func() {
			missing := pipeline.New(
				pipeline.WithRawCorpusPath(filepath.Join(dir, "data", "absent.csv")),
				pipeline.WithArtifactPaths(schemaPath, modelPath, rankingsPath),
			)
			So(missing.Run(context.Background()), ShouldNotBeNil)
		})

		Convey("When every row is provider garbage", func() {
			junk := rows[:5]
			for i := range junk {
				junk[i].Budget = 0
			}
			junkPath := filepath.Join(dir, "data", "junk.csv")
			So(writeRaw(junkPath, junk), ShouldBeNil)

			empty := pipeline.New(
				pipeline.WithRawCorpusPath(junkPath),
				pipeline.WithArtifactPaths(schemaPath, modelPath, rankingsPath),
			)
			So(empty.Run(context.Background()), ShouldNotBeNil)
		})
	})
}

// writeRaw creates the parent directory and writes rows as the raw CSV.
func writeRaw(path string, rows []corpus.RawMovie) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return corpus.Write(path, rows)
}
