package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/marquee/internal/adapters/repository"
	"github.com/okian/marquee/internal/app"
	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/internal/domain/predict"
	"github.com/okian/marquee/internal/domain/schema"
	"github.com/okian/marquee/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	_ = logger.SetLevelString("error")
	os.Exit(m.Run())
}

// writeArtifacts trains a tiny model against a fixed schema and writes
// all three serving artifacts into dir.
func writeArtifacts(t *testing.T, dir string) (schemaPath, modelPath, rankingsPath string) {
	t.Helper()

	sch := schema.New([]string{
		schema.FeatureBudget,
		schema.FeatureRuntime,
		schema.FeatureFranchise,
		schema.FeatureDirectorScore,
		schema.FeatureActorScore,
		"genre_Action",
		"season_Summer_Blockbuster",
	})
	schemaPath = filepath.Join(dir, "schema.json")
	if err := sch.Save(schemaPath); err != nil {
		t.Fatal(err)
	}

	var x [][]float64
	var y []float64
	for i := 1; i <= 40; i++ {
		budget := float64(i) * 5e6
		x = append(x, []float64{budget, 100, 1, 50, 30, 1, 0})
		y = append(y, budget*2)
	}
	m, err := predict.Train(context.Background(), x, y,
		predict.WithEpochs(200), predict.WithSchemaHash(sch.Hash()))
	if err != nil {
		t.Fatal(err)
	}
	modelPath = filepath.Join(dir, "model.json")
	if err := m.Save(modelPath); err != nil {
		t.Fatal(err)
	}

	store := repository.NewRankingStore()
	store.SetKind(repository.KindDirector, []model.TalentScore{
		{Name: "Dana Petrov", MeanRevenue: 300, Appearances: 4},
	})
	store.SetKind(repository.KindActor, []model.TalentScore{
		{Name: "Elias Stone", MeanRevenue: 250, Appearances: 6},
	})
	rankingsPath = filepath.Join(dir, "rankings.json")
	if err := store.Save(rankingsPath); err != nil {
		t.Fatal(err)
	}
	return schemaPath, modelPath, rankingsPath
}

func TestServiceStart(t *testing.T) {
	ctx := context.Background()

	Convey("Given complete artifacts on disk", t, func() {
		dir := t.TempDir()
		schemaPath, modelPath, rankingsPath := writeArtifacts(t, dir)

		Convey("Then the service starts and serves the schema", func() {
			svc := app.New(app.WithArtifactPaths(schemaPath, modelPath, rankingsPath))
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.SchemaFeatures(), ShouldHaveLength, 7)
			So(svc.SchemaHash(), ShouldNotBeEmpty)
			svc.Stop()
		})

		Convey("Then a missing schema is fatal", func() {
			svc := app.New(app.WithArtifactPaths(filepath.Join(dir, "absent.json"), modelPath, rankingsPath))
			So(svc.Start(ctx), ShouldNotBeNil)
		})

		Convey("Then a model trained against a different schema is rejected", func() {
			other := schema.New([]string{"budget_adj", "runtime"})
			otherPath := filepath.Join(dir, "other_schema.json")
			So(other.Save(otherPath), ShouldBeNil)

			svc := app.New(app.WithArtifactPaths(otherPath, modelPath, rankingsPath))
			err := svc.Start(ctx)
			So(errors.Is(err, predict.ErrSchemaMismatch), ShouldBeTrue)
		})

		Convey("Then missing rankings degrade instead of failing startup", func() {
			svc := app.New(app.WithArtifactPaths(schemaPath, modelPath, filepath.Join(dir, "absent.json")))
			So(svc.Start(ctx), ShouldBeNil)

			_, err := svc.TopTalent(ctx, repository.KindDirector, 5)
			So(errors.Is(err, repository.ErrUnknownKind), ShouldBeTrue)
		})
	})
}

func TestServicePredict(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := app.New(app.WithArtifactPaths(writeArtifacts(t, t.TempDir())))
		So(svc.Start(ctx), ShouldBeNil)

		in := model.LiveInput{
			BudgetMillions: 80,
			Runtime:        100,
			IsFranchise:    true,
			Season:         "Summer Blockbuster",
			PrimaryGenre:   "Action",
			DirectorScore:  50,
			ActorScore:     30,
		}

		Convey("When a prediction is requested", func() {
			p, err := svc.Predict(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then it carries a request id, a positive revenue and the schema hash", func() {
				So(p.RequestID, ShouldNotBeEmpty)
				So(p.Revenue, ShouldBeGreaterThan, 0)
				So(p.RevenueMillions, ShouldAlmostEqual, p.Revenue/1e6, 1e-9)
				So(p.SchemaHash, ShouldEqual, svc.SchemaHash())
			})

			Convey("Then the stats counter advances", func() {
				stats := svc.GetStats()
				So(stats["predictions"], ShouldEqual, int64(1))
			})
		})

		Convey("When the input names categories the schema never saw", func() {
			in.Season = "Monsoon"
			in.PrimaryGenre = "Mockumentary"

			Convey("Then the prediction still succeeds", func() {
				p, err := svc.Predict(ctx, in)
				So(err, ShouldBeNil)
				So(p.Revenue, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When identical inputs are predicted twice", func() {
			a, err := svc.Predict(ctx, in)
			So(err, ShouldBeNil)
			b, err := svc.Predict(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then the revenue is deterministic", func() {
				So(b.Revenue, ShouldEqual, a.Revenue)
				So(b.RequestID, ShouldNotEqual, a.RequestID)
			})
		})
	})
}

func TestServiceTalent(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service with rankings", t, func() {
		svc := app.New(app.WithArtifactPaths(writeArtifacts(t, t.TempDir())))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Then TopTalent serves the ranked list", func() {
			top, err := svc.TopTalent(ctx, repository.KindDirector, 10)
			So(err, ShouldBeNil)
			So(top, ShouldHaveLength, 1)
			So(top[0].Name, ShouldEqual, "Dana Petrov")
		})

		Convey("Then TalentRank resolves exact names", func() {
			e, err := svc.TalentRank(ctx, repository.KindActor, "Elias Stone")
			So(err, ShouldBeNil)
			So(e.Rank, ShouldEqual, 1)
		})

		Convey("Then GetStats reports the artifact shape", func() {
			stats := svc.GetStats()
			So(stats["schemaFeatures"], ShouldEqual, 7)
			So(stats["directors"], ShouldEqual, 1)
			So(stats["actors"], ShouldEqual, 1)
		})
	})
}
