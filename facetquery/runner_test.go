package facetquery

import (
	"context"

	"github.com/brandonshearin/facetsearch/facet"
	"github.com/brandonshearin/facetsearch/facetquery/mocks"
	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	"github.com/brandonshearin/facetsearch/textindexer/index"
	"github.com/golang/mock/gomock"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(RunnerTestSuite))

type RunnerTestSuite struct {
	ctrl    *gomock.Controller
	setups  *mocks.MockSetupFinder
	indexes *mocks.MockIndexResolver
	indexer *mocks.MockIndexer
	runner  *Runner
}

func (s *RunnerTestSuite) SetUpTest(c *gc.C) {
	s.ctrl = gomock.NewController(c)
	s.setups = mocks.NewMockSetupFinder(s.ctrl)
	s.indexes = mocks.NewMockIndexResolver(s.ctrl)
	s.indexer = mocks.NewMockIndexer(s.ctrl)

	runner, err := NewRunner(Config{Setups: s.setups, Indexes: s.indexes})
	c.Assert(err, gc.IsNil)
	s.runner = runner
}

func (s *RunnerTestSuite) TearDownTest(c *gc.C) {
	s.ctrl.Finish()
}

func (s *RunnerTestSuite) TestConfigValidation(c *gc.C) {
	_, err := NewRunner(Config{})
	c.Assert(err, gc.ErrorMatches, "(?s).*setup finder has not been provided.*index resolver has not been provided.*")
}

func (s *RunnerTestSuite) TestMissingConfigurationTouchesNoIndex(c *gc.C) {
	s.setups.EXPECT().Find(gomock.Any(), "facets/missing").
		Return(nil, xerrors.Errorf("find setup: %w", setup.ErrNotFound))

	res, err := s.runner.GetFacets(context.TODO(), "products", "", "facets/missing")
	c.Assert(res, gc.IsNil)
	c.Assert(xerrors.Is(err, ErrConfigurationNotFound), gc.Equals, true)
}

func (s *RunnerTestSuite) TestSetupLookupFailure(c *gc.C) {
	boom := xerrors.New("store unavailable")
	s.setups.EXPECT().Find(gomock.Any(), "facets/products").Return(nil, boom)

	_, err := s.runner.GetFacets(context.TODO(), "products", "", "facets/products")
	c.Assert(xerrors.Is(err, boom), gc.Equals, true)
	c.Assert(xerrors.Is(err, ErrConfigurationNotFound), gc.Equals, false)
}

func (s *RunnerTestSuite) TestIndexNotFound(c *gc.C) {
	s.expectSetup(&facet.Setup{Facets: []facet.Definition{{Name: "Color"}}})
	s.indexes.EXPECT().Index("products").Return(nil, xerrors.Errorf("index %q: %w", "products", index.ErrIndexNotFound))

	_, err := s.runner.GetFacets(context.TODO(), "products", "", "facets/products")
	c.Assert(xerrors.Is(err, index.ErrIndexNotFound), gc.Equals, true)
}

func (s *RunnerTestSuite) TestSnapshotReleasedOnSuccess(c *gc.C) {
	snap := &fakeSnapshot{docs: colorDocs("Red", "Red", "Blue")}
	s.expectSetup(&facet.Setup{Facets: []facet.Definition{{Name: "Color"}}})
	s.expectSnapshot(snap)

	res, err := s.runner.GetFacets(context.TODO(), "products", "", "facets/products")
	c.Assert(err, gc.IsNil)
	c.Assert(res, gc.DeepEquals, facet.Result{
		{Name: "Color", Values: []facet.Value{{Range: "Blue", Count: 1}, {Range: "Red", Count: 2}}},
	})
	c.Assert(snap.isClosed(), gc.Equals, true)
}

func (s *RunnerTestSuite) TestSnapshotReleasedOnFailure(c *gc.C) {
	snap := &fakeSnapshot{docs: colorDocs("Red")}
	s.expectSetup(&facet.Setup{Facets: []facet.Definition{{Name: "Color"}, {Mode: facet.Mode(9), Name: "Size"}}})
	s.expectSnapshot(snap)

	res, err := s.runner.GetFacets(context.TODO(), "products", "", "facets/products")
	c.Assert(res, gc.IsNil)
	var modeErr *facet.UnsupportedModeError
	c.Assert(xerrors.As(err, &modeErr), gc.Equals, true)
	c.Assert(snap.isClosed(), gc.Equals, true)
}

func (s *RunnerTestSuite) TestReleaseFailureIsReported(c *gc.C) {
	releaseErr := xerrors.New("pit already expired")
	snap := &fakeSnapshot{docs: colorDocs("Red"), closeErr: releaseErr}
	s.expectSetup(&facet.Setup{Facets: []facet.Definition{{Name: "Color"}}})
	s.expectSnapshot(snap)

	res, err := s.runner.GetFacets(context.TODO(), "products", "", "facets/products")
	c.Assert(res, gc.IsNil)
	c.Assert(xerrors.Is(err, releaseErr), gc.Equals, true)
}

func (s *RunnerTestSuite) TestReleaseFailureIsAppendedToAggregationError(c *gc.C) {
	releaseErr := xerrors.New("pit already expired")
	countErr := xerrors.New("shard failure")
	snap := &fakeSnapshot{docs: colorDocs("Red"), countErr: countErr, closeErr: releaseErr}
	s.expectSetup(&facet.Setup{Facets: []facet.Definition{{Name: "Color"}}})
	s.expectSnapshot(snap)

	_, err := s.runner.GetFacets(context.TODO(), "products", "", "facets/products")
	c.Assert(xerrors.Is(err, countErr), gc.Equals, true)
	c.Assert(xerrors.Is(err, releaseErr), gc.Equals, true)
}

func (s *RunnerTestSuite) TestSnapshotAcquireFailure(c *gc.C) {
	boom := xerrors.New("cluster unreachable")
	s.expectSetup(&facet.Setup{Facets: []facet.Definition{{Name: "Color"}}})
	s.indexes.EXPECT().Index("products").Return(s.indexer, nil)
	s.indexer.EXPECT().AcquireSnapshot(gomock.Any()).Return(nil, boom)

	_, err := s.runner.GetFacets(context.TODO(), "products", "", "facets/products")
	c.Assert(xerrors.Is(err, boom), gc.Equals, true)
}

func (s *RunnerTestSuite) expectSetup(fs *facet.Setup) {
	s.setups.EXPECT().Find(gomock.Any(), "facets/products").
		Return(&setup.Record{ID: "facets/products", Setup: fs}, nil)
}

func (s *RunnerTestSuite) expectSnapshot(snap index.Snapshot) {
	s.indexes.EXPECT().Index("products").Return(s.indexer, nil)
	s.indexer.EXPECT().AcquireSnapshot(gomock.Any()).Return(snap, nil)
}
