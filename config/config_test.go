package config

import (
	"os"
	"path/filepath"
	"testing"

	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ConfigTestSuite))

type ConfigTestSuite struct{}

func Test(t *testing.T) { gc.TestingT(t) }

func (s *ConfigTestSuite) TestDefaults(c *gc.C) {
	cfg, err := Load("")
	c.Assert(err, gc.IsNil)
	c.Assert(cfg.ListenAddr, gc.Equals, ":8080")
	c.Assert(cfg.Index.Backend, gc.Equals, BackendMemory)
	c.Assert(cfg.Setups.Backend, gc.Equals, BackendMemory)
	c.Assert(cfg.Elasticsearch.PITKeepAlive, gc.Equals, "1m")
	c.Assert(cfg.MongoDB.Database, gc.Equals, "facetsearch")
	c.Assert(cfg.Facets, gc.DeepEquals, FacetsConfig{MaxTermCandidates: 1024, Workers: 1})
	c.Assert(cfg.Log.Level, gc.Equals, "info")
}

func (s *ConfigTestSuite) TestFileAndEnvOverrides(c *gc.C) {
	path := filepath.Join(c.MkDir(), "facetd.yaml")
	yaml := []byte(`
listen_addr: ":9090"
index:
  backend: elasticsearch
elasticsearch:
  addresses:
    - http://es-1:9200
    - http://es-2:9200
facets:
  workers: 4
`)
	c.Assert(os.WriteFile(path, yaml, 0o600), gc.IsNil)
	c.Assert(os.Setenv("FACETD_FACETS_MAX_TERM_CANDIDATES", "50"), gc.IsNil)
	defer func() { _ = os.Unsetenv("FACETD_FACETS_MAX_TERM_CANDIDATES") }()

	cfg, err := Load(path)
	c.Assert(err, gc.IsNil)
	c.Assert(cfg.ListenAddr, gc.Equals, ":9090")
	c.Assert(cfg.Index.Backend, gc.Equals, BackendElasticsearch)
	c.Assert(cfg.Elasticsearch.Addresses, gc.DeepEquals, []string{"http://es-1:9200", "http://es-2:9200"})
	c.Assert(cfg.Facets, gc.DeepEquals, FacetsConfig{MaxTermCandidates: 50, Workers: 4})
}

func (s *ConfigTestSuite) TestValidation(c *gc.C) {
	c.Assert(os.Setenv("FACETD_SETUPS_BACKEND", "mongodb"), gc.IsNil)
	c.Assert(os.Setenv("FACETD_INDEX_BACKEND", "solr"), gc.IsNil)
	defer func() {
		_ = os.Unsetenv("FACETD_SETUPS_BACKEND")
		_ = os.Unsetenv("FACETD_INDEX_BACKEND")
	}()

	_, err := Load("")
	c.Assert(err, gc.ErrorMatches, `(?s).*unsupported index.backend "solr".*mongodb.uri must be set.*`)
}

func (s *ConfigTestSuite) TestMissingFile(c *gc.C) {
	_, err := Load(filepath.Join(c.MkDir(), "missing.yaml"))
	c.Assert(err, gc.ErrorMatches, "read config .*")
}
