package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given a clean environment", t, func() {
		Convey("Defaults alone produce a valid configuration", func() {
			cfg, err := Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.PageSize, ShouldEqual, 20)
			So(cfg.MaxPages, ShouldEqual, 500)
			So(cfg.DefaultPeriod, ShouldEqual, "this-month")
			So(cfg.PollInterval(), ShouldEqual, 60*time.Second)
			So(cfg.UpstreamAPIKey, ShouldBeEmpty)
			So(cfg.Teams, ShouldContainKey, "alto-padrao")
			So(cfg.Teams, ShouldContainKey, "economico")
			So(cfg.Teams, ShouldContainKey, "mcmv")
		})
	})

	Convey("Environment variables override defaults", t, func() {
		t.Setenv("PLACAR_ADDR", ":7777")
		t.Setenv("PLACAR_UPSTREAM_API_KEY", "key-from-env")
		t.Setenv("PLACAR_LOG_LEVEL", "debug")

		cfg, err := Load(ctx)
		So(err, ShouldBeNil)
		So(cfg.Addr, ShouldEqual, ":7777")
		So(cfg.UpstreamAPIKey, ShouldEqual, "key-from-env")
		So(cfg.LogLevel, ShouldEqual, "debug")
		So(cfg.PageSize, ShouldEqual, 20)
	})

	Convey("A YAML file layers between defaults and env", t, func() {
		path := filepath.Join(t.TempDir(), "placar.yaml")
		content := "addr: \":6060\"\ndefault_period: today\nteams:\n  dupla:\n    - Ana Souza\n"
		So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)
		t.Setenv("PLACAR_CONFIG", path)
		t.Setenv("PLACAR_ADDR", ":5050")

		cfg, err := Load(ctx)
		So(err, ShouldBeNil)
		So(cfg.Addr, ShouldEqual, ":5050")
		So(cfg.DefaultPeriod, ShouldEqual, "today")
		So(cfg.Teams["dupla"], ShouldResemble, []string{"Ana Souza"})
	})

	Convey("A missing config file fails the load", t, func() {
		t.Setenv("PLACAR_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := Load(ctx)
		So(err, ShouldNotBeNil)
		So(errors.Is(err, ErrLoadConfig), ShouldBeTrue)
	})
}

func TestValidate(t *testing.T) {
	Convey("Given the validation rules", t, func() {
		Convey("The defaults validate", func() {
			So(New().validate(), ShouldBeNil)
		})

		Convey("An empty listen address is rejected", func() {
			cfg := New()
			cfg.Addr = ""
			So(errors.Is(cfg.validate(), ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Non-positive paging and polling values are rejected", func() {
			for _, mutate := range []func(*Config){
				func(c *Config) { c.PageSize = 0 },
				func(c *Config) { c.MaxPages = -1 },
				func(c *Config) { c.PollIntervalSeconds = 0 },
			} {
				cfg := New()
				mutate(cfg)
				So(errors.Is(cfg.validate(), ErrInvalidConfig), ShouldBeTrue)
			}
		})

		Convey("An API key without a base URL is rejected", func() {
			cfg := New()
			cfg.UpstreamAPIKey = "key"
			cfg.UpstreamBaseURL = ""
			So(errors.Is(cfg.validate(), ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
