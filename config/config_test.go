package config_test

import (
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/duet/api"
	"github.com/sarchlab/duet/config"
	"github.com/sarchlab/duet/core"
	"github.com/sarchlab/duet/program"
)

var _ = Describe("Config", func() {
	It("should have valid defaults", func() {
		cfg := config.Default()

		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.MaxTurns).To(Equal(api.DefaultMaxTurns))
		Expect(cfg.IDRegister).To(Equal("p"))
		Expect(cfg.Level()).To(Equal(slog.LevelInfo))
	})

	It("should load every key", func() {
		cfg, err := config.Load("testdata/full.yaml")

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.Config{
			MaxTurns:   500,
			MaxSteps:   2000,
			MaxQueued:  300,
			Quantum:    64,
			IDRegister: "q",
			LogLevel:   "debug",
			TraceFile:  "duet.json.log",
		}))
		Expect(cfg.Level()).To(Equal(slog.LevelDebug))
	})

	It("should keep defaults for absent keys", func() {
		cfg, err := config.Load("testdata/partial.yaml")

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.MaxTurns).To(Equal(42))
		Expect(cfg.MaxSteps).To(Equal(api.DefaultMaxSteps))
		Expect(cfg.IDRegister).To(Equal(core.DefaultIDRegister))
	})

	It("should reject unknown keys", func() {
		_, err := config.Load("testdata/unknown.yaml")

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("turns"))
	})

	It("should reject invalid values", func() {
		_, err := config.Load("testdata/invalid.yaml")

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("max_steps"))
	})

	It("should only accept a letter as the id register", func() {
		for _, name := range []string{"1", "-", "ab", " "} {
			cfg := config.Default()
			cfg.IDRegister = name

			Expect(cfg.Validate()).NotTo(Succeed(), name)
		}

		for _, name := range []string{"p", "Q", ""} {
			cfg := config.Default()
			cfg.IDRegister = name

			Expect(cfg.Validate()).To(Succeed(), name)
		}
	})

	It("should fail on a missing file", func() {
		_, err := config.Load("testdata/missing.yaml")

		Expect(err).To(HaveOccurred())
	})

	Context("when reading the environment", func() {
		var saved string

		BeforeEach(func() {
			saved = os.Getenv(config.EnvConfigPath)
		})

		AfterEach(func() {
			os.Setenv(config.EnvConfigPath, saved)
		})

		It("should fall back to defaults", func() {
			os.Setenv(config.EnvConfigPath, "")

			cfg, err := config.LoadFromEnv()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(config.Default()))
		})

		It("should load the named file", func() {
			os.Setenv(config.EnvConfigPath, "testdata/partial.yaml")

			cfg, err := config.LoadFromEnv()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.MaxTurns).To(Equal(42))
		})
	})

	It("should parse log levels", func() {
		level, err := config.ParseLevel("trace")
		Expect(err).NotTo(HaveOccurred())
		Expect(level).To(Equal(core.LevelTrace))

		level, err = config.ParseLevel("WARN")
		Expect(err).NotTo(HaveOccurred())
		Expect(level).To(Equal(slog.LevelWarn))

		_, err = config.ParseLevel("loud")
		Expect(err).To(HaveOccurred())
	})

	It("should build a driver with the settings", func() {
		cfg := config.Default()
		cfg.MaxTurns = 5
		cfg.Quantum = 10

		d := cfg.DriverBuilder().Build("Driver")
		_, err := d.RunPair(program.MustParseString("snd 1\njgz 1 -1"))

		Expect(err).To(MatchError(api.ErrDidNotConverge))
		Expect(err.Error()).To(ContainSubstring("5 turns"))
	})
})
