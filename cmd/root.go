package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/discovery"
	"github.com/spigell/career-auditor/internal/fetch"
	"github.com/spigell/career-auditor/internal/listing"
	"github.com/spigell/career-auditor/internal/logger"
)

const (
	app       = "career-auditor"
	envPrefix = "CAREER_AUDITOR"
)

type Config struct {
	Profile    *listing.UserProfile `mapstructure:"profile"`
	Fetch      fetch.Config         `mapstructure:"fetch"`
	Cache      fetch.CacheConfig    `mapstructure:"cache"`
	Discovery  discovery.Config     `mapstructure:"discovery"`
	Feed       FeedConfig           `mapstructure:"feed"`
	Pinned     PinnedConfig         `mapstructure:"pinned"`
	Admin      AdminConfig          `mapstructure:"admin"`
	Watch      WatchConfig          `mapstructure:"watch"`
	TablesFile string               `mapstructure:"tables-file"`
}

type FeedConfig struct {
	Category         string   `mapstructure:"category"`
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
	DismissedFile    string   `mapstructure:"dismissed-file"`
}

type PinnedConfig struct {
	File string `mapstructure:"file"`
}

type AdminConfig struct {
	Listen        string `mapstructure:"listen"`
	SecretOne     string `mapstructure:"secret-one"`
	SecretTwo     string `mapstructure:"secret-two"`
	SecretOneFile string `mapstructure:"secret-one-file"`
	SecretTwoFile string `mapstructure:"secret-two-file"`
}

type WatchConfig struct {
	Schedule string `mapstructure:"schedule"`
	Query    string `mapstructure:"query"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-auditor finds fresh job and internship listings and audits postings against your profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-auditor.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("category", "c", "", "listing category: internships, jobs or ats")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("feed.category", rootCmd.PersistentFlags().Lookup("category"))

	setDefaults()
}

func setDefaults() {
	d := discovery.DefaultConfig()

	viper.SetDefault("fetch.timeout", 8*time.Second)
	viper.SetDefault("fetch.gateways", fetch.DefaultGatewayNames())
	viper.SetDefault("fetch.requests-per-second", 2.0)
	viper.SetDefault("fetch.burst", 2)
	viper.SetDefault("fetch.user-agent", "")
	viper.SetDefault("cache.redis-url", "")
	viper.SetDefault("cache.ttl", time.Hour)
	viper.SetDefault("discovery.delay", d.Delay)
	viper.SetDefault("discovery.batch-delay", d.BatchDelay)
	viper.SetDefault("discovery.intel-delay", d.IntelDelay)
	viper.SetDefault("discovery.targeted-batch", d.TargetedBatch)
	viper.SetDefault("feed.category", string(listing.CategoryInternships))
	viper.SetDefault("feed.exclude-companies", []string{})
	viper.SetDefault("feed.dismissed-file", "")
	viper.SetDefault("pinned.file", "pinned-listings.json")
	viper.SetDefault("admin.listen", "127.0.0.1:8080")
	viper.SetDefault("admin.secret-one", "")
	viper.SetDefault("admin.secret-two", "")
	viper.SetDefault("admin.secret-one-file", "")
	viper.SetDefault("admin.secret-two-file", "")
	viper.SetDefault("watch.schedule", "@every 6h")
	viper.SetDefault("watch.query", "")
	viper.SetDefault("tables-file", "")
	viper.SetDefault("profile.name", "")
	viper.SetDefault("profile.cgpa", 0.0)
	viper.SetDefault("profile.city", "")
	viper.SetDefault("profile.major", "")
	viper.SetDefault("profile.year", "")
	viper.SetDefault("profile.resume-file", "")
}

func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// An explicit config must exist, the default one is optional.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}
