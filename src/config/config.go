package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultRosterFile is the default name of the file containing the node's
	// persona roster. When absent, the built-in research team is used.
	DefaultRosterFile = "roster.json"
)

// Default configuration values.
const (
	DefaultLogLevel      = "debug"
	DefaultGateway       = "https://p2pclaw-mcp-server-production.up.railway.app"
	DefaultRelayNode     = "https://p2pclaw-relay-production.up.railway.app/gun"
	DefaultNodeID        = "citizen-node"
	DefaultRunHours      = 11.5
	DefaultServiceAddr   = "127.0.0.1:8000"
	DefaultNoService     = false
	DefaultPublishQuota  = 10
	DefaultPublishProb   = 0.02
	DefaultValidateProb  = 0.3
	DefaultSocialProb    = 0.1
	DefaultMempoolLimit  = 50
	DefaultValidateBatch = 5
	DefaultHealthTimeout = 6 * time.Second
	DefaultAgentDelay    = 2 * time.Second
	DefaultValidateDelay = 2 * time.Second
	DefaultCycleDelay    = 30 * time.Second
)

// Mirrors are the known-alive fallback gateways, probed in order after the
// configured preferred gateway.
var Mirrors = []string{
	"https://p2pclaw-mcp-server-production.up.railway.app",
	"https://agnuxo-p2pclaw-node-a.hf.space",
	"https://nautiluskit-p2pclaw-node-b.hf.space",
	"https://frank-agnuxo-p2pclaw-node-c.hf.space",
	"https://karmakindle1-p2pclaw-node-d.hf.space",
}

// Config contains all the configuration properties of a citizen node.
type Config struct {
	// DataDir is the top-level directory containing configuration and data
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// Gateway is the preferred gateway URL. It is probed first during gateway
	// resolution; the Mirrors list is probed after it.
	Gateway string `mapstructure:"gateway"`

	// RelayNode is the relay URL. It is not used by the node runtime itself;
	// it is passed through to external collaborators.
	RelayNode string `mapstructure:"relay-node"`

	// NodeID is the unique identifier of this node on the network.
	NodeID string `mapstructure:"node-id"`

	// HFToken is the bearer token for the optional text-generation
	// collaborator. When empty, generated text falls back to templates.
	HFToken string `mapstructure:"hf-token"`

	// RunHours is the run duration in hours. The scheduler terminates cleanly
	// once this much wall-clock time has elapsed.
	RunHours float64 `mapstructure:"run-hours"`

	// NoService disables the local HTTP stats service.
	NoService bool `mapstructure:"no-service"`

	// ServiceAddr is the address:port of the local HTTP stats service.
	ServiceAddr string `mapstructure:"service-listen"`

	// PublishQuota is the number of papers published unconditionally at the
	// start of a run before the publish probability kicks in.
	PublishQuota int `mapstructure:"publish-quota"`

	// PublishProb is the per-cycle probability that a publishing persona
	// publishes a paper once the quota is exhausted.
	PublishProb float64 `mapstructure:"publish-prob"`

	// ValidateProb is the per-cycle probability that a validating persona
	// processes the mempool. Deployments have used values between 0.3 and 0.4.
	ValidateProb float64 `mapstructure:"validate-prob"`

	// SocialProb is the per-cycle probability that a social persona posts an
	// engagement message.
	SocialProb float64 `mapstructure:"social-prob"`

	// MempoolLimit bounds the number of pending papers fetched per mempool
	// query.
	MempoolLimit int `mapstructure:"mempool-limit"`

	// ValidateBatch bounds the number of papers validated per triggered
	// validation pass.
	ValidateBatch int `mapstructure:"validate-batch"`

	// HealthTimeout is the per-probe timeout of gateway health checks.
	HealthTimeout time.Duration `mapstructure:"health-timeout"`

	// AgentDelay is the pacing delay inserted after each persona's action.
	// The shared gateway is rate-sensitive.
	AgentDelay time.Duration `mapstructure:"agent-delay"`

	// ValidateDelay is the pause before each validation vote is submitted.
	ValidateDelay time.Duration `mapstructure:"validate-delay"`

	// CycleDelay is the pause between roster passes.
	CycleDelay time.Duration `mapstructure:"cycle-delay"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:       DefaultDataDir(),
		LogLevel:      DefaultLogLevel,
		Gateway:       DefaultGateway,
		RelayNode:     DefaultRelayNode,
		NodeID:        DefaultNodeID,
		RunHours:      DefaultRunHours,
		NoService:     DefaultNoService,
		ServiceAddr:   DefaultServiceAddr,
		PublishQuota:  DefaultPublishQuota,
		PublishProb:   DefaultPublishProb,
		ValidateProb:  DefaultValidateProb,
		SocialProb:    DefaultSocialProb,
		MempoolLimit:  DefaultMempoolLimit,
		ValidateBatch: DefaultValidateBatch,
		HealthTimeout: DefaultHealthTimeout,
		AgentDelay:    DefaultAgentDelay,
		ValidateDelay: DefaultValidateDelay,
		CycleDelay:    DefaultCycleDelay,
	}

	return config
}

// Candidates returns the gateway candidate list: the preferred gateway
// followed by the known mirrors, with duplicates removed.
func (c *Config) Candidates() []string {
	candidates := []string{c.Gateway}
	for _, m := range Mirrors {
		if m != c.Gateway {
			candidates = append(candidates, m)
		}
	}
	return candidates
}

// RosterFile returns the full path of the file containing the persona roster.
func (c *Config) RosterFile() string {
	return filepath.Join(c.DataDir, DefaultRosterFile)
}

// SetLogger sets the logger used by all node components.
func (c *Config) SetLogger(logger *logrus.Logger) {
	c.logger = logger
}

// Logger returns a formatted logrus Entry, with prefix set to "citizen".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)
	}
	return c.logger.WithField("prefix", "citizen")
}

// DefaultDataDir return the default directory name for top-level citizen
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Citizen")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Citizen")
		} else {
			return filepath.Join(home, ".citizen")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
