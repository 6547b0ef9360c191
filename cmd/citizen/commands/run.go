package commands

import (
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/p2pclaw/citizen/src/config"
	"github.com/p2pclaw/citizen/src/gateway"
	"github.com/p2pclaw/citizen/src/network"
	"github.com/p2pclaw/citizen/src/node"
	"github.com/p2pclaw/citizen/src/roster"
	"github.com/p2pclaw/citizen/src/service"
	"github.com/p2pclaw/citizen/src/writer"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

//NewRunCmd returns the command that starts a citizen node
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run node",
		PreRunE: loadConfig,
		RunE:    runCitizen,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runCitizen(cmd *cobra.Command, args []string) error {
	logger := _config.Logger()

	personas, err := loadRoster()
	if err != nil {
		logger.Error("Cannot load roster:", err)
		return err
	}

	resolver := gateway.NewResolver(_config.Candidates(),
		_config.HealthTimeout,
		logger)

	client := network.NewClient(resolver.Current, logger)

	w := writer.NewWriter(_config.NodeID,
		writer.NewGenerator(_config.HFToken, logger),
		rand.New(rand.NewSource(time.Now().UnixNano())),
		logger)

	citizenNode := node.NewNode(_config,
		personas,
		resolver,
		client,
		w,
		rand.New(rand.NewSource(time.Now().UnixNano())))

	if !_config.NoService {
		serviceServer := service.NewService(_config.ServiceAddr, citizenNode, logger)
		go serviceServer.Serve()
	}

	citizenNode.Run()

	return nil
}

//loadRoster reads the roster from [datadir]/roster.json when it exists;
//otherwise the built-in research team is used.
func loadRoster() (*roster.Roster, error) {
	rosterFile := _config.RosterFile()

	if _, err := os.Stat(rosterFile); err != nil {
		return roster.ResearchTeam(), nil
	}

	return roster.NewJSONRoster(rosterFile).Roster()
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {

	cmd.Flags().String("datadir", _config.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("node-id", _config.NodeID, "Unique identifier of this node on the network")

	// Network
	cmd.Flags().StringP("gateway", "g", _config.Gateway, "Preferred gateway URL, probed first")
	cmd.Flags().String("relay-node", _config.RelayNode, "Relay URL passed to external collaborators")
	cmd.Flags().String("hf-token", _config.HFToken, "Bearer token of the text-generation collaborator")

	// Service
	cmd.Flags().StringP("service-listen", "s", _config.ServiceAddr, "Listen IP:Port for HTTP service")
	cmd.Flags().Bool("no-service", _config.NoService, "Do not serve the HTTP API")

	// Scheduling
	cmd.Flags().Float64("run-hours", _config.RunHours, "Run duration in hours")
	cmd.Flags().Int("publish-quota", _config.PublishQuota, "Papers published unconditionally before the probability applies")
	cmd.Flags().Float64("publish-prob", _config.PublishProb, "Per-cycle publish probability once the quota is filled")
	cmd.Flags().Float64("validate-prob", _config.ValidateProb, "Per-cycle probability of a validation pass")
	cmd.Flags().Float64("social-prob", _config.SocialProb, "Per-cycle probability of an engagement message")
	cmd.Flags().Int("mempool-limit", _config.MempoolLimit, "Max pending papers fetched per mempool query")
	cmd.Flags().Int("validate-batch", _config.ValidateBatch, "Max papers validated per validation pass")
	cmd.Flags().Duration("health-timeout", _config.HealthTimeout, "Per-probe timeout of gateway health checks")
	cmd.Flags().Duration("agent-delay", _config.AgentDelay, "Pacing delay after each persona action")
	cmd.Flags().Duration("validate-delay", _config.ValidateDelay, "Pause before each validation vote")
	cmd.Flags().Duration("cycle-delay", _config.CycleDelay, "Pause between roster passes")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	_config.SetLogger(newLogger())

	_config.Logger().WithFields(logrus.Fields{
		"DataDir":       _config.DataDir,
		"NodeID":        _config.NodeID,
		"Gateway":       _config.Gateway,
		"RelayNode":     _config.RelayNode,
		"ServiceAddr":   _config.ServiceAddr,
		"NoService":     _config.NoService,
		"LogLevel":      _config.LogLevel,
		"RunHours":      _config.RunHours,
		"PublishQuota":  _config.PublishQuota,
		"PublishProb":   _config.PublishProb,
		"ValidateProb":  _config.ValidateProb,
		"SocialProb":    _config.SocialProb,
		"MempoolLimit":  _config.MempoolLimit,
		"ValidateBatch": _config.ValidateBatch,
		"HealthTimeout": _config.HealthTimeout,
		"AgentDelay":    _config.AgentDelay,
		"ValidateDelay": _config.ValidateDelay,
		"CycleDelay":    _config.CycleDelay,
		"HFToken":       _config.HFToken != "",
	}).Debug("RUN")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Environment takes precedence over the config file, matching the
	// deployment convention of hosted notebook runners
	viper.BindEnv("gateway", "GATEWAY")
	viper.BindEnv("relay-node", "RELAY_NODE")
	viper.BindEnv("hf-token", "HF_TOKEN")
	viper.BindEnv("node-id", "NODE_ID")
	viper.BindEnv("run-hours", "RUN_HOURS")

	// first unmarshal to read from CLI flags and env
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/citizen.toml (.json, .yaml also work)
	viper.SetConfigName("citizen")       // name of config file (without extension)
	viper.AddConfigPath(_config.DataDir) // search root directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Logger().Debugf("No config file found in: %s", _config.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Level = config.LogLevel(_config.LogLevel)
	logger.Formatter = new(prefixed.TextFormatter)

	pathMap := lfshook.PathMap{}

	infoLog := filepath.Join(_config.DataDir, "citizen_info.log")
	_, err := os.OpenFile(infoLog, os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		logger.Info("Failed to open citizen_info.log file, using default stderr")
	} else {
		pathMap[logrus.InfoLevel] = infoLog
	}

	debugLog := filepath.Join(_config.DataDir, "citizen_debug.log")
	_, err = os.OpenFile(debugLog, os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		logger.Info("Failed to open citizen_debug.log file, using default stderr")
	} else {
		pathMap[logrus.DebugLevel] = debugLog
	}

	logger.Hooks.Add(lfshook.NewHook(
		pathMap,
		&logrus.TextFormatter{},
	))

	return logger
}
