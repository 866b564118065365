package conf

import (
	"os"
	"strings"

	"github.com/zhukovaskychina/xbtree-engine/logger"

	"gopkg.in/ini.v1"
)

type CommandLineArgs struct {
	ConfigPath string
}

// Cfg is the engine configuration, loaded my.ini style. Missing files
// and missing keys fall back to the defaults from NewCfg.
type Cfg struct {
	Raw     *ini.File
	AppName string
	DataDir string

	// btree
	TreeOrder int

	// logs
	LogError string
	LogInfos string
	LogLevel string

	// demo workload
	DemoKeys int
}

func NewCfg() *Cfg {
	return &Cfg{
		Raw:       ini.Empty(),
		AppName:   "xbtree-engine",
		DataDir:   "data",
		TreeOrder: 32,
		LogError:  "",
		LogInfos:  "",
		LogLevel:  "info",
		DemoKeys:  128,
	}
}

func (cfg *Cfg) Load(args *CommandLineArgs) *Cfg {
	iniFile, err := cfg.loadConfiguration(args)
	if err != nil {
		logger.Errorf("loading configuration: %v", err)
		os.Exit(1)
	}
	cfg.Raw = iniFile

	cfg.parseBtreeCfg(cfg.Raw.Section("btree"))
	cfg.parseLogsCfg(cfg.Raw.Section("logs"))
	cfg.parseDemoCfg(cfg.Raw.Section("demo"))
	return cfg
}

func (cfg *Cfg) loadConfiguration(args *CommandLineArgs) (*ini.File, error) {
	configFile := "conf/xbtree.ini"
	if args.ConfigPath != "" {
		configFile = args.ConfigPath
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		logger.Debugf("config file %s not found, using defaults", configFile)
		return ini.Empty(), nil
	}

	parsedFile, err := ini.Load(configFile)
	if err != nil {
		logger.Debugf("parsing %s failed: %v, using defaults", configFile, err)
		return ini.Empty(), nil
	}
	logger.Debugf("loaded config file %s", configFile)
	return parsedFile, nil
}

func (cfg *Cfg) parseBtreeCfg(section *ini.Section) *Cfg {
	if section == nil {
		return cfg
	}
	order := section.Key("order").MustInt(cfg.TreeOrder)
	if order < 1 {
		logger.Warnf("invalid btree order %d, keeping %d", order, cfg.TreeOrder)
	} else {
		cfg.TreeOrder = order
	}
	cfg.DataDir = section.Key("data_dir").MustString(cfg.DataDir)
	return cfg
}

func (cfg *Cfg) parseLogsCfg(section *ini.Section) *Cfg {
	if section == nil {
		return cfg
	}
	cfg.LogError = section.Key("log_error").MustString(cfg.LogError)
	cfg.LogInfos = section.Key("log_infos").MustString(cfg.LogInfos)

	logLevel := strings.ToLower(section.Key("log_level").MustString(cfg.LogLevel))
	switch logLevel {
	case "debug", "info", "warn", "error", "fatal":
		cfg.LogLevel = logLevel
	default:
		logger.Warnf("invalid log level %q, keeping %q", logLevel, cfg.LogLevel)
	}
	return cfg
}

func (cfg *Cfg) parseDemoCfg(section *ini.Section) *Cfg {
	if section == nil {
		return cfg
	}
	n := section.Key("keys").MustInt(cfg.DemoKeys)
	if n > 0 {
		cfg.DemoKeys = n
	}
	return cfg
}
