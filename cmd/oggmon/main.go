package main

import (
	"context"
	"fmt"
	"os"

	"github.com/core-tools/ogg-monitor/pkg/agent"
	"github.com/core-tools/ogg-monitor/pkg/config"
	"github.com/core-tools/ogg-monitor/pkg/logging"

	flags "github.com/jessevdk/go-flags"
)

type flagOptions struct {
	Debug      bool   `long:"debug" short:"d" description:"enable debug logging"`
	Version    bool   `long:"version" short:"v" description:"print version and exit"`
	ConfigFile string `long:"config" short:"c" description:"path to the YAML configuration file"`
	LogDir     string `long:"log-dir" short:"l" description:"directory for the per-instance log file"`
	SenderPath string `long:"zabbix-sender" short:"z" description:"path to the zabbix_sender binary"`
	CMDBFile   string `long:"cmdb-json" short:"j" description:"base path for the CMDB inventory JSON export"`
	Args       struct {
		Environment   string `positional-arg-name:"environment" description:"environment of the monitored instance: prod, preprod, test, dev"`
		ZabbixServers string `positional-arg-name:"zabbix-servers" description:"Zabbix server addresses, comma-separated"`
	} `positional-args:"yes"`
}

func logPrefix(module string) string {
	return fmt.Sprintf("module: %s-agent , ", module)
}

func main() {
	var opts flagOptions
	var argv []string = os.Args[1:]
	var parser = flags.NewParser(&opts, flags.HelpFlag)
	var err error
	_, err = parser.ParseArgs(argv)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(flagsErr.Message)
			os.Exit(0)
		}
		fmt.Printf("Command line flags parsing failed: %v\n", err)
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version %s\n", agent.Version)
		os.Exit(0)
	}

	if len(argv) == 0 {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	var cfg *config.Config
	if opts.ConfigFile != "" {
		cfg, err = config.LoadConfigFromFile(opts.ConfigFile)
		if err != nil {
			fmt.Printf("Configuration loading failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg = config.NewDefaultConfig()
	}

	config.ApplyOverrides(cfg, config.Overrides{
		Environment:    opts.Args.Environment,
		ZabbixServers:  opts.Args.ZabbixServers,
		Debug:          opts.Debug,
		LogDir:         opts.LogDir,
		SenderPath:     opts.SenderPath,
		CMDBExportPath: opts.CMDBFile,
	})
	if err := config.ValidateConfig(cfg); err != nil {
		fmt.Printf("Configuration validation failed: %v\n", err)
		os.Exit(1)
	}

	logPath := logging.InstanceLogFilePath(cfg.Log.Dir, "zbx_ogg_monitor.log", os.Getenv("OGG_HOME"))
	zapOptions := logging.ZapOptions{
		Level:    cfg.Log.Level,
		FilePath: logPath,
	}
	if err := logging.ProbeWritable(logPath); err != nil {
		fmt.Printf("Log file %s is not writable: %v, logging to stderr\n", logPath, err)
		zapOptions.FilePath = ""
	} else {
		fmt.Printf("Output redirected to the log file: %s\n", logPath)
	}

	zapLogger, err := logging.NewZapLogger(zapOptions)
	if err != nil {
		fmt.Printf("Logger creation failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	logger := logging.NewLogger(logPrefix("ogg-monitor"), zapLogger.Funcs())

	logger.Infof("Script starting, version: %s", agent.Version)
	logger.Debugf("The arguments are: %v", os.Args)

	runner, err := agent.NewRunner(cfg, logger)
	if err != nil {
		logger.Errorf("Runner creation failed: %v", err)
		zapLogger.Sync()
		os.Exit(1)
	}

	if err := runner.Run(context.Background()); err != nil {
		logger.Errorf("Run failed: %v", err)
		zapLogger.Sync()
		os.Exit(1)
	}
}
