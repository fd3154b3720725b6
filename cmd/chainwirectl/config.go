package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/chainwire/infrastructure/config"
	"github.com/kaspanet/chainwire/infrastructure/logger"
	"github.com/pkg/errors"
)

const defaultLogLevel = "warn"

type configFlags struct {
	LogLevel             string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical, off} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	LogFile              string `long:"logfile" description:"Also write logs to this file, rotated as it grows"`
	Dump                 bool   `long:"dump" description:"Print the decoded structures instead of the JSON summary"`
	ListCommands         bool   `short:"l" long:"list-commands" description:"List all commands and exit"`
	CommandAndParameters []string
	config.NetworkFlags
}

func parseConfig(args []string) (*configFlags, error) {
	cfg := &configFlags{
		LogLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.HelpFlag)
	parser.Usage = "chainwirectl [OPTIONS] [COMMAND] [COMMAND PARAMETERS]" +
		"\n\nUse `chainwirectl --list-commands` to get a list of all commands and their parameters"
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	if cfg.ListCommands {
		return cfg, nil
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	cfg.CommandAndParameters = remainingArgs
	if len(cfg.CommandAndParameters) == 0 {
		return nil, errors.New("A command must be specified")
	}

	return cfg, nil
}
