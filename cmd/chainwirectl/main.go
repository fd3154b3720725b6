package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/chainwire/infrastructure/logger"
	"github.com/kaspanet/chainwire/util/panics"
	"github.com/pkg/errors"
)

func main() {
	defer panics.HandlePanic(log)

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error parsing command-line arguments: %s", err))
	}

	if cfg.ListCommands {
		printCommands(os.Stdout)
		return
	}

	err = logger.InitLog(cfg.LogFile, logger.LevelTrace)
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error initializing the logger: %s", err))
	}
	defer logger.BackendLog.Close()

	err = run(os.Stdout, cfg)
	if err != nil {
		logger.BackendLog.Close()
		printErrorAndExit(err.Error())
	}
}

// run executes the command named by cfg and writes its output to w.
func run(w io.Writer, cfg *configFlags) error {
	name, args := cfg.CommandAndParameters[0], cfg.CommandAndParameters[1:]
	cmd, ok := commandsByName[name]
	if !ok {
		return errors.Errorf("unknown command %q. Use --list-commands to see the "+
			"available commands", name)
	}
	if len(args) != len(cmd.parameters) {
		return errors.Errorf("wrong number of parameters. Usage: %s", cmd.help())
	}

	log.Debugf("Running %s on %s", name, cfg.NetParams().Name)
	onEnd := logger.LogAndMeasureExecutionTime(log, name)
	out, err := cmd.run(cfg.NetParams(), args)
	onEnd()
	if err != nil {
		return errors.Wrap(err, name)
	}

	if cfg.Dump {
		_, err = fmt.Fprint(w, spew.Sdump(out.decoded))
		return err
	}
	encoded, err := json.MarshalIndent(out.result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", encoded)
	return err
}

func printErrorAndExit(message string) {
	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(1)
}
