/*
   Main process.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/
package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	command "github.com/rcornwell/S2200/command/command"
	reader "github.com/rcornwell/S2200/command/reader"
	config "github.com/rcornwell/S2200/config/configparser"
	core "github.com/rcornwell/S2200/emu/core"
	logger "github.com/rcornwell/S2200/util/logger"
	"golang.org/x/term"

	_ "github.com/rcornwell/S2200/config/debugconfig"
	_ "github.com/rcornwell/S2200/util/debug"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "S2200.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("Unable to create log file", "file", *optLogFile, "error", err)
			os.Exit(1)
		}
		defer file.Close()
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	var out io.Writer
	if file != nil {
		out = file
	}
	Logger := slog.New(logger.NewHandler(out, &slog.HandlerOptions{Level: programLevel, AddSource: false}, *optDebug))
	slog.SetDefault(Logger)

	Logger.Info("S2200 Started")
	err := config.LoadConfigFile(*optConfig)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !getopt.IsSet("config"):
		Logger.Info("No configuration file, using defaults", "file", *optConfig)
	case err != nil:
		Logger.Error(err.Error())
		os.Exit(1)
	}

	sys, err := core.New(core.Settings(), command.NewConsole(os.Stdout))
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	// Start processors and message loop.
	sys.Start(context.Background())

	msg := make(chan string, 1)
	go func() {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			reader.ConsoleReader(sys)
		} else if err := reader.ScriptReader(sys, os.Stdin, os.Stdout); err != nil {
			Logger.Error(err.Error())
		}
		msg <- ""
	}()

	// Wait on shutdown option
	<-msg

	if err := sys.Stop(); err != nil {
		Logger.Error(err.Error())
	}
	Logger.Info("Processors stopped.")
}
