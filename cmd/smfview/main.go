// Package main is the entry point for the smfview CLI
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/james-see/smfview/pkg/api"
	"github.com/james-see/smfview/pkg/config"
	"github.com/james-see/smfview/pkg/loader"
	"github.com/james-see/smfview/pkg/tui"
	"github.com/james-see/smfview/pkg/viewer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath  string
	drumList    string
	channelBase int
	noNoteNames bool
	verbose     bool
	outputMode  string
	trackFilter int
	serverPort  int

	cfg *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smfview",
	Short: "Inspect the events of Standard MIDI Files and SysEx dumps",
	Long: `smfview turns every event of a Standard MIDI File or .syx dump into a
readable row: channel, status name, decoded data bytes and a hex dump.

Examples:
  smfview dump song.mid
  smfview dump song.mid --track 2 -o csv > track2.csv
  smfview dump song.mid --drums 9,10 --channel-base 1
  smfview format "99 3C 64"
  smfview tui song.mid
  smfview serve --port 8080`,
	Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print the events of a MIDI or SysEx file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

var formatCmd = &cobra.Command{
	Use:   "format <hex bytes>",
	Short: "Format a single event given as hex bytes",
	Long: `Formats one complete event. Running status is not supported, so the
first byte must be a status byte. Meta events are given as FF <type> <len> <data>.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Launch the interactive event browser",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the effective settings to the config file",
	RunE:  runConfig,
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/smfview/config.yaml)")
	pf.StringVar(&drumList, "drums", "", "Comma separated drum channels, 0-15 (default 9)")
	pf.IntVar(&channelBase, "channel-base", 0, "Show channels as 0-15 (0) or 1-16 (1)")
	pf.BoolVar(&noNoteNames, "no-note-names", false, "Show note numbers without names")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// dump command
	dumpCmd.Flags().StringVarP(&outputMode, "output", "o", "", "Output format: table, plain, json or csv (default table on a terminal, plain otherwise)")
	dumpCmd.Flags().IntVarP(&trackFilter, "track", "t", -1, "Only show this track (default all tracks merged by time)")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "Server port (default from config, 8080)")

	// Add commands
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and applies flags set on the command line
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("drums") {
		drums, err := viewer.ParseChannelSet(drumList)
		if err != nil {
			return err
		}
		cfg.SetDrums(drums)
	}
	if flags.Changed("channel-base") {
		cfg.ChannelBase = channelBase
	}
	if noNoteNames {
		cfg.NoteNames = false
	}
	if flags.Changed("port") {
		cfg.Server.Port = serverPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(cfg.LogLevel())
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}

func runDump(cmd *cobra.Command, args []string) error {
	f, err := loader.Load(args[0])
	if err != nil {
		return err
	}

	mode := outputMode
	if mode == "" {
		mode = defaultOutput(os.Stdout)
	}
	render, ok := renderers[strings.ToLower(mode)]
	if !ok {
		return fmt.Errorf("unknown output format %q", mode)
	}

	records, err := selectRecords(f, cfg, trackFilter)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), f, records)
}

func runFormat(cmd *cobra.Command, args []string) error {
	msg, err := viewer.ParseHex(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(msg) == 0 || msg[0] < 0x80 {
		return fmt.Errorf("first byte must be a status byte (0x80-0xFF)")
	}

	rec := cfg.Formatter().Format(loader.NewRawEvent(0, 0, 0, msg), cfg.Drums())
	return renderRecord(cmd.OutOrStdout(), rec)
}

func runTUI(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	// Log lines would corrupt the alternate screen
	logrus.SetLevel(logrus.PanicLevel)
	return tui.Run(cfg, path)
}

func runServe(cmd *cobra.Command, args []string) error {
	logrus.WithField("port", cfg.Server.Port).Info("starting API server")
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", cfg.Server.Port)
	return api.StartServer(cfg.Server.Port, cfg)
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := cfg.Save(configPath); err != nil {
		return err
	}
	path := configPath
	if path == "" {
		path, _ = config.Path()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
