package config

import (
	"time"

	"git.lost.host/meutraa/runbeat/internal/session"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

type Flags struct {
	Directory   string
	Difficulty  int
	Rate        float64
	Offset      time.Duration
	Delay       time.Duration
	FramePeriod time.Duration
	Settings    string
	Database    string
	LogLevel    string
	NoAudio     bool
	NoRender    bool
}

func newApp(f *Flags) *kingpin.Application {
	app := kingpin.New("runbeat", "Hit the arrows as the runner reaches them.")
	app.Version(Version)

	app.Arg("directory", "Song/chart directory").Required().ExistingDirVar(&f.Directory)
	app.Flag("difficulty", "Chart index when the song has several").Default("0").Short('D').IntVar(&f.Difficulty)
	app.Flag("rate", "Playback rate").Default("1.0").Short('r').Float64Var(&f.Rate)
	app.Flag("offset", "Global offset").Default("0ms").Short('o').DurationVar(&f.Offset)
	app.Flag("delay", "Start delay").Default(session.StartDelay.String()).Short('d').DurationVar(&f.Delay)
	app.Flag("frame-period", "Render frame period").Default("4ms").Short('p').DurationVar(&f.FramePeriod)
	app.Flag("config", "Settings file").Default("runbeat.yaml").Short('c').StringVar(&f.Settings)
	app.Flag("db", "Score database").Default("scores.db").StringVar(&f.Database)
	app.Flag("log-level", "Log level").Default("info").EnumVar(&f.LogLevel, "debug", "info", "warn", "error")
	app.Flag("no-audio", "Do not play the song").BoolVar(&f.NoAudio)
	app.Flag("no-render", "Do not take over the terminal").BoolVar(&f.NoRender)
	return app
}

// ParseFlags parses command line arguments, without the program name.
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	if _, err := newApp(f).Parse(args); nil != err {
		return nil, err
	}
	if f.Rate <= 0 {
		f.Rate = 1
	}
	return f, nil
}
