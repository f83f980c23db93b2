// Command mipverify runs the mipmap sampling verification matrix against
// a device backend and reports every mismatch.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/miptex"
	"github.com/gogpu/miptex/backend"
)

func main() {
	var (
		backendName = flag.String("backend", "", "backend to verify (default: best available)")
		casesPath   = flag.String("cases", "", "TOML case file (default: built-in matrix)")
		list        = flag.Bool("list", false, "list cases and exit")
		crossCheck  = flag.Bool("crosscheck", false, "also compare synthesized levels against the reference decimation")
		verbose     = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	miptex.SetLogger(logger)

	cases := miptex.DefaultCases()
	if *casesPath != "" {
		loaded, err := loadCases(*casesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mipverify: %v\n", err)
			os.Exit(2)
		}
		cases = loaded
	}

	if *list {
		for _, c := range cases {
			fmt.Println(c.String())
		}
		return
	}

	b, err := selectBackend(*backendName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mipverify: %v\n", err)
		os.Exit(2)
	}
	defer b.Close()

	dev, err := b.NewDevice()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mipverify: %v\n", err)
		os.Exit(2)
	}

	opts := []miptex.HarnessOption{miptex.WithHarnessLogger(logger)}
	if *crossCheck {
		opts = append(opts, miptex.WithSynthesisCrossCheck())
	}
	h := miptex.NewHarness(dev, opts...)

	var samples, failures int
	for _, c := range cases {
		report, err := h.Run(c)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mipverify: case %q: %v\n", c.String(), err)
			os.Exit(2)
		}
		samples += report.Samples
		if report.Failed() {
			failures++
			fmt.Printf("FAIL %s (%d mismatches)\n", c.String(), len(report.Mismatches))
			for _, m := range report.Mismatches {
				fmt.Printf("  %s\n", m.String())
			}
		}
	}

	fmt.Printf("%s: %d cases, %d samples, %d failing\n",
		b.Name(), len(cases), samples, failures)
	if failures > 0 {
		os.Exit(1)
	}
}

// selectBackend initializes the requested backend, or the best available
// one when no name is given.
func selectBackend(name string) (backend.Backend, error) {
	if name == "" {
		return backend.InitDefault()
	}
	b := backend.Get(name)
	if b == nil {
		return nil, fmt.Errorf("unknown backend %q (available: %v)", name, backend.Available())
	}
	if err := b.Init(); err != nil {
		return nil, err
	}
	return b, nil
}
