package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/bearchess/bear/internal/engine"
	"github.com/bearchess/bear/internal/storage"
	"github.com/bearchess/bear/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	hashMB     = flag.Int("hash", 0, "transposition table size in MB (0 = persisted setting)")
	noStore    = flag.Bool("nostore", false, "run without the persistent option/stat store")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	// The store is a convenience, never a requirement: a locked or broken
	// database must not keep the engine from answering the GUI.
	var store *storage.Store
	if !*noStore {
		var err error
		store, err = storage.Open()
		if err != nil {
			log.Printf("persistent store unavailable: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	opts := storage.DefaultOptions()
	if store != nil {
		if loaded, err := store.LoadOptions(); err == nil {
			opts = loaded
		} else {
			log.Printf("load options: %v", err)
		}
	}
	if *hashMB > 0 {
		opts.HashSizeMB = *hashMB
	}

	eng := engine.NewEngine(opts.HashSizeMB, nil)
	uci.New(eng, store, os.Stdin, os.Stdout).Run()
}
