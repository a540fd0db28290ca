package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fumin/bigac"
	"github.com/pkg/errors"
)

var flagConfig = flag.String("c", `{"TableCacheSize": 16, "Verbose": false}`, "configuration")

func parseConfig() (bigac.Config, error) {
	config := bigac.DefaultConfig()
	if err := json.Unmarshal([]byte(*flagConfig), &config); err != nil {
		return bigac.Config{}, errors.Wrap(err, "")
	}
	configB, err := json.Marshal(config)
	if err != nil {
		return bigac.Config{}, errors.Wrap(err, "")
	}
	if config.Verbose {
		log.Printf("config: %s", configB)
	}
	return config, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] filename\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	name := flag.Arg(0)
	if name == "" {
		flag.Usage()
		os.Exit(1)
	}

	config, err := parseConfig()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err := bigac.Compress(os.Stdout, name, config); err != nil {
		log.Fatalf("%+v", err)
	}
}
