package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/fumin/bigac"
	"github.com/pkg/errors"
)

var flagConfig = flag.String("c", `{"Verbose": false}`, "configuration")

func parseConfig() (bigac.Config, error) {
	config := bigac.DefaultConfig()
	if err := json.Unmarshal([]byte(*flagConfig), &config); err != nil {
		return bigac.Config{}, errors.Wrap(err, "")
	}
	return config, nil
}

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	config, err := parseConfig()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err := bigac.Decompress(os.Stdout, os.Stdin, config); err != nil {
		log.Fatalf("%+v", err)
	}
}
