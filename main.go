package main

import (
	cmd "github.com/author-analysis/gateway/cmd/aagateway"
	"github.com/author-analysis/gateway/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting aagateway")
	cmd.Execute()
}
