// Package main is the entry point for mango.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mangomedia/mango/cmd"
	"github.com/mangomedia/mango/config"
	"github.com/mangomedia/mango/internal/cache"
	"github.com/mangomedia/mango/internal/sync"
	"github.com/mangomedia/mango/key"
	"github.com/mangomedia/mango/log"
	"github.com/mangomedia/mango/network"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func main() {
	// keep going so `mango config` can still fix bad values
	if err := config.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", err)
	}
	lo.Must0(log.Setup())

	go cache.CollectGarbage()
	go func() {
		if !viper.GetBool(key.AdsRetryBeacons) {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := sync.ReconcileFailures(ctx, network.Client); err != nil {
			log.With("sync").Debug(err)
		}
	}()

	cmd.Execute()
}
